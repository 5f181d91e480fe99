package platforms

import (
	"github.com/go-go-golems/prattle/pkg/chat"
	"github.com/rs/zerolog/log"
)

// resolveCurrentPath reduces the branching message graph to the single current
// root-to-leaf path. The designated current leaf wins when the payload names
// one; otherwise the deepest leaf reachable from a root is used. Nodes off the
// path are abandoned edits and never appear in the result.
//
// Both walks are iterative so that arbitrarily long conversations cannot blow
// the stack, and both fail with CyclicGraphError on corrupt input instead of
// looping.
func resolveCurrentPath(mapping map[string]treeNode, currentNode string) ([]treeNode, error) {
	leafID := currentNode
	if _, ok := mapping[leafID]; leafID == "" || !ok {
		if leafID != "" {
			log.Warn().Str("currentNode", leafID).Msg("current node pointer dangles, falling back to deepest leaf")
		}
		deepest, err := deepestLeaf(mapping)
		if err != nil {
			return nil, err
		}
		leafID = deepest
	}

	var reversed []treeNode
	seen := make(map[string]struct{}, len(mapping))
	for id := leafID; id != ""; {
		node, ok := mapping[id]
		if !ok {
			break
		}
		if _, dup := seen[id]; dup {
			return nil, &chat.CyclicGraphError{Platform: chat.PlatformChatGPT, NodeID: id}
		}
		seen[id] = struct{}{}
		reversed = append(reversed, node)
		id = node.Parent
	}

	path := make([]treeNode, len(reversed))
	for i, node := range reversed {
		path[len(reversed)-1-i] = node
	}
	return path, nil
}

// deepestLeaf finds the childless node with the greatest depth reachable from
// a root, using an explicit stack instead of recursion.
func deepestLeaf(mapping map[string]treeNode) (string, error) {
	type frame struct {
		id    string
		depth int
	}

	var stack []frame
	for id, node := range mapping {
		if _, hasParent := mapping[node.Parent]; node.Parent == "" || !hasParent {
			stack = append(stack, frame{id: id, depth: 0})
		}
	}
	if len(stack) == 0 && len(mapping) > 0 {
		// Every node has a parent inside the mapping, so some parent chain
		// must close on itself.
		for id := range mapping {
			return "", &chat.CyclicGraphError{Platform: chat.PlatformChatGPT, NodeID: id}
		}
	}

	bestID := ""
	bestDepth := -1
	visited := make(map[string]struct{}, len(mapping))

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, dup := visited[top.id]; dup {
			// Revisits happen on duplicated child links; the authoritative
			// cycle check is the parent walk in resolveCurrentPath.
			continue
		}
		visited[top.id] = struct{}{}

		node, ok := mapping[top.id]
		if !ok {
			continue
		}

		childCount := 0
		for _, childID := range node.Children {
			if _, exists := mapping[childID]; !exists {
				continue
			}
			childCount++
			stack = append(stack, frame{id: childID, depth: top.depth + 1})
		}

		if childCount == 0 && top.depth > bestDepth {
			bestID = top.id
			bestDepth = top.depth
		}
	}

	return bestID, nil
}
