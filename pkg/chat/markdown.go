package chat

import "strings"

// knownLanguages are the language identifiers recognized when repairing fences
// whose language tag landed on the line after the fence marker.
var knownLanguages = map[string]struct{}{
	"python": {}, "javascript": {}, "typescript": {}, "bash": {}, "sh": {},
	"json": {}, "yaml": {}, "yml": {}, "html": {}, "css": {}, "jsx": {},
	"tsx": {}, "java": {}, "cpp": {}, "c": {}, "go": {}, "rust": {},
	"ruby": {}, "php": {},
}

// RepairSplitFences rejoins fence markers with a language identifier that an
// HTML-to-markdown conversion emitted on the following line, so that
// ```\npython\n... becomes ```python\n...
func RepairSplitFences(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "```") && len(trimmed) <= 20 {
			if i+1 < len(lines) {
				next := strings.ToLower(strings.TrimSpace(lines[i+1]))
				if _, ok := knownLanguages[next]; ok && trimmed == "```" {
					out = append(out, "```"+next)
					i++
					continue
				}
			}
			out = append(out, trimmed)
			continue
		}
		out = append(out, lines[i])
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// SplitBlocks splits markdown text into an ordered sequence of content blocks.
// Fenced code keeps its boundaries and language tag verbatim; the text between
// fences is trimmed of surrounding blank lines but otherwise untouched.
//
// SplitBlocks is the inverse of JoinBlocks for block sequences it produced
// itself, which is what the export round-trip relies on.
func SplitBlocks(markdown string) []ContentBlock {
	var blocks []ContentBlock
	var text []string
	var code []string
	language := ""
	inCode := false

	flushText := func() {
		s := strings.TrimSpace(strings.Join(text, "\n"))
		if s != "" {
			blocks = append(blocks, TextBlock{Text: s})
		}
		text = nil
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inCode && strings.HasPrefix(trimmed, "```"):
			flushText()
			language = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			inCode = true
			code = nil
		case inCode && trimmed == "```":
			blocks = append(blocks, CodeBlock{Language: language, Code: strings.Join(code, "\n")})
			inCode = false
		case inCode:
			code = append(code, line)
		default:
			text = append(text, line)
		}
	}

	if inCode {
		// Unterminated fence, keep the content rather than dropping it.
		blocks = append(blocks, CodeBlock{Language: language, Code: strings.Join(code, "\n")})
	} else {
		flushText()
	}

	return blocks
}

// JoinBlocks renders a block sequence back to its literal markdown form.
func JoinBlocks(blocks []ContentBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Markdown())
	}
	return strings.Join(parts, "\n\n")
}
