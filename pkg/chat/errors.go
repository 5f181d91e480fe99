package chat

import "fmt"

// SchemaMismatchError signals that an adapter could not locate the fields it
// expects in the raw payload, usually because the source site changed shape.
type SchemaMismatchError struct {
	Platform Platform
	Detail   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s payload does not match the expected schema: %s", e.Platform, e.Detail)
}

// CyclicGraphError signals a parent cycle in a branching message graph.
type CyclicGraphError struct {
	Platform Platform
	NodeID   string
}

func (e *CyclicGraphError) Error() string {
	return fmt.Sprintf("%s message graph contains a parent cycle at node %s", e.Platform, e.NodeID)
}

// EmptyConversationError signals that parsing produced zero messages.
type EmptyConversationError struct {
	Platform Platform
}

func (e *EmptyConversationError) Error() string {
	return fmt.Sprintf("no messages could be extracted from the %s payload", e.Platform)
}

// NormalizationError signals that no usable messages survived normalization.
type NormalizationError struct {
	Detail string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization failed: %s", e.Detail)
}

// InvalidArgumentError signals a caller-supplied value outside its domain.
type InvalidArgumentError struct {
	Detail string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Detail)
}
