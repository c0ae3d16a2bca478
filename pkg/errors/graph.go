package errors

import (
	"errors"
	"fmt"
)

// InvalidEdgeError is returned when an edge cannot enter the graph.
// Only self-loops and malformed pairs (empty endpoint) produce it; an edge
// whose endpoint is simply unknown is dropped without error.
type InvalidEdgeError struct {
	From   string
	To     string
	Reason string
}

func (e *InvalidEdgeError) Error() string {
	return fmt.Sprintf("invalid edge %q -- %q: %s", e.From, e.To, e.Reason)
}

// ErrorCode returns ErrCodeInvalidEdge.
func (e *InvalidEdgeError) ErrorCode() Code { return ErrCodeInvalidEdge }

// EmptyGraphError is returned when a stage that needs at least one node
// receives an empty graph.
type EmptyGraphError struct {
	Stage string // "community", "centrality", ...
}

func (e *EmptyGraphError) Error() string {
	if e.Stage == "" {
		return "graph has no nodes"
	}
	return fmt.Sprintf("%s: graph has no nodes", e.Stage)
}

// ErrorCode returns ErrCodeEmptyGraph.
func (e *EmptyGraphError) ErrorCode() Code { return ErrCodeEmptyGraph }

// DisconnectedGraphWarning flags a graph with more than one connected
// component. It never aborts a run; stages return it next to a valid result.
type DisconnectedGraphWarning struct {
	Components int
}

func (w *DisconnectedGraphWarning) Error() string {
	return fmt.Sprintf("graph is disconnected (%d components)", w.Components)
}

// ErrorCode returns ErrCodeDisconnected.
func (w *DisconnectedGraphWarning) ErrorCode() Code { return ErrCodeDisconnected }

// IsWarning reports whether err is a non-fatal warning.
func IsWarning(err error) bool {
	var w *DisconnectedGraphWarning
	return errors.As(err, &w)
}
