package orchestration

import "errors"

var (
	ErrNoStartNode      = errors.New("orchestration graph has no Start node")
	ErrNodeNotFound     = errors.New("node not found in orchestration graph")
	ErrNoEdgeForHandle  = errors.New("no edge found for the given source handle")
	ErrInvalidConfig    = errors.New("invalid orchestration node configuration")
	ErrUnknownNodeType  = errors.New("unknown orchestration node type")
	ErrBudgetExceeded   = errors.New("orchestration execution step budget exceeded")
)
