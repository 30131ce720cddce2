package executors

import "errors"

var (
	ErrMissingInput     = errors.New("executors: required input missing")
	ErrInvalidInputType = errors.New("executors: input has the wrong type")
	ErrPathEscapesRoot  = errors.New("executors: path escapes the configured sandbox root")
	ErrNoModelServer    = errors.New("executors: no modelserver.Client registered in extensions")
	ErrNoVectorStore    = errors.New("executors: no vectorstore.Client registered in extensions")
)
