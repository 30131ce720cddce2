package registry

import "errors"

var (
	ErrUnregisteredType = errors.New("no executor registered for node type")
)
