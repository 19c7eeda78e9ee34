package timer

import "errors"

var (
	ErrInvalidDepth = errors.New("timer: pipeline depth must be at least 2")
)
