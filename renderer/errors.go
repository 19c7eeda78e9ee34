package renderer

import "errors"

var (
	ErrNoTracer         = errors.New("renderer: no tracer attached")
	ErrInvalidFrameSize = errors.New("renderer: frame dimensions must be non-zero")
	ErrFramePanicked    = errors.New("renderer: panic while rendering frame")
)
