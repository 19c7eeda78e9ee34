package stats

import "errors"

var (
	ErrInvalidAlpha    = errors.New("stats: smoothing factor must be in (0, 1]")
	ErrInvalidCapacity = errors.New("stats: capacity must be at least 1")
)
