package tracer

import "errors"

var (
	ErrInvalidBudget = errors.New("tracer: frame budget must be a positive number")
	ErrInvalidBounds = errors.New("tracer: refine count bounds must satisfy 1 <= min <= max")
)
