package stats

import "math"

// Value is a scalar sample that may be absent. The zero Value is absent.
type Value struct {
	v  float64
	ok bool
}

// None is the absent Value.
var None = Value{}

// Wrap a finite sample. Non-finite input yields None so that NaN or Inf
// never leak into arithmetic downstream.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return None
	}
	return Value{v: v, ok: true}
}

// Get returns the wrapped sample and whether it is present.
func (v Value) Get() (float64, bool) {
	return v.v, v.ok
}

// IsSet reports whether the value carries a sample.
func (v Value) IsSet() bool {
	return v.ok
}

// Or returns the sample or def if it is absent.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.v
}
