package stats

import "math"

// Window keeps the most recent samples of a signal that may have gaps.
// Statistics fail closed: a single missing sample anywhere in the window
// makes both Average and Minimum report None until it is evicted.
type Window struct {
	samples []Value
	size    int
}

// Create a window holding up to size samples.
func NewWindow(size int) (*Window, error) {
	if size < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Window{
		samples: make([]Value, 0, size),
		size:    size,
	}, nil
}

// Append a sample (which may be None), evicting the oldest on overflow.
func (w *Window) Add(v Value) {
	w.samples = append(w.samples, v)
	for len(w.samples) > w.size {
		w.samples = w.samples[1:]
	}
}

// Average returns the mean of the window or None if the window is empty or
// holds a missing sample.
func (w *Window) Average() Value {
	if len(w.samples) == 0 {
		return None
	}

	var sum float64
	for _, s := range w.samples {
		v, ok := s.Get()
		if !ok {
			return None
		}
		sum += v
	}
	return Some(sum / float64(len(w.samples)))
}

// Minimum returns the least sample in the window or None if the window is
// empty or holds a missing sample.
func (w *Window) Minimum() Value {
	if len(w.samples) == 0 {
		return None
	}

	min := math.Inf(1)
	for _, s := range w.samples {
		v, ok := s.Get()
		if !ok {
			return None
		}
		min = math.Min(min, v)
	}
	return Some(min)
}

func (w *Window) Len() int {
	return len(w.samples)
}
