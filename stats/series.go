package stats

import "math"

// Series keeps the most recent samples of an always-available signal such
// as the wall-clock interval between frames.
type Series struct {
	samples  []float64
	capacity int
}

// Create a new series holding up to capacity samples.
func NewSeries(capacity int) (*Series, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Series{
		samples:  make([]float64, 0, capacity),
		capacity: capacity,
	}, nil
}

// Append a sample, evicting the oldest ones once capacity is exceeded.
func (s *Series) Push(v float64) {
	s.samples = append(s.samples, v)
	for len(s.samples) > s.capacity {
		s.samples = s.samples[1:]
	}
}

// Average returns the arithmetic mean of the held samples or NaN if the
// series is empty.
func (s *Series) Average() float64 {
	if len(s.samples) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, v := range s.samples {
		sum += v
	}
	return sum / float64(len(s.samples))
}

func (s *Series) Len() int {
	return len(s.samples)
}

// Drop all samples.
func (s *Series) Reset() {
	s.samples = s.samples[:0]
}
