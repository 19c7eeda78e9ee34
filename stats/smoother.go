package stats

import "math"

// Smoother is a first order exponential moving average. It starts out unset
// and is bootstrapped by the first sample it receives; from then on each
// sample is blended in as value*(1-alpha) + sample*alpha.
type Smoother struct {
	alpha float64
	value Value
}

// Create a smoother with the given blend factor which must lie in (0, 1].
func NewSmoother(alpha float64) (*Smoother, error) {
	if math.IsNaN(alpha) || alpha <= 0 || alpha > 1 {
		return nil, ErrInvalidAlpha
	}

	return &Smoother{alpha: alpha}, nil
}

// Append a sample. Non-finite samples are discarded and the call returns
// false.
func (s *Smoother) Append(sample float64) bool {
	if math.IsNaN(sample) || math.IsInf(sample, 0) {
		return false
	}

	cur, ok := s.value.Get()
	if !ok {
		s.value = Some(sample)
		return true
	}

	s.value = Some(cur*(1-s.alpha) + sample*s.alpha)
	return true
}

// Value returns the smoothed estimate; it stays unset until the first
// sample is appended.
func (s *Smoother) Value() Value {
	return s.value
}

func (s *Smoother) Alpha() float64 {
	return s.alpha
}
