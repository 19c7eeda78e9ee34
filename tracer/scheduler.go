package tracer

import (
	"math"
	"time"

	"github.com/TomCrypto/equinox/stats"
)

// The RefineScheduler interface is implemented by all refine scheduling algorithms.
type RefineScheduler interface {
	// Decide how many refine passes to run this frame using the smoothed
	// refine and render costs collected from previous frames. Both costs
	// are expressed in microseconds.
	Schedule(refineCost, renderCost stats.Value) uint32
}

// FrameBudget returns the time in microseconds that can be spent on GPU work
// per frame at the given refresh rate after reserving overhead for display
// and readback.
func FrameBudget(refreshRate float64, overhead time.Duration) float64 {
	if refreshRate <= 0 {
		return 0
	}
	return 1e6/refreshRate - float64(overhead)/float64(time.Microsecond)
}

// The fixed scheduler always runs the same number of refine passes.
type fixedScheduler struct {
	count uint32
}

// Create a scheduler that ignores cost feedback and always runs count passes.
func NewFixedScheduler(count uint32) RefineScheduler {
	if count == 0 {
		count = 1
	}
	return &fixedScheduler{count: count}
}

func (sch *fixedScheduler) Schedule(_, _ stats.Value) uint32 {
	return sch.count
}

// The adaptive scheduler fills the frame budget with as many refine passes
// as the latest cost estimates allow. It keeps no state between frames.
type adaptiveScheduler struct {
	budget   float64
	minCount uint32
	maxCount uint32
}

// Create a new adaptive scheduler for the given budget (in microseconds)
// and inclusive refine count bounds.
func NewAdaptiveScheduler(budget float64, minCount, maxCount uint32) (RefineScheduler, error) {
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget <= 0 {
		return nil, ErrInvalidBudget
	}
	if minCount < 1 || minCount > maxCount {
		return nil, ErrInvalidBounds
	}

	return &adaptiveScheduler{
		budget:   budget,
		minCount: minCount,
		maxCount: maxCount,
	}, nil
}

// Estimate the refine count for the next frame using the formula:
// count = floor((budget - renderCost) / refineCost)
//
// Until both estimates are known a single pass is scheduled. The result is
// clamped to [minCount, maxCount].
func (sch *adaptiveScheduler) Schedule(refineCost, renderCost stats.Value) uint32 {
	count := 1.0

	refine, refineOk := refineCost.Get()
	render, renderOk := renderCost.Get()
	if refineOk && renderOk {
		estimate := math.Floor((sch.budget - render) / refine)
		if !math.IsNaN(estimate) && !math.IsInf(estimate, 0) {
			count = estimate
		}
	}

	count = math.Max(float64(sch.minCount), math.Min(count, float64(sch.maxCount)))
	return uint32(count)
}
