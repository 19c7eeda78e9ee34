package tracer

import (
	"math"
	"testing"
	"time"

	"github.com/TomCrypto/equinox/stats"
)

func TestFixedScheduler(t *testing.T) {
	sch := NewFixedScheduler(4)
	if got := sch.Schedule(stats.Some(1e6), stats.None); got != 4 {
		t.Fatalf("expected 4 refine passes; got %d", got)
	}

	if got := NewFixedScheduler(0).Schedule(stats.None, stats.None); got != 1 {
		t.Fatalf("expected fixed scheduler to run at least 1 pass; got %d", got)
	}
}

func TestAdaptiveScheduler(t *testing.T) {
	type spec struct {
		budget     float64
		min, max   uint32
		refineCost stats.Value
		renderCost stats.Value
		expCount   uint32
	}
	specs := []spec{
		// floor((14666-2000)/1000) = 12 is clamped to 9
		spec{14666, 1, 9, stats.Some(1000), stats.Some(2000), 9},
		spec{14666, 1, 20, stats.Some(1000), stats.Some(2000), 12},
		spec{14666, 1, 9, stats.Some(3000), stats.Some(2000), 4},
		// Unknown estimates always yield a single pass
		spec{14666, 1, 9, stats.None, stats.Some(2000), 1},
		spec{14666, 1, 9, stats.Some(1000), stats.None, 1},
		spec{14666, 1, 9, stats.None, stats.None, 1},
		// Render alone exceeds the budget
		spec{14666, 1, 9, stats.Some(1000), stats.Some(20000), 1},
		// Zero refine cost produces a non-finite quotient
		spec{14666, 1, 9, stats.Some(0), stats.Some(2000), 1},
		// Lower bound wins over the default
		spec{14666, 2, 9, stats.None, stats.None, 2},
		spec{14666, 3, 9, stats.Some(10000), stats.Some(2000), 3},
	}

	for index, s := range specs {
		sch, err := NewAdaptiveScheduler(s.budget, s.min, s.max)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}

		if got := sch.Schedule(s.refineCost, s.renderCost); got != s.expCount {
			t.Fatalf("[spec %d] expected %d refine passes; got %d", index, s.expCount, got)
		}
	}
}

func TestAdaptiveSchedulerRejectsBadConfig(t *testing.T) {
	if _, err := NewAdaptiveScheduler(0, 1, 9); err != ErrInvalidBudget {
		t.Fatalf("expected ErrInvalidBudget; got %v", err)
	}
	if _, err := NewAdaptiveScheduler(math.Inf(1), 1, 9); err != ErrInvalidBudget {
		t.Fatalf("expected ErrInvalidBudget; got %v", err)
	}
	if _, err := NewAdaptiveScheduler(1000, 0, 9); err != ErrInvalidBounds {
		t.Fatalf("expected ErrInvalidBounds; got %v", err)
	}
	if _, err := NewAdaptiveScheduler(1000, 5, 4); err != ErrInvalidBounds {
		t.Fatalf("expected ErrInvalidBounds; got %v", err)
	}
}

func TestFrameBudget(t *testing.T) {
	got := FrameBudget(60, 2*time.Millisecond)
	if math.Abs(got-(1e6/60.0-2000)) > 1e-6 {
		t.Fatalf("expected budget of %f us; got %f", 1e6/60.0-2000, got)
	}

	if got := FrameBudget(0, 0); got != 0 {
		t.Fatalf("expected zero budget for invalid refresh rate; got %f", got)
	}
}
