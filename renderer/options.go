package renderer

import (
	"fmt"
	"time"

	"github.com/TomCrypto/equinox/stats"
	"github.com/TomCrypto/equinox/timer"
	"github.com/TomCrypto/equinox/tracer"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Target display refresh rate (Hz) and the part of each frame that is
	// reserved for presentation and readback.
	RefreshRate float64
	Overhead    time.Duration

	// Inclusive bounds for the number of refine passes per frame.
	MinRefines uint32
	MaxRefines uint32

	// If non-zero, run this many refine passes every frame instead of
	// adapting to measured costs.
	FixedRefines uint32

	// Smoothing factors for the update, refine and render cost estimates.
	UpdateAlpha float64
	RefineAlpha float64
	RenderAlpha float64

	// Number of frame intervals averaged for the fps figure.
	FrameSeriesLen int

	// Number of refine timings kept for the conservative refine statistics.
	RefineWindowLen int

	// Number of GPU queries in flight before results are polled.
	PipelineDepth int

	// Time source; time.Now if nil.
	Clock func() time.Time
}

// DefaultOptions returns options for a 60Hz display.
func DefaultOptions() Options {
	return Options{
		FrameW:          1024,
		FrameH:          768,
		RefreshRate:     60,
		Overhead:        2 * time.Millisecond,
		MinRefines:      1,
		MaxRefines:      9,
		UpdateAlpha:     0.12,
		RefineAlpha:     0.08,
		RenderAlpha:     0.08,
		FrameSeriesLen:  30,
		RefineWindowLen: 30,
		PipelineDepth:   timer.DefaultPipelineDepth,
	}
}

// Budget returns the per-frame GPU budget in microseconds.
func (opts Options) Budget() float64 {
	return tracer.FrameBudget(opts.RefreshRate, opts.Overhead)
}

// Scheduler builds the refine scheduler described by the options.
func (opts Options) Scheduler() (tracer.RefineScheduler, error) {
	if opts.FixedRefines != 0 {
		return tracer.NewFixedScheduler(opts.FixedRefines), nil
	}

	sch, err := tracer.NewAdaptiveScheduler(opts.Budget(), opts.MinRefines, opts.MaxRefines)
	if err != nil {
		return nil, fmt.Errorf("renderer: invalid scheduler options (refresh %.1f Hz, overhead %s, refines [%d, %d]): %w",
			opts.RefreshRate, opts.Overhead, opts.MinRefines, opts.MaxRefines, err)
	}
	return sch, nil
}

// Validate checks the options for configuration errors.
func (opts Options) Validate() error {
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return ErrInvalidFrameSize
	}

	if _, err := opts.Scheduler(); err != nil {
		return err
	}

	for name, alpha := range map[string]float64{
		"update": opts.UpdateAlpha,
		"refine": opts.RefineAlpha,
		"render": opts.RenderAlpha,
	} {
		if _, err := stats.NewSmoother(alpha); err != nil {
			return fmt.Errorf("renderer: invalid %s smoothing factor %v: %w", name, alpha, err)
		}
	}

	if opts.FrameSeriesLen < 1 || opts.RefineWindowLen < 1 {
		return fmt.Errorf("renderer: invalid sample window length: %w", stats.ErrInvalidCapacity)
	}

	if opts.PipelineDepth < 2 {
		return fmt.Errorf("renderer: invalid pipeline depth %d: %w", opts.PipelineDepth, timer.ErrInvalidDepth)
	}

	return nil
}
