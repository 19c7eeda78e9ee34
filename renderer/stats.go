package renderer

import (
	"fmt"

	"github.com/TomCrypto/equinox/stats"
)

type FrameStats struct {
	// Number of frames rendered so far.
	Frame uint64

	// Smoothed per-pass costs in microseconds.
	UpdateTime stats.Value
	RefineTime stats.Value
	RenderTime stats.Value

	// Conservative refine statistics over the recent window; unset while
	// any timing in the window is missing.
	RefineAvg stats.Value
	RefineMin stats.Value

	// The number of refine passes scheduled for the last frame.
	RefineCount uint32

	// Average frame rate over recent frames (NaN until two frames have
	// been rendered).
	FrameRate float64

	// Number of samples accumulated since the last invalidating change.
	Samples uint64

	// Whether GPU timings are currently being collected.
	TimingEnabled bool
}

// Implements Stringer.
func (fs FrameStats) String() string {
	return fmt.Sprintf(
		"[update: %s] ➜ [refine: %s × %2d] ➜ [render: %s] %s, %s samples",
		stats.FormatMicros(fs.UpdateTime),
		stats.FormatMicros(fs.RefineTime),
		fs.RefineCount,
		stats.FormatMicros(fs.RenderTime),
		stats.FormatRate(fs.FrameRate),
		stats.FormatCount(fs.Samples),
	)
}
