package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/TomCrypto/equinox/log"
	"github.com/TomCrypto/equinox/stats"
	"github.com/TomCrypto/equinox/timer"
	"github.com/TomCrypto/equinox/tracer"
)

// Number of frames between periodic stat log entries.
const statsLogInterval = 120

var logger = log.New("renderer")

var _ Renderer = (*Driver)(nil)

// Driver paces a progressive tracer against the display refresh rate. Every
// frame it applies pending input, updates the tracer and then runs as many
// refine passes as the smoothed cost estimates from earlier frames allow
// before rendering. The driver is not safe for concurrent use; all methods,
// including the input event handlers, must be called from the goroutine
// running the frame loop.
type Driver struct {
	tracer    tracer.Tracer
	scheduler tracer.RefineScheduler
	clock     func() time.Time

	// GPU timers; one per operation so results are never attributed to
	// the wrong kind of pass.
	refineTimer *timer.ElapsedTimer
	renderTimer *timer.ElapsedTimer

	// Estimators. All costs are in microseconds, frame intervals in
	// milliseconds.
	frameTimes   *stats.Series
	updateCost   *stats.Smoother
	refineCost   *stats.Smoother
	renderCost   *stats.Smoother
	refineWindow *stats.Window

	input inputState

	lastFrame   time.Time
	frame       uint64
	samples     uint64
	refineCount uint32
	stats       FrameStats
}

// Create a new driver for the given tracer. Dev provides GPU timer queries
// and may be nil, in which case the scheduler keeps running a single refine
// pass per frame.
func NewDriver(tr tracer.Tracer, dev timer.Device, opts Options) (*Driver, error) {
	if tr == nil {
		return nil, ErrNoTracer
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sch, err := opts.Scheduler()
	if err != nil {
		return nil, err
	}

	d := &Driver{
		tracer:    tr,
		scheduler: sch,
		clock:     opts.Clock,
		input:     makeInputState(opts.FrameW, opts.FrameH),
	}
	if d.clock == nil {
		d.clock = time.Now
	}

	// Options have been validated so none of the constructors below can fail.
	d.refineTimer, _ = timer.NewElapsedTimer(dev, opts.PipelineDepth)
	d.renderTimer, _ = timer.NewElapsedTimer(dev, opts.PipelineDepth)
	d.frameTimes, _ = stats.NewSeries(opts.FrameSeriesLen)
	d.updateCost, _ = stats.NewSmoother(opts.UpdateAlpha)
	d.refineCost, _ = stats.NewSmoother(opts.RefineAlpha)
	d.renderCost, _ = stats.NewSmoother(opts.RenderAlpha)
	d.refineWindow, _ = stats.NewWindow(opts.RefineWindowLen)

	logger.Infof(`driving tracer "%s" at %.0f Hz (budget %.0f μs, pipeline depth %d)`, tr.Id(), opts.RefreshRate, opts.Budget(), opts.PipelineDepth)
	return d, nil
}

// Frame renders a single frame. A panic raised by the tracer is recovered
// and returned as an error wrapping ErrFramePanicked; frame statistics are
// published in either case.
func (d *Driver) Frame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFramePanicked, r)
		}
		d.publish()
	}()

	now := d.clock()
	if !d.lastFrame.IsZero() {
		d.frameTimes.Push(float64(now.Sub(d.lastFrame)) / float64(time.Millisecond))
	}
	d.lastFrame = now
	d.frame++

	// Any change to the camera or output invalidates accumulated samples.
	if changes := d.input.drain(); len(changes) != 0 {
		for _, c := range changes {
			d.tracer.AppendChange(c.changeType, c.data)
		}
		d.samples = 0
	}

	start := d.clock()
	err = d.tracer.Update()
	d.updateCost.Append(micros(d.clock().Sub(start)))
	if err != nil {
		return fmt.Errorf("renderer: update failed: %w", err)
	}

	// GPU results lag behind submission so these costs are at least one
	// frame old.
	d.refineCount = d.scheduler.Schedule(d.refineCost.Value(), d.renderCost.Value())

	for pass := uint32(0); pass < d.refineCount; pass++ {
		elapsed, ok := d.refineTimer.TimeElapsed(func() { err = d.tracer.Refine() })
		d.samples++

		sample := measurement(elapsed, ok)
		d.refineWindow.Add(sample)
		if v, ok := sample.Get(); ok {
			d.refineCost.Append(v)
		}

		if err != nil {
			return fmt.Errorf("renderer: refine pass %d/%d failed: %w", pass+1, d.refineCount, err)
		}
	}

	elapsed, ok := d.renderTimer.TimeElapsed(func() { err = d.tracer.Render() })
	if v, ok := measurement(elapsed, ok).Get(); ok {
		d.renderCost.Append(v)
	}
	if err != nil {
		return fmt.Errorf("renderer: render failed: %w", err)
	}

	return nil
}

// Run renders frames until the host asks to close or ctx is cancelled.
// Frame errors are logged and the loop moves on to the next frame.
func (d *Driver) Run(ctx context.Context, host Host) error {
	for !host.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		host.PollEvents()
		if err := d.Frame(); err != nil {
			logger.Errorf("frame %d: %v", d.frame, err)
		}
		host.Present(d.stats)

		if d.frame%statsLogInterval == 0 {
			logger.Debugf("frame %d: %s", d.frame, d.stats)
		}
	}
	return nil
}

// Stats returns the figures published by the last frame.
func (d *Driver) Stats() FrameStats {
	return d.stats
}

// Samples returns the number of samples accumulated since the last change
// that invalidated the image.
func (d *Driver) Samples() uint64 {
	return d.samples
}

// Shutdown the driver and the attached tracer.
func (d *Driver) Close() {
	d.refineTimer.Clear()
	d.renderTimer.Clear()
	d.tracer.Close()
}

// KeyDown marks an input key as held.
func (d *Driver) KeyDown(k Key) {
	d.input.keyDown(k)
}

// KeyUp releases an input key.
func (d *Driver) KeyUp(k Key) {
	d.input.keyUp(k)
}

// BeginLook starts translating pointer movement into camera rotation.
func (d *Driver) BeginLook() {
	d.input.looking = true
}

// EndLook stops camera rotation.
func (d *Driver) EndLook() {
	d.input.looking = false
}

// Look accumulates a pointer movement in pixels.
func (d *Driver) Look(dx, dy float32) {
	d.input.look(dx, dy)
}

// SetAperture changes the camera aperture radius.
func (d *Driver) SetAperture(r float32) {
	d.input.setAperture(r)
}

// Resize changes the output dimensions.
func (d *Driver) Resize(w, h uint32) {
	d.input.resize(w, h)
}

// ContextLost drops all GPU timer queries. Frames keep running without
// timings until ContextRestored is called.
func (d *Driver) ContextLost() {
	logger.Warning("graphics context lost; discarding GPU timers")
	d.refineTimer.Clear()
	d.renderTimer.Clear()
	d.samples = 0
}

// ContextRestored attaches the restored device and resubmits the camera and
// frame state to the tracer.
func (d *Driver) ContextRestored(dev timer.Device) {
	logger.Notice("graphics context restored")
	d.refineTimer.Restore(dev)
	d.renderTimer.Restore(dev)
	d.input.invalidate()
	d.samples = 0

	// Frames stalled while the context was down; don't let them skew the
	// frame rate.
	d.frameTimes.Reset()
	d.lastFrame = time.Time{}
}

func (d *Driver) publish() {
	d.stats = FrameStats{
		Frame:         d.frame,
		UpdateTime:    d.updateCost.Value(),
		RefineTime:    d.refineCost.Value(),
		RenderTime:    d.renderCost.Value(),
		RefineAvg:     d.refineWindow.Average(),
		RefineMin:     d.refineWindow.Minimum(),
		RefineCount:   d.refineCount,
		FrameRate:     1000.0 / d.frameTimes.Average(),
		Samples:       d.samples,
		TimingEnabled: d.refineTimer.Enabled(),
	}
}

// Convert a timer result into a sample in microseconds.
//
// A zero reading is treated like a missing one. This keeps compatibility
// with devices that report 0 for queries they could not time, but it also
// discards passes that finished below the timer resolution.
func measurement(elapsed time.Duration, ok bool) stats.Value {
	if !ok || elapsed == 0 {
		return stats.None
	}
	return stats.Some(micros(elapsed))
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}
