package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/TomCrypto/equinox/renderer"
	"github.com/TomCrypto/equinox/stats"
	"github.com/TomCrypto/equinox/tracer/sim"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Flags for the simulate command.
var SimulateFlags = append(append([]cli.Flag{
	cli.IntFlag{
		Name:  "frames",
		Value: 600,
		Usage: "number of frames to simulate",
	},
	cli.DurationFlag{
		Name:  "update-cost",
		Value: 200 * time.Microsecond,
		Usage: "host time spent updating the tracer each frame",
	},
	cli.DurationFlag{
		Name:  "refine-cost",
		Value: time.Millisecond,
		Usage: "GPU time spent per refine pass",
	},
	cli.DurationFlag{
		Name:  "render-cost",
		Value: 2 * time.Millisecond,
		Usage: "GPU time spent per render pass",
	},
	cli.Float64Flag{
		Name:  "jitter",
		Value: 0.1,
		Usage: "relative noise applied to GPU costs",
	},
	cli.IntFlag{
		Name:  "latency",
		Value: 1,
		Usage: "number of GPU submissions before a timer result becomes available",
	},
	cli.IntFlag{
		Name:  "disjoint-every",
		Value: 0,
		Usage: "inject a disjoint GPU event every N frames (0 disables)",
	},
	cli.IntFlag{
		Name:  "lose-context-at",
		Value: 0,
		Usage: "lose the graphics context at this frame (0 disables)",
	},
	cli.IntFlag{
		Name:  "restore-after",
		Value: 30,
		Usage: "number of frames until a lost context is restored",
	},
	cli.IntFlag{
		Name:  "move-every",
		Value: 0,
		Usage: "move the camera every N frames, discarding accumulated samples (0 disables)",
	},
	cli.IntFlag{
		Name:  "report-every",
		Value: 60,
		Usage: "add a row to the statistics table every N frames",
	},
	cli.UintFlag{
		Name:  "reference-area",
		Value: 0,
		Usage: "scale the refine cost by the frame area relative to this many pixels (0 disables)",
	},
	cli.BoolFlag{
		Name:  "no-timer-queries",
		Usage: "simulate a GPU without elapsed time query support",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "seed for the GPU cost noise",
	},
}, frameSizeFlags(1024, 768)...), SchedulerFlags...)

// A renderer.Host that advances a virtual clock instead of waiting for a
// display.
type simulation struct {
	driver *renderer.Driver
	dev    *sim.Device
	clock  *sim.Clock

	frames        int
	disjointEvery int
	loseContextAt int
	restoreAfter  int
	moveEvery     int
	reportEvery   int

	presented int
	refines   uint64
	lostAt    int
	moving    bool
	rows      [][]string
}

func (s *simulation) PollEvents() {
	frame := s.presented + 1

	if s.moving {
		s.driver.KeyUp(renderer.KeyForward)
		s.moving = false
	}
	if s.moveEvery > 0 && frame%s.moveEvery == 0 {
		s.driver.KeyDown(renderer.KeyForward)
		s.moving = true
	}

	if s.disjointEvery > 0 && frame%s.disjointEvery == 0 {
		logger.Infof("frame %d: injecting disjoint GPU event", frame)
		s.dev.InjectDisjoint()
	}

	if s.loseContextAt > 0 && frame == s.loseContextAt {
		s.dev.LoseContext()
		s.driver.ContextLost()
		s.lostAt = frame
	}
	if s.lostAt > 0 && frame == s.lostAt+s.restoreAfter {
		s.dev.RestoreContext()
		s.driver.ContextRestored(s.dev)
		s.lostAt = 0
	}
}

func (s *simulation) Present(fs renderer.FrameStats) {
	s.clock.Present(s.dev.TakeFrameTime())
	s.presented++
	s.refines += uint64(fs.RefineCount)

	if s.reportEvery > 0 && s.presented%s.reportEvery == 0 {
		s.rows = append(s.rows, []string{
			fmt.Sprintf("%d", fs.Frame),
			fmt.Sprintf("%d", fs.RefineCount),
			stats.FormatMicros(fs.UpdateTime),
			stats.FormatMicros(fs.RefineTime),
			fmt.Sprintf("%s / %s", stats.FormatMicros(fs.RefineAvg), stats.FormatMicros(fs.RefineMin)),
			stats.FormatMicros(fs.RenderTime),
			stats.FormatRate(fs.FrameRate),
			stats.FormatCount(fs.Samples),
			fmt.Sprintf("%t", fs.TimingEnabled),
		})
	}
}

func (s *simulation) ShouldClose() bool {
	return s.presented >= s.frames
}

// Drive the refine scheduler against a simulated GPU and print the
// resulting frame statistics.
func Simulate(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := rendererOptions(ctx)
	if err != nil {
		return err
	}

	frames := ctx.Int("frames")
	if frames <= 0 {
		return fmt.Errorf("invalid frame count %d", frames)
	}

	clock := sim.NewClock(time.Duration(float64(time.Second) / opts.RefreshRate))
	opts.Clock = clock.Now

	dev := sim.NewDevice(ctx.Int("latency"))
	dev.SetSupported(!ctx.Bool("no-timer-queries"))
	tr := sim.NewTracer("sim", dev, clock, sim.Costs{
		Update: ctx.Duration("update-cost"),
		Refine: ctx.Duration("refine-cost"),
		Render: ctx.Duration("render-cost"),
		Jitter: ctx.Float64("jitter"),

		ReferenceArea: uint32(ctx.Uint("reference-area")),
	}, ctx.Int64("seed"))

	d, err := renderer.NewDriver(tr, dev, opts)
	if err != nil {
		tr.Close()
		return err
	}
	defer d.Close()

	s := &simulation{
		driver:        d,
		dev:           dev,
		clock:         clock,
		frames:        frames,
		disjointEvery: ctx.Int("disjoint-every"),
		loseContextAt: ctx.Int("lose-context-at"),
		restoreAfter:  ctx.Int("restore-after"),
		moveEvery:     ctx.Int("move-every"),
		reportEvery:   ctx.Int("report-every"),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err = d.Run(runCtx, s); err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warningf("simulation interrupted after %d frames", s.presented)
	}
	logger.Infof("simulated %d frames in %d ms", s.presented, time.Since(start).Nanoseconds()/1000000)
	logger.Infof("camera ended at %v (aperture %.2f) after %d updates", tr.Position, tr.Aperture, tr.Updates)

	displaySimulationStats(s)
	return nil
}

func displaySimulationStats(s *simulation) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Refines", "Update", "Refine", "Refine avg / min", "Render", "Rate", "Samples", "Timing"})
	table.AppendBulk(s.rows)

	var meanRefines float64
	if s.presented > 0 {
		meanRefines = float64(s.refines) / float64(s.presented)
	}
	table.SetFooter([]string{"MEAN", fmt.Sprintf("%.2f", meanRefines), "", "", "", "", "", "", ""})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
