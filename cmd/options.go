package cmd

import (
	"time"

	"github.com/TomCrypto/equinox/renderer"
	"github.com/urfave/cli"
)

// Flags controlling the refine scheduler. Shared by all commands that run
// the render loop.
var SchedulerFlags = []cli.Flag{
	cli.Float64Flag{
		Name:   "refresh-rate",
		Value:  60,
		Usage:  "target display refresh rate in Hz",
		EnvVar: "EQUINOX_REFRESH_RATE",
	},
	cli.DurationFlag{
		Name:   "overhead",
		Value:  2 * time.Millisecond,
		Usage:  "part of each frame reserved for presentation",
		EnvVar: "EQUINOX_OVERHEAD",
	},
	cli.UintFlag{
		Name:   "min-refines",
		Value:  1,
		Usage:  "minimum number of refine passes per frame",
		EnvVar: "EQUINOX_MIN_REFINES",
	},
	cli.UintFlag{
		Name:   "max-refines",
		Value:  9,
		Usage:  "maximum number of refine passes per frame",
		EnvVar: "EQUINOX_MAX_REFINES",
	},
	cli.UintFlag{
		Name:   "fixed-refines",
		Value:  0,
		Usage:  "run a fixed number of refine passes per frame instead of adapting to GPU timings",
		EnvVar: "EQUINOX_FIXED_REFINES",
	},
	cli.IntFlag{
		Name:   "pipeline-depth",
		Value:  2,
		Usage:  "number of GPU timer queries in flight before results are read back",
		EnvVar: "EQUINOX_PIPELINE_DEPTH",
	},
}

// Build renderer options from the scheduler and frame size flags.
func rendererOptions(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.RefreshRate = ctx.Float64("refresh-rate")
	opts.Overhead = ctx.Duration("overhead")
	opts.MinRefines = uint32(ctx.Uint("min-refines"))
	opts.MaxRefines = uint32(ctx.Uint("max-refines"))
	opts.FixedRefines = uint32(ctx.Uint("fixed-refines"))
	opts.PipelineDepth = ctx.Int("pipeline-depth")

	if err := opts.Validate(); err != nil {
		return opts, err
	}

	if opts.FixedRefines != 0 {
		logger.Noticef("using fixed scheduler with %d refine passes per frame", opts.FixedRefines)
	} else {
		logger.Noticef("using adaptive scheduler with a %.0f μs budget and [%d, %d] refine passes per frame", opts.Budget(), opts.MinRefines, opts.MaxRefines)
	}
	return opts, nil
}

// Flags for the output frame size.
func frameSizeFlags(width, height int) []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: width,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: height,
			Usage: "frame height",
		},
	}
}
