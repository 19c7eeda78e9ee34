package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/TomCrypto/equinox/renderer"
	"github.com/TomCrypto/equinox/renderer/opengl"
	"github.com/urfave/cli"
)

// Flags for the interactive command.
var InteractiveFlags = append(frameSizeFlags(1024, 768), SchedulerFlags...)

// Use opengl to render a continuously refining view in a window.
func Interactive(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := rendererOptions(ctx)
	if err != nil {
		return err
	}

	win, err := opengl.NewWindow(opts.FrameW, opts.FrameH, "equinox")
	if err != nil {
		return err
	}
	defer win.Close()

	// The framebuffer may be larger than the requested window size on
	// high-DPI displays.
	opts.FrameW, opts.FrameH = win.FramebufferSize()

	tr, err := opengl.NewTracer("opengl")
	if err != nil {
		return err
	}

	d, err := renderer.NewDriver(tr, win.Device(), opts)
	if err != nil {
		tr.Close()
		return err
	}
	defer d.Close()

	win.Attach(d)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Notice("rendering; drag with the left mouse button to look around, WASD to move, Q to focus and ESC to exit")
	if err = d.Run(runCtx, win); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Noticef("last frame: %s", d.Stats())
	return nil
}
