package main

import (
	"os"

	"github.com/TomCrypto/equinox/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "equinox"
	app.Usage = "pace progressive rendering against the display refresh rate"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "simulate",
			Usage: "run the refine scheduler against a simulated GPU",
			Description: `
Drive the frame loop with a simulated tracer whose refine and render passes
charge configurable costs to a virtual GPU. Timer results are delivered with
the configured latency so the scheduler sees the same delayed feedback it
gets from a real device.

Statistics for every --report-every frames are printed as a table once the
simulation completes.`,
			Flags:  cmd.SimulateFlags,
			Action: cmd.Simulate,
		},
		{
			Name:        "interactive",
			Usage:       "render an interactive progressive view",
			Description: `Open a window and refine a procedural scene as fast as the refresh rate allows.`,
			Flags:       cmd.InteractiveFlags,
			Action:      cmd.Interactive,
		},
		{
			Name:   "info",
			Usage:  "show opengl implementation details and timer query support",
			Action: cmd.Info,
		},
	}

	if err := app.Run(os.Args); err != nil {
		cmd.Fatal(err)
	}
}
