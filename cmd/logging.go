package cmd

import (
	"os"

	"github.com/TomCrypto/equinox/log"
	"github.com/urfave/cli"
)

var logger = log.New("equinox")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	// Per-frame timer diagnostics are only useful when explicitly asked for.
	if !ctx.GlobalBool("vv") {
		log.SetModuleLevel("timer", log.Notice)
	}
}

// Fatal logs err and exits with a non-zero status.
func Fatal(err error) {
	logger.Error(err.Error())
	os.Exit(1)
}
