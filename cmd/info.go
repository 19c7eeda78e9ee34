package cmd

import (
	"bytes"
	"fmt"

	"github.com/TomCrypto/equinox/renderer/opengl"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Print details of the OpenGL implementation and its timer query support.
func Info(ctx *cli.Context) error {
	setupLogging(ctx)

	info, err := opengl.ProbeContext()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"Vendor", info.Vendor},
		{"Renderer", info.Renderer},
		{"Version", info.Version},
		{"GLSL version", info.GLSL},
		{"Context version", fmt.Sprintf("%d.%d", info.Major, info.Minor)},
		{"Timer queries", fmt.Sprintf("%t", info.TimerQuery)},
		{"Timer counter bits", fmt.Sprintf("%d", info.QueryBits)},
	})
	table.Render()

	logger.Noticef("opengl context\n%s", buf.String())
	return nil
}
