package cmd

import (
	"github.com/urfave/cli/v3"
	"github.com/vinceanalytics/pdnsview/internal/cmd/render"
	"github.com/vinceanalytics/pdnsview/internal/cmd/serve"
	"github.com/vinceanalytics/pdnsview/internal/version"
)

func App() *cli.Command {
	return &cli.Command{
		Name:        "pdnsview",
		Usage:       "Renders passive DNS usage charts",
		Description: `Draws bar, line, pie, doughnut, radar and polar area charts of passive DNS statistics, as PNG files or through an HTTP API`,
		Version:     version.VERSION,
		Commands:    []*cli.Command{render.CMD(), serve.CMD(), version.Command()},
	}
}
