package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/vinceanalytics/pdnsview"
	"github.com/vinceanalytics/pdnsview/internal/cmd/ansi"
	"github.com/vinceanalytics/pdnsview/internal/config"
	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/log"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

func CMD() *cli.Command {
	d := config.Defaults()
	return &cli.Command{
		Name:  "render",
		Usage: "Draws one chart into a PNG file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Usage:    "Chart type, one of " + charts(),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "data",
				Usage:    "Path to the chart data (yaml or json)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "options",
				Usage: "Path to chart options (yaml or json)",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Path of the PNG file to write",
				Value: "chart.png",
			},
			&cli.IntFlag{
				Name:    "width",
				Usage:   "Canvas width in pixels",
				Value:   d.Width,
				Sources: cli.EnvVars("PDNSVIEW_WIDTH"),
			},
			&cli.IntFlag{
				Name:    "height",
				Usage:   "Canvas height in pixels",
				Value:   d.Height,
				Sources: cli.EnvVars("PDNSVIEW_HEIGHT"),
			},
			&cli.StringFlag{
				Name:    "personal",
				Usage:   "Path to personal chart defaults (yaml or json)",
				Sources: cli.EnvVars("PDNSVIEW_PERSONAL"),
			},
			&cli.StringFlag{
				Name:    "logLevel",
				Value:   "warn",
				Sources: cli.EnvVars("PDNSVIEW_LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			w := ansi.New(c.Root().Writer)
			return w.Complete(run(c, w))
		},
	}
}

func charts() string {
	names := make([]string, len(options.Charts))
	for i, c := range options.Charts {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func run(c *cli.Command, w *ansi.W) error {
	if err := log.SetLevel(c.String("logLevel")); err != nil {
		return err
	}
	kind, ok := options.ParseChart(c.String("type"))
	if !ok {
		return fmt.Errorf("%w: %q", pdnsview.ErrUnknownChart, c.String("type"))
	}
	w.Step("loading data")
	p, err := data.LoadFile(c.String("data"))
	if err != nil {
		return err
	}
	opts := options.Map{}
	if path := c.String("options"); path != "" {
		opts, err = options.LoadFile(path)
		if err != nil {
			return err
		}
		for _, k := range options.Unknown(kind, opts) {
			log.Get().Warn().Str("option", k).Msg("unknown option")
		}
	}
	e, err := pdnsview.New(pdnsview.Options{Personal: c.String("personal")})
	if err != nil {
		return err
	}
	defer e.Close()
	w.Step("drawing " + string(kind))
	s := surface.NewRaster(int(c.Int("width")), int(c.Int("height")))
	h, err := e.Render(kind, p, opts, s)
	if err != nil {
		return err
	}
	out := c.String("out")
	if _, err := e.ExportImage(h, pdnsview.ExportOptions{Destination: pdnsview.Download, Path: out}); err != nil {
		return err
	}
	w.Ok("wrote %s", out)
	return nil
}
