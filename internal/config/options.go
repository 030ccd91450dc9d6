package config

import (
	"github.com/urfave/cli/v3"
	"github.com/vinceanalytics/pdnsview/internal/log"
)

// Options configure the command line and the chart server.
type Options struct {
	Listen        string
	LogLevel      string
	RateLimit     float64
	Burst         int64
	Width         int64
	Height        int64
	FPS           int64
	Personal      string
	EnableProfile bool
}

func Defaults() *Options {
	return &Options{
		Listen:    ":8080",
		LogLevel:  "info",
		RateLimit: 50,
		Burst:     100,
		Width:     800,
		Height:    400,
		FPS:       60,
	}
}

// Setup applies the ambient options.
func (o *Options) Setup() error {
	return log.SetLevel(o.LogLevel)
}

// Flags binds every option to a flag and its PDNSVIEW_ environment
// variable.
func Flags(o *Options) []cli.Flag {
	d := Defaults()
	return []cli.Flag{
		&cli.StringFlag{
			Category:    "server",
			Name:        "listen",
			Usage:       "HTTP address to listen",
			Value:       d.Listen,
			Destination: &o.Listen,
			Sources:     cli.EnvVars("PDNSVIEW_LISTEN"),
		},
		&cli.FloatFlag{
			Category:    "server",
			Name:        "rateLimit",
			Usage:       "Requests per second allowed for each client",
			Value:       d.RateLimit,
			Destination: &o.RateLimit,
			Sources:     cli.EnvVars("PDNSVIEW_RATE_LIMIT"),
		},
		&cli.IntFlag{
			Category:    "server",
			Name:        "burst",
			Usage:       "Requests a client may send at once",
			Value:       d.Burst,
			Destination: &o.Burst,
			Sources:     cli.EnvVars("PDNSVIEW_BURST"),
		},
		&cli.BoolFlag{
			Category:    "server",
			Name:        "enableProfile",
			Usage:       "Expose /debug/pprof endpoint",
			Destination: &o.EnableProfile,
			Sources:     cli.EnvVars("PDNSVIEW_ENABLE_PROFILE"),
		},
		&cli.StringFlag{
			Category:    "core",
			Name:        "logLevel",
			Usage:       "log level, values are (trace,debug,info,warn,error,fatal,panic)",
			Value:       d.LogLevel,
			Destination: &o.LogLevel,
			Sources:     cli.EnvVars("PDNSVIEW_LOG_LEVEL"),
		},
		&cli.IntFlag{
			Category:    "canvas",
			Name:        "width",
			Usage:       "Default canvas width in pixels",
			Value:       d.Width,
			Destination: &o.Width,
			Sources:     cli.EnvVars("PDNSVIEW_WIDTH"),
		},
		&cli.IntFlag{
			Category:    "canvas",
			Name:        "height",
			Usage:       "Default canvas height in pixels",
			Value:       d.Height,
			Destination: &o.Height,
			Sources:     cli.EnvVars("PDNSVIEW_HEIGHT"),
		},
		&cli.IntFlag{
			Category:    "canvas",
			Name:        "fps",
			Usage:       "Animation frames per second",
			Value:       d.FPS,
			Destination: &o.FPS,
			Sources:     cli.EnvVars("PDNSVIEW_FPS"),
		},
		&cli.StringFlag{
			Category:    "canvas",
			Name:        "personal",
			Usage:       "Path to personal chart defaults (yaml or json)",
			Destination: &o.Personal,
			Sources:     cli.EnvVars("PDNSVIEW_PERSONAL"),
		},
	}
}
