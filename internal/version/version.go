package version

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

const VERSION = "v0.1.0"

// String returns VERSION followed by the short vcs revision when the binary
// carries build info.
func String() string {
	return withRevision(debug.ReadBuildInfo())
}

func withRevision(bi *debug.BuildInfo, ok bool) string {
	if !ok {
		return VERSION
	}
	s, dirty := VERSION, false
	for _, kv := range bi.Settings {
		switch kv.Key {
		case "vcs.revision":
			if len(kv.Value) > 9 {
				kv.Value = kv.Value[:9]
			}
			s += "+" + kv.Value
		case "vcs.modified":
			dirty = kv.Value == "true"
		}
	}
	if dirty {
		s += "-dirty"
	}
	return s
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "prints version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			_, err := fmt.Fprintln(c.Root().Writer, String())
			return err
		},
	}
}
