package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func parse(t *testing.T, args ...string) *Options {
	t.Helper()
	o := &Options{}
	c := &cli.Command{
		Name:   "test",
		Flags:  Flags(o),
		Action: func(context.Context, *cli.Command) error { return nil },
	}
	require.NoError(t, c.Run(context.Background(), append([]string{"test"}, args...)))
	return o
}

func TestDefaults(t *testing.T) {
	o := parse(t)
	require.Equal(t, Defaults(), o)
}

func TestFlags(t *testing.T) {
	t.Setenv("PDNSVIEW_FPS", "24")
	t.Setenv("PDNSVIEW_LISTEN", ":9000")
	o := parse(t, "--listen", ":9090", "--width", "640", "--logLevel", "debug")
	require.Equal(t, ":9090", o.Listen, "flags win over the environment")
	require.Equal(t, int64(640), o.Width)
	require.Equal(t, int64(24), o.FPS)
	require.NoError(t, o.Setup())

	o.LogLevel = "chatty"
	require.Error(t, o.Setup())
}
