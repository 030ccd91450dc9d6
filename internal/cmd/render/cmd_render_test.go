package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"github.com/vinceanalytics/pdnsview"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func app(out *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:     "pdnsview",
		Writer:   out,
		Commands: []*cli.Command{CMD()},
	}
}

func TestRender(t *testing.T) {
	payload := write(t, "data.yaml", `
labels: [A, AAAA, MX, NS]
datasets:
  - label: resolver 1
    data: [120, 80, 15, 4]
  - label: resolver 2
    data: [90, 60, null, 9]
`)
	opts := write(t, "options.yaml", `
graphTitle: Queries by type
legend: true
inGraphDataShow: true
animationEasing: easeOutBounce
`)
	out := filepath.Join(t.TempDir(), "chart.png")
	var buf bytes.Buffer
	err := app(&buf).Run(context.Background(), []string{
		"pdnsview", "render",
		"--type", "stacked-bar",
		"--data", payload,
		"--options", opts,
		"--out", out,
		"--width", "640",
		"--height", "320",
	})
	require.NoError(t, err, buf.String())
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
	require.Contains(t, buf.String(), "wrote "+out)
}

func TestRenderErrors(t *testing.T) {
	payload := write(t, "data.json", `[{"value": 3, "label": "A"}, {"value": 1, "label": "MX"}]`)
	type Case struct {
		name string
		args []string
		err  error
	}
	cases := []Case{
		{name: "type", args: []string{"--type", "gantt", "--data", payload}, err: pdnsview.ErrUnknownChart},
		{name: "data", args: []string{"--type", "pie", "--data", filepath.Join(t.TempDir(), "missing.yaml")}, err: os.ErrNotExist},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			args := append([]string{"pdnsview", "render", "--out", filepath.Join(t.TempDir(), "x.png")}, c.args...)
			err := app(&buf).Run(context.Background(), args)
			require.ErrorIs(t, err, c.err)
			require.Contains(t, buf.String(), "✗")
		})
	}
}
