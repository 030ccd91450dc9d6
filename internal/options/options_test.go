package options

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalArrayClamp(t *testing.T) {
	v := List("a", "b", "c")
	type Case struct {
		series, point int
		want          any
	}
	cases := []Case{
		{series: 0, point: -1, want: "a"},
		{series: 1, point: -1, want: "b"},
		{series: 9, point: -1, want: "c"},
		{series: 0, point: 2, want: "c"},
		{series: 2, point: 0, want: "a"},
		{series: -1, point: -1, want: "a"},
		{series: 0, point: 7, want: "c"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, v.Eval(At("x", c.series, c.point)))
	}
}

func TestResolve(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		got := Resolve(NoRescale, Of("red"), Of("blue"), At("c", 0, 0))
		require.Equal(t, "red", got)
	})
	t.Run("default when override unset", func(t *testing.T) {
		got := Resolve(NoRescale, Value{}, Of("blue"), At("c", 0, 0))
		require.Equal(t, "blue", got)
	})
	t.Run("rescale rounds up", func(t *testing.T) {
		got := Resolve(1.5, Value{}, Of(11), At("c", 0, 0))
		require.Equal(t, 17.0, got)
	})
	t.Run("strings are not rescaled", func(t *testing.T) {
		got := Resolve(2, Value{}, Of("10px"), At("c", 0, 0))
		require.Equal(t, "10px", got)
	})
	t.Run("function receives indices", func(t *testing.T) {
		fn := Function(func(c Call) any {
			return float64(c.Series*10 + c.Point)
		})
		got := Resolve(NoRescale, Value{}, fn, At("c", 2, 3))
		require.Equal(t, 23.0, got)
	})
	t.Run("idempotent", func(t *testing.T) {
		cfg := NewConfig(Bar, Map{
			"w": List(1, 2, 3),
			"f": Function(func(c Call) any { return c.Point * 2 }),
		})
		for _, name := range []string{"w", "f"} {
			a := cfg.Resolve(2, name, Value{}, At(name, 1, 2))
			b := cfg.Resolve(2, name, Value{}, At(name, 1, 2))
			require.Equal(t, a, b)
		}
	})
}

func TestCommonAndTypeDefaultsAreDisjoint(t *testing.T) {
	common := Common()
	for _, c := range Charts {
		for k := range ChartDefaults(c) {
			_, ok := common[k]
			require.False(t, ok, "%s: %s set by both layers", c, k)
		}
	}
}

func TestMergerPrecedence(t *testing.T) {
	m := NewMerger()
	m.Global["graphTitle"] = Of("global")
	m.Global["legend"] = Of(true)
	m.PerChart[Pie] = Map{"graphTitle": Of("pie")}

	cfg, err := m.Resolve(Pie, Map{"scaleFontSize": Of(20), "custom": Of("kept")})
	require.NoError(t, err)
	require.Equal(t, "pie", cfg.String("graphTitle"))
	require.True(t, cfg.Bool("legend"))
	require.Equal(t, 20.0, cfg.Float("scaleFontSize"))
	require.Equal(t, "kept", cfg.String("custom"))
	require.Equal(t, 0.0, cfg.Float("percentageInnerCutout"))

	cfg, err = m.Resolve(Bar, Map{"graphTitle": Of("caller")})
	require.NoError(t, err)
	require.Equal(t, "caller", cfg.String("graphTitle"))

	cfg, err = m.Resolve(Doughnut, nil)
	require.NoError(t, err)
	require.Equal(t, "global", cfg.String("graphTitle"))
	require.Equal(t, 50.0, cfg.Float("percentageInnerCutout"))
}

func TestMergerValidators(t *testing.T) {
	known := func(s string) bool { return s == "linear" }
	m := NewMerger(Names("animationEasing", known))
	_, err := m.Resolve(Line, Map{"animationEasing": Of("wobble")})
	require.ErrorIs(t, err, ErrUnknownFunction)

	_, err = m.Resolve(Line, Map{"animationEasing": Of("linear")})
	require.NoError(t, err)
}

func TestDecode(t *testing.T) {
	o, err := Decode([]byte(`
graphTitle: DNS lookups
scaleFontSize: 14
fillColor: ["#fff", "#000"]
legend: null
`))
	require.NoError(t, err)
	require.Equal(t, TagScalar, o["graphTitle"].Tag())
	require.Equal(t, 14.0, o["scaleFontSize"].Raw())
	require.Equal(t, TagArray, o["fillColor"].Tag())
	require.Equal(t, 2, o["fillColor"].Len())
	require.False(t, o["legend"].IsSet())

	j, err := Decode([]byte(`{"graphTitle":"json","steps":[1,2]}`))
	require.NoError(t, err)
	require.Equal(t, "json", j["graphTitle"].Raw())
	require.Equal(t, TagArray, j["steps"].Tag())

	empty, err := Decode(nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestLoadPersonal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personal.yaml")
	err := os.WriteFile(path, []byte(`
global:
  graphTitleFontSize: 30
charts:
  stacked-bar:
    legend: true
`), 0600)
	require.NoError(t, err)
	m := NewMerger()
	require.NoError(t, m.LoadPersonal(path))

	cfg, err := m.Resolve(StackedBar, nil)
	require.NoError(t, err)
	require.Equal(t, 30.0, cfg.Float("graphTitleFontSize"))
	require.True(t, cfg.Bool("legend"))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("charts:\n  gauge:\n    legend: true\n"), 0600))
	err = NewMerger().LoadPersonal(bad)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "gauge"))
}

func TestParseChart(t *testing.T) {
	type Case struct {
		name string
		want Chart
		ok   bool
	}
	cases := []Case{
		{"bar", Bar, true},
		{"horizontal-stacked-bar", HorizontalStackedBar, true},
		{"Polar_Area", PolarArea, true},
		{"doughnut", Doughnut, true},
		{"gauge", "", false},
	}
	for _, c := range cases {
		got, ok := ParseChart(c.name)
		require.Equal(t, c.ok, ok, c.name)
		require.Equal(t, c.want, got, c.name)
	}
}

func TestConfigScales(t *testing.T) {
	cfg := NewConfig(Line, Map{
		"textScale":     Of(1.5),
		"scaleFontSize": Of(12),
		"lineScale":     Of(0),
		"scaleLineWidth": Of(
			1.2,
		),
		"graphMin": Of("DEFAULT"),
	})
	require.Equal(t, 18.0, cfg.Text("scaleFontSize"))
	require.Equal(t, 2.0, cfg.Line("scaleLineWidth"))
	_, ok := cfg.Number("graphMin")
	require.False(t, ok)
	_, ok = cfg.Number("missing")
	require.False(t, ok)
}

func TestUnknown(t *testing.T) {
	got := Unknown(Bar, Map{"graphTitle": Of("x"), "zzz": Of(1), "aaa": Of(2)})
	require.Equal(t, []string{"aaa", "zzz"}, got)
}
