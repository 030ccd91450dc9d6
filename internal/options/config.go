package options

import (
	"math"
	"sort"
	"strings"
)

// Chart names one of the renderers.
type Chart string

const (
	Bar                  Chart = "Bar"
	HorizontalBar        Chart = "HorizontalBar"
	StackedBar           Chart = "StackedBar"
	HorizontalStackedBar Chart = "HorizontalStackedBar"
	Line                 Chart = "Line"
	Pie                  Chart = "Pie"
	Doughnut             Chart = "Doughnut"
	Radar                Chart = "Radar"
	PolarArea            Chart = "PolarArea"
)

// Charts lists every chart type.
var Charts = []Chart{
	Bar, HorizontalBar, StackedBar, HorizontalStackedBar, Line, Pie, Doughnut, Radar, PolarArea,
}

// ParseChart matches name case-insensitively, ignoring dashes and underscores.
func ParseChart(name string) (Chart, bool) {
	n := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	for _, c := range Charts {
		if strings.ToLower(string(c)) == n {
			return c, true
		}
	}
	return "", false
}

// Radial reports charts drawn around a midpoint.
func (c Chart) Radial() bool {
	switch c {
	case Pie, Doughnut, Radar, PolarArea:
		return true
	}
	return false
}

// Horizontal reports charts whose value axis is the x axis.
func (c Chart) Horizontal() bool {
	return c == HorizontalBar || c == HorizontalStackedBar
}

// Stacked reports charts stacking series on top of each other.
func (c Chart) Stacked() bool {
	return c == StackedBar || c == HorizontalStackedBar
}

// Segmented reports charts using the flat segment payload.
func (c Chart) Segmented() bool {
	return c == Pie || c == Doughnut || c == PolarArea
}

// Map is a sparse set of options.
type Map map[string]Value

// Set stores v under name wrapping it with Of.
func (m Map) Set(name string, v any) Map {
	m[name] = Of(v)
	return m
}

// Config is a resolved configuration. It is not modified once a draw starts.
type Config struct {
	chart  Chart
	values Map
}

// NewConfig returns a configuration holding a copy of values.
func NewConfig(chart Chart, values Map) *Config {
	c := &Config{chart: chart, values: make(Map, len(values))}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

func (c *Config) Chart() Chart { return c.chart }

// With returns a copy of c with the given overrides applied.
func (c *Config) With(overrides Map) *Config {
	o := NewConfig(c.chart, c.values)
	for k, v := range overrides {
		o.values[k] = v
	}
	return o
}

func (c *Config) Value(name string) Value { return c.values[name] }

func (c *Config) Has(name string) bool { return c.values[name].IsSet() }

// Keys returns the sorted option names.
func (c *Config) Keys() []string {
	o := make([]string, 0, len(c.values))
	for k := range c.values {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// Get evaluates name outside of any series or point.
func (c *Config) Get(name string) any {
	return c.values[name].Eval(Call{Name: name, Series: -1, Point: -1})
}

func (c *Config) Float(name string) float64 {
	f, _ := ToFloat(c.Get(name))
	return f
}

// Number returns the option as a number and whether it holds one. Options
// set to strings like "none" or "DEFAULT" report false.
func (c *Config) Number(name string) (float64, bool) {
	if !c.Has(name) {
		return 0, false
	}
	f, ok := ToFloat(c.Get(name))
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func (c *Config) Int(name string) int {
	return int(c.Float(name))
}

func (c *Config) String(name string) string {
	return ToString(c.Get(name))
}

func (c *Config) Bool(name string) bool {
	return ToBool(c.Get(name))
}

// Resolve evaluates name for call with an optional per point override.
func (c *Config) Resolve(rescale float64, name string, override Value, call Call) any {
	call.Name = name
	return Resolve(rescale, override, c.values[name], call)
}

func (c *Config) ResolveFloat(rescale float64, name string, override Value, call Call) float64 {
	f, _ := ToFloat(c.Resolve(rescale, name, override, call))
	return f
}

func (c *Config) ResolveString(name string, override Value, call Call) string {
	return ToString(c.Resolve(NoRescale, name, override, call))
}

// TextScale, LineScale and SpaceScale are the global rescale factors.
func (c *Config) TextScale() float64  { return c.scale("textScale") }
func (c *Config) LineScale() float64  { return c.scale("lineScale") }
func (c *Config) SpaceScale() float64 { return c.scale("spaceScale") }

func (c *Config) scale(name string) float64 {
	f, ok := c.Number(name)
	if !ok || f <= 0 {
		return 1
	}
	return f
}

// Text returns a font size option rescaled by textScale.
func (c *Config) Text(name string) float64 {
	return math.Ceil(c.Float(name) * c.TextScale())
}

// Line returns a line width option rescaled by lineScale.
func (c *Config) Line(name string) float64 {
	return math.Ceil(c.Float(name) * c.LineScale())
}

// Space returns a spacing option rescaled by spaceScale.
func (c *Config) Space(name string) float64 {
	return math.Ceil(c.Float(name) * c.SpaceScale())
}
