// Package scale computes stepped value axes.
package scale

import (
	"math"
	"strconv"
	"strings"

	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/tmpl"
)

// LabelFunc renders a tick label template. tmpl.Engine.Render satisfies it.
type LabelFunc func(template string, rec tmpl.Record) (string, error)

// Calculated is the tick ladder of one axis.
type Calculated struct {
	Steps       int
	StepValue   float64
	GraphMin    float64
	GraphMax    float64
	Decimals    int
	Logarithmic bool
	// Ticks holds Steps+1 values from GraphMin to GraphMax.
	Ticks  []float64
	Labels []string
}

const maxIterations = 64

// Key returns the option name used for axis: axis 2 options carry a "2"
// suffix.
func Key(name string, axis int) string {
	if axis == 2 {
		return name + "2"
	}
	return name
}

// Calculate computes the scale for values in [minValue, maxValue] that should
// use between minSteps and maxSteps steps.
func Calculate(axis int, cfg *options.Config, maxSteps, minSteps int, maxValue, minValue float64, labelTemplate string, render LabelFunc) (Calculated, error) {
	if minSteps < 1 {
		minSteps = 1
	}
	if n, ok := cfg.Number("maxSteps"); ok && n > 0 && int(n) < maxSteps {
		maxSteps = int(n)
	}
	if maxSteps < minSteps {
		maxSteps = minSteps
	}
	if math.IsNaN(minValue) || math.IsNaN(maxValue) || math.IsInf(minValue, 0) || math.IsInf(maxValue, 0) {
		minValue, maxValue = 0, 0
	}
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}
	var c Calculated
	switch {
	case cfg.Bool(Key("scaleOverride", axis)):
		c = override(cfg, axis)
	case logarithmic(cfg, axis) != "" && minValue > 0:
		c = logScale(minValue, maxValue, logarithmic(cfg, axis) == "fuzzy")
	default:
		c = linear(cfg, axis, maxSteps, minSteps, maxValue, minValue)
	}
	if err := c.label(labelTemplate, render); err != nil {
		return Calculated{}, err
	}
	return c, nil
}

func logarithmic(cfg *options.Config, axis int) string {
	switch v := cfg.Get(Key("logarithmic", axis)).(type) {
	case bool:
		if v {
			return "true"
		}
	case string:
		switch strings.ToLower(v) {
		case "fuzzy":
			return "fuzzy"
		case "true":
			return "true"
		}
	}
	return ""
}

func orderOfMagnitude(v float64) float64 {
	return math.Floor(math.Log10(v))
}

// widen pads a degenerate range so the axis never has zero height.
func widen(maxValue, minValue, zero float64) (float64, float64) {
	if math.Abs(maxValue-minValue) >= zero {
		return maxValue, minValue
	}
	if math.Abs(maxValue) < zero {
		maxValue = 0.9
		minValue = 0
	}
	if maxValue > 0 {
		return maxValue * 1.1, minValue * 0.9
	}
	return maxValue * 0.9, minValue * 1.1
}

func linear(cfg *options.Config, axis, maxSteps, minSteps int, maxValue, minValue float64) Calculated {
	zero, ok := cfg.Number("zeroValue")
	if !ok || zero <= 0 {
		zero = 1e-10
	}
	maxValue, minValue = widen(maxValue, minValue, zero)

	explicitMin, hasMin := cfg.Number(Key("graphMin", axis))
	explicitMax, hasMax := cfg.Number(Key("graphMax", axis))
	if hasMin {
		minValue = math.Min(minValue, explicitMin)
	}
	if hasMax {
		maxValue = math.Max(maxValue, explicitMax)
	}
	if hasMin && hasMax && explicitMax <= explicitMin {
		hasMax = false
	}

	oom := orderOfMagnitude(maxValue - minValue)
	mag := math.Pow(10, oom)
	graphMin := math.Floor(minValue/mag) * mag
	graphMax := math.Ceil(maxValue/mag) * mag
	if hasMin {
		graphMin = explicitMin
	}
	if hasMax {
		graphMax = explicitMax
	}
	if graphMax <= graphMin {
		graphMax = graphMin + mag
	}
	graphRange := graphMax - graphMin
	step := mag
	steps := stepsFor(graphRange, step)

	// Halving may overshoot maxSteps and doubling undershoot minSteps when
	// the window is narrow, so the loop is bounded.
	for i := 0; i < maxIterations && (steps < minSteps || steps > maxSteps); i++ {
		if steps < minSteps {
			step /= 2
		} else {
			step *= 2
		}
		steps = stepsFor(graphRange, step)
	}
	if steps > maxSteps && maxSteps >= 1 {
		for steps > maxSteps {
			step *= 2
			steps = stepsFor(graphRange, step)
		}
	}

	if interval, ok := cfg.Number(Key("yAxisMinimumInterval", axis)); ok && interval > 0 {
		if step < interval {
			step = interval
		} else {
			step = math.Ceil(step/interval) * interval
		}
		if !hasMin {
			graphMin = math.Floor(graphMin/step) * step
		}
		steps = stepsFor(graphMax-graphMin, step)
	}

	if cfg.Bool("graphMaximized") {
		for steps > 3 && !hasMin && graphMin+step <= minValue {
			graphMin += step
			steps--
		}
		for steps > 3 && !hasMax && graphMin+float64(steps-1)*step >= maxValue {
			steps--
		}
	}

	c := Calculated{
		Steps:     steps,
		StepValue: step,
		GraphMin:  graphMin,
		GraphMax:  graphMin + float64(steps)*step,
	}
	if hasMax && explicitMax > graphMin {
		c.GraphMax = explicitMax
		c.StepValue = (explicitMax - graphMin) / float64(steps)
	}
	c.Decimals = max(decimals(c.StepValue), decimals(c.GraphMin))
	c.Ticks = make([]float64, steps+1)
	for i := range c.Ticks {
		c.Ticks[i] = c.GraphMin + float64(i)*c.StepValue
	}
	return c
}

func stepsFor(span, step float64) int {
	n := span / step
	// tolerate float noise so 3.0000000001 steps stays 3
	r := math.Round(n)
	if math.Abs(n-r) < 1e-9 {
		return int(r)
	}
	return int(math.Ceil(n))
}

func override(cfg *options.Config, axis int) Calculated {
	steps := cfg.Int(Key("scaleSteps", axis))
	if steps < 1 {
		steps = 1
	}
	step := cfg.Float(Key("scaleStepWidth", axis))
	if step <= 0 {
		step = 1
	}
	start := cfg.Float(Key("scaleStartValue", axis))
	c := Calculated{
		Steps:     steps,
		StepValue: step,
		GraphMin:  start,
		GraphMax:  start + float64(steps)*step,
		Ticks:     make([]float64, steps+1),
	}
	c.Decimals = max(decimals(step), decimals(start))
	for i := range c.Ticks {
		c.Ticks[i] = start + float64(i)*step
	}
	return c
}

func logScale(minValue, maxValue float64, fuzzy bool) Calculated {
	minMag := math.Floor(math.Log10(minValue))
	maxMag := math.Ceil(math.Log10(maxValue))
	if maxMag <= minMag {
		maxMag = minMag + 1
	}
	c := Calculated{
		Logarithmic: true,
		StepValue:   1,
		GraphMin:    math.Pow(10, minMag),
		GraphMax:    math.Pow(10, maxMag),
	}
	if fuzzy {
		c.GraphMin = fuzzyFloor(minValue)
		c.GraphMax = fuzzyCeil(maxValue)
		if c.GraphMax <= c.GraphMin {
			c.GraphMax = c.GraphMin * 10
		}
	}
	c.Ticks = append(c.Ticks, c.GraphMin)
	for m := minMag + 1; m < maxMag; m++ {
		if v := math.Pow(10, m); v > c.GraphMin && v < c.GraphMax {
			c.Ticks = append(c.Ticks, v)
		}
	}
	c.Ticks = append(c.Ticks, c.GraphMax)
	c.Steps = len(c.Ticks) - 1
	c.Decimals = decimals(c.GraphMin)
	return c
}

// fuzzyFloor returns the largest 1, 2 or 5 times a power of ten not above v.
func fuzzyFloor(v float64) float64 {
	mag := math.Pow(10, orderOfMagnitude(v))
	for _, m := range []float64{5, 2, 1} {
		if m*mag <= v {
			return m * mag
		}
	}
	return mag
}

// fuzzyCeil returns the smallest 1, 2 or 5 times a power of ten not below v.
func fuzzyCeil(v float64) float64 {
	mag := math.Pow(10, orderOfMagnitude(v))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*mag >= v {
			return m * mag
		}
	}
	return 10 * mag
}

func decimals(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	n := len(s) - i - 1
	if n > 10 {
		n = 10
	}
	return n
}

// Value formats v with the scale decimals.
func (c *Calculated) Value(v float64) string {
	d := c.Decimals
	if c.Logarithmic {
		d = decimals(v)
	}
	return strconv.FormatFloat(v, 'f', d, 64)
}

func (c *Calculated) label(template string, render LabelFunc) error {
	c.Labels = make([]string, len(c.Ticks))
	for i, v := range c.Ticks {
		s := c.Value(v)
		if render == nil || template == "" {
			c.Labels[i] = s
			continue
		}
		out, err := render(template, tmpl.Var("value", s))
		if err != nil {
			return err
		}
		c.Labels[i] = out
	}
	return nil
}

// Pos returns the position of v along the axis as a fraction of its length.
// Values outside the range map outside [0, 1].
func (c *Calculated) Pos(v float64) float64 {
	if c.Logarithmic {
		if v <= 0 {
			return 0
		}
		lo, hi := math.Log10(c.GraphMin), math.Log10(c.GraphMax)
		return (math.Log10(v) - lo) / (hi - lo)
	}
	if c.GraphMax == c.GraphMin {
		return 0
	}
	return (v - c.GraphMin) / (c.GraphMax - c.GraphMin)
}

// Base returns the value bars grow from: zero when it is inside the range,
// the nearest bound otherwise.
func (c *Calculated) Base() float64 {
	if c.Logarithmic {
		return c.GraphMin
	}
	switch {
	case c.GraphMin > 0:
		return c.GraphMin
	case c.GraphMax < 0:
		return c.GraphMax
	}
	return 0
}
