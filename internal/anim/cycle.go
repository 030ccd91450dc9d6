// Package anim drives the time stepped reveal of a chart.
//
// A Cycle produces the progress of successive frames, a Machine keeps the
// phase of an instance and a Runner ties both to a Host that decides when
// the next frame runs.
package anim

import (
	"fmt"
	"math"
	"time"

	"github.com/vinceanalytics/pdnsview/internal/options"
)

// Settings configure one animation cycle.
type Settings struct {
	Enabled  bool
	Steps    int
	Easing   Easing
	Start    float64
	Stop     float64
	Count    int
	Backward bool
	Pause    time.Duration
	// OnComplete runs after the last frame of a cycle.
	OnComplete func()
}

// SettingsFrom reads the animation options of cfg.
func SettingsFrom(cfg *options.Config) (Settings, error) {
	name := cfg.String("animationEasing")
	if name == "" {
		name = "linear"
	}
	e, ok := Lookup(name)
	if !ok {
		return Settings{}, fmt.Errorf("%w: animationEasing=%q", options.ErrUnknownFunction, name)
	}
	s := Settings{
		Enabled:  cfg.Bool("animation"),
		Steps:    cfg.Int("animationSteps"),
		Easing:   e,
		Start:    clamp01(cfg.Float("animationStartValue")),
		Stop:     clamp01(cfg.Float("animationStopValue")),
		Count:    max(1, cfg.Int("animationCount")),
		Backward: cfg.Bool("animationBackward"),
		Pause:    time.Duration(cfg.Float("animationPauseTime") * float64(time.Second)),
	}
	if !cfg.Has("animationStopValue") {
		s.Stop = 1
	}
	if s.Start > s.Stop {
		s.Start, s.Stop = s.Stop, s.Start
	}
	if v := cfg.Value("onAnimationComplete"); v.Tag() == options.TagFunc {
		s.OnComplete = func() {
			v.Eval(options.At("onAnimationComplete", -1, -1))
		}
	}
	return s, nil
}

// Static returns settings drawing a single frame at full progress.
func Static() Settings {
	return Settings{Easing: easings["linear"], Stop: 1, Count: 1}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Frame is one step of a cycle.
type Frame struct {
	// Progress is the eased value handed to renderers.
	Progress float64
	// Linear is the progress before easing.
	Linear   float64
	Pass     int
	Backward bool
	// Last marks the final frame of the cycle.
	Last bool
	// Delay is the pause before the next frame.
	Delay time.Duration
}

// Final reports a frame drawn at the stop value, after which in graph data
// and annotations are drawn.
func (f Frame) Final(s Settings) bool {
	return f.Linear >= s.Stop && !f.Backward
}

// Cycle steps progress from Start to Stop in 1/Steps increments.
type Cycle struct {
	s        Settings
	step     int
	pass     int
	backward bool
	done     bool
}

// NewCycle returns a cycle for s.
func NewCycle(s Settings) *Cycle {
	return &Cycle{s: s}
}

// Done reports whether the last frame was produced.
func (c *Cycle) Done() bool { return c.done }

// Next returns the next frame. Disabled or stepless cycles produce one frame
// at the stop value.
func (c *Cycle) Next() Frame {
	if c.done {
		return Frame{Progress: c.ease(c.s.Stop), Linear: c.s.Stop, Last: true}
	}
	if !c.s.Enabled || c.s.Steps <= 0 || c.s.Start >= c.s.Stop {
		c.done = true
		return Frame{Progress: c.ease(c.s.Stop), Linear: c.s.Stop, Last: true}
	}
	c.step++
	inc := float64(c.step) / float64(c.s.Steps)
	var linear float64
	var atEnd bool
	if c.backward {
		linear = math.Max(c.s.Stop-inc, c.s.Start)
		atEnd = linear <= c.s.Start
	} else {
		linear = math.Min(c.s.Start+inc, c.s.Stop)
		atEnd = linear >= c.s.Stop
	}
	f := Frame{
		Progress: c.ease(linear),
		Linear:   linear,
		Pass:     c.pass,
		Backward: c.backward,
	}
	if !atEnd {
		return f
	}
	c.step = 0
	if c.s.Backward && !c.backward {
		c.backward = true
		return f
	}
	c.backward = false
	c.pass++
	if c.pass >= max(1, c.s.Count) {
		c.done = true
		f.Last = true
		return f
	}
	f.Delay = c.s.Pause
	return f
}

func (c *Cycle) ease(linear float64) float64 {
	if linear >= 1 {
		return 1
	}
	if linear <= 0 {
		return 0
	}
	if c.s.Easing == nil {
		return linear
	}
	return c.s.Easing(linear)
}
