// Package chart paints the chart types onto a surface.
//
// Every frame is painted from scratch: the surface is cleared, the layout
// negotiated, static parts, axes and data shapes drawn at the frame
// progress. The frame drawn at the stop value also draws in graph data and
// replaces the shapes registered for hit testing.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/vinceanalytics/pdnsview/internal/annotate"
	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/metrics"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/scale"
	"github.com/vinceanalytics/pdnsview/internal/stat"
	"github.com/vinceanalytics/pdnsview/internal/surface"
	"github.com/vinceanalytics/pdnsview/internal/tmpl"
)

var ErrUnknownChart = errors.New("chart: unknown chart type")

// Renderer paints one frame of a chart type.
type Renderer interface {
	Draw(f *Frame) error
}

var renderers = map[options.Chart]Renderer{
	options.Bar:                  &bar{},
	options.HorizontalBar:        &bar{horizontal: true},
	options.StackedBar:           &bar{stacked: true},
	options.HorizontalStackedBar: &bar{horizontal: true, stacked: true},
	options.Line:                 &line{},
	options.Pie:                  &pie{},
	options.Doughnut:             &pie{},
	options.Radar:                &radar{},
	options.PolarArea:            &polar{},
}

// For returns the renderer of c.
func For(c options.Chart) (Renderer, bool) {
	r, ok := renderers[c]
	return r, ok
}

// Frame carries the inputs of one frame. Measures and scales are filled in
// by the renderer.
type Frame struct {
	Surface   surface.Surface
	Config    *options.Config
	Payload   *data.Payload
	Stats     *stat.Table
	Templates *tmpl.Engine
	// Registry receives the shapes of the final frame and keeps them
	// through the frames that follow. It may be nil.
	Registry *annotate.Registry
	// Progress is the eased animation progress.
	Progress float64
	// Final marks the frame drawn at the stop value.
	Final bool
	// KeepStatic reports that the static parts of the previous frame are
	// still on the surface. Only Measures.Clear is repainted.
	KeepStatic bool

	Measures layout.Measures
	Scale    *scale.Calculated
	Scale2   *scale.Calculated
}

// Draw paints f with the renderer of its chart type.
func Draw(f *Frame) error {
	chart := f.Config.Chart()
	r, ok := For(chart)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChart, chart)
	}
	start := time.Now()
	defer func() {
		metrics.FrameDuration.Observe(time.Since(start).Seconds())
	}()
	if f.Templates == nil {
		return errors.New("chart: frame without template engine")
	}
	if f.Stats == nil {
		f.Stats = stat.Build(f.Payload, f.Config)
	}
	f.Stats.ResetGeometry()
	if f.Final && f.Registry != nil {
		f.Registry.Reset()
	}
	if _, ok := f.Surface.(surface.RectClearer); !ok {
		f.KeepStatic = false
	}
	if !f.KeepStatic {
		f.Surface.Clear(color.Transparent)
	}
	return r.Draw(f)
}

func (f *Frame) render(template string, rec tmpl.Record) (string, error) {
	return f.Templates.Render(template, rec)
}

func (f *Frame) call(name string, series, point int) options.Call {
	return options.Call{
		Name:    name,
		Surface: f.Surface,
		Data:    f.Payload,
		Stat:    f.Stats,
		Series:  series,
		Point:   point,
	}
}

// colorOf resolves a per dataset or per segment color. The override is
// indexed by point, the default palette option def by series, or by point
// when series is negative.
func (f *Frame) colorOf(override options.Value, def string, series, point int) color.Color {
	var s string
	switch {
	case override.IsSet():
		s = options.ToString(override.Eval(f.call(def, series, point)))
	case series < 0:
		s = options.ToString(f.Config.Value(def).Eval(f.call(def, -1, point)))
	default:
		s = options.ToString(f.Config.Value(def).Eval(f.call(def, series, -1)))
	}
	c, ok := surface.ParseColor(s)
	if !ok {
		return color.Transparent
	}
	return c
}

// colorName is colorOf returning the color string, used by legends.
func (f *Frame) colorName(override options.Value, def string, series, point int) string {
	if override.IsSet() {
		return options.ToString(override.Eval(f.call(def, series, point)))
	}
	if series < 0 {
		return options.ToString(f.Config.Value(def).Eval(f.call(def, -1, point)))
	}
	return options.ToString(f.Config.Value(def).Eval(f.call(def, series, -1)))
}

// width resolves a line width with an optional dataset override.
func (f *Frame) width(override options.Value, name string, series, point int) float64 {
	return f.Config.ResolveFloat(f.Config.LineScale(), name, override, f.call(name, series, point))
}

// static paints the non animated parts, or clears the area around the data
// when they are kept from the previous frame.
func (f *Frame) static() {
	if f.KeepStatic {
		layout.Repaint(f.Surface, f.Config, &f.Measures)
		return
	}
	layout.DrawStatic(f.Surface, f.Config, &f.Measures)
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
