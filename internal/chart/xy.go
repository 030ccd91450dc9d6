package chart

import (
	"image/color"
	"math"

	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/scale"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// xy maps the values and categories of cartesian charts to pixels.
type xy struct {
	plot       layout.Rect
	n          int
	horizontal bool
	// centered puts categories in the middle of equal slots, otherwise
	// categories sit on ticks spanning the whole axis.
	centered bool
	// xpos holds numeric x positions of line charts.
	xpos       []float64
	xmin, xmax float64
	s1, s2     *scale.Calculated
}

type xyKind struct {
	horizontal  bool
	centered    bool
	includeZero bool
	swatch      bool
}

func (g *xy) length() float64 {
	if g.horizontal {
		return g.plot.H
	}
	return g.plot.W
}

// slot is the distance between two categories.
func (g *xy) slot() float64 {
	if g.centered {
		return g.length() / float64(max(g.n, 1))
	}
	return g.length() / float64(max(g.n-1, 1))
}

// cat returns the pixel of category j along the category axis.
func (g *xy) cat(j int) float64 {
	origin := g.plot.X
	if g.horizontal {
		origin = g.plot.Y
	}
	switch {
	case len(g.xpos) > 0 && j < len(g.xpos) && g.xmax > g.xmin:
		return origin + (g.xpos[j]-g.xmin)/(g.xmax-g.xmin)*g.length()
	case g.centered:
		return origin + g.slot()*(float64(j)+0.5)
	case g.n == 1:
		return origin + g.length()/2
	default:
		return origin + g.slot()*float64(j)
	}
}

func (g *xy) scale(axis int) *scale.Calculated {
	if axis == 2 && g.s2 != nil {
		return g.s2
	}
	return g.s1
}

// val returns the pixel of v along the value axis.
func (g *xy) val(axis int, v float64) float64 {
	pos := g.scale(axis).Pos(v)
	if g.horizontal {
		return g.plot.X + pos*g.plot.W
	}
	return g.plot.Bottom() - pos*g.plot.H
}

// clampVal keeps a value axis pixel inside the plot.
func (g *xy) clampVal(p float64) float64 {
	if g.horizontal {
		return clamp(p, g.plot.X, g.plot.Right())
	}
	return clamp(p, g.plot.Y, g.plot.Bottom())
}

func (g *xy) base(axis int) float64 { return g.scale(axis).Base() }

// valueScale computes the scale of axis for a value axis length pixels long.
func (f *Frame) valueScale(axis int, r scale.Range, length float64) (scale.Calculated, error) {
	lo, hi := r.Values()
	lh := f.Config.Text("scaleFontSize")
	if lh <= 0 {
		lh = 12
	}
	maxSteps := int(clamp(math.Floor(length/(2*lh)), 2, 10))
	return scale.Calculate(axis, f.Config, maxSteps, 2, hi, lo,
		f.Config.String(scale.Key("scaleLabel", axis)), f.render)
}

// prepareXY computes the scales and the layout of a cartesian chart. The
// scales are computed twice, the second time for the plot length the first
// layout left.
func (f *Frame) prepareXY(k xyKind) (*xy, error) {
	cfg := f.Config
	p := f.Payload
	chart := cfg.Chart()
	r1 := scale.Bounds(p, chart, 1)
	has2 := !k.horizontal && scale.HasAxis(p, 2)
	var r2 scale.Range
	if has2 {
		r2 = scale.Bounds(p, chart, 2)
	}
	if k.includeZero {
		r1 = r1.IncludeZero()
		if has2 {
			r2 = r2.IncludeZero()
		}
	}
	n := p.Len()
	length := float64(f.Surface.Height())
	if k.horizontal {
		length = float64(f.Surface.Width())
	}
	legend := f.datasetLegend()
	var (
		s1, s2 scale.Calculated
		m      layout.Measures
		err    error
	)
	for pass := 0; pass < 2; pass++ {
		s1, err = f.valueScale(1, r1, length)
		if err != nil {
			return nil, err
		}
		if has2 {
			s2, err = f.valueScale(2, r2, length)
			if err != nil {
				return nil, err
			}
		}
		in := layout.Input{
			Payload:  p,
			Config:   cfg,
			Surface:  f.Surface,
			Chart:    chart,
			DrawAxis: true,
		}
		f.legendInput(&in, legend, k.swatch)
		if k.horizontal {
			in.AxisReversed = true
			in.YLabels = p.Labels
			in.XLabels = s1.Labels
		} else {
			in.YLabels = s1.Labels
			if has2 {
				in.YLabels2 = s2.Labels
			}
			in.XLabels = p.Labels
			in.XSlots = n
		}
		m, err = layout.SetMeasures(in)
		if err != nil {
			return nil, err
		}
		if k.horizontal {
			length = m.Plot.W
		} else {
			length = m.Plot.H
		}
	}
	f.Measures = m
	f.Scale = &s1
	g := &xy{
		plot:       m.Plot,
		n:          n,
		horizontal: k.horizontal,
		centered:   k.centered,
		s1:         &s1,
	}
	if has2 {
		f.Scale2 = &s2
		g.s2 = &s2
	}
	if !k.centered && len(p.XPos) > 0 {
		g.xpos = p.XPos
		g.xmin, g.xmax = extent(p.XPos)
	}
	return g, nil
}

func extent(v []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if data.IsMissing(x) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

type lineStyle struct {
	color color.Color
	width float64
	style string
}

func (f *Frame) lineStyle(prefix string) lineStyle {
	return lineStyle{
		color: surface.Color(f.Config.String(prefix+"Color"), color.Black),
		width: f.Config.Line(prefix + "Width"),
		style: f.Config.String(prefix + "Style"),
	}
}

func (l lineStyle) apply(s surface.Surface) bool {
	if !surface.Visible(l.color) || l.width <= 0 {
		return false
	}
	s.SetStroke(l.color)
	s.SetLineWidth(l.width)
	surface.SetLineStyle(s, l.style, l.width)
	return true
}

// drawXY paints grid lines, axis lines, ticks and tick labels.
func (f *Frame) drawXY(g *xy) {
	cfg := f.Config
	s := f.Surface
	m := &f.Measures
	plot := g.plot
	s.Push()
	defer s.Pop()

	if cfg.Bool("scaleShowGridLines") {
		grid := f.lineStyle("scaleGridLine")
		if grid.apply(s) {
			step := max(1, cfg.Int("scaleYGridLinesStep"))
			for k := 0; k < len(g.s1.Ticks); k += step {
				p := g.val(1, g.s1.Ticks[k])
				if g.horizontal {
					surface.Line(s, p, plot.Y, p, plot.Bottom())
				} else {
					surface.Line(s, plot.X, p, plot.Right(), p)
				}
			}
			step = max(1, cfg.Int("scaleXGridLinesStep"))
			bounds := g.n
			if g.centered {
				bounds++
			}
			for j := 0; j < bounds; j += step {
				var p float64
				if g.centered {
					p = g.cat(j) - g.slot()/2
				} else {
					p = g.cat(j)
				}
				if g.horizontal {
					surface.Line(s, plot.X, p, plot.Right(), p)
				} else {
					surface.Line(s, p, plot.Y, p, plot.Bottom())
				}
			}
		}
	}

	if cfg.Bool("scaleShowLine") {
		axis := f.lineStyle("scaleLine")
		if axis.apply(s) {
			tickL := cfg.Space("scaleTickSizeLeft")
			tickB := cfg.Space("scaleTickSizeBottom")
			if g.horizontal {
				zero := g.clampVal(g.val(1, g.base(1)))
				surface.Line(s, zero, plot.Y, zero, plot.Bottom())
				surface.Line(s, plot.X, plot.Bottom(), plot.Right(), plot.Bottom())
				for _, v := range g.s1.Ticks {
					p := g.val(1, v)
					surface.Line(s, p, plot.Bottom(), p, plot.Bottom()+tickB)
				}
			} else {
				zero := g.clampVal(g.val(1, g.base(1)))
				surface.Line(s, plot.X, plot.Y, plot.X, plot.Bottom())
				surface.Line(s, plot.X, zero, plot.Right(), zero)
				for _, v := range g.s1.Ticks {
					p := g.val(1, v)
					surface.Line(s, plot.X-tickL, p, plot.X, p)
				}
				for j := 0; j < g.n; j++ {
					p := g.cat(j)
					surface.Line(s, p, plot.Bottom(), p, plot.Bottom()+tickB)
				}
				if g.s2 != nil {
					tickR := cfg.Space("scaleTickSizeRight")
					surface.Line(s, plot.Right(), plot.Y, plot.Right(), plot.Bottom())
					for _, v := range g.s2.Ticks {
						p := g.val(2, v)
						surface.Line(s, plot.Right(), p, plot.Right()+tickR, p)
					}
				}
			}
		}
	}

	if !cfg.Bool("scaleShowLabels") {
		return
	}
	st := layout.Style(cfg, "scale")
	st.Apply(s)
	showMin := cfg.Bool("showYAxisMin")
	labels := f.Payload.Labels
	if g.horizontal {
		for k, v := range g.s1.Labels {
			if k == 0 && !showMin {
				continue
			}
			if !layout.ShowXLabel(cfg, k) {
				continue
			}
			f.xLabel(v, g.val(1, g.s1.Ticks[k]))
		}
		for j, l := range labels {
			s.Text(l, m.YLabelsX, g.cat(j), surface.Right, surface.Middle, 0)
		}
		return
	}
	if cfg.Bool("yAxisLeft") {
		for k, v := range g.s1.Labels {
			if k == 0 && !showMin {
				continue
			}
			s.Text(v, m.YLabelsX, g.val(1, g.s1.Ticks[k]), surface.Right, surface.Middle, 0)
		}
	}
	if g.s2 != nil {
		for k, v := range g.s2.Labels {
			if k == 0 && !showMin {
				continue
			}
			s.Text(v, m.YLabelsX2, g.val(2, g.s2.Ticks[k]), surface.Left, surface.Middle, 0)
		}
	}
	for j, l := range labels {
		if !layout.ShowXLabel(cfg, j) {
			continue
		}
		f.xLabel(l, g.cat(j))
	}
}

// xLabel draws a label under the plot with the negotiated rotation.
func (f *Frame) xLabel(text string, x float64) {
	m := &f.Measures
	if m.XLabelRotation == 0 {
		f.Surface.Text(text, x, m.XLabelsY, surface.Center, surface.Top, 0)
		return
	}
	f.Surface.Text(text, x, m.XLabelsY, surface.Right, surface.Top, -m.XLabelRotation*math.Pi/180)
}

// options resolved per dataset
func (f *Frame) datasetOption(name string, override options.Value, i, j int) string {
	return f.Config.ResolveString(name, override, f.call(name, i, j))
}
