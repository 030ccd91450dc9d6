package chart

import (
	"image/color"
	"math"

	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/scale"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// radial is the geometry of radar and polar area charts.
type radial struct {
	cx, cy, radius float64
	start          float64
	sc             *scale.Calculated
}

// at returns the pixel of value v along a spoke at angle.
func (r *radial) at(v, angle float64) (float64, float64) {
	d := r.radius * clamp(r.sc.Pos(v), 0, 1)
	return r.cx + d*math.Cos(angle), r.cy + d*math.Sin(angle)
}

// spoke returns the angle of spoke j out of n.
func (r *radial) spoke(j, n int) float64 {
	return r.start + float64(j)*2*math.Pi/float64(max(n, 1))
}

// prepareScale lays out a radial chart and computes its value scale for the
// radius left once reserve pixels are kept free around it.
func (f *Frame) prepareScale(legend []layout.LegendItem, reserve float64) (*radial, error) {
	if err := f.prepareRadial(legend); err != nil {
		return nil, err
	}
	cx, cy, radius := f.center()
	radius = math.Max(radius-reserve, 1)
	rng := scale.Bounds(f.Payload, f.Config.Chart(), 1).IncludeZero()
	sc, err := f.valueScale(1, rng, radius)
	if err != nil {
		return nil, err
	}
	f.Scale = &sc
	return &radial{
		cx:     cx,
		cy:     cy,
		radius: radius,
		start:  -f.Config.Float("startAngle") * math.Pi / 180,
		sc:     &sc,
	}, nil
}

// drawRadialScale draws the rings of the scale as polygons with n corners,
// or circles when n is zero, and the tick labels up the vertical axis.
func (f *Frame) drawRadialScale(r *radial, n int) {
	cfg := f.Config
	s := f.Surface
	s.Push()
	defer s.Pop()
	if cfg.Bool("scaleShowLine") {
		st := f.lineStyle("scaleLine")
		if st.apply(s) {
			for k := 1; k < len(r.sc.Ticks); k++ {
				v := r.sc.Ticks[k]
				s.NewPath()
				if n == 0 {
					x, _ := r.at(v, 0)
					s.Arc(r.cx, r.cy, x-r.cx, 0, 2*math.Pi)
				} else {
					for j := 0; j < n; j++ {
						x, y := r.at(v, r.spoke(j, n))
						if j == 0 {
							s.MoveTo(x, y)
							continue
						}
						s.LineTo(x, y)
					}
				}
				s.ClosePath()
				s.Stroke()
			}
		}
	}
	if !cfg.Bool("scaleShowLabels") {
		return
	}
	text := layout.Style(cfg, "scale")
	backdrop := cfg.Bool("scaleShowLabelBackdrop")
	bg := surface.Color(cfg.String("scaleBackdropColor"), color.Transparent)
	px := cfg.Space("scaleBackdropPaddingX")
	py := cfg.Space("scaleBackdropPaddingY")
	showMin := cfg.Bool("showYAxisMin")
	for k, v := range r.sc.Ticks {
		if k == 0 && !showMin {
			continue
		}
		label := r.sc.Labels[k]
		x, y := r.at(v, -math.Pi/2)
		if backdrop {
			w, h := text.Measure(s, label)
			surface.FillRect(s, bg, x-w/2-px, y-h/2-py, w+2*px, h+2*py)
		}
		text.Apply(s)
		s.Text(label, x, y, surface.Center, surface.Middle, 0)
	}
}

// radar draws radar charts: one spoke per label, one polygon per dataset.
type radar struct{}

func (rd *radar) Draw(f *Frame) error {
	cfg := f.Config
	labels := layout.Style(cfg, "pointLabel")
	reserve := labels.Font.Size + cfg.Space("scaleTickSizeLeft")
	for _, l := range f.Payload.Labels {
		w, _ := labels.Measure(f.Surface, l)
		reserve = math.Max(reserve, math.Min(w, float64(f.Surface.Width())/4)+cfg.Space("scaleTickSizeLeft"))
	}
	r, err := f.prepareScale(f.datasetLegend(), reserve)
	if err != nil {
		return err
	}
	f.static()
	n := f.Payload.Len()
	overlay := cfg.Bool("scaleOverlay")
	if !overlay {
		f.drawRadar(r, n)
	}
	f.drawRadarData(r, n)
	if overlay {
		f.drawRadar(r, n)
	}
	if f.Final {
		return f.inGraphData()
	}
	return nil
}

func (f *Frame) drawRadar(r *radial, n int) {
	cfg := f.Config
	s := f.Surface
	if n == 0 {
		return
	}
	s.Push()
	if cfg.Bool("angleShowLineOut") {
		st := f.lineStyle("angleLine")
		if st.apply(s) {
			for j := 0; j < n; j++ {
				x, y := r.at(r.sc.GraphMax, r.spoke(j, n))
				surface.Line(s, r.cx, r.cy, x, y)
			}
		}
	}
	st := layout.Style(cfg, "pointLabel")
	st.Apply(s)
	gap := cfg.Space("scaleTickSizeLeft")
	for j := 0; j < n && j < len(f.Payload.Labels); j++ {
		a := r.spoke(j, n)
		x := r.cx + (r.radius+gap)*math.Cos(a)
		y := r.cy + (r.radius+gap)*math.Sin(a)
		s.Text(f.Payload.Labels[j], x, y, spokeAlign(math.Cos(a)), spokeVAlign(math.Sin(a)), 0)
	}
	s.Pop()
	f.drawRadialScale(r, n)
}

func spokeAlign(cos float64) surface.Align {
	switch {
	case cos > 0.01:
		return surface.Left
	case cos < -0.01:
		return surface.Right
	}
	return surface.Center
}

func spokeVAlign(sin float64) surface.VAlign {
	switch {
	case sin > 0.01:
		return surface.Top
	case sin < -0.01:
		return surface.Bottom
	}
	return surface.Middle
}

func (f *Frame) drawRadarData(r *radial, n int) {
	cfg := f.Config
	s := f.Surface
	base := r.sc.Base()
	s.Push()
	defer s.Pop()
	for i := range f.Payload.Datasets {
		d := &f.Payload.Datasets[i]
		progress := f.datasetProgress(i, len(f.Payload.Datasets))
		var run []linePoint
		for j := 0; j < n; j++ {
			rec := f.Stats.At(i, j)
			if rec == nil || rec.Missing {
				continue
			}
			x, y := r.at(base+(rec.Value-base)*progress, r.spoke(j, n))
			run = append(run, linePoint{x: x, y: y, point: j})
		}
		if len(run) == 0 {
			continue
		}
		s.NewPath()
		for k, p := range run {
			if k == 0 {
				s.MoveTo(p.x, p.y)
				continue
			}
			s.LineTo(p.x, p.y)
		}
		s.ClosePath()
		fill := f.colorOf(d.FillColor, "defaultFillColor", i, -1)
		width := f.width(d.StrokeWidth, "datasetStrokeWidth", i, -1)
		filled := cfg.Bool("datasetFill") && surface.Visible(fill)
		if filled {
			s.SetFill(fill)
			if width > 0 {
				s.FillPreserve()
			} else {
				s.Fill()
			}
		}
		if width > 0 {
			s.SetStroke(f.colorOf(d.StrokeColor, "defaultStrokeColor", i, -1))
			s.SetLineWidth(width)
			surface.SetLineStyle(s, f.datasetOption("datasetStrokeStyle", d.LineDash, i, -1), width)
			s.Stroke()
			surface.SetLineStyle(s, "solid", width)
		} else if !filled {
			s.NewPath()
		}
		f.drawDots(i, [][]linePoint{run})
	}
}

// polar draws polar area charts: equal angles, radius by value.
type polar struct{}

func (pa *polar) Draw(f *Frame) error {
	cfg := f.Config
	reserve := 0.0
	if cfg.Bool("inGraphDataShow") && cfg.Int("inGraphDataRadiusPosition") == 3 {
		reserve = cfg.Text("inGraphDataFontSize") + cfg.Space("inGraphDataPaddingX")
	}
	r, err := f.prepareScale(f.segmentLegend(), reserve)
	if err != nil {
		return err
	}
	f.static()
	overlay := cfg.Bool("scaleOverlay")
	if !overlay {
		f.drawRadialScale(r, 0)
	}
	grow, sweep := 1.0, 1.0
	if cfg.Bool("animateScale") {
		grow = f.Progress
	}
	if cfg.Bool("animateRotate") {
		sweep = f.Progress
	}
	n := len(f.Payload.Segments)
	span := 2 * math.Pi / float64(max(n, 1)) * sweep
	base := r.sc.Base()
	angle := r.start
	s := f.Surface
	s.Push()
	for j := 0; j < n; j++ {
		rec := f.Stats.At(0, j)
		end := angle + span
		if rec != nil && !rec.Missing {
			x, _ := r.at(base+(rec.Value-base)*grow, 0)
			if outer := x - r.cx; outer > 0 {
				f.segment(j, r.cx, r.cy, 0, outer, angle, end)
			}
		}
		angle = end
	}
	s.Pop()
	if overlay {
		f.drawRadialScale(r, 0)
	}
	if f.Final {
		return f.inGraphData()
	}
	return nil
}
