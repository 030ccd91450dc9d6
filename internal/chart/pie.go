package chart

import (
	"image/color"
	"math"

	"github.com/vinceanalytics/pdnsview/internal/annotate"
	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// pie draws pie and doughnut charts. The doughnut hole is
// percentageInnerCutout percent of the radius.
type pie struct{}

func (p *pie) Draw(f *Frame) error {
	if err := f.prepareRadial(f.segmentLegend()); err != nil {
		return err
	}
	f.static()
	cfg := f.Config
	cx, cy, radius := f.center()
	if cfg.Bool("inGraphDataShow") && cfg.Int("inGraphDataRadiusPosition") == 3 {
		radius -= cfg.Text("inGraphDataFontSize") + cfg.Space("inGraphDataPaddingX")
	}
	radius *= cfg.Float("radiusScale")
	if radius <= 0 {
		return nil
	}
	scale, sweep := 1.0, 1.0
	if cfg.Bool("animateScale") {
		scale = f.Progress
	}
	if cfg.Bool("animateRotate") {
		sweep = f.Progress
	}
	outer := radius * scale
	inner := outer * clamp(cfg.Float("percentageInnerCutout"), 0, 100) / 100
	angle := -cfg.Float("startAngle") * math.Pi / 180

	s := f.Surface
	s.Push()
	defer s.Pop()
	for j := range f.Payload.Segments {
		r := f.Stats.At(0, j)
		if r == nil || r.Missing || r.Value <= 0 || r.SeriesTotal <= 0 {
			continue
		}
		span := r.Value / r.SeriesTotal * 2 * math.Pi * sweep
		end := angle + span
		f.segment(j, cx, cy, inner, outer, angle, end)
		angle = end
	}
	if f.Final {
		return f.inGraphData()
	}
	return nil
}

// segment fills and strokes a ring segment and registers it.
func (f *Frame) segment(j int, cx, cy, inner, outer, start, end float64) {
	s := f.Surface
	cfg := f.Config
	s.NewPath()
	if inner > 0 {
		s.Arc(cx, cy, outer, start, end)
		s.Arc(cx, cy, inner, end, start)
	} else {
		s.MoveTo(cx, cy)
		s.Arc(cx, cy, outer, start, end)
	}
	s.ClosePath()
	s.SetFill(f.colorOf(f.Payload.Segments[j].Color, segmentPalette, -1, j))
	w := cfg.Line("segmentStrokeWidth")
	if cfg.Bool("segmentShowStroke") && w > 0 {
		s.FillPreserve()
		s.SetStroke(surface.Color(cfg.String("segmentStrokeColor"), color.White))
		s.SetLineWidth(w)
		surface.SetLineStyle(s, cfg.String("segmentStrokeStyle"), w)
		s.Stroke()
	} else {
		s.Fill()
	}
	f.Stats.AttachArc(0, j, cx, cy, inner, outer, start, end)
	f.register(annotate.Entry{
		Kind:  annotate.Arc,
		Point: j,
		X:     cx,
		Y:     cy,
		Inner: inner,
		Outer: outer,
		Start: start,
		End:   end,
	})
}

// prepareRadial lays out a chart without cartesian axes.
func (f *Frame) prepareRadial(legend []layout.LegendItem) error {
	in := layout.Input{
		Payload: f.Payload,
		Config:  f.Config,
		Surface: f.Surface,
		Chart:   f.Config.Chart(),
	}
	f.legendInput(&in, legend, true)
	m, err := layout.SetMeasures(in)
	if err != nil {
		return err
	}
	f.Measures = m
	return nil
}

// center returns the middle of the plot and the largest radius fitting it.
func (f *Frame) center() (cx, cy, radius float64) {
	p := f.Measures.Plot
	return p.X + p.W/2, p.Y + p.H/2, math.Min(p.W, p.H) / 2
}
