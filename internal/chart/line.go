package chart

import (
	"image/color"
	"math"

	"github.com/vinceanalytics/pdnsview/internal/annotate"
	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// line draws line charts.
type line struct{}

func (l *line) Draw(f *Frame) error {
	g, err := f.prepareXY(xyKind{})
	if err != nil {
		return err
	}
	f.static()
	f.drawXY(g)
	sets := make([]int, len(f.Payload.Datasets))
	for i := range sets {
		sets[i] = i
	}
	f.drawLines(g, sets)
	f.seriesLegend()
	if f.Final {
		return f.inGraphData()
	}
	return nil
}

type linePoint struct {
	x, y  float64
	point int
}

// datasetProgress returns the progress of the order-th of n animated
// datasets.
func (f *Frame) datasetProgress(order, n int) float64 {
	cfg := f.Config
	if order < cfg.Int("animationStartWithDataset")-1 {
		return 1
	}
	if !cfg.Bool("animationByDataset") || n <= 1 {
		return f.Progress
	}
	return clamp01(f.Progress*float64(n) - float64(order))
}

// drawLines draws the datasets sets as lines with optional fill and dots.
func (f *Frame) drawLines(g *xy, sets []int) {
	if len(sets) == 0 || g.n == 0 {
		return
	}
	cfg := f.Config
	s := f.Surface
	bezier := cfg.Bool("bezierCurve")
	tension := cfg.Float("bezierCurveTension")
	extrapolate := cfg.Bool("extrapolateMissingData")
	leftToRight := cfg.Bool("animationLeftToRight")
	firstData := cfg.Int("animationStartWithData") - 1

	limit := math.Inf(1)
	if leftToRight && !f.Final {
		if g.horizontal {
			limit = g.plot.Y + f.Progress*g.plot.H
		} else {
			limit = g.plot.X + f.Progress*g.plot.W
		}
	}

	s.Push()
	defer s.Pop()
	for order, i := range sets {
		d := &f.Payload.Datasets[i]
		axis := d.YAxis()
		base := g.base(axis)
		progress := f.datasetProgress(order, len(sets))
		if leftToRight {
			progress = 1
		}

		var (
			runs [][]linePoint
			run  []linePoint
		)
		cut := false
		for j := 0; j < g.n && !cut; j++ {
			r := f.Stats.At(i, j)
			if r == nil || r.Missing {
				if !extrapolate && len(run) > 0 {
					runs = append(runs, run)
					run = nil
				}
				continue
			}
			p := progress
			if j < firstData {
				p = 1
			}
			x, y := g.point(axis, j, base+(r.Value-base)*p)
			along := x
			if g.horizontal {
				along = y
			}
			if along > limit {
				if n := len(run); n > 0 {
					prev := run[n-1]
					x, y = interpolate(prev, x, y, limit, g.horizontal)
					run = append(run, linePoint{x: x, y: y, point: -1})
				}
				cut = true
				continue
			}
			run = append(run, linePoint{x: x, y: y, point: j})
		}
		if len(run) > 0 {
			runs = append(runs, run)
		}

		fill := f.colorOf(d.FillColor, "defaultFillColor", i, -1)
		stroke := f.colorOf(d.StrokeColor, "defaultStrokeColor", i, -1)
		width := f.width(d.StrokeWidth, "datasetStrokeWidth", i, -1)
		dash := f.datasetOption("datasetStrokeStyle", d.LineDash, i, -1)
		basePx := g.clampVal(g.val(axis, base))

		for _, run := range runs {
			if cfg.Bool("datasetFill") && surface.Visible(fill) && len(run) > 1 {
				s.NewPath()
				tracePath(s, run, bezier, tension, g.plot, g.horizontal)
				last, first := run[len(run)-1], run[0]
				if g.horizontal {
					s.LineTo(basePx, last.y)
					s.LineTo(basePx, first.y)
				} else {
					s.LineTo(last.x, basePx)
					s.LineTo(first.x, basePx)
				}
				s.ClosePath()
				s.SetFill(fill)
				s.Fill()
			}
			if width > 0 && len(run) > 1 {
				s.NewPath()
				tracePath(s, run, bezier, tension, g.plot, g.horizontal)
				s.SetStroke(stroke)
				s.SetLineWidth(width)
				surface.SetLineStyle(s, dash, width)
				s.Stroke()
				surface.SetLineStyle(s, "solid", width)
			}
		}
		f.drawDots(i, runs)
	}
}

// drawDots draws the point dots of one dataset, attaches their geometry
// and registers them.
func (f *Frame) drawDots(i int, runs [][]linePoint) {
	d := &f.Payload.Datasets[i]
	cfg := f.Config
	s := f.Surface
	show := cfg.Bool("pointDot")
	radius := cfg.Line("pointDotRadius")
	width := cfg.Line("pointDotStrokeWidth")
	for _, run := range runs {
		for k, p := range run {
			if p.point < 0 {
				continue
			}
			f.Stats.AttachPoint(i, p.point, p.x, p.y)
			e := annotate.Entry{Kind: annotate.Point, Series: i, Point: p.point, X: p.x, Y: p.y}
			if k > 0 {
				e.HasPrev = true
				e.PrevX, e.PrevY = run[k-1].x, run[k-1].y
			}
			f.register(e)
			if !show || radius <= 0 {
				continue
			}
			var dot color.Color
			if d.PointColor.IsSet() {
				dot = f.colorOf(d.PointColor, "defaultStrokeColor", i, p.point)
			} else {
				dot = f.colorOf(d.StrokeColor, "defaultStrokeColor", i, p.point)
			}
			surface.Circle(s, p.x, p.y, radius)
			s.SetFill(dot)
			if width > 0 {
				s.FillPreserve()
				ring := color.Color(color.White)
				if d.PointStrokeColor.IsSet() {
					ring = f.colorOf(d.PointStrokeColor, "defaultStrokeColor", i, p.point)
				}
				s.SetStroke(ring)
				s.SetLineWidth(width)
				s.Stroke()
				continue
			}
			s.Fill()
		}
	}
}

// point maps point j of value v to pixels.
func (g *xy) point(axis, j int, v float64) (float64, float64) {
	c := g.cat(j)
	p := g.clampVal(g.val(axis, v))
	if g.horizontal {
		return p, c
	}
	return c, p
}

// interpolate returns the point on the segment from prev to x, y where the
// category coordinate reaches limit.
func interpolate(prev linePoint, x, y, limit float64, horizontal bool) (float64, float64) {
	if horizontal {
		if y == prev.y {
			return x, limit
		}
		t := (limit - prev.y) / (y - prev.y)
		return prev.x + t*(x-prev.x), limit
	}
	if x == prev.x {
		return limit, y
	}
	t := (limit - prev.x) / (x - prev.x)
	return limit, prev.y + t*(y-prev.y)
}

// tracePath adds run to the current path, with cubic segments when bezier
// is set. Control points stay inside plot along the value axis.
func tracePath(s surface.Surface, run []linePoint, bezier bool, tension float64, plot layout.Rect, horizontal bool) {
	s.MoveTo(run[0].x, run[0].y)
	if !bezier || len(run) < 3 {
		for _, p := range run[1:] {
			s.LineTo(p.x, p.y)
		}
		return
	}
	type ctl struct{ inX, inY, outX, outY float64 }
	c := make([]ctl, len(run))
	for k := range run {
		p := run[k]
		c[k] = ctl{p.x, p.y, p.x, p.y}
		if k == 0 || k == len(run)-1 {
			continue
		}
		prev, next := run[k-1], run[k+1]
		d01 := math.Hypot(p.x-prev.x, p.y-prev.y)
		d12 := math.Hypot(next.x-p.x, next.y-p.y)
		if d01+d12 == 0 {
			continue
		}
		fa := tension * d01 / (d01 + d12)
		fb := tension * d12 / (d01 + d12)
		dx, dy := next.x-prev.x, next.y-prev.y
		c[k] = ctl{
			inX: p.x - fa*dx, inY: p.y - fa*dy,
			outX: p.x + fb*dx, outY: p.y + fb*dy,
		}
		if horizontal {
			c[k].inX = clamp(c[k].inX, plot.X, plot.Right())
			c[k].outX = clamp(c[k].outX, plot.X, plot.Right())
		} else {
			c[k].inY = clamp(c[k].inY, plot.Y, plot.Bottom())
			c[k].outY = clamp(c[k].outY, plot.Y, plot.Bottom())
		}
	}
	for k := 1; k < len(run); k++ {
		a, b := c[k-1], c[k]
		s.CubicTo(a.outX, a.outY, b.inX, b.inY, run[k].x, run[k].y)
	}
}
