package chart

import (
	"github.com/vinceanalytics/pdnsview/internal/annotate"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// bar draws vertical and horizontal, grouped and stacked bar charts. Line
// datasets of a bar chart are drawn over the bars.
type bar struct {
	horizontal bool
	stacked    bool
}

func (b *bar) Draw(f *Frame) error {
	g, err := f.prepareXY(xyKind{
		horizontal:  b.horizontal,
		centered:    true,
		includeZero: true,
		swatch:      true,
	})
	if err != nil {
		return err
	}
	f.static()
	f.drawXY(g)
	var bars, lines []int
	for i := range f.Payload.Datasets {
		if f.Payload.Datasets[i].IsLine() {
			lines = append(lines, i)
			continue
		}
		bars = append(bars, i)
	}
	f.drawBars(g, bars, b.stacked)
	f.drawLines(g, lines)
	f.seriesLegend()
	if f.Final {
		return f.inGraphData()
	}
	return nil
}

// barWidth returns the thickness of one bar and the spacing left at each
// end of a slot.
func (f *Frame) barWidth(slot float64, cols int) (width, spacing float64) {
	cfg := f.Config
	spacing = cfg.Space("barValueSpacing")
	between := cfg.Space("barDatasetSpacing")
	width = (slot - 2*spacing - float64(cols-1)*between) / float64(cols)
	if mw, ok := cfg.Number("maxBarWidth"); ok && mw > 0 {
		mw *= cfg.SpaceScale()
		if width > mw {
			spacing += (width - mw) * float64(cols) / 2
			width = mw
		}
	}
	return max(width, 1), spacing
}

func (f *Frame) drawBars(g *xy, sets []int, stacked bool) {
	if len(sets) == 0 || g.n == 0 {
		return
	}
	s := f.Surface
	cfg := f.Config
	cols := len(sets)
	if stacked {
		cols = 1
	}
	slot := g.slot()
	width, spacing := f.barWidth(slot, cols)
	between := cfg.Space("barDatasetSpacing")
	showStroke := cfg.Bool("barShowStroke")
	progress := f.Progress

	s.Push()
	defer s.Pop()
	for k, i := range sets {
		d := &f.Payload.Datasets[i]
		axis := d.YAxis()
		base := g.base(axis)
		col := k
		if stacked {
			col = 0
		}
		dash := f.datasetOption("datasetStrokeStyle", d.LineDash, i, -1)
		for j := 0; j < g.n; j++ {
			r := f.Stats.At(i, j)
			if r == nil || r.Missing {
				continue
			}
			lo, hi := base, r.Value
			if stacked {
				lo = r.PosBase
				if r.Value < 0 {
					lo = r.NegBase
				}
				hi = lo + r.Value
			}
			lo = base + (lo-base)*progress
			hi = base + (hi-base)*progress
			a := g.clampVal(g.val(axis, lo))
			e := g.clampVal(g.val(axis, hi))
			start := g.cat(j) - slot/2 + spacing + float64(col)*(width+between)
			mid := start + width/2

			var left, top, right, bottom, x, y float64
			if g.horizontal {
				left, right = min(a, e), max(a, e)
				top, bottom = start, start+width
				x, y = e, mid
			} else {
				left, right = start, start+width
				top, bottom = min(a, e), max(a, e)
				x, y = mid, e
			}
			fill := f.colorOf(d.FillColor, "defaultFillColor", i, j)
			s.SetFill(fill)
			s.NewPath()
			s.Rect(left, top, right-left, bottom-top)
			if showStroke {
				s.FillPreserve()
				if w := f.width(d.StrokeWidth, "barStrokeWidth", i, j); w > 0 {
					s.SetStroke(f.colorOf(d.StrokeColor, "defaultStrokeColor", i, j))
					s.SetLineWidth(w)
					surface.SetLineStyle(s, dash, w)
					s.Stroke()
				} else {
					s.NewPath()
				}
			} else {
				s.Fill()
			}
			f.Stats.AttachBar(i, j, left, top, right, bottom, x, y)
			f.register(annotate.Entry{
				Kind:   annotate.Rect,
				Series: i,
				Point:  j,
				X:      x,
				Y:      y,
				Left:   left,
				Top:    top,
				Right:  right,
				Bottom: bottom,
			})
		}
	}
}

// register adds a shape of the final frame to the registry.
func (f *Frame) register(e annotate.Entry) {
	if f.Final && f.Registry != nil {
		f.Registry.Add(e)
	}
}
