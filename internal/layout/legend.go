package layout

import (
	"math"

	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// LegendItem is one legend entry. Fill and Stroke are color strings.
type LegendItem struct {
	Text   string
	Fill   string
	Stroke string
	Dash   string
	Series int
	Point  int
}

// PlacedItem is a legend entry with its position.
type PlacedItem struct {
	LegendItem
	Swatch Rect
	TextX  float64
	TextY  float64
}

// Legend is the measured legend block.
type Legend struct {
	Position string
	Box      Rect
	Cols     int
	Rows     int
	Items    []PlacedItem
	style    TextStyle
	swatch   bool
}

type legendMetrics struct {
	block, gap, betweenH, betweenV float64
	left, right, before, after     float64
	bLeft, bRight, bBefore, bAfter float64
	itemW, rowH                    float64
	maxCols                        int
}

func legendPosition(cfg *options.Config) string {
	switch p := cfg.String("legendPosition"); p {
	case "top", "left", "right", "bottom":
		return p
	default:
		return "bottom"
	}
}

func measureLegend(s surface.Surface, cfg *options.Config, items []LegendItem) (legendMetrics, TextStyle) {
	st := Style(cfg, "legend")
	m := legendMetrics{
		block:    cfg.Space("legendBlockSize"),
		gap:      cfg.Space("legendSpaceBetweenBoxAndText"),
		betweenH: cfg.Space("legendSpaceBetweenTextHorizontal"),
		betweenV: cfg.Space("legendSpaceBetweenTextVertical"),
		left:     cfg.Space("legendSpaceLeftText"),
		right:    cfg.Space("legendSpaceRightText"),
		before:   cfg.Space("legendSpaceBeforeText"),
		after:    cfg.Space("legendSpaceAfterText"),
		bLeft:    cfg.Space("legendBordersSpaceLeft"),
		bRight:   cfg.Space("legendBordersSpaceRight"),
		bBefore:  cfg.Space("legendBordersSpaceBefore"),
		bAfter:   cfg.Space("legendBordersSpaceAfter"),
		maxCols:  cfg.Int("maxLegendCols"),
	}
	if m.maxCols < 1 {
		m.maxCols = len(items)
	}
	var maxW, maxH float64
	for _, it := range items {
		w, h := st.Measure(s, it.Text)
		maxW = math.Max(maxW, w)
		maxH = math.Max(maxH, h)
	}
	m.itemW = m.block + m.gap + maxW
	m.rowH = math.Max(maxH, m.block)
	return m, st
}

// grid returns columns and rows fitting items in width w.
func (m legendMetrics) grid(n int, w float64) (int, int) {
	if n == 0 {
		return 0, 0
	}
	avail := w - m.bLeft - m.bRight - m.left - m.right
	cols := int(math.Floor((avail + m.betweenH) / (m.itemW + m.betweenH)))
	cols = max(1, min(cols, n, m.maxCols))
	rows := (n + cols - 1) / cols
	return cols, rows
}

func (m legendMetrics) size(cols, rows int) (float64, float64) {
	w := m.left + float64(cols)*m.itemW + float64(max(cols-1, 0))*m.betweenH + m.right
	h := m.before + float64(rows)*m.rowH + float64(max(rows-1, 0))*m.betweenV + m.after
	return w, h
}

func (l *Legend) place(m legendMetrics, items []LegendItem) {
	l.Items = make([]PlacedItem, len(items))
	x0 := l.Box.X + m.left
	y0 := l.Box.Y + m.before
	for i, it := range items {
		row := i / l.Cols
		col := i % l.Cols
		if l.Position == "left" || l.Position == "right" {
			row = i % l.Rows
			col = i / l.Rows
		}
		x := x0 + float64(col)*(m.itemW+m.betweenH)
		y := y0 + float64(row)*(m.rowH+m.betweenV)
		l.Items[i] = PlacedItem{
			LegendItem: it,
			Swatch:     Rect{X: x, Y: y + (m.rowH-m.block)/2, W: m.block, H: m.block},
			TextX:      x + m.block + m.gap,
			TextY:      y + m.rowH/2,
		}
	}
}

// SeriesLegend is the legend written at the end of each series.
type SeriesLegend struct {
	Items []LegendItem
	Gap   float64
	style TextStyle
}

// DrawAt writes the text of it Gap pixels right of x, y in the series
// stroke color, or its fill color when the stroke is unset.
func (l *SeriesLegend) DrawAt(s surface.Surface, it LegendItem, x, y float64) {
	l.style.Apply(s)
	c, ok := surface.ParseColor(it.Stroke)
	if !ok || !surface.Visible(c) {
		c, ok = surface.ParseColor(it.Fill)
	}
	if ok && surface.Visible(c) {
		s.SetFill(c)
	}
	s.Text(it.Text, x+l.Gap, y, surface.Left, surface.Middle, 0)
}

// Draw paints the legend block.
func (l *Legend) Draw(s surface.Surface, cfg *options.Config) {
	if l == nil || len(l.Items) == 0 {
		return
	}
	if c, ok := surface.ParseColor(cfg.String("legendFillColor")); ok {
		surface.FillRect(s, c, l.Box.X, l.Box.Y, l.Box.W, l.Box.H)
	}
	if cfg.Bool("legendBorders") {
		surface.StrokeRect(s, surface.Color(cfg.String("legendBordersColor"), nil),
			cfg.Line("legendBordersWidth"), l.Box.X, l.Box.Y, l.Box.W, l.Box.H)
	}
	for _, it := range l.Items {
		fill, hasFill := surface.ParseColor(it.Fill)
		stroke, hasStroke := surface.ParseColor(it.Stroke)
		sw := it.Swatch
		switch {
		case l.swatch:
			if hasFill {
				surface.FillRect(s, fill, sw.X, sw.Y, sw.W, sw.H)
			}
			if hasStroke {
				surface.StrokeRect(s, stroke, 1, sw.X, sw.Y, sw.W, sw.H)
			}
		default:
			c := stroke
			if !hasStroke {
				c = fill
			}
			if !surface.Visible(c) {
				break
			}
			s.Push()
			s.SetStroke(c)
			s.SetLineWidth(math.Max(1, math.Ceil(sw.H/5)))
			surface.SetLineStyle(s, it.Dash, 1)
			surface.Line(s, sw.X, sw.Y+sw.H/2, sw.X+sw.W, sw.Y+sw.H/2)
			s.Pop()
		}
		l.style.Apply(s)
		s.Text(it.Text, it.TextX, it.TextY, surface.Left, surface.Middle, 0)
	}
}
