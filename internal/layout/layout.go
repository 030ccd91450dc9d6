// Package layout negotiates the frame between titles, legend, axis labels
// and the plot area, and draws the parts that do not animate.
package layout

import (
	"errors"
	"math"

	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

var ErrNoSurface = errors.New("layout: missing surface or configuration")

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether x, y is inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Dimension holds the space consumed on each side of the frame.
type Dimension struct {
	Top, Bottom, Left, Right float64
}

// Anchor is where a text is drawn. Show is false when the text is empty.
type Anchor struct {
	Show  bool
	Text  string
	X, Y  float64
	Angle float64
}

type Input struct {
	Payload *data.Payload
	Config  *options.Config
	Surface surface.Surface
	Chart   options.Chart

	FrameWidth  float64
	FrameHeight float64

	// YLabels and YLabels2 are the rendered tick labels of the left and
	// right axis. XLabels are the labels under the plot.
	YLabels  []string
	YLabels2 []string
	XLabels  []string
	// XSlots is the number of slots the x labels are spread over. Zero uses
	// one slot per label.
	XSlots int

	Legend         []LegendItem
	LegendReversed bool
	// LegendOnDataSeries writes each legend text after the last point of its
	// series instead of drawing a legend block. Radial charts ignore it.
	LegendOnDataSeries bool
	LegendSwatch       bool
	// AxisReversed puts value ticks on the x axis and categories on y.
	AxisReversed bool
	DrawAxis     bool
	DrawStatic   bool
}

// Measures is the outcome of the negotiation.
type Measures struct {
	Frame Rect
	// Plot is the area data is drawn in.
	Plot Rect
	// Clear holds everything but the static parts. Frames keeping the static
	// layer repaint only this rectangle.
	Clear Rect
	Used  Dimension

	Title, SubTitle, FootNote Anchor
	XAxisLabel                Anchor
	YAxisLabel, YAxisLabel2   Anchor
	YAxisUnit, YAxisUnit2     Anchor
	XLabelRotation            float64
	XLabelHeight              float64
	XLabelsY                  float64
	YLabelsX, YLabelsX2       float64
	YLabelWidth, YLabelWidth2 float64
	TextHeight                float64
	Legend                    *Legend
	SeriesLegend              *SeriesLegend
}

// AvailableWidth and AvailableHeight are the plot size.
func (m *Measures) AvailableWidth() float64  { return m.Plot.W }
func (m *Measures) AvailableHeight() float64 { return m.Plot.H }

// TopLeft is the top left corner of the plot.
func (m *Measures) TopLeft() (float64, float64) { return m.Plot.X, m.Plot.Y }

type negotiator struct {
	in                       *Input
	cfg                      *options.Config
	s                        surface.Surface
	m                        Measures
	top, bottom, left, right float64
}

// SetMeasures computes the layout of one frame. With DrawStatic set it also
// paints background, borders, titles, axis labels and the legend.
func SetMeasures(in Input) (Measures, error) {
	if in.Surface == nil || in.Config == nil {
		return Measures{}, ErrNoSurface
	}
	if in.FrameWidth <= 0 {
		in.FrameWidth = float64(in.Surface.Width())
	}
	if in.FrameHeight <= 0 {
		in.FrameHeight = float64(in.Surface.Height())
	}
	n := &negotiator{
		in:     &in,
		cfg:    in.Config,
		s:      in.Surface,
		bottom: in.FrameHeight,
		right:  in.FrameWidth,
	}
	n.m.Frame = Rect{W: in.FrameWidth, H: in.FrameHeight}
	n.borders()
	n.titles()
	n.footNote()
	n.yAxisUnit()
	n.legend()
	n.axisLabels()
	n.m.Clear = Rect{X: n.left, Y: n.top, W: math.Max(0, n.right-n.left), H: math.Max(0, n.bottom-n.top)}
	n.seriesLegend()
	n.tickLabels()
	n.finish()
	if in.DrawStatic {
		DrawStatic(in.Surface, in.Config, &n.m)
	}
	return n.m, nil
}

func (n *negotiator) borders() {
	c := n.cfg
	n.top += c.Space("spaceTop")
	n.bottom -= c.Space("spaceBottom")
	n.left += c.Space("spaceLeft")
	n.right -= c.Space("spaceRight")
	if c.Bool("canvasBorders") {
		w := c.Line("canvasBordersWidth")
		n.top += w
		n.bottom -= w
		n.left += w
		n.right -= w
	}
}

func (n *negotiator) center() float64 { return (n.left + n.right) / 2 }

func (n *negotiator) titles() {
	c := n.cfg
	if t := c.String("graphTitle"); t != "" {
		_, h := Style(c, "graphTitle").Measure(n.s, t)
		n.top += c.Space("graphTitleSpaceBefore")
		n.m.Title = Anchor{Show: true, Text: t, X: n.center(), Y: n.top + h/2}
		n.top += h + c.Space("graphTitleSpaceAfter")
	}
	if t := c.String("graphSubTitle"); t != "" {
		_, h := Style(c, "graphSubTitle").Measure(n.s, t)
		n.top += c.Space("graphSubTitleSpaceBefore")
		n.m.SubTitle = Anchor{Show: true, Text: t, X: n.center(), Y: n.top + h/2}
		n.top += h + c.Space("graphSubTitleSpaceAfter")
	}
}

func (n *negotiator) footNote() {
	c := n.cfg
	t := c.String("footNote")
	if t == "" {
		return
	}
	_, h := Style(c, "footNote").Measure(n.s, t)
	n.bottom -= c.Space("footNoteSpaceAfter")
	n.m.FootNote = Anchor{Show: true, Text: t, X: n.left, Y: n.bottom - h/2}
	n.bottom -= h + c.Space("footNoteSpaceBefore")
}

// legendItems returns the legend entries in display order, nil when no
// legend is drawn.
func (n *negotiator) legendItems() []LegendItem {
	items := n.in.Legend
	if !n.cfg.Bool("legend") || len(items) == 0 {
		return nil
	}
	if n.in.LegendReversed {
		rev := make([]LegendItem, len(items))
		for i := range items {
			rev[len(items)-1-i] = items[i]
		}
		items = rev
	}
	return items
}

func (n *negotiator) onSeries() bool {
	return n.in.LegendOnDataSeries && !n.in.Chart.Radial()
}

func (n *negotiator) legend() {
	c := n.cfg
	items := n.legendItems()
	if len(items) == 0 || n.onSeries() {
		return
	}
	m, st := measureLegend(n.s, c, items)
	l := &Legend{Position: legendPosition(c), style: st, swatch: n.in.LegendSwatch}
	switch l.Position {
	case "top", "bottom":
		l.Cols, l.Rows = m.grid(len(items), n.right-n.left)
		w, h := l.size(m)
		l.Box.W, l.Box.H = w, h
		switch c.String("legendAlign") {
		case "left":
			l.Box.X = n.left + m.bLeft
		case "right":
			l.Box.X = n.right - m.bRight - w
		default:
			l.Box.X = n.center() - w/2
		}
		if l.Position == "top" {
			l.Box.Y = n.top + m.bBefore
			n.top += m.bBefore + h + m.bAfter
		} else {
			l.Box.Y = n.bottom - m.bAfter - h
			n.bottom -= m.bBefore + h + m.bAfter
		}
	default:
		avail := n.bottom - n.top - m.bBefore - m.bAfter - m.before - m.after
		perCol := int(math.Max(1, math.Floor((avail+m.betweenV)/(m.rowH+m.betweenV))))
		l.Rows = min(len(items), perCol)
		l.Cols = (len(items) + l.Rows - 1) / l.Rows
		w, h := l.size(m)
		l.Box.W, l.Box.H = w, h
		l.Box.Y = (n.top+n.bottom)/2 - h/2
		if l.Position == "left" {
			l.Box.X = n.left + m.bLeft
			n.left += m.bLeft + w + m.bRight
		} else {
			l.Box.X = n.right - m.bRight - w
			n.right -= m.bLeft + w + m.bRight
		}
	}
	l.place(m, items)
	n.m.Legend = l
}

// seriesLegend reserves a right margin wide enough for the legend texts
// written at the end of each series.
func (n *negotiator) seriesLegend() {
	items := n.legendItems()
	if len(items) == 0 || !n.onSeries() {
		return
	}
	st := Style(n.cfg, "legend")
	texts := make([]string, len(items))
	for i := range items {
		texts[i] = items[i].Text
	}
	w, _ := n.widest(st, texts)
	gap := n.cfg.Space("legendSpaceBetweenBoxAndText")
	n.right -= gap + w
	n.m.SeriesLegend = &SeriesLegend{Items: items, Gap: gap, style: st}
}

func (l *Legend) size(m legendMetrics) (float64, float64) { return m.size(l.Cols, l.Rows) }

func (n *negotiator) axisLabels() {
	c := n.cfg
	if !n.in.DrawAxis {
		return
	}
	if t := c.String("xAxisLabel"); t != "" {
		_, h := Style(c, "xAxis").Measure(n.s, t)
		n.bottom -= c.Space("xAxisLabelSpaceAfter")
		n.m.XAxisLabel = Anchor{Show: true, Text: t, Y: n.bottom - h/2}
		n.bottom -= h + c.Space("xAxisLabelSpaceBefore")
	}
	if t := c.String("yAxisLabel"); t != "" {
		_, h := Style(c, "yAxis").Measure(n.s, t)
		n.left += c.Space("yAxisLabelSpaceLeft")
		n.m.YAxisLabel = Anchor{Show: true, Text: t, X: n.left + h/2, Angle: -math.Pi / 2}
		n.left += h + c.Space("yAxisLabelSpaceRight")
	}
	if t := c.String("yAxisLabel2"); t != "" && n.in.YLabels2 != nil {
		_, h := Style(c, "yAxis").Measure(n.s, t)
		n.right -= c.Space("yAxisLabelSpaceRight")
		n.m.YAxisLabel2 = Anchor{Show: true, Text: t, X: n.right - h/2, Angle: math.Pi / 2}
		n.right -= h + c.Space("yAxisLabelSpaceLeft")
	}
}

func (n *negotiator) yAxisUnit() {
	c := n.cfg
	if !n.in.DrawAxis {
		return
	}
	unit := c.String("yAxisUnit")
	unit2 := ""
	if n.in.YLabels2 != nil {
		unit2 = c.String("yAxisUnit2")
	}
	if unit == "" && unit2 == "" {
		return
	}
	st := Style(c, "yAxisUnit")
	_, h := st.Measure(n.s, unit+unit2)
	n.top += c.Space("yAxisUnitSpaceBefore")
	y := n.top + h/2
	n.m.YAxisUnit = Anchor{Show: unit != "", Text: unit, Y: y}
	n.m.YAxisUnit2 = Anchor{Show: unit2 != "", Text: unit2, Y: y}
	n.top += h + c.Space("yAxisUnitSpaceAfter")
}

func (n *negotiator) widest(st TextStyle, labels []string) (float64, float64) {
	var w, h float64
	for _, l := range labels {
		lw, lh := st.Measure(n.s, l)
		w = math.Max(w, lw)
		h = math.Max(h, lh)
	}
	return w, h
}

func (n *negotiator) tickLabels() {
	c := n.cfg
	st := Style(c, "scale")
	n.m.TextHeight = st.Font.Size
	if !n.in.DrawAxis {
		return
	}
	showLabels := c.Bool("scaleShowLabels")
	if showLabels && c.Bool("yAxisLeft") && len(n.in.YLabels) > 0 {
		w, _ := n.widest(st, n.in.YLabels)
		n.m.YLabelWidth = w
		n.left += c.Space("yAxisSpaceLeft")
		n.m.YLabelsX = n.left + w
		n.left += w + c.Space("yAxisSpaceRight") + c.Space("scaleTickSizeLeft")
	} else {
		n.left += c.Space("scaleTickSizeLeft")
	}
	if showLabels && len(n.in.YLabels2) > 0 {
		w, _ := n.widest(st, n.in.YLabels2)
		n.m.YLabelWidth2 = w
		n.right -= c.Space("yAxisSpaceRight")
		n.m.YLabelsX2 = n.right - w
		n.right -= w + c.Space("yAxisSpaceLeft") + c.Space("scaleTickSizeRight")
	} else {
		n.right -= c.Space("scaleTickSizeRight")
	}

	labels := visibleLabels(c, n.in.XLabels)
	if !showLabels && !n.in.AxisReversed {
		labels = nil
	}
	n.bottom -= c.Space("scaleTickSizeBottom")
	if len(labels) == 0 {
		return
	}
	slots := n.in.XSlots
	if slots <= 0 {
		slots = len(n.in.XLabels)
	}
	step := max(1, c.Int("showXLabels"))
	slot := (n.right - n.left) / float64(max(1, slots)) * float64(step)
	angle := n.rotation(st, labels, slot)
	n.m.XLabelRotation = angle
	rad := angle * math.Pi / 180
	var height float64
	for _, l := range labels {
		w, h := st.Measure(n.s, l)
		height = math.Max(height, math.Abs(w*math.Sin(rad))+math.Abs(h*math.Cos(rad)))
	}
	n.m.XLabelHeight = height
	n.bottom -= c.Space("xAxisSpaceAfter")
	n.bottom -= height
	n.m.XLabelsY = n.bottom
	n.bottom -= c.Space("xAxisSpaceBefore")
}

// rotation picks the x label angle in degrees. A numeric rotateLabels wins,
// "smart" tries 0, 45 and 90 degrees.
func (n *negotiator) rotation(st TextStyle, labels []string, slot float64) float64 {
	c := n.cfg
	if v, ok := c.Number("rotateLabels"); ok {
		return math.Max(0, math.Min(180, v))
	}
	fits := func(deg float64) bool {
		for _, l := range labels {
			w, h := st.Measure(n.s, l)
			projected := w
			if deg != 0 {
				projected = h / math.Sin(deg*math.Pi/180)
			}
			if projected > slot {
				return false
			}
		}
		return true
	}
	for _, deg := range []float64{0, 45} {
		if fits(deg) {
			return deg
		}
	}
	return 90
}

// visibleLabels applies showXLabels and firstLabelToShow.
func visibleLabels(c *options.Config, labels []string) []string {
	step := max(1, c.Int("showXLabels"))
	first := max(1, c.Int("firstLabelToShow")) - 1
	var o []string
	for i := first; i < len(labels); i += step {
		o = append(o, labels[i])
	}
	return o
}

// ShowXLabel reports whether label i is drawn under showXLabels and
// firstLabelToShow.
func ShowXLabel(c *options.Config, i int) bool {
	step := max(1, c.Int("showXLabels"))
	first := max(1, c.Int("firstLabelToShow")) - 1
	return i >= first && (i-first)%step == 0
}

func (n *negotiator) finish() {
	if n.right-n.left < 1 {
		mid := (n.left + n.right) / 2
		n.left, n.right = mid-0.5, mid+0.5
	}
	if n.bottom-n.top < 1 {
		mid := (n.top + n.bottom) / 2
		n.top, n.bottom = mid-0.5, mid+0.5
	}
	n.m.Plot = Rect{X: n.left, Y: n.top, W: n.right - n.left, H: n.bottom - n.top}
	n.m.Used = Dimension{
		Top:    n.top,
		Bottom: n.in.FrameHeight - n.bottom,
		Left:   n.left,
		Right:  n.in.FrameWidth - n.right,
	}
	cx := n.left + n.m.Plot.W/2
	cy := n.top + n.m.Plot.H/2
	n.m.XAxisLabel.X = cx
	n.m.YAxisLabel.Y = cy
	n.m.YAxisLabel2.Y = cy
	n.m.YAxisUnit.X = n.m.YLabelsX
	if n.m.YAxisUnit.X == 0 {
		n.m.YAxisUnit.X = n.left
	}
	n.m.YAxisUnit2.X = n.m.YLabelsX2
	if n.m.YAxisUnit2.X == 0 {
		n.m.YAxisUnit2.X = n.right
	}
	if n.m.FootNote.Show {
		n.m.FootNote.X = n.left
	}
}
