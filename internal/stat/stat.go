// Package stat precomputes the derived values of every data point.
//
// Build runs once per draw and only looks at values. Renderers then attach
// pixel geometry with the Attach methods while they lay out shapes. The
// table is an arena indexed by series and point; annotations and templates
// refer to records by those indices.
package stat

import (
	"math"

	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/options"
)

// None marks an absent neighbour.
const None = -1

// Geometry is the pixel shape of one record. Only the fields of the shape
// kind drawn for the record are set.
type Geometry struct {
	Set bool
	// point or bar top
	X, Y float64
	// bar rectangle
	Left, Top, Right, Bottom float64
	// arc
	MidX, MidY   float64
	Inner, Outer float64
	Start, End   float64
}

// Record holds the derived values of one point.
type Record struct {
	Series, Point int
	Missing       bool
	Label         string
	SeriesLabel   string
	Value         float64

	// Cumulative is the running total of the series up to this point.
	Cumulative float64
	// SeriesTotal sums the series, LabelTotal sums every series at this
	// point and GrandTotal sums everything.
	SeriesTotal float64
	LabelTotal  float64
	GrandTotal  float64

	PctSeries float64
	PctLabel  float64
	PctGrand  float64

	// PosBase and NegBase are the stacked totals of the previous series at
	// this point, positive and negative values kept apart.
	PosBase float64
	NegBase float64

	SeriesMax, SeriesMin float64
	PointMax, PointMin   float64

	Prev, Next int

	Geom Geometry
}

// Table is the stat arena of one draw.
type Table struct {
	Chart options.Chart
	Rows  [][]Record
	// Segmented tables hold one row of segments.
	Segmented bool
	values    [][]float64
}

// Build computes the value phase of the stat table.
func Build(p *data.Payload, cfg *options.Config) *Table {
	chart := cfg.Chart()
	t := &Table{Chart: chart, Segmented: chart.Segmented()}
	if t.Segmented {
		t.buildSegments(p)
		return t
	}
	t.buildSeries(p)
	return t
}

func (t *Table) buildSegments(p *data.Payload) {
	row := make([]Record, len(p.Segments))
	values := make([]float64, len(p.Segments))
	var total, cum float64
	for _, s := range p.Segments {
		if !data.IsMissing(s.Value) && s.Value > 0 {
			total += s.Value
		}
	}
	prev := None
	for i, s := range p.Segments {
		values[i] = s.Value
		r := Record{
			Series:      0,
			Point:       i,
			Label:       s.Label,
			SeriesLabel: s.Label,
			Value:       s.Value,
			SeriesTotal: total,
			LabelTotal:  total,
			GrandTotal:  total,
			Prev:        prev,
			Next:        None,
		}
		if data.IsMissing(s.Value) {
			r.Missing = true
			row[i] = r
			continue
		}
		if s.Value > 0 {
			cum += s.Value
		}
		r.Cumulative = cum
		if total > 0 && s.Value > 0 {
			r.PctSeries = 100 * s.Value / total
		}
		r.PctLabel = r.PctSeries
		r.PctGrand = r.PctSeries
		if prev != None {
			row[prev].Next = i
		}
		prev = i
		row[i] = r
	}
	minV, maxV := extent(values)
	for i := range row {
		row[i].SeriesMax, row[i].SeriesMin = maxV, minV
		row[i].PointMax, row[i].PointMin = row[i].Value, row[i].Value
	}
	t.Rows = [][]Record{row}
	t.values = [][]float64{values}
}

func (t *Table) buildSeries(p *data.Payload) {
	n := p.Len()
	for _, d := range p.Datasets {
		n = max(n, len(d.Data))
	}
	labelTotal := make([]float64, n)
	pointMax := make([]float64, n)
	pointMin := make([]float64, n)
	for j := range pointMax {
		pointMax[j] = math.Inf(-1)
		pointMin[j] = math.Inf(1)
	}
	var grand float64
	for _, d := range p.Datasets {
		for j, v := range d.Data {
			if data.IsMissing(v) {
				continue
			}
			labelTotal[j] += v
			grand += v
			pointMax[j] = math.Max(pointMax[j], v)
			pointMin[j] = math.Min(pointMin[j], v)
		}
	}
	// stacks are kept per value axis
	pos := [3][]float64{nil, make([]float64, n), make([]float64, n)}
	neg := [3][]float64{nil, make([]float64, n), make([]float64, n)}
	t.Rows = make([][]Record, len(p.Datasets))
	t.values = make([][]float64, len(p.Datasets))
	for i, d := range p.Datasets {
		values := make([]float64, n)
		for j := range values {
			values[j] = data.Missing
			if j < len(d.Data) {
				values[j] = d.Data[j]
			}
		}
		t.values[i] = values
		var total float64
		for _, v := range values {
			if !data.IsMissing(v) {
				total += v
			}
		}
		minV, maxV := extent(values)
		row := make([]Record, n)
		var cum float64
		prev := None
		stacks := !d.IsLine()
		axis := d.YAxis()
		for j, v := range values {
			r := Record{
				Series:      i,
				Point:       j,
				Label:       label(p, j),
				SeriesLabel: d.Label,
				Value:       v,
				SeriesTotal: total,
				LabelTotal:  labelTotal[j],
				GrandTotal:  grand,
				SeriesMax:   maxV,
				SeriesMin:   minV,
				PointMax:    pointMax[j],
				PointMin:    pointMin[j],
				PosBase:     pos[axis][j],
				NegBase:     neg[axis][j],
				Prev:        prev,
				Next:        None,
			}
			if data.IsMissing(v) {
				r.Missing = true
				row[j] = r
				continue
			}
			cum += v
			r.Cumulative = cum
			r.PctSeries = pct(v, total)
			r.PctLabel = pct(v, labelTotal[j])
			r.PctGrand = pct(v, grand)
			if stacks {
				if v >= 0 {
					pos[axis][j] += v
				} else {
					neg[axis][j] += v
				}
			}
			if prev != None {
				row[prev].Next = j
			}
			prev = j
			row[j] = r
		}
		t.Rows[i] = row
	}
}

func label(p *data.Payload, j int) string {
	if j < len(p.Labels) {
		return p.Labels[j]
	}
	return ""
}

func pct(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * v / total
}

func extent(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if data.IsMissing(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// At returns the record of series i point j or nil.
func (t *Table) At(i, j int) *Record {
	if t == nil || i < 0 || i >= len(t.Rows) || j < 0 || j >= len(t.Rows[i]) {
		return nil
	}
	return &t.Rows[i][j]
}

// Values returns the values of series i, missing points included.
func (t *Table) Values(i int) []float64 {
	if i < 0 || i >= len(t.values) {
		return nil
	}
	return t.values[i]
}

// Len returns the number of series and points.
func (t *Table) Len() (series, points int) {
	if len(t.Rows) == 0 {
		return 0, 0
	}
	return len(t.Rows), len(t.Rows[0])
}

// ResetGeometry clears attached geometry before a new frame.
func (t *Table) ResetGeometry() {
	for i := range t.Rows {
		for j := range t.Rows[i] {
			t.Rows[i][j].Geom = Geometry{}
		}
	}
}

// AttachPoint records the pixel position of a line, radar or dot point.
func (t *Table) AttachPoint(i, j int, x, y float64) {
	if r := t.At(i, j); r != nil {
		r.Geom.Set = true
		r.Geom.X, r.Geom.Y = x, y
	}
}

// AttachBar records a bar rectangle. The point position is the middle of
// the bar end away from the base.
func (t *Table) AttachBar(i, j int, left, top, right, bottom, x, y float64) {
	if r := t.At(i, j); r != nil {
		r.Geom = Geometry{
			Set:  true,
			X:    x,
			Y:    y,
			Left: math.Min(left, right), Right: math.Max(left, right),
			Top: math.Min(top, bottom), Bottom: math.Max(top, bottom),
		}
	}
}

// AttachArc records a ring segment.
func (t *Table) AttachArc(i, j int, midX, midY, inner, outer, start, end float64) {
	if r := t.At(i, j); r != nil {
		r.Geom = Geometry{
			Set:  true,
			MidX: midX, MidY: midY,
			Inner: inner, Outer: outer,
			Start: start, End: end,
			X: midX + (inner+outer)/2*math.Cos((start+end)/2),
			Y: midY + (inner+outer)/2*math.Sin((start+end)/2),
		}
	}
}
