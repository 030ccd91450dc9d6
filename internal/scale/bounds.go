package scale

import (
	"math"

	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/options"
)

// Range is the span of values plotted against one axis.
type Range struct {
	Min, Max float64
	// OK is false when the axis has no values.
	OK bool
}

func (r *Range) add(v float64) {
	if data.IsMissing(v) {
		return
	}
	if !r.OK {
		r.Min, r.Max, r.OK = v, v, true
		return
	}
	r.Min = math.Min(r.Min, v)
	r.Max = math.Max(r.Max, v)
}

// Values returns Min and Max, both zero for an empty range.
func (r Range) Values() (float64, float64) {
	if !r.OK {
		return 0, 0
	}
	return r.Min, r.Max
}

// IncludeZero extends the range to zero.
func (r Range) IncludeZero() Range {
	if !r.OK {
		return Range{OK: true}
	}
	r.Min = math.Min(r.Min, 0)
	r.Max = math.Max(r.Max, 0)
	return r
}

// Bounds returns the value range of the datasets drawn against axis. Bar
// datasets of stacked charts contribute their positive and negative running
// totals per label. Radial charts ignore the axis.
func Bounds(p *data.Payload, chart options.Chart, axis int) Range {
	var r Range
	if chart.Segmented() {
		for _, s := range p.Segments {
			r.add(s.Value)
		}
		return r
	}
	if chart.Stacked() {
		n := p.Len()
		for _, d := range p.Datasets {
			if len(d.Data) > n {
				n = len(d.Data)
			}
		}
		pos := make([]float64, n)
		neg := make([]float64, n)
		seen := make([]bool, n)
		for _, d := range p.Datasets {
			if d.YAxis() != axis {
				continue
			}
			if d.IsLine() {
				for _, v := range d.Data {
					r.add(v)
				}
				continue
			}
			for i, v := range d.Data {
				if data.IsMissing(v) {
					continue
				}
				seen[i] = true
				if v >= 0 {
					pos[i] += v
				} else {
					neg[i] += v
				}
			}
		}
		for i := range pos {
			if seen[i] {
				r.add(pos[i])
				r.add(neg[i])
			}
		}
		return r
	}
	for _, d := range p.Datasets {
		if !chart.Radial() && d.YAxis() != axis {
			continue
		}
		for _, v := range d.Data {
			r.add(v)
		}
	}
	return r
}

// HasAxis reports whether any dataset is drawn against axis.
func HasAxis(p *data.Payload, axis int) bool {
	for _, d := range p.Datasets {
		if d.YAxis() == axis {
			return true
		}
	}
	return false
}
