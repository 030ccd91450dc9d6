package stat

import (
	"math"

	"github.com/vinceanalytics/pdnsview/internal/tmpl"
)

// Vars returns the template record of series i point j.
//
// Segment records number their variables label, value, cumulative, total,
// start angle, percentage, center, radii, series, point and end angle.
// Other records number them dataset label, label, value, cumulative, series
// total, percentage of the label total, position, series and grand
// percentages, series, point and label total. Both carry named aliases.
func (t *Table) Vars(i, j int) tmpl.Record {
	r := t.At(i, j)
	if r == nil {
		return tmpl.Record{Vars: map[string]any{}}
	}
	v := make(map[string]any, 24)
	if t.Segmented {
		g := r.Geom
		v["v1"] = r.Label
		v["v2"] = r.Value
		v["v3"] = r.Cumulative
		v["v4"] = r.SeriesTotal
		v["v5"] = degrees(g.Start)
		v["v6"] = r.PctSeries
		v["v7"] = g.MidX
		v["v8"] = g.MidY
		v["v9"] = g.Inner
		v["v10"] = g.Outer
		v["v11"] = 0
		v["v12"] = j
		v["v13"] = degrees(g.End)
		v["datasetLabel"] = r.Label
		v["x"] = g.X
		v["y"] = g.Y
	} else {
		v["v1"] = r.SeriesLabel
		v["v2"] = r.Label
		v["v3"] = r.Value
		v["v4"] = r.Cumulative
		v["v5"] = r.SeriesTotal
		v["v6"] = r.PctLabel
		v["v7"] = r.Geom.X
		v["v8"] = r.Geom.Y
		v["v9"] = r.PctSeries
		v["v10"] = r.PctGrand
		v["v11"] = i
		v["v12"] = j
		v["v13"] = r.LabelTotal
		v["datasetLabel"] = r.SeriesLabel
		v["x"] = r.Geom.X
		v["y"] = r.Geom.Y
	}
	v["label"] = r.Label
	v["value"] = r.Value
	v["cumulative"] = r.Cumulative
	v["total"] = r.SeriesTotal
	v["pct"] = r.PctSeries
	v["series"] = i
	v["point"] = j
	return tmpl.Record{
		Vars:   v,
		Series: present(t.Values(i)),
		Value:  r.Value,
	}
}

// SeriesVars returns a record for series level templates such as legends.
func (t *Table) SeriesVars(i int, label string) tmpl.Record {
	v := map[string]any{
		"v1":           label,
		"datasetLabel": label,
		"label":        label,
		"series":       i,
	}
	return tmpl.Record{Vars: v, Series: present(t.Values(i))}
}

func present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
