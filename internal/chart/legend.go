package chart

import (
	"math"

	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/stat"
)

func (f *Frame) legendInput(in *layout.Input, items []layout.LegendItem, swatch bool) {
	in.Legend = items
	in.LegendSwatch = swatch
	in.LegendReversed = f.Config.Bool("legendReverse")
	in.LegendOnDataSeries = f.Config.Bool("legendOnDataSeries")
}

func datasetTitle(d *data.Dataset) string {
	if d.Title != "" {
		return d.Title
	}
	return d.Label
}

// datasetLegend returns one entry per titled dataset.
func (f *Frame) datasetLegend() []layout.LegendItem {
	var items []layout.LegendItem
	for i := range f.Payload.Datasets {
		d := &f.Payload.Datasets[i]
		text := datasetTitle(d)
		if text == "" {
			continue
		}
		items = append(items, layout.LegendItem{
			Text:   text,
			Fill:   f.colorName(d.FillColor, "defaultFillColor", i, -1),
			Stroke: f.colorName(d.StrokeColor, "defaultStrokeColor", i, -1),
			Dash:   f.Config.ResolveString("datasetStrokeStyle", d.LineDash, f.call("datasetStrokeStyle", i, -1)),
			Series: i,
			Point:  -1,
		})
	}
	return items
}

// segmentLegend returns one entry per labelled segment.
func (f *Frame) segmentLegend() []layout.LegendItem {
	var items []layout.LegendItem
	for j := range f.Payload.Segments {
		s := &f.Payload.Segments[j]
		text := s.Title
		if text == "" {
			text = s.Label
		}
		if text == "" {
			continue
		}
		items = append(items, layout.LegendItem{
			Text:   text,
			Fill:   f.colorName(s.Color, segmentPalette, -1, j),
			Stroke: f.Config.String("segmentStrokeColor"),
			Series: 0,
			Point:  j,
		})
	}
	return items
}

// seriesLegend writes the legend texts after the last drawn point of their
// series.
func (f *Frame) seriesLegend() {
	l := f.Measures.SeriesLegend
	if l == nil {
		return
	}
	for _, it := range l.Items {
		r := f.lastDrawn(it.Series)
		if r == nil {
			continue
		}
		l.DrawAt(f.Surface, it, math.Max(r.Geom.X, r.Geom.Right), r.Geom.Y)
	}
}

func (f *Frame) lastDrawn(i int) *stat.Record {
	_, n := f.Stats.Len()
	for j := n - 1; j >= 0; j-- {
		if r := f.Stats.At(i, j); r != nil && r.Geom.Set {
			return r
		}
	}
	return nil
}

// segmentPalette holds the solid default colors of segments.
const segmentPalette = "defaultStrokeColor"
