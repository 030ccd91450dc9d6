package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

func config(t *testing.T, chart options.Chart, o options.Map) *options.Config {
	t.Helper()
	cfg, err := options.NewMerger().Resolve(chart, o)
	require.NoError(t, err)
	return cfg
}

func TestSetMeasuresPlain(t *testing.T) {
	s := surface.NewRecorder(400, 300)
	m, err := SetMeasures(Input{
		Config:  config(t, options.Pie, nil),
		Surface: s,
	})
	require.NoError(t, err)
	require.Equal(t, Rect{W: 400, H: 300}, m.Plot)
	require.Empty(t, s.Ops)
}

func TestSetMeasuresTitles(t *testing.T) {
	s := surface.NewRecorder(400, 300)
	cfg := config(t, options.Bar, options.Map{
		"graphTitle":    options.Of("Queries"),
		"graphSubTitle": options.Of("per rrtype"),
		"footNote":      options.Of("source: pdns"),
		"xAxisLabel":    options.Of("type"),
		"yAxisLabel":    options.Of("count"),
	})
	m, err := SetMeasures(Input{
		Config:     cfg,
		Surface:    s,
		YLabels:    []string{"0", "100", "200"},
		XLabels:    []string{"A", "AAAA", "MX"},
		DrawAxis:   true,
		DrawStatic: true,
	})
	require.NoError(t, err)
	require.True(t, m.Title.Show)
	require.Less(t, m.Title.Y, m.SubTitle.Y)
	require.Less(t, m.SubTitle.Y, m.Plot.Y)
	require.Greater(t, m.FootNote.Y, m.Plot.Bottom())
	require.Greater(t, m.XAxisLabel.Y, m.XLabelsY)
	require.Less(t, m.YAxisLabel.X, m.YLabelsX)
	require.Less(t, m.YLabelsX, m.Plot.X)
	require.Greater(t, m.Plot.W, 0.0)
	require.Greater(t, m.Plot.H, 0.0)
	require.Equal(t, 0.0, m.XLabelRotation)

	texts := s.Texts()
	for _, want := range []string{"Queries", "per rrtype", "source: pdns", "type", "count"} {
		require.Contains(t, texts, want)
	}
}

func TestLegendKeepsPlotPositive(t *testing.T) {
	var items []LegendItem
	for i := 0; i < 40; i++ {
		items = append(items, LegendItem{Text: strings.Repeat("x", 20), Fill: "#f00"})
	}
	for _, pos := range []string{"top", "bottom", "left", "right"} {
		s := surface.NewRecorder(120, 90)
		cfg := config(t, options.Line, options.Map{
			"legend":         options.Of(true),
			"legendPosition": options.Of(pos),
		})
		m, err := SetMeasures(Input{
			Config:       cfg,
			Surface:      s,
			Legend:       items,
			LegendSwatch: true,
			DrawAxis:     true,
			YLabels:      []string{"0", "10"},
			XLabels:      []string{"a", "b"},
		})
		require.NoError(t, err)
		require.Greater(t, m.Plot.W, 0.0, pos)
		require.Greater(t, m.Plot.H, 0.0, pos)
		require.NotNil(t, m.Legend)
		require.Len(t, m.Legend.Items, 40)
	}
}

func TestLegendGrid(t *testing.T) {
	s := surface.NewRecorder(600, 400)
	cfg := config(t, options.Bar, options.Map{
		"legend":        options.Of(true),
		"maxLegendCols": options.Of(2),
	})
	items := []LegendItem{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	m, err := SetMeasures(Input{Config: cfg, Surface: s, Legend: items, LegendReversed: true})
	require.NoError(t, err)
	require.Equal(t, 2, m.Legend.Cols)
	require.Equal(t, 2, m.Legend.Rows)
	require.Equal(t, "c", m.Legend.Items[0].Text)
	require.Greater(t, m.Legend.Box.Y, m.Plot.Bottom()-1)
}

func TestRotation(t *testing.T) {
	long := []string{
		"very long label number one",
		"very long label number two",
		"very long label number three",
		"very long label number four",
	}
	type Case struct {
		name   string
		labels []string
		width  int
		opts   options.Map
		want   float64
	}
	cases := []Case{
		{name: "short labels", labels: []string{"a", "b"}, width: 400, want: 0},
		{name: "long labels", labels: long, width: 400, want: 45},
		{name: "crowded labels", labels: append(append(long, long...), long...), width: 100, want: 90},
		{name: "explicit", labels: []string{"a"}, width: 400, opts: options.Map{"rotateLabels": options.Of(30)}, want: 30},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := surface.NewRecorder(c.width, 300)
			m, err := SetMeasures(Input{
				Config:   config(t, options.Bar, c.opts),
				Surface:  s,
				XLabels:  c.labels,
				DrawAxis: true,
			})
			require.NoError(t, err)
			require.Equal(t, c.want, m.XLabelRotation)
			require.Greater(t, m.XLabelHeight, 0.0)
		})
	}
}

func TestShowXLabel(t *testing.T) {
	cfg := config(t, options.Line, options.Map{
		"showXLabels":      options.Of(2),
		"firstLabelToShow": options.Of(2),
	})
	var got []int
	for i := 0; i < 6; i++ {
		if ShowXLabel(cfg, i) {
			got = append(got, i)
		}
	}
	require.Equal(t, []int{1, 3, 5}, got)
}

func TestUnitAboveLegend(t *testing.T) {
	s := surface.NewRecorder(400, 300)
	cfg := config(t, options.Bar, options.Map{
		"legend":         options.Of(true),
		"legendPosition": options.Of("top"),
		"yAxisUnit":      options.Of("qps"),
	})
	m, err := SetMeasures(Input{
		Config:   cfg,
		Surface:  s,
		Legend:   []LegendItem{{Text: "queries"}},
		YLabels:  []string{"0", "10"},
		DrawAxis: true,
	})
	require.NoError(t, err)
	require.True(t, m.YAxisUnit.Show)
	require.Less(t, m.YAxisUnit.Y, m.Legend.Box.Y)
	require.Less(t, m.Legend.Box.Bottom(), m.Plot.Y)
}

func TestSeriesLegend(t *testing.T) {
	items := []LegendItem{{Text: "queries", Stroke: "#f00"}, {Text: "answers", Stroke: "#00f"}}
	measure := func(chart options.Chart, onSeries bool) Measures {
		m, err := SetMeasures(Input{
			Config:             config(t, chart, options.Map{"legend": options.Of(true)}),
			Surface:            surface.NewRecorder(400, 300),
			Chart:              chart,
			Legend:             items,
			LegendReversed:     true,
			LegendOnDataSeries: onSeries,
			YLabels:            []string{"0", "10"},
			DrawAxis:           chart == options.Line,
		})
		require.NoError(t, err)
		return m
	}
	block := measure(options.Line, false)
	require.NotNil(t, block.Legend)
	require.Nil(t, block.SeriesLegend)

	onSeries := measure(options.Line, true)
	require.Nil(t, onSeries.Legend)
	require.NotNil(t, onSeries.SeriesLegend)
	require.Equal(t, "answers", onSeries.SeriesLegend.Items[0].Text)
	require.Greater(t, onSeries.Plot.H, block.Plot.H, "no block is taken from the height")
	require.Less(t, onSeries.Plot.Right(), block.Plot.Right(), "texts get a right margin")
	require.LessOrEqual(t, onSeries.Plot.Right(), onSeries.Clear.Right())

	pie := measure(options.Pie, true)
	require.NotNil(t, pie.Legend, "radial charts keep the block")
	require.Nil(t, pie.SeriesLegend)

	s := surface.NewRecorder(400, 300)
	onSeries.SeriesLegend.DrawAt(s, items[0], 100, 50)
	require.Equal(t, []string{"queries"}, s.Texts())
	op := s.Ops[len(s.Ops)-1]
	require.Equal(t, 100+onSeries.SeriesLegend.Gap, op.Args[0])
	require.Equal(t, 50.0, op.Args[1])
}

func TestClearRect(t *testing.T) {
	s := surface.NewRecorder(400, 300)
	cfg := config(t, options.Bar, options.Map{
		"graphTitle": options.Of("Queries"),
		"yAxisLabel": options.Of("count"),
		"legend":     options.Of(true),
	})
	m, err := SetMeasures(Input{
		Config:   cfg,
		Surface:  s,
		Legend:   []LegendItem{{Text: "queries"}},
		YLabels:  []string{"0", "100"},
		XLabels:  []string{"A", "MX"},
		DrawAxis: true,
	})
	require.NoError(t, err)
	c := m.Clear
	require.Greater(t, c.Y, m.Title.Y)
	require.Greater(t, c.X, m.YAxisLabel.X)
	require.Less(t, c.Bottom(), m.Legend.Box.Y+1)
	require.LessOrEqual(t, c.X, m.YLabelsX-m.YLabelWidth, "tick labels are repainted")
	require.LessOrEqual(t, c.X, m.Plot.X)
	require.GreaterOrEqual(t, c.Right(), m.Plot.Right())
	require.GreaterOrEqual(t, c.Bottom(), m.XLabelsY+m.XLabelHeight)

	require.True(t, Repaint(s, cfg, &m))
	op := s.Ops[len(s.Ops)-1]
	require.Equal(t, "clearRect", op.Name)
	require.Equal(t, []float64{c.X, c.Y, c.W, c.H}, op.Args)
}
