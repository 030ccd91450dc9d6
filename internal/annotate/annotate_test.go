package annotate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

func TestArcBoundary(t *testing.T) {
	const eps = 1e-6
	type Case struct {
		name  string
		start float64
		end   float64
	}
	cases := []Case{
		{name: "first quadrant", start: 0, end: math.Pi / 2},
		{name: "across seam", start: 7 * math.Pi / 4, end: 9 * math.Pi / 4},
		{name: "negative start", start: -math.Pi / 2, end: 0},
		{name: "large", start: math.Pi, end: 1.9 * math.Pi},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := Entry{Kind: Arc, X: 100, Y: 100, Inner: 20, Outer: 50, Start: c.start, End: c.end}
			mid := (c.start + c.end) / 2
			at := func(r float64) (float64, float64) {
				return e.X + r*math.Cos(mid), e.Y + r*math.Sin(mid)
			}
			x, y := at(e.Outer - eps)
			require.True(t, Contains(e, x, y, Options{}))
			x, y = at(e.Outer + eps)
			require.False(t, Contains(e, x, y, Options{}))
			x, y = at(e.Inner - eps)
			require.False(t, Contains(e, x, y, Options{}))

			// just outside the angular span
			out := c.end + 0.01
			require.False(t, Contains(e, e.X+30*math.Cos(out), e.Y+30*math.Sin(out), Options{}))
		})
	}
}

func TestFullCircle(t *testing.T) {
	e := Entry{Kind: Arc, X: 0, Y: 0, Outer: 10, Start: -math.Pi / 2, End: 3 * math.Pi / 2}
	require.True(t, Contains(e, -5, 1, Options{}))
}

func TestRectAndPoint(t *testing.T) {
	r := Entry{Kind: Rect, Left: 10, Top: 20, Right: 30, Bottom: 80}
	require.True(t, Contains(r, 10, 20, Options{}))
	require.True(t, Contains(r, 30, 80, Options{}))
	require.False(t, Contains(r, 31, 50, Options{}))

	p := Entry{Kind: Point, X: 50, Y: 50, HasPrev: true, PrevX: 0, PrevY: 0}
	o := Options{Radius: 5, Zero: 1e-10}
	require.True(t, Contains(p, 53, 53, o))
	require.False(t, Contains(p, 25, 30, o))
	o.FullLine = true
	require.True(t, Contains(p, 25, 28, o))
	require.False(t, Contains(p, -10, -10, o))
}

func TestSegmentDistance(t *testing.T) {
	type Case struct {
		name           string
		x, y           float64
		x1, y1, x2, y2 float64
		want           float64
	}
	cases := []Case{
		{name: "vertical", x: 3, y: 5, x1: 0, y1: 0, x2: 0, y2: 10, want: 3},
		{name: "vertical beyond", x: 3, y: 11, x1: 0, y1: 0, x2: 0, y2: 10, want: math.Inf(1)},
		{name: "horizontal", x: 5, y: -2, x1: 0, y1: 0, x2: 10, y2: 0, want: 2},
		{name: "diagonal", x: 0, y: 2, x1: 0, y1: 0, x2: 2, y2: 2, want: math.Sqrt2},
		{name: "degenerate", x: 3, y: 4, x1: 0, y1: 0, x2: 0, y2: 0, want: 5},
		{name: "nearly vertical", x: 1, y: 5, x1: 0, y1: 0, x2: 1e-12, y2: 10, want: 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SegmentDistance(c.x, c.y, c.x1, c.y1, c.x2, c.y2, 1e-10)
			if math.IsInf(c.want, 1) {
				require.True(t, math.IsInf(got, 1))
				return
			}
			require.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestRegistryTopmostWins(t *testing.T) {
	var r Registry
	r.Add(Entry{Kind: Rect, Series: 0, Left: 0, Top: 0, Right: 100, Bottom: 100})
	r.Add(Entry{Kind: Rect, Series: 1, Left: 40, Top: 40, Right: 60, Bottom: 60})
	e, ok := r.Hit(50, 50, Options{})
	require.True(t, ok)
	require.Equal(t, 1, e.Series)
	e, ok = r.Hit(10, 10, Options{})
	require.True(t, ok)
	require.Equal(t, 0, e.Series)

	r.Reset()
	require.Zero(t, r.Len())
	_, ok = r.Hit(50, 50, Options{})
	require.False(t, ok)
}

func TestTracker(t *testing.T) {
	var r Registry
	r.Add(Entry{Kind: Rect, Point: 0, Left: 0, Top: 0, Right: 10, Bottom: 10})
	r.Add(Entry{Kind: Rect, Point: 1, Left: 20, Top: 0, Right: 30, Bottom: 10})
	var log []string
	tr := Tracker{
		In: func(prev *Entry, next Entry) {
			if prev == nil {
				log = append(log, "in")
				return
			}
			log = append(log, "switch")
		},
		Out: func(Entry) { log = append(log, "out") },
	}
	tr.Move(&r, 5, 5, Options{})
	tr.Move(&r, 6, 6, Options{})
	tr.Move(&r, 25, 5, Options{})
	tr.Move(&r, 50, 50, Options{})
	require.Equal(t, []string{"in", "out", "switch", "out"}, log)
	_, ok := tr.Current()
	require.False(t, ok)
}

func TestPlaceFlips(t *testing.T) {
	type Case struct {
		name   string
		px, py float64
		x, y   float64
	}
	cases := []Case{
		{name: "fits", px: 10, py: 10, x: 20, y: 20},
		{name: "right edge", px: 180, py: 10, x: 120, y: 20},
		{name: "bottom edge", px: 10, py: 90, x: 20, y: 60},
		{name: "both", px: 190, py: 95, x: 130, y: 65},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := Place(c.px, c.py, 50, 20, 10, 10, 200, 100)
			require.Equal(t, c.x, x)
			require.Equal(t, c.y, y)
			require.LessOrEqual(t, x+50, 200.0)
			require.LessOrEqual(t, y+20, 100.0)
		})
	}
}

func TestTooltipInsideViewport(t *testing.T) {
	cfg, err := options.NewMerger().Resolve(options.Pie, nil)
	require.NoError(t, err)
	s := surface.NewRecorder(200, 100)
	tip := NewTooltip(s, cfg, "A: 12 (30 %)<BR>second", 195, 95, 200, 100)
	require.Len(t, tip.Lines, 2)
	require.GreaterOrEqual(t, tip.X, 0.0)
	require.GreaterOrEqual(t, tip.Y, 0.0)
	require.LessOrEqual(t, tip.X+tip.W, 200.0)
	require.LessOrEqual(t, tip.Y+tip.H, 100.0)
	tip.Draw(s, cfg)
	require.Contains(t, s.Texts(), "second")
}
