package pdnsview

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vinceanalytics/pdnsview/internal/anim"
	"github.com/vinceanalytics/pdnsview/internal/annotate"
	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

func engine(t *testing.T, host anim.Host) *Engine {
	t.Helper()
	e, err := New(Options{Host: host})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func queries() *data.Payload {
	return &data.Payload{
		Labels: []string{"A", "AAAA", "MX"},
		Datasets: []data.Dataset{
			{Label: "queries", Data: data.Series{10, 20, 5}},
		},
	}
}

// manual queues frames until drained by the test.
type manual struct {
	queue []func()
}

func (m *manual) RequestFrame(fn func())           { m.queue = append(m.queue, fn) }
func (m *manual) After(_ time.Duration, fn func()) { m.queue = append(m.queue, fn) }

func (m *manual) drain() int {
	var n int
	for len(m.queue) > 0 {
		fn := m.queue[0]
		m.queue = m.queue[1:]
		fn()
		n++
	}
	return n
}

func TestRender(t *testing.T) {
	e := engine(t, nil)
	rec := surface.NewRecorder(400, 300)
	h, err := e.Render(options.Bar, queries(), nil, rec)
	require.NoError(t, err)
	phase, err := e.Phase(h)
	require.NoError(t, err)
	require.Equal(t, anim.Settled, phase)
	require.Equal(t, 3, e.instances[h].registry.Len())
	require.Greater(t, rec.Count("rect"), 0)
	require.Len(t, e.Handles(), 1)

	parsed, err := ParseHandle(h.String())
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	require.NoError(t, e.Release(h))
	require.ErrorIs(t, e.Release(h), ErrUnknownHandle)
	_, err = e.Phase(h)
	require.ErrorIs(t, err, ErrUnknownHandle)
}

func TestRenderErrors(t *testing.T) {
	type Case struct {
		name  string
		chart options.Chart
		opts  options.Map
		err   error
	}
	cases := []Case{
		{name: "chart", chart: options.Chart("Gantt"), err: ErrUnknownChart},
		{name: "easing", chart: options.Line, opts: options.Map{
			"animationEasing": options.Of("easeSideways"),
		}, err: options.ErrUnknownFunction},
		{name: "stat function", chart: options.Line, opts: options.Map{
			"statFunctions": options.List("mean", "mode"),
		}, err: options.ErrUnknownFunction},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := engine(t, nil)
			_, err := e.Render(c.chart, queries(), c.opts, surface.NewRecorder(100, 100))
			require.ErrorIs(t, err, c.err)
			require.Empty(t, e.Handles())
		})
	}
	_, err := ParseHandle("not a handle")
	require.ErrorIs(t, err, ErrUnknownHandle)
}

func TestDynamicDisplay(t *testing.T) {
	e := engine(t, nil)
	rec := surface.NewRecorder(400, 300)
	h, err := e.Render(options.Pie, &data.Payload{Segments: []data.Segment{
		{Value: 1, Label: "A"}, {Value: 3, Label: "MX"},
	}}, options.Map{"dynamicDisplay": options.Of(true)}, rec)
	require.NoError(t, err)
	phase, _ := e.Phase(h)
	require.Equal(t, anim.Undrawn, phase)
	require.Empty(t, rec.Ops)

	require.NoError(t, e.Reveal(h))
	phase, _ = e.Phase(h)
	require.Equal(t, anim.Settled, phase)
	require.Equal(t, 2, e.instances[h].registry.Len())
	require.NoError(t, e.Reveal(h))
}

func TestUpdate(t *testing.T) {
	e := engine(t, nil)
	h, err := e.Render(options.Line, queries(), options.Map{
		"animationSteps": options.Of(5),
	}, surface.NewRecorder(400, 300))
	require.NoError(t, err)
	require.Equal(t, 3, e.instances[h].registry.Len())

	p := queries()
	p.Labels = append(p.Labels, "TXT")
	p.Datasets[0].Data = append(p.Datasets[0].Data, 8)
	require.NoError(t, e.Update(h, p, options.Map{"datasetFill": options.Of(false)}))
	in := e.instances[h]
	require.Equal(t, 4, in.registry.Len())
	require.False(t, in.cur.cfg.Bool("datasetFill"))
	require.Equal(t, 5, in.cur.cfg.Int("animationSteps"), "earlier options are kept")

	require.NoError(t, e.Update(h, nil, nil))
	require.Equal(t, 4, in.registry.Len(), "a nil payload keeps the data")
	require.ErrorIs(t, e.Update(Handle{}, nil, nil), ErrUnknownHandle)
}

func TestUpdateWhileAnimating(t *testing.T) {
	host := &manual{}
	e := engine(t, host)
	h, err := e.Render(options.Bar, queries(), options.Map{
		"animationSteps": options.Of(4),
	}, surface.NewRecorder(400, 300))
	require.NoError(t, err)
	phase, _ := e.Phase(h)
	require.Equal(t, anim.Animating, phase)

	p := queries()
	p.Labels = p.Labels[:2]
	p.Datasets[0].Data = p.Datasets[0].Data[:2]
	require.NoError(t, e.Update(h, p, nil))
	in := e.instances[h]
	require.Len(t, in.cur.payload.Labels, 3, "the running cycle keeps its data")

	require.Equal(t, 8, host.drain())
	phase, _ = e.Phase(h)
	require.Equal(t, anim.Settled, phase)
	require.Len(t, in.cur.payload.Labels, 2)
	require.Equal(t, 2, in.registry.Len())
}

func TestStaticLayer(t *testing.T) {
	e := engine(t, nil)
	rec := surface.NewRecorder(400, 300)
	h, err := e.Render(options.Bar, queries(), options.Map{
		"animationSteps": options.Of(4),
		"graphTitle":     options.Of("Queries"),
	}, rec)
	require.NoError(t, err)
	require.Equal(t, 1, rec.Count("clear"), "only the first frame paints from scratch")
	require.Equal(t, 3, rec.Count("clearRect"))
	titles := 0
	for _, s := range rec.Texts() {
		if s == "Queries" {
			titles++
		}
	}
	require.Equal(t, 1, titles)

	rec.Reset()
	require.NoError(t, e.Update(h, nil, options.Map{"graphTitle": options.Of("Answers")}))
	require.Equal(t, 1, rec.Count("clear"))
	require.Contains(t, rec.Texts(), "Answers")
}

func TestPointer(t *testing.T) {
	var in, out []int
	e := engine(t, nil)
	rec := surface.NewRecorder(400, 300)
	h, err := e.Render(options.Bar, queries(), options.Map{
		"annotateDisplay": options.Of(true),
		"annotateFunctionIn": options.Function(func(c options.Call) any {
			in = append(in, c.Point)
			return nil
		}),
		"annotateFunctionOut": options.Function(func(c options.Call) any {
			out = append(out, c.Point)
			return nil
		}),
	}, rec)
	require.NoError(t, err)
	entries := e.instances[h].registry.Entries()
	require.Len(t, entries, 3)
	mid := func(i int) PointerEvent {
		b := entries[i]
		return PointerEvent{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2, Kind: "mousemove"}
	}

	tip, err := e.Pointer(h, mid(1))
	require.NoError(t, err)
	require.NotNil(t, tip)
	require.Contains(t, tip.Text, "AAAA")
	require.Contains(t, tip.Text, "20")
	require.Equal(t, 1, tip.Point)
	require.GreaterOrEqual(t, tip.X, 0.0)
	require.LessOrEqual(t, tip.X+tip.W, 400.0)

	_, err = e.Pointer(h, mid(1))
	require.NoError(t, err)
	require.Equal(t, []int{1}, in, "moving inside the same bar fires once")

	_, err = e.Pointer(h, mid(2))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, in)
	require.Equal(t, []int{1}, out)

	tip, err = e.Pointer(h, PointerEvent{X: mid(2).X, Y: mid(2).Y, Kind: "click"})
	require.NoError(t, err)
	require.Nil(t, tip, "only annotateFunction events annotate")

	tip, err = e.Pointer(h, PointerEvent{Kind: MouseOut})
	require.NoError(t, err)
	require.Nil(t, tip)
	require.Equal(t, []int{1, 2}, out)
}

func TestPointerDisabled(t *testing.T) {
	e := engine(t, nil)
	h, err := e.Render(options.Pie, &data.Payload{Segments: []data.Segment{
		{Value: 1}, {Value: 1},
	}}, nil, surface.NewRecorder(200, 200))
	require.NoError(t, err)
	tip, err := e.Pointer(h, PointerEvent{X: 100, Y: 100, Kind: "mousemove"})
	require.NoError(t, err)
	require.Nil(t, tip)
}

func TestExportImage(t *testing.T) {
	e := engine(t, nil)
	rec := surface.NewRecorder(320, 200)
	h, err := e.Render(options.Doughnut, &data.Payload{Segments: []data.Segment{
		{Value: 3, Label: "A"}, {Value: 1, Label: "AAAA"},
	}}, nil, rec)
	require.NoError(t, err)
	before := e.instances[h].registry.Entries()[0]

	var buf bytes.Buffer
	im, err := e.ExportImage(h, ExportOptions{Destination: NewView, Writer: &buf})
	require.NoError(t, err)
	require.Equal(t, 320, im.Bounds().Dx())
	require.Equal(t, 200, im.Bounds().Dy())
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	require.Equal(t, before, e.instances[h].registry.Entries()[0])

	_, err = e.ExportImage(h, ExportOptions{Destination: Download})
	require.ErrorIs(t, err, ErrNoImage)

	path := filepath.Join(t.TempDir(), "chart.png")
	_, err = e.ExportImage(h, ExportOptions{Destination: Download, Path: path})
	require.NoError(t, err)
	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, st.Size(), int64(0))

	rec.Reset()
	_, err = e.ExportImage(h, ExportOptions{Destination: CurrentView})
	require.NoError(t, err)
	require.Equal(t, 1, rec.Count("drawImage"))

	_, err = e.ExportImage(h, ExportOptions{Destination: "Printer"})
	require.Error(t, err)
}

func TestResize(t *testing.T) {
	type Case struct {
		name   string
		opts   options.Map
		view   Viewport
		w, h   int
		redraw bool
	}
	cases := []Case{
		{
			name: "fixed",
			view: Viewport{Width: 800, Height: 800},
			w:    400, h: 300,
		},
		{
			name: "aspect",
			opts: options.Map{"responsive": options.Of(true)},
			view: Viewport{Width: 800, Height: 100},
			w:    800, h: 600, redraw: true,
		},
		{
			name: "free",
			opts: options.Map{
				"responsive":          options.Of(true),
				"maintainAspectRatio": options.Of(false),
			},
			view: Viewport{Width: 200, Height: 100},
			w:    200, h: 100, redraw: true,
		},
		{
			name: "unchanged",
			opts: options.Map{"responsive": options.Of(true)},
			view: Viewport{Width: 400, Height: 300},
			w:    400, h: 300,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := engine(t, nil)
			rec := surface.NewRecorder(400, 300)
			h, err := e.Render(options.Bar, queries(), c.opts, rec)
			require.NoError(t, err)
			rec.Reset()
			require.NoError(t, e.Resize(c.view))
			require.Equal(t, c.w, rec.Width())
			require.Equal(t, c.h, rec.Height())
			require.Equal(t, c.redraw, rec.Count("clear") > 0)
			phase, _ := e.Phase(h)
			require.Equal(t, anim.Settled, phase)
			if c.redraw {
				b := e.instances[h].registry.Entries()[0]
				require.LessOrEqual(t, b.Right, float64(c.w))
			}
		})
	}
}

func TestHitOptions(t *testing.T) {
	e := engine(t, nil)
	h, err := e.Render(options.Line, queries(), options.Map{
		"annotateDisplay":         options.Of(true),
		"pointHitDetectionRadius": options.Of(4),
	}, surface.NewRecorder(400, 300))
	require.NoError(t, err)
	var p annotate.Entry
	for _, en := range e.instances[h].registry.Entries() {
		if en.Point == 2 {
			p = en
		}
	}
	require.True(t, p.HasPrev)
	tip, err := e.Pointer(h, PointerEvent{X: (p.X + p.PrevX) / 2, Y: (p.Y + p.PrevY) / 2, Kind: "mousemove"})
	require.NoError(t, err)
	require.NotNil(t, tip, "points along the line hit the segment end")
	require.Equal(t, 2, tip.Point)
}
