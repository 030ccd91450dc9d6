package layout

import (
	"image/color"

	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// DrawStatic paints background, borders, titles, axis labels, units and the
// legend. These never animate.
func DrawStatic(s surface.Surface, cfg *options.Config, m *Measures) {
	s.Push()
	defer s.Pop()
	if c, ok := surface.ParseColor(cfg.String("canvasBackgroundColor")); ok {
		surface.FillRect(s, c, m.Frame.X, m.Frame.Y, m.Frame.W, m.Frame.H)
	}
	if cfg.Bool("canvasBorders") {
		w := cfg.Line("canvasBordersWidth")
		s.Push()
		surface.SetLineStyle(s, cfg.String("canvasBordersStyle"), w)
		surface.StrokeRect(s, surface.Color(cfg.String("canvasBordersColor"), color.Black), w,
			m.Frame.X+w/2, m.Frame.Y+w/2, m.Frame.W-w, m.Frame.H-w)
		s.Pop()
	}
	if m.Title.Show {
		drawTitle(s, cfg, "graphTitle", m.Title, m.Frame)
	}
	if m.SubTitle.Show {
		drawTitle(s, cfg, "graphSubTitle", m.SubTitle, m.Frame)
	}
	text(s, Style(cfg, "footNote"), m.FootNote, surface.Left)
	xs := Style(cfg, "xAxis")
	text(s, xs, m.XAxisLabel, surface.Center)
	ys := Style(cfg, "yAxis")
	text(s, ys, m.YAxisLabel, surface.Center)
	text(s, ys, m.YAxisLabel2, surface.Center)
	us := Style(cfg, "yAxisUnit")
	text(s, us, m.YAxisUnit, surface.Right)
	text(s, us, m.YAxisUnit2, surface.Left)
	m.Legend.Draw(s, cfg)
}

func drawTitle(s surface.Surface, cfg *options.Config, prefix string, a Anchor, frame Rect) {
	st := Style(cfg, prefix)
	if c, ok := surface.ParseColor(cfg.String(prefix + "BackgroundColor")); ok {
		_, h := st.Measure(s, a.Text)
		surface.FillRect(s, c, frame.X, a.Y-h/2, frame.W, h)
	}
	text(s, st, a, surface.Center)
}

func text(s surface.Surface, st TextStyle, a Anchor, align surface.Align) {
	if !a.Show {
		return
	}
	st.Apply(s)
	s.Text(a.Text, a.X, a.Y, align, surface.Middle, a.Angle)
}

// Repaint resets the Clear rectangle of m to the canvas background and
// reports whether s supports it. The static parts around it are kept.
func Repaint(s surface.Surface, cfg *options.Config, m *Measures) bool {
	rc, ok := s.(surface.RectClearer)
	if !ok {
		return false
	}
	r := m.Clear
	rc.ClearRect(r.X, r.Y, r.W, r.H)
	if c, ok := surface.ParseColor(cfg.String("canvasBackgroundColor")); ok {
		s.Push()
		surface.FillRect(s, c, r.X, r.Y, r.W, r.H)
		s.Pop()
	}
	return true
}
