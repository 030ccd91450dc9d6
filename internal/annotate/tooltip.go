package annotate

import (
	"math"
	"strings"

	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// Tracker remembers the shape under the pointer and reports transitions.
type Tracker struct {
	current *Entry
	// In runs when the pointer enters a shape. prev is nil when the
	// pointer came from outside any shape.
	In func(prev *Entry, next Entry)
	// Out runs when the pointer leaves a shape.
	Out func(prev Entry)
}

// Current returns the shape under the pointer.
func (t *Tracker) Current() (Entry, bool) {
	if t.current == nil {
		return Entry{}, false
	}
	return *t.current, true
}

// Move hit tests x, y and fires the callbacks when the shape under the
// pointer changed.
func (t *Tracker) Move(r *Registry, x, y float64, o Options) (Entry, bool) {
	e, ok := r.Hit(x, y, o)
	switch {
	case ok && t.current != nil && t.current.Same(e):
	case ok:
		prev := t.current
		if prev != nil && t.Out != nil {
			t.Out(*prev)
		}
		if t.In != nil {
			t.In(prev, e)
		}
		t.current = &e
	case t.current != nil:
		if t.Out != nil {
			t.Out(*t.current)
		}
		t.current = nil
	}
	return e, ok
}

// Reset forgets the current shape without firing callbacks.
func (t *Tracker) Reset() { t.current = nil }

// Tooltip is a floating label positioned near the pointer.
type Tooltip struct {
	Text  string   `json:"text"`
	Lines []string `json:"-"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	W     float64  `json:"w"`
	H     float64  `json:"h"`
	// Series and Point identify the described record.
	Series int `json:"series"`
	Point  int `json:"point"`

	padding    float64
	lineHeight float64
}

// Place positions a w by h box offset from the pointer, flipping to the
// other side of the pointer on any edge it would cross, then clamping to
// the viewport.
func Place(px, py, w, h, offX, offY, viewW, viewH float64) (float64, float64) {
	x := px + offX
	if x+w > viewW {
		x = px - offX - w
	}
	y := py + offY
	if y+h > viewH {
		y = py - offY - h
	}
	x = math.Max(0, math.Min(x, viewW-w))
	y = math.Max(0, math.Min(y, viewH-h))
	return x, y
}

// NewTooltip measures text with the annotate style and places it near the
// pointer inside a viewW by viewH viewport. Lines are split on newlines and
// "<BR>".
func NewTooltip(s surface.Surface, cfg *options.Config, text string, px, py, viewW, viewH float64) *Tooltip {
	st := layout.Style(cfg, "annotate")
	pad := cfg.Space("annotatePadding")
	lines := strings.Split(strings.ReplaceAll(text, "<BR>", "\n"), "\n")
	var w, lh float64
	for _, l := range lines {
		lw, h := st.Measure(s, l)
		w = math.Max(w, lw)
		lh = math.Max(lh, h)
	}
	t := &Tooltip{
		Text:       text,
		Lines:      lines,
		W:          w + 2*pad,
		H:          lh*float64(len(lines)) + 2*pad,
		padding:    pad,
		lineHeight: lh,
	}
	t.X, t.Y = Place(px, py, t.W, t.H,
		cfg.Space("annotateOffsetX"), cfg.Space("annotateOffsetY"), viewW, viewH)
	return t
}

// Draw paints the tooltip box and text.
func (t *Tooltip) Draw(s surface.Surface, cfg *options.Config) {
	if t == nil {
		return
	}
	s.Push()
	defer s.Pop()
	if c, ok := surface.ParseColor(cfg.String("annotateBackgroundColor")); ok {
		surface.FillRect(s, c, t.X, t.Y, t.W, t.H)
	}
	if c, ok := surface.ParseColor(cfg.String("annotateBorderColor")); ok {
		if w := cfg.Line("annotateBorderWidth"); w > 0 {
			surface.StrokeRect(s, c, w, t.X, t.Y, t.W, t.H)
		}
	}
	st := layout.Style(cfg, "annotate")
	st.Apply(s)
	for i, l := range t.Lines {
		y := t.Y + t.padding + float64(i)*t.lineHeight + t.lineHeight/2
		s.Text(l, t.X+t.padding, y, surface.Left, surface.Middle, 0)
	}
}
