package layout

import (
	"image/color"
	"math"

	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// TextStyle is a font and its color.
type TextStyle struct {
	Font  surface.Font
	Color color.Color
}

// Style reads <prefix>FontFamily, <prefix>FontSize, <prefix>FontStyle and
// <prefix>FontColor. The size is rescaled by textScale.
func Style(cfg *options.Config, prefix string) TextStyle {
	family := cfg.String(prefix + "FontFamily")
	if family == "" {
		family = cfg.String("defaultFontFamily")
	}
	size := cfg.Text(prefix + "FontSize")
	if size <= 0 {
		size = math.Ceil(12 * cfg.TextScale())
	}
	return TextStyle{
		Font: surface.Font{
			Family: family,
			Size:   size,
			Style:  cfg.String(prefix + "FontStyle"),
		},
		Color: surface.Color(cfg.String(prefix+"FontColor"), color.Black),
	}
}

// Apply sets the font and the fill color used for text.
func (t TextStyle) Apply(s surface.Surface) {
	s.SetFont(t.Font)
	s.SetFill(t.Color)
}

// Measure returns the extent of text in style t.
func (t TextStyle) Measure(s surface.Surface, text string) (float64, float64) {
	s.SetFont(t.Font)
	w, h := s.MeasureText(text)
	if h < t.Font.Size {
		h = t.Font.Size
	}
	return w, h
}
