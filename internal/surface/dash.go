package surface

import "strings"

// Dash returns the dash pattern for a line style scaled by the line width.
// A solid style returns nil.
func Dash(style string, width float64) []float64 {
	if width <= 0 {
		width = 1
	}
	var base []float64
	switch strings.ToLower(style) {
	case "dotted":
		base = []float64{1, 2}
	case "shortdash":
		base = []float64{3, 1}
	case "shortdot":
		base = []float64{1, 1}
	case "shortdashdot":
		base = []float64{3, 1, 1, 1}
	case "shortdashdotdot":
		base = []float64{3, 1, 1, 1, 1, 1}
	case "dash", "dashed":
		base = []float64{4, 3}
	case "longdash":
		base = []float64{8, 3}
	case "dashdot":
		base = []float64{4, 3, 1, 3}
	case "longdashdot":
		base = []float64{8, 3, 1, 3}
	case "longdashdotdot":
		base = []float64{8, 3, 1, 3, 1, 3}
	default:
		return nil
	}
	o := make([]float64, len(base))
	for i := range base {
		o[i] = base[i] * width
	}
	return o
}

// SetLineStyle applies a dash style when s supports dashes. Surfaces
// without dash support draw solid lines.
func SetLineStyle(s Surface, style string, width float64) {
	d, ok := s.(Dasher)
	if !ok {
		return
	}
	d.SetDash(Dash(style, width)...)
}
