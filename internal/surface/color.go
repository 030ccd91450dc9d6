package surface

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var named = map[string]drawing.Color{
	"black":       drawing.ColorBlack,
	"white":       drawing.ColorWhite,
	"red":         {R: 255, A: 255},
	"green":       {G: 128, A: 255},
	"lime":        {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"yellow":      {R: 255, G: 255, A: 255},
	"orange":      {R: 255, G: 165, A: 255},
	"purple":      {R: 128, B: 128, A: 255},
	"pink":        {R: 255, G: 192, B: 203, A: 255},
	"teal":        {G: 128, B: 128, A: 255},
	"cyan":        {G: 255, B: 255, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
	"lightgray":   {R: 211, G: 211, B: 211, A: 255},
	"lightgrey":   {R: 211, G: 211, B: 211, A: 255},
	"transparent": drawing.ColorTransparent,
}

// ParseColor reads CSS style colors: #rgb, #rrggbb, rgb(), rgba() and a few
// names. "none", the empty string and unknown colors report false.
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none":
		return drawing.ColorTransparent, false
	case strings.HasPrefix(s, "#"):
		h := s[1:]
		if len(h) != 3 && len(h) != 6 || !isHex(h) {
			return drawing.ColorTransparent, false
		}
		return drawing.ColorFromHex(h), true
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	}
	c, ok := named[s]
	return c, ok
}

// Color parses s falling back to def.
func Color(s string, def color.Color) color.Color {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}

// Visible reports whether c has any opacity.
func Visible(c color.Color) bool {
	if c == nil {
		return false
	}
	_, _, _, a := c.RGBA()
	return a != 0
}

func isHex(s string) bool {
	for _, r := range s {
		if !('0' <= r && r <= '9' || 'a' <= r && r <= 'f') {
			return false
		}
	}
	return true
}

func parseRGB(s string) (color.Color, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return drawing.ColorTransparent, false
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return drawing.ColorTransparent, false
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return drawing.ColorTransparent, false
		}
		v[i] = f
	}
	c := drawing.Color{
		R: channel(v[0]),
		G: channel(v[1]),
		B: channel(v[2]),
		A: channel(v[3] * 255),
	}
	return c, true
}

func channel(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f + 0.5)
}
