package surface

import (
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font describes text drawn on a surface. Family is kept for callers that
// map it to their own faces; the raster surface draws every family with the
// Go fonts.
type Font struct {
	Family string
	Size   float64
	Style  string
}

func (f Font) bold() bool {
	s := strings.ToLower(f.Style)
	return strings.Contains(s, "bold") || strings.Contains(s, "700") || strings.Contains(s, "800") || strings.Contains(s, "900")
}

func (f Font) italic() bool {
	s := strings.ToLower(f.Style)
	return strings.Contains(s, "italic") || strings.Contains(s, "oblique")
}

type faceKey struct {
	bold, italic bool
	size         float64
}

var faces = struct {
	sync.Mutex
	parsed map[faceKey]*opentype.Font
	cache  map[faceKey]font.Face
}{
	parsed: map[faceKey]*opentype.Font{},
	cache:  map[faceKey]font.Face{},
}

func ttf(bold, italic bool) []byte {
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	}
	return goregular.TTF
}

// Face returns a cached font face for f. The basic 7x13 face is used when
// the embedded fonts can not be parsed.
func Face(f Font) font.Face {
	size := math.Max(1, math.Round(f.Size*2)/2)
	k := faceKey{bold: f.bold(), italic: f.italic(), size: size}
	faces.Lock()
	defer faces.Unlock()
	if fc, ok := faces.cache[k]; ok {
		return fc
	}
	pk := faceKey{bold: k.bold, italic: k.italic}
	ft, ok := faces.parsed[pk]
	if !ok {
		var err error
		ft, err = opentype.Parse(ttf(k.bold, k.italic))
		if err != nil {
			return basicfont.Face7x13
		}
		faces.parsed[pk] = ft
	}
	fc, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	faces.cache[k] = fc
	return fc
}
