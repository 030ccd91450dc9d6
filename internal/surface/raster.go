package surface

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Raster is an in-memory RGBA surface.
type Raster struct {
	dc     *gg.Context
	fill   color.Color
	stroke color.Color
}

var (
	_ Surface     = (*Raster)(nil)
	_ Dasher      = (*Raster)(nil)
	_ Resizer     = (*Raster)(nil)
	_ RectClearer = (*Raster)(nil)
)

func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

// Resize replaces the backing image with a blank one of the new size.
func (r *Raster) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r.dc = gg.NewContext(w, h)
	r.fill = drawing.ColorBlack
	r.stroke = drawing.ColorBlack
	r.dc.SetColor(r.fill)
	r.SetFont(Font{Size: 12})
}

func (r *Raster) Width() int  { return r.dc.Width() }
func (r *Raster) Height() int { return r.dc.Height() }

func (r *Raster) Push() { r.dc.Push() }
func (r *Raster) Pop()  { r.dc.Pop() }

func (r *Raster) SetFill(c color.Color) {
	r.fill = c
	r.dc.SetFillStyle(gg.NewSolidPattern(c))
}

func (r *Raster) SetStroke(c color.Color) {
	r.stroke = c
	r.dc.SetStrokeStyle(gg.NewSolidPattern(c))
}

func (r *Raster) SetLineWidth(w float64) { r.dc.SetLineWidth(w) }

func (r *Raster) SetDash(dashes ...float64) { r.dc.SetDash(dashes...) }

func (r *Raster) SetFont(f Font) { r.dc.SetFontFace(Face(f)) }

func (r *Raster) NewPath()            { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

func (r *Raster) QuadraticTo(cx, cy, x, y float64) { r.dc.QuadraticTo(cx, cy, x, y) }

func (r *Raster) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (r *Raster) Arc(x, y, radius, a1, a2 float64) { r.dc.DrawArc(x, y, radius, a1, a2) }

func (r *Raster) Rect(x, y, w, h float64) { r.dc.DrawRectangle(x, y, w, h) }

func (r *Raster) ClosePath()    { r.dc.ClosePath() }
func (r *Raster) Fill()         { r.dc.Fill() }
func (r *Raster) FillPreserve() { r.dc.FillPreserve() }
func (r *Raster) Stroke()       { r.dc.Stroke() }

func (r *Raster) Clear(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
	r.SetFill(r.fill)
	r.SetStroke(r.stroke)
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	im, ok := r.dc.Image().(draw.Image)
	if !ok {
		return
	}
	rect := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(im, rect, image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) MeasureText(s string) (float64, float64) {
	return r.dc.MeasureString(s)
}

func (r *Raster) Text(s string, x, y float64, align Align, valign VAlign, angle float64) {
	ax := 0.0
	switch align {
	case Center:
		ax = 0.5
	case Right:
		ax = 1
	}
	ay := 0.0
	switch valign {
	case Top:
		ay = 1
	case Middle:
		ay = 0.5
	case Bottom:
		ay = 0
	}
	if angle == 0 {
		r.dc.DrawStringAnchored(s, x, y, ax, ay)
		return
	}
	r.dc.Push()
	r.dc.RotateAbout(angle, x, y)
	r.dc.DrawStringAnchored(s, x, y, ax, ay)
	r.dc.Pop()
}

func (r *Raster) DrawImage(im image.Image, x, y int) { r.dc.DrawImage(im, x, y) }

func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the surface as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }
