package surface

import (
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"
)

// Op is one recorded drawing call.
type Op struct {
	Name string
	Args []float64
	Text string
}

func (o Op) String() string {
	if o.Text != "" {
		return fmt.Sprintf("%s(%q %v)", o.Name, o.Text, o.Args)
	}
	return fmt.Sprintf("%s%v", o.Name, o.Args)
}

// Recorder is a surface that only records calls. It measures text with a
// fixed advance of 0.6 em and does not support dashes.
type Recorder struct {
	W, H int
	Ops  []Op
	font Font
}

var _ Surface = (*Recorder)(nil)

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h, font: Font{Size: 12}}
}

func (r *Recorder) rec(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, o := range r.Ops {
		if o.Name == name {
			n++
		}
	}
	return n
}

// Texts returns the drawn strings in order.
func (r *Recorder) Texts() []string {
	var o []string
	for _, op := range r.Ops {
		if op.Name == "text" {
			o = append(o, op.Text)
		}
	}
	return o
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) Resize(w, h int) { r.W, r.H = w, h }

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }
func (r *Recorder) Push()       { r.rec("push") }
func (r *Recorder) Pop()        { r.rec("pop") }

func (r *Recorder) SetFill(c color.Color)   { r.rec("fillStyle", rgba(c)...) }
func (r *Recorder) SetStroke(c color.Color) { r.rec("strokeStyle", rgba(c)...) }
func (r *Recorder) SetLineWidth(w float64)  { r.rec("lineWidth", w) }
func (r *Recorder) SetFont(f Font) {
	r.font = f
	r.rec("font", f.Size)
}

func (r *Recorder) NewPath()                         { r.rec("newPath") }
func (r *Recorder) MoveTo(x, y float64)              { r.rec("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)              { r.rec("lineTo", x, y) }
func (r *Recorder) QuadraticTo(cx, cy, x, y float64) { r.rec("quadraticTo", cx, cy, x, y) }
func (r *Recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.rec("cubicTo", c1x, c1y, c2x, c2y, x, y)
}
func (r *Recorder) Arc(x, y, radius, a1, a2 float64) { r.rec("arc", x, y, radius, a1, a2) }
func (r *Recorder) Rect(x, y, w, h float64)          { r.rec("rect", x, y, w, h) }
func (r *Recorder) ClosePath()                       { r.rec("closePath") }
func (r *Recorder) Fill()                            { r.rec("fill") }
func (r *Recorder) FillPreserve()                    { r.rec("fillPreserve") }
func (r *Recorder) Stroke()                          { r.rec("stroke") }
func (r *Recorder) Clear(c color.Color)              { r.rec("clear", rgba(c)...) }
func (r *Recorder) ClearRect(x, y, w, h float64)     { r.rec("clearRect", x, y, w, h) }

func (r *Recorder) MeasureText(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * r.font.Size * 0.6, r.font.Size
}

func (r *Recorder) Text(s string, x, y float64, align Align, valign VAlign, angle float64) {
	r.Ops = append(r.Ops, Op{Name: "text", Text: s, Args: []float64{x, y, float64(align), float64(valign), angle}})
}

func (r *Recorder) DrawImage(im image.Image, x, y int) {
	b := im.Bounds()
	r.rec("drawImage", float64(x), float64(y), float64(b.Dx()), float64(b.Dy()))
}

func (r *Recorder) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, r.W, r.H))
}

func rgba(c color.Color) []float64 {
	if c == nil {
		return []float64{0, 0, 0, 0}
	}
	cr, cg, cb, ca := c.RGBA()
	return []float64{float64(cr >> 8), float64(cg >> 8), float64(cb >> 8), float64(ca >> 8)}
}
