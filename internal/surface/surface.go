// Package surface is the 2D drawing context charts paint on.
package surface

import (
	"image"
	"image/color"
)

// Align is the horizontal text anchor.
type Align uint8

const (
	Left Align = iota
	Center
	Right
)

// VAlign is the vertical text anchor.
type VAlign uint8

const (
	Baseline VAlign = iota
	Top
	Middle
	Bottom
)

// ParseAlign reads "left", "center" and "right". Anything else is center.
func ParseAlign(s string) Align {
	switch s {
	case "left", "start":
		return Left
	case "right", "end":
		return Right
	}
	return Center
}

// ParseVAlign reads "top", "middle", "bottom" and "baseline".
func ParseVAlign(s string) VAlign {
	switch s {
	case "top", "hanging":
		return Top
	case "middle":
		return Middle
	case "baseline", "alphabetic":
		return Baseline
	}
	return Bottom
}

// Surface is a path based 2D context in pixel coordinates with y growing
// down. Angles are radians measured clockwise from the positive x axis.
type Surface interface {
	Width() int
	Height() int

	Push()
	Pop()

	SetFill(c color.Color)
	SetStroke(c color.Color)
	SetLineWidth(w float64)
	SetFont(f Font)

	NewPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Arc(x, y, r, a1, a2 float64)
	Rect(x, y, w, h float64)
	ClosePath()
	Fill()
	Stroke()
	FillPreserve()

	Clear(c color.Color)
	MeasureText(s string) (w, h float64)
	// Text draws s anchored at x, y rotated by angle radians around the
	// anchor.
	Text(s string, x, y float64, align Align, valign VAlign, angle float64)
	DrawImage(im image.Image, x, y int)
	Image() image.Image
}

// Dasher is implemented by surfaces that can draw dashed lines.
type Dasher interface {
	SetDash(dashes ...float64)
}

// RectClearer is implemented by surfaces that can reset a rectangle to
// transparent pixels.
type RectClearer interface {
	ClearRect(x, y, w, h float64)
}

// Resizer is implemented by surfaces whose pixel size can change.
type Resizer interface {
	Resize(w, h int)
}

// Circle adds a full circle to the current path.
func Circle(s Surface, x, y, r float64) {
	s.NewPath()
	s.Arc(x, y, r, 0, 2*3.141592653589793)
	s.ClosePath()
}

// Line strokes a single segment.
func Line(s Surface, x1, y1, x2, y2 float64) {
	s.NewPath()
	s.MoveTo(x1, y1)
	s.LineTo(x2, y2)
	s.Stroke()
}

// FillRect fills a rectangle with c. Transparent colors are skipped.
func FillRect(s Surface, c color.Color, x, y, w, h float64) {
	if !Visible(c) {
		return
	}
	s.SetFill(c)
	s.NewPath()
	s.Rect(x, y, w, h)
	s.Fill()
}

// StrokeRect outlines a rectangle.
func StrokeRect(s Surface, c color.Color, width, x, y, w, h float64) {
	if !Visible(c) || width <= 0 {
		return
	}
	s.SetStroke(c)
	s.SetLineWidth(width)
	s.NewPath()
	s.Rect(x, y, w, h)
	s.Stroke()
}
