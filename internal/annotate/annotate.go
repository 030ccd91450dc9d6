// Package annotate keeps the shapes drawn by the last completed frame and
// answers pointer hit tests against them.
package annotate

import (
	"math"

	"github.com/vinceanalytics/pdnsview/internal/metrics"
)

// Kind is the shape of an entry.
type Kind uint8

const (
	Rect Kind = iota
	Arc
	Point
)

func (k Kind) String() string {
	switch k {
	case Arc:
		return "arc"
	case Point:
		return "point"
	default:
		return "rect"
	}
}

// Entry is one registered shape. Entries refer to stat records by index.
type Entry struct {
	Kind          Kind
	Series, Point int

	// X, Y is the arc midpoint or the point position.
	X, Y float64

	// arc
	Inner, Outer float64
	Start, End   float64

	// rect
	Left, Top, Right, Bottom float64

	// HasPrev marks a point connected to the previous point of its line at
	// PrevX, PrevY.
	HasPrev      bool
	PrevX, PrevY float64
}

// Same reports whether e and o describe the same data point.
func (e Entry) Same(o Entry) bool {
	return e.Kind == o.Kind && e.Series == o.Series && e.Point == o.Point
}

// Options tune the hit test.
type Options struct {
	// Radius is the point hit distance.
	Radius float64
	// FullLine also matches points along the segment joining a point to
	// its predecessor.
	FullLine bool
	// Zero is the slope threshold below which a segment is treated as
	// vertical or horizontal.
	Zero float64
}

// Registry holds the entries of one instance in drawing order.
type Registry struct {
	entries []Entry
}

// Reset drops every entry. It is called before a frame registers shapes.
func (r *Registry) Reset() { r.entries = r.entries[:0] }

func (r *Registry) Add(e Entry) { r.entries = append(r.entries, e) }

func (r *Registry) Len() int { return len(r.entries) }

func (r *Registry) Entries() []Entry { return r.entries }

// Hit returns the topmost entry containing x, y. Entries are scanned from
// the most recently drawn and the first match wins.
func (r *Registry) Hit(x, y float64, o Options) (Entry, bool) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if Contains(e, x, y, o) {
			metrics.HitTests.WithLabelValues(e.Kind.String()).Inc()
			return e, true
		}
	}
	metrics.HitTests.WithLabelValues("miss").Inc()
	return Entry{}, false
}

// Contains applies the shape test of e.
func Contains(e Entry, x, y float64, o Options) bool {
	switch e.Kind {
	case Arc:
		return inArc(e, x, y)
	case Point:
		if math.Hypot(x-e.X, y-e.Y) <= o.Radius {
			return true
		}
		if o.FullLine && e.HasPrev {
			return SegmentDistance(x, y, e.PrevX, e.PrevY, e.X, e.Y, o.Zero) <= o.Radius
		}
		return false
	default:
		return x >= e.Left && x <= e.Right && y >= e.Top && y <= e.Bottom
	}
}

// Normalize maps an angle to [0, 2π).
func Normalize(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func inArc(e Entry, x, y float64) bool {
	dx, dy := x-e.X, y-e.Y
	d := math.Hypot(dx, dy)
	if d < e.Inner || d > e.Outer {
		return false
	}
	span := e.End - e.Start
	if span >= 2*math.Pi {
		return true
	}
	if span <= 0 {
		return false
	}
	rel := Normalize(math.Atan2(dy, dx) - e.Start)
	return rel <= span
}

// SegmentDistance returns the distance from x, y to the segment joining
// x1, y1 and x2, y2. Beyond the segment ends the distance is infinite, the
// end points themselves are matched by the point test.
func SegmentDistance(x, y, x1, y1, x2, y2, zero float64) float64 {
	dx, dy := x2-x1, y2-y1
	switch {
	case math.Abs(dx) <= zero && math.Abs(dy) <= zero:
		return math.Hypot(x-x1, y-y1)
	case math.Abs(dx) <= zero:
		if !between(y, y1, y2) {
			return math.Inf(1)
		}
		return math.Abs(x - x1)
	case math.Abs(dy) <= zero:
		if !between(x, x1, x2) {
			return math.Inf(1)
		}
		return math.Abs(y - y1)
	}
	t := ((x-x1)*dx + (y-y1)*dy) / (dx*dx + dy*dy)
	if t < 0 || t > 1 {
		return math.Inf(1)
	}
	return math.Abs(dy*x-dx*y+x2*y1-y2*x1) / math.Hypot(dx, dy)
}

func between(v, a, b float64) bool {
	return v >= math.Min(a, b) && v <= math.Max(a, b)
}
