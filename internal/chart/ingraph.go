package chart

import (
	"math"
	"strings"

	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/stat"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// inGraphData writes a label next to every drawn record. Every in graph
// option may vary per record.
func (f *Frame) inGraphData() error {
	cfg := f.Config
	if !cfg.Bool("inGraphDataShow") {
		return nil
	}
	s := f.Surface
	s.Push()
	defer s.Pop()
	layout.Style(cfg, "inGraphData").Apply(s)
	for i := range f.Stats.Rows {
		for j := range f.Stats.Rows[i] {
			r := &f.Stats.Rows[i][j]
			if r.Missing || !r.Geom.Set {
				continue
			}
			src := f.option("inGraphDataTmpl", i, j)
			if src == "" {
				continue
			}
			text, err := f.render(src, f.Stats.Vars(i, j))
			if err != nil {
				return err
			}
			var x, y, angle float64
			if f.Stats.Segmented {
				x, y, angle = f.arcLabel(r, i, j)
			} else {
				x, y, angle = f.recordLabel(r, i, j)
			}
			s.Text(text, x, y,
				surface.ParseAlign(f.option("inGraphDataAlign", i, j)),
				surface.ParseVAlign(f.option("inGraphDataVAlign", i, j)),
				angle)
		}
	}
	return nil
}

func (f *Frame) option(name string, i, j int) string {
	return f.Config.ResolveString(name, options.Value{}, f.call(name, i, j))
}

func (f *Frame) space(name string, i, j int) float64 {
	return f.Config.ResolveFloat(f.Config.SpaceScale(), name, options.Value{}, f.call(name, i, j))
}

func (f *Frame) number(name string, i, j int) float64 {
	return f.Config.ResolveFloat(options.NoRescale, name, options.Value{}, f.call(name, i, j))
}

// recordLabel positions the label of a bar or a point. Positions count 1
// for the left or bottom edge, 2 for the middle and 3 for the right or top
// edge of a bar.
func (f *Frame) recordLabel(r *stat.Record, i, j int) (x, y, angle float64) {
	g := r.Geom
	x, y = g.X, g.Y
	if g.Right > g.Left || g.Bottom > g.Top {
		switch f.number("inGraphDataXPosition", i, j) {
		case 1:
			x = g.Left
		case 3:
			x = g.Right
		default:
			x = (g.Left + g.Right) / 2
		}
		switch f.number("inGraphDataYPosition", i, j) {
		case 1:
			y = g.Bottom
		case 2:
			y = (g.Top + g.Bottom) / 2
		default:
			y = g.Top
		}
	}
	x += f.space("inGraphDataPaddingX", i, j)
	y -= f.space("inGraphDataPaddingY", i, j)
	angle, _ = f.rotation(i, j, 0)
	return x, y, angle
}

// arcLabel positions the label of a segment along its radius and angle.
func (f *Frame) arcLabel(r *stat.Record, i, j int) (x, y, angle float64) {
	g := r.Geom
	pad := f.space("inGraphDataPaddingX", i, j)
	var d float64
	switch f.number("inGraphDataRadiusPosition", i, j) {
	case 1:
		d = g.Inner + pad
	case 2:
		d = (g.Inner + g.Outer) / 2
	default:
		d = g.Outer + pad
	}
	var a float64
	switch f.number("inGraphDataAnglePosition", i, j) {
	case 1:
		a = g.Start
	case 3:
		a = g.End
	default:
		a = (g.Start + g.End) / 2
	}
	x = g.MidX + d*math.Cos(a)
	y = g.MidY + d*math.Sin(a)
	angle, _ = f.rotation(i, j, a)
	return x, y, angle
}

// rotation reads inGraphDataRotate: degrees, or "inRadiusAxis" to follow
// the radius at angle a. "inRadiusAxisRotateLabels" also keeps the text
// upright.
func (f *Frame) rotation(i, j int, a float64) (float64, bool) {
	v := f.Config.Resolve(options.NoRescale, "inGraphDataRotate", options.Value{}, f.call("inGraphDataRotate", i, j))
	if deg, ok := options.ToFloat(v); ok {
		return deg * math.Pi / 180, true
	}
	switch s := strings.ToLower(options.ToString(v)); s {
	case "inradiusaxis":
		return a, true
	case "inradiusaxisrotatelabels":
		if math.Cos(a) < 0 {
			return a + math.Pi, true
		}
		return a, true
	}
	return 0, false
}
