// Package data holds the chart payload handed to the engine by the web
// pages.
package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/vinceanalytics/pdnsview/internal/options"
	"gopkg.in/yaml.v3"
)

// Missing marks a value absent from a series. It is distinct from zero.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Series is an ordered sequence of values that may contain missing markers.
// Null and empty string entries decode to missing.
type Series []float64

func (s *Series) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return s.from(raw)
}

func (s *Series) UnmarshalYAML(node *yaml.Node) error {
	var raw []any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return s.from(raw)
}

func (s Series) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if IsMissing(v) {
			b.WriteString("null")
			continue
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

func (s *Series) from(raw []any) error {
	o := make(Series, len(raw))
	for i, v := range raw {
		switch e := v.(type) {
		case nil:
			o[i] = Missing
		case string:
			if strings.TrimSpace(e) == "" {
				o[i] = Missing
				continue
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(e), 64)
			if err != nil {
				return fmt.Errorf("data: invalid value %q at %d", e, i)
			}
			o[i] = f
		default:
			f, ok := options.ToFloat(e)
			if !ok {
				return fmt.Errorf("data: invalid value %v at %d", e, i)
			}
			o[i] = f
		}
	}
	*s = o
	return nil
}

// Dataset is one plotted series with its style fields. Style fields hold
// option values so they can be scalars, per point arrays or functions.
type Dataset struct {
	Label            string        `json:"label,omitempty" yaml:"label,omitempty"`
	Title            string        `json:"title,omitempty" yaml:"title,omitempty"`
	Data             Series        `json:"data" yaml:"data"`
	FillColor        options.Value `json:"fillColor,omitempty" yaml:"fillColor,omitempty"`
	StrokeColor      options.Value `json:"strokeColor,omitempty" yaml:"strokeColor,omitempty"`
	PointColor       options.Value `json:"pointColor,omitempty" yaml:"pointColor,omitempty"`
	PointStrokeColor options.Value `json:"pointStrokeColor,omitempty" yaml:"pointStrokeColor,omitempty"`
	StrokeWidth      options.Value `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
	LineDash         options.Value `json:"lineDash,omitempty" yaml:"lineDash,omitempty"`
	// Axis is 1 for the left (or bottom) scale and 2 for the right one.
	Axis int `json:"axis,omitempty" yaml:"axis,omitempty"`
	// Type switches one dataset of a bar chart to "Line".
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// IsLine reports a line dataset inside a bar chart.
func (d *Dataset) IsLine() bool { return strings.EqualFold(d.Type, "line") }

// YAxis returns the scale index, 1 or 2.
func (d *Dataset) YAxis() int {
	if d.Axis == 2 {
		return 2
	}
	return 1
}

// Segment is one wedge of the flat pie payload.
type Segment struct {
	Value float64       `json:"value" yaml:"value"`
	Label string        `json:"label,omitempty" yaml:"label,omitempty"`
	Title string        `json:"title,omitempty" yaml:"title,omitempty"`
	Color options.Value `json:"color,omitempty" yaml:"color,omitempty"`
}

func (s *Segment) UnmarshalJSON(b []byte) error {
	type seg struct {
		Value any           `json:"value"`
		Label string        `json:"label"`
		Title string        `json:"title"`
		Color options.Value `json:"color"`
	}
	var o seg
	if err := json.Unmarshal(b, &o); err != nil {
		return err
	}
	var v Series
	if err := v.from([]any{o.Value}); err != nil {
		return err
	}
	*s = Segment{Value: v[0], Label: o.Label, Title: o.Title, Color: o.Color}
	return nil
}

func (s *Segment) UnmarshalYAML(node *yaml.Node) error {
	var o struct {
		Value any           `yaml:"value"`
		Label string        `yaml:"label"`
		Title string        `yaml:"title"`
		Color options.Value `yaml:"color"`
	}
	if err := node.Decode(&o); err != nil {
		return err
	}
	var v Series
	if err := v.from([]any{o.Value}); err != nil {
		return err
	}
	*s = Segment{Value: v[0], Label: o.Label, Title: o.Title, Color: o.Color}
	return nil
}

// Payload is either the multi series form (Labels and Datasets) or the flat
// segment form used by pie, doughnut and polar area charts.
type Payload struct {
	Labels   []string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	XPos     []float64 `json:"xPos,omitempty" yaml:"xPos,omitempty"`
	Datasets []Dataset `json:"datasets,omitempty" yaml:"datasets,omitempty"`
	Segments []Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
}

// Decode parses a YAML or JSON payload. A top level list is read as the
// flat segment form.
func Decode(b []byte) (*Payload, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	p := &Payload{}
	if len(node.Content) == 0 {
		return p, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		if err := root.Decode(&p.Segments); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err := root.Decode(p); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile reads a payload file.
func LoadFile(path string) (*Payload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("invalid payload %s: %w", path, err)
	}
	return p, nil
}

// Len returns the number of points per dataset after normalisation.
func (p *Payload) Len() int {
	n := len(p.Labels)
	if len(p.XPos) > n {
		n = len(p.XPos)
	}
	return n
}

// Clone returns a deep copy of the value slices; style values are shared
// since they are never mutated.
func (p *Payload) Clone() *Payload {
	o := &Payload{
		Labels:   append([]string(nil), p.Labels...),
		XPos:     append([]float64(nil), p.XPos...),
		Datasets: make([]Dataset, len(p.Datasets)),
		Segments: append([]Segment(nil), p.Segments...),
	}
	for i := range p.Datasets {
		o.Datasets[i] = p.Datasets[i]
		o.Datasets[i].Data = append(Series(nil), p.Datasets[i].Data...)
	}
	return o
}

// Normalize brings the payload into the shape renderers read.
//
// Radial segment charts read Segments; every other chart reads Datasets. A
// payload in the other form is converted. Labels are padded to the longest
// dataset and every dataset is padded with missing values to the label
// count.
func (p *Payload) Normalize(chart options.Chart) {
	if chart.Segmented() {
		if len(p.Segments) == 0 && len(p.Datasets) > 0 {
			d := p.Datasets[0]
			for i, v := range d.Data {
				s := Segment{Value: v}
				if i < len(p.Labels) {
					s.Label = p.Labels[i]
				}
				if d.FillColor.Tag() == options.TagArray && i < d.FillColor.Len() {
					s.Color = options.Of(d.FillColor.Eval(options.Call{Series: 0, Point: i}))
				}
				p.Segments = append(p.Segments, s)
			}
		}
		return
	}
	if len(p.Datasets) == 0 && len(p.Segments) > 0 {
		d := Dataset{Data: make(Series, len(p.Segments))}
		p.Labels = p.Labels[:0]
		colors := make([]any, len(p.Segments))
		hasColor := false
		for i, s := range p.Segments {
			d.Data[i] = s.Value
			p.Labels = append(p.Labels, s.Label)
			if s.Color.IsSet() {
				hasColor = true
				colors[i] = s.Color.Eval(options.Call{Series: -1, Point: -1})
			}
		}
		if hasColor {
			d.FillColor = options.List(colors...)
		}
		p.Datasets = []Dataset{d}
	}
	n := p.Len()
	for i := range p.Datasets {
		if len(p.Datasets[i].Data) > n {
			n = len(p.Datasets[i].Data)
		}
	}
	for len(p.Labels) < n {
		p.Labels = append(p.Labels, "")
	}
	for i := range p.Datasets {
		d := &p.Datasets[i]
		for len(d.Data) < n {
			d.Data = append(d.Data, Missing)
		}
	}
}
