package options

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFunction is returned when an option names a function missing
// from its registry.
var ErrUnknownFunction = errors.New("options: unknown function name")

// Validator checks a merged configuration, typically resolving names
// against an explicit registry.
type Validator func(*Config) error

// Names returns a validator failing when the string option name is not one
// of known.
func Names(name string, known func(string) bool) Validator {
	return func(c *Config) error {
		v := c.Value(name)
		if v.Tag() != TagScalar {
			return nil
		}
		s := c.String(name)
		if s == "" || known(s) {
			return nil
		}
		return fmt.Errorf("%w: %s=%q", ErrUnknownFunction, name, s)
	}
}

// Merger layers defaults, personal defaults and caller options.
type Merger struct {
	// Global personal defaults apply to every chart type.
	Global Map
	// PerChart personal defaults apply to one chart type.
	PerChart   map[Chart]Map
	Validators []Validator
}

// NewMerger returns a merger without personal defaults.
func NewMerger(v ...Validator) *Merger {
	return &Merger{
		Global:     Map{},
		PerChart:   map[Chart]Map{},
		Validators: v,
	}
}

// Resolve merges, lowest precedence first: chart defaults, common defaults,
// global personal defaults, per chart personal defaults and caller options.
// The merge is a shallow key overwrite and unknown keys are kept.
func (m *Merger) Resolve(chart Chart, caller Map) (*Config, error) {
	o := ChartDefaults(chart)
	layers := []Map{Common(), m.Global, m.PerChart[chart], caller}
	for _, l := range layers {
		for k, v := range l {
			if !v.IsSet() {
				continue
			}
			o[k] = v
		}
	}
	c := &Config{chart: chart, values: o}
	for _, fn := range m.Validators {
		if err := fn(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Personal is the on disk layout of personal defaults: a global section and
// one section per chart type.
type Personal struct {
	Global Map            `yaml:"global" json:"global"`
	Charts map[string]Map `yaml:"charts" json:"charts"`
}

// LoadPersonal reads personal defaults from a YAML or JSON file into m.
func (m *Merger) LoadPersonal(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var p Personal
	if err := yaml.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("invalid personal defaults %s: %w", path, err)
	}
	for k, v := range p.Global {
		m.Global[k] = v
	}
	for name, o := range p.Charts {
		c, ok := ParseChart(name)
		if !ok {
			return fmt.Errorf("invalid personal defaults %s: unknown chart %q", path, name)
		}
		if m.PerChart[c] == nil {
			m.PerChart[c] = Map{}
		}
		for k, v := range o {
			m.PerChart[c][k] = v
		}
	}
	return nil
}

// Decode parses a YAML or JSON document of options.
func Decode(b []byte) (Map, error) {
	o := Map{}
	if len(strings.TrimSpace(string(b))) == 0 {
		return o, nil
	}
	if err := yaml.Unmarshal(b, &o); err != nil {
		return nil, err
	}
	return o, nil
}

// LoadFile reads an options file.
func LoadFile(path string) (Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("invalid options file %s: %w", path, err)
	}
	return o, nil
}

// Unknown returns caller keys that are not part of any default layer. They
// are still carried through by Resolve.
func Unknown(chart Chart, caller Map) []string {
	known := ChartDefaults(chart)
	common := Common()
	var o []string
	for k := range caller {
		if _, ok := known[k]; ok {
			continue
		}
		if _, ok := common[k]; ok {
			continue
		}
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}
