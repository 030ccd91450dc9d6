package pdnsview

import (
	"github.com/vinceanalytics/pdnsview/internal/anim"
	"github.com/vinceanalytics/pdnsview/internal/annotate"
	"github.com/vinceanalytics/pdnsview/internal/chart"
	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/layout"
	"github.com/vinceanalytics/pdnsview/internal/metrics"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/stat"
	"github.com/vinceanalytics/pdnsview/internal/surface"
	"github.com/vinceanalytics/pdnsview/internal/tmpl"
)

// state is everything one draw request paints from. It is replaced as a
// whole, never mutated, so frames of a running cycle keep their inputs.
type state struct {
	payload   *data.Payload
	caller    options.Map
	cfg       *options.Config
	settings  anim.Settings
	stats     *stat.Table
	templates *tmpl.Engine
}

type instance struct {
	id      Handle
	chart   options.Chart
	engine  *Engine
	surface surface.Surface

	cur *state
	// pending replaces cur once the running cycle completes.
	pending *state

	registry annotate.Registry
	tracker  annotate.Tracker
	tip      *annotate.Tooltip
	runner   *anim.Runner
	measures layout.Measures
	// layered is set while the static parts of the last frame are on the
	// surface and still match cur.
	layered bool

	// aspect is width over height at creation, kept by maintainAspectRatio.
	aspect   float64
	revealed bool
}

// templated lists the options holding templates checked when options are
// merged.
var templated = []string{"annotateLabel", "inGraphDataTmpl"}

func (in *instance) build(p *data.Payload, caller options.Map) (*state, error) {
	cfg, err := in.engine.merger.Resolve(in.chart, caller)
	if err != nil {
		return nil, err
	}
	s, err := anim.SettingsFrom(cfg)
	if err != nil {
		return nil, err
	}
	t := in.engine.templates.With(tmpl.SettingsFrom(cfg))
	for _, name := range templated {
		if v := cfg.Value(name); v.Tag() == options.TagScalar {
			if err := t.Check(cfg.String(name)); err != nil {
				return nil, err
			}
		}
	}
	payload := p.Clone()
	payload.Normalize(in.chart)
	st := &state{
		payload:   payload,
		caller:    caller,
		cfg:       cfg,
		templates: t,
		stats:     stat.Build(payload, cfg),
	}
	user := s.OnComplete
	s.OnComplete = func() {
		if user != nil {
			user()
		}
		in.promote()
	}
	st.settings = s
	return st, nil
}

// configure builds a state and installs it now, or after the running cycle
// when one is in flight.
func (in *instance) configure(p *data.Payload, caller options.Map) error {
	st, err := in.build(p, caller)
	if err != nil {
		return err
	}
	if in.cur == nil || !in.busy() {
		in.cur = st
		in.pending = nil
		in.layered = false
		return nil
	}
	in.pending = st
	return nil
}

// latest returns the state the next draw will paint.
func (in *instance) latest() *state {
	if in.pending != nil {
		return in.pending
	}
	return in.cur
}

func (in *instance) busy() bool {
	if in.runner == nil {
		return false
	}
	switch in.runner.Phase() {
	case anim.Animating, anim.Pausing:
		return true
	}
	return false
}

func (in *instance) promote() {
	if in.pending != nil {
		in.cur = in.pending
		in.pending = nil
		in.layered = false
	}
}

func (in *instance) start() error {
	metrics.Draws.WithLabelValues(string(in.chart)).Inc()
	in.layered = false
	if err := in.runner.Start(in.latest().settings); err != nil {
		return err
	}
	if _, ok := in.engine.host.(*anim.Immediate); ok {
		return in.runner.Err()
	}
	return nil
}

// frame paints one animation frame on the instance surface.
func (in *instance) frame(fr anim.Frame) error {
	st := in.cur
	f := &chart.Frame{
		Surface:    in.surface,
		Config:     st.cfg,
		Payload:    st.payload,
		Stats:      st.stats,
		Templates:  st.templates,
		Registry:   &in.registry,
		Progress:   fr.Progress,
		Final:      fr.Final(st.settings),
		KeepStatic: in.layered,
	}
	in.layered = false
	if err := chart.Draw(f); err != nil {
		return err
	}
	in.measures = f.Measures
	// in graph data of a final frame may reach outside the clear rectangle
	in.layered = !f.Final
	if f.Final {
		in.tracker.Reset()
		in.tip = nil
	}
	return nil
}

// trackCallbacks wires annotateFunctionIn and annotateFunctionOut to the
// pointer tracker.
func (in *instance) trackCallbacks() {
	in.tracker.In = func(_ *annotate.Entry, next annotate.Entry) {
		in.callback("annotateFunctionIn", next)
	}
	in.tracker.Out = func(prev annotate.Entry) {
		in.callback("annotateFunctionOut", prev)
	}
}

func (in *instance) callback(name string, e annotate.Entry) {
	st := in.cur
	v := st.cfg.Value(name)
	if v.Tag() != options.TagFunc {
		return
	}
	v.Eval(options.Call{
		Name:    name,
		Surface: in.surface,
		Data:    st.payload,
		Stat:    st.stats,
		Series:  e.Series,
		Point:   e.Point,
		Extra:   e,
	})
}
