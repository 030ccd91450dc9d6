// Package pdnsview renders the usage charts of the passive DNS front-end.
//
// An Engine owns every live chart instance. Instances are addressed by
// opaque handles; each one keeps its payload, resolved options, animation
// state and the shapes of its last completed frame for pointer hit tests.
package pdnsview

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/vinceanalytics/pdnsview/internal/anim"
	"github.com/vinceanalytics/pdnsview/internal/chart"
	"github.com/vinceanalytics/pdnsview/internal/data"
	"github.com/vinceanalytics/pdnsview/internal/log"
	"github.com/vinceanalytics/pdnsview/internal/metrics"
	"github.com/vinceanalytics/pdnsview/internal/options"
	"github.com/vinceanalytics/pdnsview/internal/surface"
	"github.com/vinceanalytics/pdnsview/internal/tmpl"
)

var (
	ErrUnknownChart  = chart.ErrUnknownChart
	ErrUnknownHandle = errors.New("pdnsview: unknown chart handle")
	ErrNoImage       = errors.New("pdnsview: export needs a writer or a path")
)

// Handle identifies a chart instance.
type Handle ulid.ULID

func (h Handle) String() string { return ulid.ULID(h).String() }

// ParseHandle reads a handle printed by Handle.String.
func ParseHandle(s string) (Handle, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %q", ErrUnknownHandle, s)
	}
	return Handle(id), nil
}

// Options configure an Engine.
type Options struct {
	// Host schedules animation frames. Nil runs every cycle synchronously
	// inside the call that started it.
	Host anim.Host
	// Personal is an optional YAML or JSON personal defaults file.
	Personal string
}

// Engine is the registry of chart instances. Every public method and every
// frame scheduled on an asynchronous host runs under one lock.
type Engine struct {
	mu        sync.Mutex
	host      anim.Host
	merger    *options.Merger
	templates *tmpl.Engine
	instances map[Handle]*instance
	viewport  Viewport
}

// New returns an engine.
func New(o Options) (*Engine, error) {
	m := options.NewMerger(Validators()...)
	if o.Personal != "" {
		if err := m.LoadPersonal(o.Personal); err != nil {
			return nil, err
		}
	}
	t, err := tmpl.New()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		merger:    m,
		templates: t,
		instances: map[Handle]*instance{},
	}
	switch h := o.Host.(type) {
	case nil:
		e.host = &anim.Immediate{}
	case *anim.Immediate:
		e.host = h
	default:
		e.host = &locked{host: h, mu: &e.mu}
	}
	return e, nil
}

// Validators resolve the function names found in options against their
// registries when options are merged.
func Validators() []options.Validator {
	return []options.Validator{
		options.Names("animationEasing", anim.IsEasing),
		statFunctions,
	}
}

func statFunctions(c *options.Config) error {
	v := c.Value("statFunctions")
	for i := 0; i < v.Len(); i++ {
		name := options.ToString(v.Eval(options.At("statFunctions", -1, i)))
		if !tmpl.IsStatFunction(name) {
			return fmt.Errorf("%w: statFunctions=%q", options.ErrUnknownFunction, name)
		}
	}
	return nil
}

// Close releases every instance.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for h := range e.instances {
		e.release(h)
	}
	e.templates.Close()
}

// Render creates an instance drawing p on s and starts its first draw. With
// a synchronous host the whole animation completes before Render returns.
func (e *Engine) Render(kind options.Chart, p *data.Payload, opts options.Map, s surface.Surface) (Handle, error) {
	if _, ok := chart.For(kind); !ok {
		return Handle{}, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}
	if p == nil {
		p = &data.Payload{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	h := Handle(ulid.Make())
	in := &instance{
		id:      h,
		chart:   kind,
		surface: s,
		engine:  e,
	}
	if err := in.configure(p, opts); err != nil {
		return Handle{}, err
	}
	r, err := anim.NewRunner(h.String(), e.host, in.frame)
	if err != nil {
		return Handle{}, err
	}
	in.runner = r
	in.aspect = float64(s.Width()) / float64(max(1, s.Height()))
	in.trackCallbacks()
	if err := in.resize(e.viewport); err != nil {
		return Handle{}, err
	}
	e.instances[h] = in
	metrics.Instances.Inc()
	log.Get().Debug().Str("chart", h.String()).Str("type", string(kind)).Msg("instance created")
	if in.cur.cfg.Bool("dynamicDisplay") {
		return h, nil
	}
	in.revealed = true
	return h, in.start()
}

// Update replaces the payload when p is not nil and overlays opts on the
// options the instance was created with, then draws again. A draw requested
// while animating starts once the running cycle completes.
func (e *Engine) Update(h Handle, p *data.Payload, opts options.Map) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	in, ok := e.instances[h]
	if !ok {
		return ErrUnknownHandle
	}
	last := in.latest()
	caller := options.Map{}
	for k, v := range last.caller {
		caller[k] = v
	}
	for k, v := range opts {
		caller[k] = v
	}
	if p == nil {
		p = last.payload
	}
	if err := in.configure(p, caller); err != nil {
		return err
	}
	if !in.revealed {
		return nil
	}
	return in.start()
}

// Reveal starts the first draw of an instance created with dynamicDisplay.
func (e *Engine) Reveal(h Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	in, ok := e.instances[h]
	if !ok {
		return ErrUnknownHandle
	}
	if in.revealed {
		return nil
	}
	in.revealed = true
	return in.start()
}

// Release drops an instance. Frames still scheduled for it do nothing.
func (e *Engine) Release(h Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.instances[h]; !ok {
		return ErrUnknownHandle
	}
	e.release(h)
	return nil
}

func (e *Engine) release(h Handle) {
	in := e.instances[h]
	in.runner.Stop()
	delete(e.instances, h)
	metrics.Instances.Dec()
	log.Get().Debug().Str("chart", h.String()).Msg("instance released")
}

// Phase returns the animation phase of an instance.
func (e *Engine) Phase(h Handle) (anim.Phase, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	in, ok := e.instances[h]
	if !ok {
		return anim.Undrawn, ErrUnknownHandle
	}
	return in.runner.Phase(), nil
}

// Err returns the error of the last failed frame of an instance.
func (e *Engine) Err(h Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	in, ok := e.instances[h]
	if !ok {
		return ErrUnknownHandle
	}
	return in.runner.Err()
}

// Handles lists the live instances.
func (e *Engine) Handles() []Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	o := make([]Handle, 0, len(e.instances))
	for h := range e.instances {
		o = append(o, h)
	}
	return o
}

// locked runs the callbacks of an asynchronous host under the engine lock.
type locked struct {
	host anim.Host
	mu   *sync.Mutex
}

func (l *locked) RequestFrame(fn func()) {
	l.host.RequestFrame(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		fn()
	})
}

func (l *locked) After(d time.Duration, fn func()) {
	l.host.After(d, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		fn()
	})
}
