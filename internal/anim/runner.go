package anim

import (
	"github.com/vinceanalytics/pdnsview/internal/log"
	"github.com/vinceanalytics/pdnsview/internal/metrics"
)

// DrawFunc paints one frame.
type DrawFunc func(Frame) error

// Runner animates one chart instance on a host.
type Runner struct {
	name     string
	host     Host
	m        *Machine
	draw     DrawFunc
	settings Settings
	next     *Settings
	cycle    *Cycle
	gen      int
	err      error
}

// NewRunner returns a runner in the Undrawn phase. name identifies the
// instance in logs.
func NewRunner(name string, host Host, draw DrawFunc) (*Runner, error) {
	m, err := NewMachine()
	if err != nil {
		return nil, err
	}
	return &Runner{name: name, host: host, m: m, draw: draw}, nil
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase { return r.m.Phase() }

// Err returns the error of the last frame that failed.
func (r *Runner) Err() error { return r.err }

// Start requests a draw with s. A request arriving while a cycle is in
// flight is coalesced and started once that cycle completes.
func (r *Runner) Start(s Settings) error {
	now, err := r.m.RequestDraw()
	if err != nil {
		return err
	}
	if !now {
		r.next = &s
		log.Get().Debug().Str("chart", r.name).Msg("coalesced draw request")
		return nil
	}
	r.begin(s)
	return nil
}

func (r *Runner) begin(s Settings) {
	r.err = nil
	r.settings = s
	r.cycle = NewCycle(s)
	r.gen++
	log.Get().Debug().Str("chart", r.name).Int("generation", r.gen).Msg("animation started")
	r.host.RequestFrame(r.frame(r.gen))
}

func (r *Runner) frame(gen int) func() {
	return func() {
		if gen != r.gen || r.m.Phase() != Animating {
			return
		}
		f := r.cycle.Next()
		metrics.Frames.Inc()
		if err := r.draw(f); err != nil {
			r.err = err
			log.Get().Err(err).Str("chart", r.name).Msg("frame failed")
			r.finish()
			return
		}
		switch {
		case f.Last:
			r.finish()
		case f.Delay > 0:
			if err := r.m.Send(Pause); err != nil {
				r.err = err
				return
			}
			r.host.After(f.Delay, func() {
				if gen != r.gen || r.m.Phase() != Pausing {
					return
				}
				if err := r.m.Send(Resume); err != nil {
					r.err = err
					return
				}
				r.host.RequestFrame(r.frame(gen))
			})
		default:
			r.host.RequestFrame(r.frame(gen))
		}
	}
}

func (r *Runner) finish() {
	pending, err := r.m.Finish()
	if err != nil {
		r.err = err
		return
	}
	log.Get().Debug().Str("chart", r.name).Msg("animation settled")
	if r.settings.OnComplete != nil {
		r.settings.OnComplete()
	}
	if pending && r.next != nil {
		s := *r.next
		r.next = nil
		if _, err := r.m.RequestDraw(); err != nil {
			r.err = err
			return
		}
		r.begin(s)
	}
}

// Redraw paints one frame at full progress without animating.
func (r *Runner) Redraw() error {
	if err := r.m.Send(Redraw); err != nil {
		return err
	}
	r.gen++
	s := r.settings
	if s.Easing == nil {
		s = Static()
	}
	err := r.draw(Frame{Progress: 1, Linear: s.Stop, Last: true})
	r.err = err
	if serr := r.m.Send(Settle); serr != nil && err == nil {
		err = serr
	}
	return err
}

// Resize reports a viewport change. On the next frame changed is asked
// whether the measured size moved; only then the instance is redrawn,
// animated when animate is set. Resizes of unsettled instances are ignored,
// the in-flight cycle measures the new size on its next frame.
func (r *Runner) Resize(changed func() bool, animate bool) error {
	switch r.m.Phase() {
	case Settled, Resized:
	default:
		return nil
	}
	if err := r.m.Send(Resize); err != nil {
		return err
	}
	gen := r.gen
	r.host.RequestFrame(func() {
		if gen != r.gen || r.m.Phase() != Resized {
			return
		}
		if !changed() {
			if err := r.m.Send(Settle); err != nil {
				r.err = err
			}
			return
		}
		if animate {
			if _, err := r.m.RequestDraw(); err != nil {
				r.err = err
				return
			}
			r.begin(r.settings)
			return
		}
		if err := r.Redraw(); err != nil {
			r.err = err
		}
	})
	return nil
}

// Stop abandons the in-flight cycle. Pending frames become no-ops.
func (r *Runner) Stop() {
	r.gen++
	r.next = nil
	switch r.m.Phase() {
	case Animating, Pausing:
		_, _ = r.m.Finish()
	}
}
