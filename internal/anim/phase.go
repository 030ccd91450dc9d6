package anim

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Phase is the drawing state of one chart instance.
type Phase uint8

const (
	Undrawn Phase = iota
	Animating
	Pausing
	Settled
	Resized
	ForcedRedraw
)

func (p Phase) String() string {
	switch p {
	case Animating:
		return "animating"
	case Pausing:
		return "pausing"
	case Settled:
		return "settled"
	case Resized:
		return "resized"
	case ForcedRedraw:
		return "forcedRedraw"
	default:
		return "undrawn"
	}
}

// Event drives phase transitions.
type Event string

const (
	// Draw starts a new animation cycle.
	Draw Event = "DRAW"
	// Pause parks the cycle between two repeats.
	Pause Event = "PAUSE"
	// Resume continues after a pause.
	Resume Event = "RESUME"
	// Settle ends a cycle, or a resize that did not change the size.
	Settle Event = "SETTLE"
	// Resize reports a viewport change.
	Resize Event = "RESIZE"
	// Redraw forces a full redraw without animation.
	Redraw Event = "REDRAW"
)

var transitions = map[Phase]map[Event]Phase{
	Undrawn: {
		Draw:   Animating,
		Redraw: ForcedRedraw,
	},
	Animating: {
		Pause:  Pausing,
		Settle: Settled,
	},
	Pausing: {
		Resume: Animating,
		Settle: Settled,
	},
	Settled: {
		Draw:   Animating,
		Resize: Resized,
		Redraw: ForcedRedraw,
	},
	Resized: {
		Draw:   Animating,
		Settle: Settled,
		Resize: Resized,
		Redraw: ForcedRedraw,
	},
	ForcedRedraw: {
		Draw:   Animating,
		Settle: Settled,
	},
}

// CanTransition returns the phase e leads to from the given phase.
func CanTransition(from Phase, e Event) (Phase, bool) {
	to, ok := transitions[from][e]
	return to, ok
}

type machineContext struct {
	Transitions int
	Last        statekit.EventType
}

func record(ctx **machineContext, e statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).Transitions++
	(*ctx).Last = e.Type
}

var phaseIDs = map[Phase]statekit.StateID{}

func init() {
	for p := Undrawn; p <= ForcedRedraw; p++ {
		phaseIDs[p] = statekit.StateID(p.String())
	}
}

func id(p Phase) statekit.StateID { return phaseIDs[p] }

func ev(e Event) statekit.EventType { return statekit.EventType(e) }

func newMachine(ctx *machineContext) (*statekit.MachineConfig[*machineContext], error) {
	return statekit.NewMachine[*machineContext]("chart").
		WithInitial(id(Undrawn)).
		WithContext(ctx).
		WithAction("record", record).
		State(id(Undrawn)).
		On(ev(Draw)).Target(id(Animating)).Do("record").
		On(ev(Redraw)).Target(id(ForcedRedraw)).Do("record").
		Done().
		State(id(Animating)).
		On(ev(Pause)).Target(id(Pausing)).Do("record").
		On(ev(Settle)).Target(id(Settled)).Do("record").
		Done().
		State(id(Pausing)).
		On(ev(Resume)).Target(id(Animating)).Do("record").
		On(ev(Settle)).Target(id(Settled)).Do("record").
		Done().
		State(id(Settled)).
		On(ev(Draw)).Target(id(Animating)).Do("record").
		On(ev(Resize)).Target(id(Resized)).Do("record").
		On(ev(Redraw)).Target(id(ForcedRedraw)).Do("record").
		Done().
		State(id(Resized)).
		On(ev(Draw)).Target(id(Animating)).Do("record").
		On(ev(Settle)).Target(id(Settled)).Do("record").
		On(ev(Resize)).Target(id(Resized)).Do("record").
		On(ev(Redraw)).Target(id(ForcedRedraw)).Do("record").
		Done().
		State(id(ForcedRedraw)).
		On(ev(Draw)).Target(id(Animating)).Do("record").
		On(ev(Settle)).Target(id(Settled)).Do("record").
		Done().
		Build()
}

// Machine tracks the phase of one instance. Events without a transition
// from the current phase are rejected before they reach the interpreter.
type Machine struct {
	interp *statekit.Interpreter[*machineContext]
	ctx    *machineContext
	phase  Phase
	// pending records a draw request that arrived while animating.
	pending bool
}

// NewMachine returns a started machine in the Undrawn phase.
func NewMachine() (*Machine, error) {
	ctx := &machineContext{}
	cfg, err := newMachine(ctx)
	if err != nil {
		return nil, err
	}
	interp := statekit.NewInterpreter(cfg)
	interp.UpdateContext(func(c **machineContext) {
		*c = ctx
	})
	interp.Start()
	return &Machine{interp: interp, ctx: ctx}, nil
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Send applies e.
func (m *Machine) Send(e Event) error {
	to, ok := CanTransition(m.phase, e)
	if !ok {
		return fmt.Errorf("anim: no transition from %s on %s", m.phase, e)
	}
	m.interp.Send(statekit.Event{Type: ev(e)})
	if !m.interp.Matches(id(to)) {
		return fmt.Errorf("anim: machine in %s, want %s", m.interp.State().Value, id(to))
	}
	m.phase = to
	return nil
}

// RequestDraw starts a cycle, or marks a redraw pending when a cycle is in
// flight. It reports whether a new cycle must be started now.
func (m *Machine) RequestDraw() (bool, error) {
	switch m.phase {
	case Animating, Pausing:
		m.pending = true
		return false, nil
	}
	return true, m.Send(Draw)
}

// Finish settles the in-flight cycle. It reports a coalesced draw request,
// which the caller starts as the next cycle.
func (m *Machine) Finish() (bool, error) {
	if err := m.Send(Settle); err != nil {
		return false, err
	}
	p := m.pending
	m.pending = false
	return p, nil
}

// Pending reports a coalesced draw request.
func (m *Machine) Pending() bool { return m.pending }

// Transitions returns how many transitions the interpreter applied.
func (m *Machine) Transitions() int {
	return m.ctx.Transitions
}
