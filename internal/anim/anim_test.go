package anim

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vinceanalytics/pdnsview/internal/options"
)

func TestEasingEndpoints(t *testing.T) {
	names := Easings()
	require.GreaterOrEqual(t, len(names), 28)
	for _, name := range names {
		e, ok := Lookup(name)
		require.True(t, ok, name)
		require.InDelta(t, 0, e(0), 1e-12, name)
		require.InDelta(t, 1, e(1), 1e-12, name)
	}
	_, ok := Lookup("easeSideways")
	require.False(t, ok)
}

func TestSettingsFrom(t *testing.T) {
	cfg, err := options.NewMerger().Resolve(options.Bar, options.Map{
		"animationEasing":    options.Of("easeInOutBack"),
		"animationPauseTime": options.Of(0.5),
	})
	require.NoError(t, err)
	s, err := SettingsFrom(cfg)
	require.NoError(t, err)
	require.True(t, s.Enabled)
	require.Equal(t, 60, s.Steps)
	require.Equal(t, 500*time.Millisecond, s.Pause)
	require.Equal(t, 1.0, s.Stop)

	bad := cfg.With(options.Map{"animationEasing": options.Of("wobble")})
	_, err = SettingsFrom(bad)
	require.True(t, errors.Is(err, options.ErrUnknownFunction))
}

func settings(steps int) Settings {
	e, _ := Lookup("easeOutQuart")
	return Settings{Enabled: true, Steps: steps, Easing: e, Start: 0, Stop: 1, Count: 1}
}

func TestCycleMonotonic(t *testing.T) {
	c := NewCycle(settings(7))
	var got []float64
	for !c.Done() {
		f := c.Next()
		got = append(got, f.Progress)
	}
	require.Len(t, got, 7)
	for i := 1; i < len(got); i++ {
		require.GreaterOrEqual(t, got[i], got[i-1])
	}
	require.Equal(t, 1.0, got[len(got)-1])
}

func TestCycleRepeatAndBackward(t *testing.T) {
	s := settings(4)
	s.Count = 2
	s.Backward = true
	s.Pause = time.Second
	c := NewCycle(s)
	var frames []Frame
	for !c.Done() {
		frames = append(frames, c.Next())
	}
	require.Len(t, frames, 16)
	require.Equal(t, 1.0, frames[3].Linear)
	require.False(t, frames[3].Backward)
	require.True(t, frames[4].Backward)
	require.Equal(t, 0.0, frames[7].Linear)
	require.Equal(t, time.Second, frames[7].Delay)
	require.True(t, frames[15].Last)
	require.Zero(t, frames[15].Delay)
}

func TestCycleDisabled(t *testing.T) {
	s := settings(60)
	s.Enabled = false
	c := NewCycle(s)
	f := c.Next()
	require.True(t, f.Last)
	require.Equal(t, 1.0, f.Progress)
	require.True(t, c.Done())
}

func TestTransitions(t *testing.T) {
	type Case struct {
		from Phase
		ev   Event
		to   Phase
		ok   bool
	}
	cases := []Case{
		{Undrawn, Draw, Animating, true},
		{Animating, Settle, Settled, true},
		{Animating, Draw, 0, false},
		{Settled, Resize, Resized, true},
		{Resized, Settle, Settled, true},
		{Resized, Draw, Animating, true},
		{Settled, Redraw, ForcedRedraw, true},
		{Pausing, Resume, Animating, true},
		{Undrawn, Resize, 0, false},
	}
	for _, c := range cases {
		to, ok := CanTransition(c.from, c.ev)
		require.Equal(t, c.ok, ok, "%s %s", c.from, c.ev)
		if ok {
			require.Equal(t, c.to, to)
		}
	}
}

func TestMachine(t *testing.T) {
	m, err := NewMachine()
	require.NoError(t, err)
	require.Equal(t, Undrawn, m.Phase())

	now, err := m.RequestDraw()
	require.NoError(t, err)
	require.True(t, now)
	require.Equal(t, Animating, m.Phase())

	now, err = m.RequestDraw()
	require.NoError(t, err)
	require.False(t, now)
	require.True(t, m.Pending())

	pending, err := m.Finish()
	require.NoError(t, err)
	require.True(t, pending)
	require.Equal(t, Settled, m.Phase())

	require.Error(t, m.Send(Resume))
	require.NoError(t, m.Send(Resize))
	require.NoError(t, m.Send(Settle))
	require.Equal(t, 4, m.Transitions())
}

// manual runs one queued callback per call to step.
type manual struct {
	queue []func()
}

func (m *manual) RequestFrame(fn func())           { m.queue = append(m.queue, fn) }
func (m *manual) After(_ time.Duration, fn func()) { m.queue = append(m.queue, fn) }

func (m *manual) step() bool {
	if len(m.queue) == 0 {
		return false
	}
	fn := m.queue[0]
	m.queue = m.queue[1:]
	fn()
	return true
}

func TestRunnerProgressWithResizes(t *testing.T) {
	host := &manual{}
	var progress []float64
	r, err := NewRunner("t", host, func(f Frame) error {
		progress = append(progress, f.Progress)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, r.Start(settings(10)))
	for host.step() {
		if r.Phase() == Animating {
			require.NoError(t, r.Resize(func() bool { return true }, false))
		}
	}
	require.Equal(t, Settled, r.Phase())
	require.Len(t, progress, 10)
	for i := 1; i < len(progress); i++ {
		require.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	require.Equal(t, 1.0, progress[len(progress)-1])
}

func TestRunnerCoalesces(t *testing.T) {
	host := &manual{}
	frames := 0
	completed := 0
	r, err := NewRunner("t", host, func(Frame) error {
		frames++
		return nil
	})
	require.NoError(t, err)
	s := settings(3)
	s.OnComplete = func() { completed++ }
	require.NoError(t, r.Start(s))
	host.step()
	require.NoError(t, r.Start(s))
	require.NoError(t, r.Start(s))
	for host.step() {
	}
	require.Equal(t, 6, frames)
	require.Equal(t, 2, completed)
	require.Equal(t, Settled, r.Phase())
}

func TestRunnerResize(t *testing.T) {
	host := &Immediate{}
	frames := 0
	r, err := NewRunner("t", host, func(Frame) error {
		frames++
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, r.Start(settings(5)))
	require.Equal(t, 5, frames)

	require.NoError(t, r.Resize(func() bool { return false }, false))
	require.Equal(t, Settled, r.Phase())
	require.Equal(t, 5, frames)

	require.NoError(t, r.Resize(func() bool { return true }, false))
	require.Equal(t, Settled, r.Phase())
	require.Equal(t, 6, frames)
}

func TestRunnerError(t *testing.T) {
	boom := errors.New("boom")
	r, err := NewRunner("t", &Immediate{}, func(Frame) error { return boom })
	require.NoError(t, err)
	require.NoError(t, r.Start(settings(5)))
	require.ErrorIs(t, r.Err(), boom)
	require.Equal(t, Settled, r.Phase())
}
