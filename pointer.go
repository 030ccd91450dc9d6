package pdnsview

import (
	"strings"

	"github.com/vinceanalytics/pdnsview/internal/annotate"
	"github.com/vinceanalytics/pdnsview/internal/options"
)

// MouseOut is the pointer event kind reporting the pointer left the chart.
const MouseOut = "mouseout"

// PointerEvent is a pointer position in surface pixels. Kind is the event
// name matched against annotateFunction, such as "mousemove" or "click".
type PointerEvent struct {
	X, Y float64
	Kind string
}

// Pointer hit tests a pointer event against the shapes of the last completed
// frame and returns the tooltip to show, or nil when nothing is annotated.
// Entering and leaving a shape run annotateFunctionIn and
// annotateFunctionOut.
func (e *Engine) Pointer(h Handle, ev PointerEvent) (*annotate.Tooltip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	in, ok := e.instances[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	st := in.cur
	cfg := st.cfg
	if strings.EqualFold(ev.Kind, MouseOut) {
		if prev, ok := in.tracker.Current(); ok {
			in.tracker.Out(prev)
		}
		in.tracker.Reset()
		in.tip = nil
		return nil, nil
	}
	if !cfg.Bool("annotateDisplay") {
		return nil, nil
	}
	if kind := cfg.String("annotateFunction"); kind != "" && !strings.EqualFold(kind, ev.Kind) {
		return nil, nil
	}
	hit, ok := in.tracker.Move(&in.registry, ev.X, ev.Y, annotate.Options{
		Radius:   cfg.Float("pointHitDetectionRadius"),
		FullLine: cfg.Bool("detectAnnotateOnFullLine"),
		Zero:     cfg.Float("zeroValue"),
	})
	if !ok {
		in.tip = nil
		return nil, nil
	}
	label := cfg.ResolveString("annotateLabel", options.Value{}, options.Call{
		Name:    "annotateLabel",
		Surface: in.surface,
		Data:    st.payload,
		Stat:    st.stats,
		Series:  hit.Series,
		Point:   hit.Point,
	})
	text, err := st.templates.Render(label, st.stats.Vars(hit.Series, hit.Point))
	if err != nil {
		return nil, err
	}
	tip := annotate.NewTooltip(in.surface, cfg, text, ev.X, ev.Y,
		float64(in.surface.Width()), float64(in.surface.Height()))
	tip.Series, tip.Point = hit.Series, hit.Point
	in.tip = tip
	return tip, nil
}
