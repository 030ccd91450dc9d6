package pdnsview

import (
	"errors"
	"math"

	"github.com/vinceanalytics/pdnsview/internal/anim"
	"github.com/vinceanalytics/pdnsview/internal/log"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// Viewport is the size responsive charts follow.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Resize reports a viewport change to every responsive instance. Instances
// keeping their aspect ratio derive the height from the width. An instance
// is redrawn on its next frame only when its size actually changed,
// animated when responsiveAnimation is set. Instances still animating
// ignore the change.
func (e *Engine) Resize(v Viewport) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = v
	var errs []error
	for _, in := range e.instances {
		if err := in.resize(v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// size returns the surface size of the instance inside viewport v.
func (in *instance) size(v Viewport) (int, int) {
	w, h := v.Width, v.Height
	if in.cur.cfg.Bool("maintainAspectRatio") && in.aspect > 0 {
		h = int(math.Round(float64(w) / in.aspect))
	}
	return max(w, 1), max(h, 1)
}

func (in *instance) resize(v Viewport) error {
	cfg := in.cur.cfg
	if !cfg.Bool("responsive") || v.Width <= 0 {
		return nil
	}
	r, ok := in.surface.(surface.Resizer)
	if !ok {
		return nil
	}
	w, h := in.size(v)
	if in.runner.Phase() == anim.Undrawn {
		r.Resize(w, h)
		return nil
	}
	changed := func() bool {
		if in.surface.Width() == w && in.surface.Height() == h {
			return false
		}
		log.Get().Debug().Str("chart", in.id.String()).Int("width", w).Int("height", h).Msg("resized")
		r.Resize(w, h)
		in.layered = false
		return true
	}
	return in.runner.Resize(changed, cfg.Bool("responsiveAnimation"))
}
