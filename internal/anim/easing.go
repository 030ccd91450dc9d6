package anim

import (
	"math"
	"sort"
)

// Easing maps linear progress in [0,1] to eased progress. Every curve maps 0
// to 0 and 1 to 1; back and elastic curves leave [0,1] in between.
type Easing func(t float64) float64

var easings = map[string]Easing{
	"linear": func(t float64) float64 { return t },

	"easeInQuad":    func(t float64) float64 { return t * t },
	"easeOutQuad":   func(t float64) float64 { return -t * (t - 2) },
	"easeInOutQuad": inOut(func(t float64) float64 { return t * t }),

	"easeInCubic":    func(t float64) float64 { return t * t * t },
	"easeOutCubic":   out(func(t float64) float64 { return t * t * t }),
	"easeInOutCubic": inOut(func(t float64) float64 { return t * t * t }),

	"easeInQuart":    func(t float64) float64 { return math.Pow(t, 4) },
	"easeOutQuart":   out(func(t float64) float64 { return math.Pow(t, 4) }),
	"easeInOutQuart": inOut(func(t float64) float64 { return math.Pow(t, 4) }),

	"easeInQuint":    func(t float64) float64 { return math.Pow(t, 5) },
	"easeOutQuint":   out(func(t float64) float64 { return math.Pow(t, 5) }),
	"easeInOutQuint": inOut(func(t float64) float64 { return math.Pow(t, 5) }),

	"easeInSine":    inSine,
	"easeOutSine":   func(t float64) float64 { return math.Sin(t * math.Pi / 2) },
	"easeInOutSine": func(t float64) float64 { return -0.5 * (math.Cos(math.Pi*t) - 1) },

	"easeInExpo":    inExpo,
	"easeOutExpo":   out(inExpo),
	"easeInOutExpo": inOut(inExpo),

	"easeInCirc":    inCirc,
	"easeOutCirc":   out(inCirc),
	"easeInOutCirc": inOut(inCirc),

	"easeInElastic":    inElastic,
	"easeOutElastic":   out(inElastic),
	"easeInOutElastic": inOut(inElastic),

	"easeInBack":    inBack,
	"easeOutBack":   out(inBack),
	"easeInOutBack": inOut(inBack),

	"easeInBounce":    out(outBounce),
	"easeOutBounce":   outBounce,
	"easeInOutBounce": inOut(out(outBounce)),
}

// Lookup returns the named easing curve.
func Lookup(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}

// IsEasing reports whether name is a known curve.
func IsEasing(name string) bool {
	_, ok := easings[name]
	return ok
}

// Easings returns the sorted curve names.
func Easings() []string {
	names := make([]string, 0, len(easings))
	for k := range easings {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// out mirrors a curve: ease-in becomes ease-out and back.
func out(f Easing) Easing {
	return func(t float64) float64 { return 1 - f(1-t) }
}

func inOut(f Easing) Easing {
	return func(t float64) float64 {
		if t < 0.5 {
			return f(2*t) / 2
		}
		return 1 - f(2-2*t)/2
	}
}

func inSine(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Cos(t*math.Pi/2)
}

func inExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	return math.Pow(2, 10*(t-1))
}

func inCirc(t float64) float64 {
	return 1 - math.Sqrt(1-t*t)
}

func inElastic(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	const p = 0.3
	const s = p / 4
	t--
	return -math.Pow(2, 10*t) * math.Sin((t-s)*(2*math.Pi)/p)
}

func inBack(t float64) float64 {
	const s = 1.70158
	if t == 1 {
		return 1
	}
	return t * t * ((s+1)*t - s)
}

func outBounce(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return 7.5625*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return 7.5625*t*t + 0.9375
	case t >= 1:
		return 1
	default:
		t -= 2.625 / 2.75
		return 7.5625*t*t + 0.984375
	}
}
