package tmpl

import (
	"math"
	"regexp"
	"sort"
)

var statCall = regexp.MustCompile(`\b(mean|variance|stddev|cv|median)(Dif)?\(\)`)

// StatFunctions lists the statistics understood inside templates. Each also
// accepts a Dif suffix returning the current value minus the statistic.
var StatFunctions = []string{"mean", "variance", "stddev", "cv", "median"}

// IsStatFunction reports whether name is a known statistic, with or without
// the Dif suffix.
func IsStatFunction(name string) bool {
	base := name
	if len(base) > 3 && base[len(base)-3:] == "Dif" {
		base = base[:len(base)-3]
	}
	for _, s := range StatFunctions {
		if s == base {
			return true
		}
	}
	return false
}

type summary struct {
	mean, variance, stddev, cv, median float64
}

func summarize(values []float64) summary {
	var xs []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		nan := math.NaN()
		return summary{nan, nan, nan, nan, nan}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	n := float64(len(xs))
	s := summary{mean: sum / n}
	for _, v := range xs {
		d := v - s.mean
		s.variance += d * d
	}
	s.variance /= n
	s.stddev = math.Sqrt(s.variance)
	if s.mean != 0 {
		s.cv = s.stddev / s.mean
	} else {
		s.cv = math.NaN()
	}
	sort.Float64s(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 1 {
		s.median = xs[mid]
	} else {
		s.median = (xs[mid-1] + xs[mid]) / 2
	}
	return s
}

func (s summary) get(name string) float64 {
	switch name {
	case "mean":
		return s.mean
	case "variance":
		return s.variance
	case "stddev":
		return s.stddev
	case "cv":
		return s.cv
	default:
		return s.median
	}
}

// statRefs rewrites statistic calls into references to per record
// variables, so the compiled program does not depend on the data.
func statRefs(src string) string {
	if !statCall.MatchString(src) {
		return src
	}
	return statCall.ReplaceAllString(src, "__${1}${2}")
}

// bindStats sets the variables referenced by statRefs, rounded to decimals.
func bindStats(vars map[string]any, rec Record, decimals int) {
	sm := summarize(rec.Series)
	for _, name := range StatFunctions {
		v := sm.get(name)
		vars["__"+name] = round(v, decimals)
		vars["__"+name+"Dif"] = round(rec.Value-v, decimals)
	}
}

func round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(max(decimals, 0)))
	return math.Round(v*p) / p
}
