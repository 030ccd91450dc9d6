package tmpl

import (
	"math"
	"strconv"
	"strings"

	"github.com/vinceanalytics/pdnsview/internal/options"
)

// Settings controls delimiters and number formatting of one engine view.
type Settings struct {
	Open              string
	Close             string
	StatsDecimals     int
	DecimalSeparator  string
	ThousandSeparator string
	// RoundNumber is nil when values are shown unrounded.
	RoundNumber *int
}

// DefaultSettings matches the common option defaults.
func DefaultSettings() Settings {
	return Settings{
		Open:             "<%=",
		Close:            "%>",
		StatsDecimals:    2,
		DecimalSeparator: ".",
	}
}

// SettingsFrom reads template settings from a resolved configuration.
func SettingsFrom(cfg *options.Config) Settings {
	s := DefaultSettings()
	if v := cfg.String("templatesOpenTag"); v != "" {
		s.Open = v
	}
	if v := cfg.String("templatesCloseTag"); v != "" {
		s.Close = v
	}
	if n, ok := cfg.Number("statsDecimals"); ok {
		s.StatsDecimals = int(n)
	}
	if v := cfg.String("decimalSeparator"); v != "" {
		s.DecimalSeparator = v
	}
	s.ThousandSeparator = cfg.String("thousandSeparator")
	if n, ok := cfg.Number("roundNumber"); ok {
		r := int(n)
		s.RoundNumber = &r
	}
	return s
}

// Round applies roundNumber: a positive or zero n keeps n decimals, a
// negative n rounds to a multiple of 10^-n.
func (s Settings) Round(v float64) float64 {
	if s.RoundNumber == nil || math.IsNaN(v) {
		return v
	}
	n := *s.RoundNumber
	if n < 0 {
		p := math.Pow(10, float64(-n))
		return math.Round(v/p) * p
	}
	p := math.Pow(10, float64(n))
	return math.Round(v*p) / p
}

// Format renders v with the configured separators. A negative decimals keeps
// the shortest representation.
func (s Settings) Format(v float64, decimals int) string {
	if math.IsNaN(v) {
		return ""
	}
	v = s.Round(v)
	str := strconv.FormatFloat(v, 'f', decimals, 64)
	neg := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")
	whole, frac, _ := strings.Cut(str, ".")
	if s.ThousandSeparator != "" && len(whole) > 3 {
		var b strings.Builder
		lead := len(whole) % 3
		if lead > 0 {
			b.WriteString(whole[:lead])
		}
		for i := lead; i < len(whole); i += 3 {
			if b.Len() > 0 {
				b.WriteString(s.ThousandSeparator)
			}
			b.WriteString(whole[i : i+3])
		}
		whole = b.String()
	}
	if neg {
		whole = "-" + whole
	}
	if frac == "" {
		return whole
	}
	sep := s.DecimalSeparator
	if sep == "" {
		sep = "."
	}
	return whole + sep + frac
}
