package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Stats counts recoveries the parser made silently in earlier incarnations.
// Unparsable amounts and dates still fall back to zero values, but the
// counts make data-quality regressions visible to the caller.
type Stats struct {
	AmountFallbacks int `json:"amountFallbacks"`
	DateFallbacks   int `json:"dateFallbacks"`
	NoiseSkips      int `json:"noiseSkips"`
}

// Merge folds another set of counters into s.
func (s *Stats) Merge(other Stats) {
	s.AmountFallbacks += other.AmountFallbacks
	s.DateFallbacks += other.DateFallbacks
	s.NoiseSkips += other.NoiseSkips
}

var minorFactor = decimal.NewFromInt(100)

// ParseMoney converts a display string like "$44,511.20" or "-$9.99" into
// integer minor units (cents), sign preserved. Rounding is half-away-from-zero
// on the cent.
func ParseMoney(raw string) (int64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return d.Mul(minorFactor).Round(0).IntPart(), nil
}

// ParseAmount is the recovering variant of ParseMoney used on required
// amount fields: unparsable input yields 0 and bumps the fallback counter.
// An empty token is a known-absent value (the lookahead window was empty)
// and is not counted.
func ParseAmount(raw string, stats *Stats) int64 {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	v, err := ParseMoney(raw)
	if err != nil {
		if stats != nil {
			stats.AmountFallbacks++
		}
		return 0
	}
	return v
}

// ParseQuantity parses a share/unit count like "10" or "2.5". Unlike
// amounts it never falls back: failure means the field is omitted, keeping
// "unknown" distinct from "known zero".
func ParseQuantity(raw string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
