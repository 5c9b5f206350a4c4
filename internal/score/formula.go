package score

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Formula extrapolates an estimated one-rep max from a submaximal set.
// Formulas are only called with reps >= 2; the reps == 1 boundary is handled
// by Estimator so every formula returns the lifted weight exactly there.
type Formula func(weightKg float64, reps int) float64

// DefaultFormula is the formula identifier used when none is configured.
const DefaultFormula = "mayhew"

// formulas holds every supported e1RM estimation formula from the exercise
// science literature, keyed by identifier.
var formulas = map[string]Formula{
	"adams": func(w float64, r int) float64 {
		if r >= 50 {
			return math.Inf(1)
		}
		return w / (1 - 0.02*float64(r))
	},
	"baechle": func(w float64, r int) float64 {
		return w * (1 + 0.033*float64(r))
	},
	"berger": func(w float64, r int) float64 {
		return w / (1.0261 * math.Exp(-0.0262*float64(r)))
	},
	"brown": func(w float64, r int) float64 {
		return w * (0.9849 + 0.0328*float64(r))
	},
	"brzycki": func(w float64, r int) float64 {
		if r >= 37 {
			return math.Inf(1)
		}
		return w * 36 / float64(37-r)
	},
	"epley": func(w float64, r int) float64 {
		return w * (1 + float64(r)/30)
	},
	"kemmler": func(w float64, r int) float64 {
		fr := float64(r)
		return w * (0.988 + 0.0104*fr + 0.00190*fr*fr - 0.0000584*fr*fr*fr)
	},
	"landers": func(w float64, r int) float64 {
		denom := 1.013 - 0.0267123*float64(r)
		if denom <= 0 {
			return math.Inf(1)
		}
		return w / denom
	},
	"lombardi": func(w float64, r int) float64 {
		return w * math.Pow(float64(r), 0.10)
	},
	"mayhew": func(w float64, r int) float64 {
		return w / (0.522 + 0.419*math.Exp(-0.055*float64(r)))
	},
	"naclerio": func(w float64, r int) float64 {
		return w / (0.951 * math.Exp(-0.021*float64(r)))
	},
	"oconner": func(w float64, r int) float64 {
		return w * (1 + 0.025*float64(r))
	},
	"wathen": func(w float64, r int) float64 {
		return w / (0.4880 + 0.538*math.Exp(-0.075*float64(r)))
	},
}

// FormulaNames returns the supported formula identifiers, sorted.
func FormulaNames() []string {
	names := make([]string, 0, len(formulas))
	for name := range formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Estimator computes estimated one-rep maxes with a fixed formula.
type Estimator struct {
	name string
	fn   Formula
}

// NewEstimator selects a formula by identifier.
func NewEstimator(name string) (Estimator, error) {
	if name == "" {
		name = DefaultFormula
	}
	fn, ok := formulas[name]
	if !ok {
		return Estimator{}, fmt.Errorf("unknown formula %q (available: %s)",
			name, strings.Join(FormulaNames(), ", "))
	}
	return Estimator{name: name, fn: fn}, nil
}

// Name returns the formula identifier.
func (e Estimator) Name() string { return e.name }

// Estimate returns the estimated one-rep max for a set. A single rep is the
// max by definition, so reps == 1 returns the weight exactly regardless of
// formula (Mayhew and most others do not satisfy that boundary numerically).
// The result is never below the lifted weight.
func (e Estimator) Estimate(weightKg float64, reps int) float64 {
	if reps <= 1 {
		return weightKg
	}
	return math.Max(weightKg, e.fn(weightKg, reps))
}
