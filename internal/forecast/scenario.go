// Package forecast projects price targets from three valuation models
// under bull, base and bear growth scenarios across fixed horizons.
package forecast

import "github.com/quantlab/valuescreen/internal/contracts"

// Fallback growth when neither statements nor provider estimates yield
// a historical rate.
const defaultGrowth = 0.05

// scenarioGrowth returns the projected growth rate for one projection
// year (1-indexed).
//
// Base decays linearly from the historical rate toward terminal growth
// over the projection window. Bear starts at half the historical rate
// and decays the same way. Bull holds the historical rate without
// decay. All paths cap at maxGrowth.
//
// The scenarios are ordered by construction: bull is floored at the
// base path and bear is ceilinged at it, so a company whose history
// undershoots terminal growth still satisfies bull >= base >= bear at
// every year.
func scenarioGrowth(historical float64, sc contracts.Scenario, year, totalYears int, terminalGrowth, maxGrowth float64) float64 {
	decay := float64(year) / float64(totalYears)
	base := historical*(1-decay) + terminalGrowth*decay
	if base > maxGrowth {
		base = maxGrowth
	}

	switch sc {
	case contracts.ScenarioBull:
		g := historical
		if g < base {
			g = base
		}
		if g > maxGrowth {
			g = maxGrowth
		}
		return g

	case contracts.ScenarioBear:
		g := historical*0.5*(1-decay) + terminalGrowth*decay
		if g > base {
			g = base
		}
		if g > maxGrowth {
			g = maxGrowth
		}
		return g

	default:
		return base
	}
}

// horizonGrowthYear maps a fractional horizon onto the projection-year
// grid used by the multiple-based models.
func horizonGrowthYear(h contracts.Horizon) int {
	years := int(contracts.HorizonYears[h])
	if years < 1 {
		return 1
	}
	return years
}
