package facade

import "math"

// round rounds v to the given number of decimal digits, half away from zero.
func round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}

func round3(v float64) float64 { return round(v, 3) }

// SolveFloorHeight picks the floor height in [min, max) that divides total
// into the most nearly whole number of floors. Candidates are visited from
// min upward in increments of step; the earliest one wins a tie.
func SolveFloorHeight(total, min, max, step float64) float64 {
	if step <= 0 {
		return min
	}
	best, bestRem := min, 1.0
	for i := 0; ; i++ {
		h := round3(min + float64(i)*step)
		if h >= max {
			break
		}
		floors := round(total/h, 6)
		if rem := floors - math.Floor(floors); rem < bestRem {
			best, bestRem = h, rem
		}
	}
	return best
}

// Heights are the solved storey heights of one building.
type Heights struct {
	Floor float64 // whole building
	Upper float64 // portion above the boundary wall
	Lower float64 // portion below the boundary
}

// SolveHeights solves the storey heights for the whole building and for
// the portions above and below the complex-building boundary.
func SolveHeights(cfg BuildingConfig) Heights {
	solve := func(total float64) float64 {
		return SolveFloorHeight(total, MinFloorHeight, MaxFloorHeight, FloorHeightStep)
	}
	return Heights{
		Floor: solve(cfg.Height),
		Upper: solve(cfg.Height - cfg.BoundaryHeight - DepressionWallHeight),
		Lower: solve(math.Min(cfg.BoundaryHeight, cfg.Height)),
	}
}

// EntranceHeight returns the height of the ground band: what is left of the
// building (or of the lower portion) after all but one whole storey.
func EntranceHeight(cfg BuildingConfig, h Heights) float64 {
	if cfg.IsComplex() && cfg.BoundaryHeight <= cfg.Height {
		return round3(groundBand(cfg.BoundaryHeight, h.Lower))
	}
	return round3(groundBand(cfg.Height, h.Floor))
}

// groundBand never exceeds total: buildings lower than one storey are all entrance.
func groundBand(total, storey float64) float64 {
	n := math.Max(0, math.Floor(total/storey)-1)
	return total - n*storey
}
