package timing

import "math"

// TempoFit is the result of searching for a tempo whose bar grid divides a
// target duration cleanly.
type TempoFit struct {
	Tempo        int     `json:"tempo"`
	Bars         int     `json:"bars"`
	ExactSeconds float64 `json:"exactSeconds"`
	ErrorSeconds float64 `json:"errorSeconds"`
}

// Tempo search bounds; outside this range the result stops being music.
const (
	minSearchTempo = 40
	maxSearchTempo = 200
)

// OptimizeBPMForDuration searches integer tempos within ±radius of the
// target for the one whose whole-bar grid lands closest to the target
// duration. Ties go to the tempo nearest the requested one.
func OptimizeBPMForDuration(targetTempo int, targetSeconds float64, searchRadius int, sig TimeSignature) TempoFit {
	if searchRadius < 0 {
		searchRadius = 0
	}

	lo := targetTempo - searchRadius
	hi := targetTempo + searchRadius
	if lo < minSearchTempo {
		lo = minSearchTempo
	}
	if hi > maxSearchTempo {
		hi = maxSearchTempo
	}
	if lo > hi {
		lo, hi = targetTempo, targetTempo
	}

	best := TempoFit{ErrorSeconds: math.Inf(1)}
	for t := lo; t <= hi; t++ {
		bar := BarDuration(float64(t), sig)
		bars := int(math.Round(targetSeconds / bar))
		if bars < 1 {
			bars = 1
		}
		exact := float64(bars) * bar
		errSec := math.Abs(exact - targetSeconds)

		better := errSec < best.ErrorSeconds-barEpsilon
		tie := math.Abs(errSec-best.ErrorSeconds) <= barEpsilon &&
			abs(t-targetTempo) < abs(best.Tempo-targetTempo)
		if better || tie {
			best = TempoFit{
				Tempo:        t,
				Bars:         bars,
				ExactSeconds: exact,
				ErrorSeconds: errSec,
			}
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
