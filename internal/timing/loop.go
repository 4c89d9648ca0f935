package timing

import (
	"fmt"
	"math"
)

// MinSeedBars is the shortest loop seed that still sounds like a phrase
// rather than a stutter.
const MinSeedBars = 4

// LoopPlan describes how to stretch a short generated seed to cover a
// longer ad: generate SeedSeconds once, play it FullLoops times, cut the
// result at the bar-aligned TrimSeconds.
type LoopPlan struct {
	SeedSeconds float64 `json:"seedSeconds"`
	SeedBars    int     `json:"seedBars"`
	FullLoops   int     `json:"fullLoops"`
	TrimSeconds float64 `json:"trimSeconds"`
	TotalBars   int     `json:"totalBars"`
}

// CreateLoopPlan computes a bar-aligned seed and repetition count when the
// provider's generation cap is shorter than the music the ad needs. The
// seed is floored to whole bars so every loop point lands on a downbeat.
func CreateLoopPlan(totalNeeded, tempo, maxGenSeconds float64, sig TimeSignature) (LoopPlan, error) {
	bar := BarDuration(tempo, sig)
	if bar <= 0 {
		return LoopPlan{}, fmt.Errorf("invalid tempo %.2f", tempo)
	}
	if totalNeeded <= 0 {
		return LoopPlan{}, fmt.Errorf("invalid total duration %.2f", totalNeeded)
	}

	totalBars := int(math.Ceil(totalNeeded/bar - barEpsilon))
	if totalBars < 1 {
		totalBars = 1
	}

	seedBars := int(math.Floor(maxGenSeconds/bar + barEpsilon))
	if seedBars > totalBars {
		seedBars = totalBars
	}
	if seedBars < MinSeedBars && seedBars < totalBars {
		return LoopPlan{}, fmt.Errorf(
			"generation cap %.1fs holds only %d bars at %.0f BPM, need at least %d for a coherent loop",
			maxGenSeconds, seedBars, tempo, MinSeedBars)
	}

	fullLoops := (totalBars + seedBars - 1) / seedBars

	return LoopPlan{
		SeedSeconds: float64(seedBars) * bar,
		SeedBars:    seedBars,
		FullLoops:   fullLoops,
		TrimSeconds: float64(totalBars) * bar,
		TotalBars:   totalBars,
	}, nil
}
