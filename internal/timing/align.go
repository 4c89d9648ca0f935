package timing

import "math"

// AlignDecision says what the mix stage should do with a generated track.
type AlignDecision string

const (
	AlignUseAsIs AlignDecision = "use_as_is"
	AlignTrim    AlignDecision = "trim"
	AlignLoop    AlignDecision = "loop"
)

// HalfBarTolerance is the accepted drift, as a fraction of one bar, before
// a generated track gets trimmed or looped instead of used as-is. Fixed
// empirically; overridable rather than inlined.
var HalfBarTolerance = 0.5

// Alignment is the mix instruction for one generated track.
type Alignment struct {
	Decision       AlignDecision `json:"decision"`
	TargetSeconds  float64       `json:"targetSeconds"`
	TrimSeconds    float64       `json:"trimSeconds,omitempty"`
	LoopCount      int           `json:"loopCount,omitempty"`
	PreRollSeconds float64       `json:"preRollSeconds"`
}

// AlignMusicToVoice decides whether a generated track of the given actual
// duration is used as-is, trimmed, or looped to cover pre-roll + voice +
// post-roll, and returns the pre-roll the mix must apply before the voice
// starts. The voice duration stands in for the ad length when picking
// roll sizes.
func AlignMusicToVoice(musicSeconds, voiceSeconds, tempo float64, genre string, sig TimeSignature) Alignment {
	roll := CalculatePrePostRoll(voiceSeconds, tempo, genre, voiceSeconds, sig)
	target := CeilToBar(roll.MusicSeconds, tempo, sig)
	bar := BarDuration(tempo, sig)

	a := Alignment{
		TargetSeconds:  target,
		PreRollSeconds: roll.PreRollSeconds,
	}

	switch {
	case math.Abs(musicSeconds-target) <= HalfBarTolerance*bar:
		a.Decision = AlignUseAsIs
	case musicSeconds > target:
		a.Decision = AlignTrim
		a.TrimSeconds = target
	default:
		a.Decision = AlignLoop
		if musicSeconds > 0 {
			a.LoopCount = int(math.Ceil(target / musicSeconds))
		}
		a.TrimSeconds = target
	}
	return a
}
