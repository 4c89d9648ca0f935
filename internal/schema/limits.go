package schema

import "github.com/spotforge/api/internal/model"

// Safe ranges for every clamped numeric field.
const (
	MinDurationSeconds = 5.0
	MaxDurationSeconds = 120.0
	MinFadeInSeconds   = 0.02
	MaxFadeInSeconds   = 0.12
	MinFadeOutSeconds  = 0.1
	MaxFadeOutSeconds  = 0.6
	MinVolume          = 0.0
	MaxVolume          = 2.0
	MinBPM             = 60.0
	MaxBPM             = 180.0
	MinArcSegments     = 2
	MaxArcSegments     = 4
)

// Free-text caps; over-long fields are truncated, never rejected.
const (
	MaxScriptLen    = 2000
	MaxPromptLen    = 1000
	MaxDirectionLen = 500
	MaxTextLen      = 200
)

// Defaults applied to absent optional fields.
const (
	DefaultFadeInSeconds  = 0.06
	DefaultFadeOutSeconds = 0.35
	DefaultVoiceVolume    = 1.0
	DefaultMusicVolume    = 0.85
)

// tempoByPace supplies a target BPM when the model omits one. Process-wide
// immutable lookup, initialized once.
var tempoByPace = map[model.Pace]float64{
	model.PaceSlow:    80,
	model.PaceRelaxed: 95,
	model.PaceMedium:  105,
	model.PaceUpbeat:  120,
	model.PaceFast:    135,
}

// DefaultTempoForPace returns the tempo-by-pace table entry, falling back
// to the medium pace tempo.
func DefaultTempoForPace(p model.Pace) float64 {
	if t, ok := tempoByPace[p]; ok {
		return t
	}
	return tempoByPace[model.PaceMedium]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
