package schema

import (
	"strings"

	"github.com/spotforge/api/internal/model"
)

// speakingRateWPM is the average voiceover delivery rate used by the
// fallback word-count math.
const speakingRateWPM = 155.0

// EstimateSpeechSeconds predicts how long a script takes to read aloud at
// the average delivery rate. Used wherever no rendered voiceover exists
// yet to measure.
func EstimateSpeechSeconds(script string) float64 {
	words := len(strings.Fields(script))
	return float64(words) / speakingRateWPM * 60.0
}

// FallbackProduction builds a deterministic production plan from nothing
// but the script and brief facts. No generative call: when the model's
// output cannot be parsed or validated, retrying blindly costs money and
// often fails the same way, so the caller can substitute this instead.
func FallbackProduction(script string, category model.AdCategory, tone model.Tone, durationSeconds float64) *model.ProductionResponse {
	durationSeconds = clamp(durationSeconds, MinDurationSeconds, MaxDurationSeconds)

	speakSeconds := EstimateSpeechSeconds(script)
	pace := paceForDensity(speakSeconds, durationSeconds)
	curve := model.CurveExponential
	voiceVolume := DefaultVoiceVolume
	musicVolume := DefaultMusicVolume

	return &model.ProductionResponse{
		Script: truncate(script, MaxScriptLen),
		Context: model.AdContext{
			AdCategory:      category,
			Tone:            tone,
			Emotion:         model.EmotionTrust,
			Pace:            pace,
			DurationSeconds: durationSeconds,
		},
		Music: model.MusicDescriptor{
			Prompt:    fallbackMusicPrompt(category),
			TargetBPM: DefaultTempoForPace(pace),
			Genre:     model.GenreCorporate,
			Mood:      model.MoodUplifting,
		},
		Fades: model.Fades{
			FadeInSeconds:  DefaultFadeInSeconds,
			FadeOutSeconds: DefaultFadeOutSeconds,
			Curve:          &curve,
		},
		Volume: model.VolumePlan{
			VoiceVolume: &voiceVolume,
			MusicVolume: &musicVolume,
		},
	}
}

// paceForDensity picks the slowest pace that still fits the script into
// the spot.
func paceForDensity(speakSeconds, adSeconds float64) model.Pace {
	if adSeconds <= 0 {
		return model.PaceMedium
	}
	switch ratio := speakSeconds / adSeconds; {
	case ratio > 0.9:
		return model.PaceFast
	case ratio > 0.75:
		return model.PaceUpbeat
	case ratio > 0.6:
		return model.PaceMedium
	case ratio > 0.45:
		return model.PaceRelaxed
	default:
		return model.PaceSlow
	}
}

// fallbackPromptByCategory holds intentionally bland prompts: safe beds
// for any script in the category.
var fallbackPromptByCategory = map[model.AdCategory]string{
	model.CategoryRetail:        "upbeat corporate background music, light percussion, friendly and inviting",
	model.CategoryAutomotive:    "confident driving background music, steady rhythm, modern and polished",
	model.CategoryFoodBeverage:  "warm acoustic background music, relaxed groove, appetizing and fresh",
	model.CategoryFinance:       "calm corporate background music, soft piano, trustworthy and steady",
	model.CategoryHealthcare:    "gentle ambient background music, soft pads, reassuring and clean",
	model.CategoryTech:          "minimal electronic background music, subtle pulse, innovative and crisp",
	model.CategoryTravel:        "bright acoustic background music, open feel, adventurous and warm",
	model.CategoryEntertainment: "energetic pop background music, catchy rhythm, fun and vibrant",
	model.CategoryRealEstate:    "welcoming acoustic background music, mellow tone, homely and secure",
	model.CategoryNonprofit:     "heartfelt piano background music, building gently, hopeful and sincere",
}

func fallbackMusicPrompt(category model.AdCategory) string {
	if p, ok := fallbackPromptByCategory[category]; ok {
		return p
	}
	return "neutral corporate background music, unobtrusive, professional"
}
