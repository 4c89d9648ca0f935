package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spotforge/api/internal/model"
)

// SchemaError aggregates every field violation found in one pass, so the
// caller sees the full damage instead of fixing fields one retry at a time.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("production response failed validation: %s",
		strings.Join(e.Violations, "; "))
}

// ParseProduction turns one raw text blob from the generative model into a
// validated, defaulted, range-clamped production plan. Pure function: text
// in, (*ProductionResponse | error) out, no I/O.
//
// Failures are either a parse error (no balanced JSON object) or a single
// *SchemaError naming every violated field. Nothing is silently guessed;
// the caller decides between retrying upstream and the deterministic
// fallback plan.
func ParseProduction(raw string) (*model.ProductionResponse, error) {
	obj, err := extractJSONObject(stripFences(raw))
	if err != nil {
		return nil, err
	}

	var resp model.ProductionResponse
	if err := json.Unmarshal([]byte(obj), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSONObject, err)
	}

	if violations := validate(&resp); len(violations) > 0 {
		return nil, &SchemaError{Violations: violations}
	}

	sanitize(&resp)
	return &resp, nil
}

// validate accumulates one message per violated field path.
func validate(r *model.ProductionResponse) []string {
	var v []string

	if strings.TrimSpace(r.Script) == "" {
		v = append(v, "script: required")
	}

	if r.Context.AdCategory == "" {
		v = append(v, "context.adCategory: required")
	} else if !containsCategory(r.Context.AdCategory) {
		v = append(v, fmt.Sprintf("context.adCategory: unknown value %q", r.Context.AdCategory))
	}
	if r.Context.Tone == "" {
		v = append(v, "context.tone: required")
	} else if !containsTone(r.Context.Tone) {
		v = append(v, fmt.Sprintf("context.tone: unknown value %q", r.Context.Tone))
	}
	if r.Context.Emotion != "" && !containsEmotion(r.Context.Emotion) {
		v = append(v, fmt.Sprintf("context.emotion: unknown value %q", r.Context.Emotion))
	}
	if r.Context.Pace != "" && !containsPace(r.Context.Pace) {
		v = append(v, fmt.Sprintf("context.pace: unknown value %q", r.Context.Pace))
	}
	if r.Context.DurationSeconds <= 0 {
		v = append(v, "context.durationSeconds: must be greater than 0")
	}

	if strings.TrimSpace(r.Music.Prompt) == "" {
		v = append(v, "music.prompt: required")
	}
	if r.Music.Genre == "" {
		v = append(v, "music.genre: required")
	} else if !containsGenre(r.Music.Genre) {
		v = append(v, fmt.Sprintf("music.genre: unknown value %q", r.Music.Genre))
	}
	if r.Music.Mood != "" && !containsMood(r.Music.Mood) {
		v = append(v, fmt.Sprintf("music.mood: unknown value %q", r.Music.Mood))
	}
	if r.Music.TargetBPM < 0 {
		v = append(v, "music.targetBPM: must not be negative")
	}

	if len(r.Music.Arc) > 0 {
		if len(r.Music.Arc) < MinArcSegments || len(r.Music.Arc) > MaxArcSegments {
			v = append(v, fmt.Sprintf("music.arc: must have %d-%d segments, got %d",
				MinArcSegments, MaxArcSegments, len(r.Music.Arc)))
		}
		for i, seg := range r.Music.Arc {
			if seg.StartSeconds < 0 {
				v = append(v, fmt.Sprintf("music.arc[%d].startSeconds: must not be negative", i))
			}
			if seg.EndSeconds <= seg.StartSeconds {
				v = append(v, fmt.Sprintf("music.arc[%d].endSeconds: must be greater than startSeconds", i))
			}
		}
	}

	if r.Fades.FadeInSeconds < 0 {
		v = append(v, "fades.fadeInSeconds: must not be negative")
	}
	if r.Fades.FadeOutSeconds < 0 {
		v = append(v, "fades.fadeOutSeconds: must not be negative")
	}
	if r.Fades.Curve != nil && !containsCurve(*r.Fades.Curve) {
		v = append(v, fmt.Sprintf("fades.curve: unknown value %q", *r.Fades.Curve))
	}

	if r.Volume.VoiceVolume != nil && *r.Volume.VoiceVolume < 0 {
		v = append(v, "volume.voiceVolume: must not be negative")
	}
	if r.Volume.MusicVolume != nil && *r.Volume.MusicVolume < 0 {
		v = append(v, "volume.musicVolume: must not be negative")
	}
	for i, seg := range r.Volume.Segments {
		if seg.EndSeconds <= seg.StartSeconds {
			v = append(v, fmt.Sprintf("volume.segments[%d]: end must be greater than start", i))
		}
	}

	if r.MixPreset != nil && !containsMixPreset(*r.MixPreset) {
		v = append(v, fmt.Sprintf("mixPreset: unknown value %q", *r.MixPreset))
	}

	return v
}

// sanitize fills defaults for absent optional fields and clamps every
// numeric field into its safe range. Only called on a response that
// already passed validation.
func sanitize(r *model.ProductionResponse) {
	r.Script = truncate(r.Script, MaxScriptLen)

	r.Context.DurationSeconds = clamp(r.Context.DurationSeconds, MinDurationSeconds, MaxDurationSeconds)
	if r.Context.Emotion == "" {
		r.Context.Emotion = model.EmotionTrust
	}
	if r.Context.Pace == "" {
		r.Context.Pace = model.PaceMedium
	}

	if r.Music.TargetBPM == 0 {
		r.Music.TargetBPM = DefaultTempoForPace(r.Context.Pace)
	}
	r.Music.TargetBPM = clamp(r.Music.TargetBPM, MinBPM, MaxBPM)
	if r.Music.Mood == "" {
		r.Music.Mood = model.MoodUplifting
	}
	r.Music.Prompt = truncate(r.Music.Prompt, MaxPromptLen)
	r.Music.ComposerDirection = truncate(r.Music.ComposerDirection, MaxDirectionLen)
	if r.Music.MusicalStructure != nil {
		s := truncate(*r.Music.MusicalStructure, MaxTextLen)
		r.Music.MusicalStructure = &s
	}
	if r.Music.Instrumentation != nil {
		inst := r.Music.Instrumentation
		inst.Drums = truncate(inst.Drums, MaxTextLen)
		inst.Bass = truncate(inst.Bass, MaxTextLen)
		inst.Mids = truncate(inst.Mids, MaxTextLen)
		inst.Effects = truncate(inst.Effects, MaxTextLen)
	}

	dur := r.Context.DurationSeconds
	for i := range r.Music.Arc {
		seg := &r.Music.Arc[i]
		seg.StartSeconds = clamp(seg.StartSeconds, 0, dur)
		seg.EndSeconds = clamp(seg.EndSeconds, 0, dur)
		seg.MusicPrompt = truncate(seg.MusicPrompt, MaxTextLen)
		seg.Label = truncate(seg.Label, MaxTextLen)
		if seg.TargetBPM != 0 {
			seg.TargetBPM = clamp(seg.TargetBPM, MinBPM, MaxBPM)
		}
	}
	if n := len(r.Music.Arc); n > 0 {
		// the arc must span the whole spot
		r.Music.Arc[0].StartSeconds = 0
		r.Music.Arc[n-1].EndSeconds = dur
	}

	if r.Fades.FadeInSeconds == 0 {
		r.Fades.FadeInSeconds = DefaultFadeInSeconds
	}
	if r.Fades.FadeOutSeconds == 0 {
		r.Fades.FadeOutSeconds = DefaultFadeOutSeconds
	}
	r.Fades.FadeInSeconds = clamp(r.Fades.FadeInSeconds, MinFadeInSeconds, MaxFadeInSeconds)
	r.Fades.FadeOutSeconds = clamp(r.Fades.FadeOutSeconds, MinFadeOutSeconds, MaxFadeOutSeconds)
	if r.Fades.Curve == nil {
		c := model.CurveExponential
		r.Fades.Curve = &c
	}

	// Only absent levels get the default; an explicit zero means silent.
	if r.Volume.VoiceVolume == nil {
		vol := DefaultVoiceVolume
		r.Volume.VoiceVolume = &vol
	}
	if r.Volume.MusicVolume == nil {
		vol := DefaultMusicVolume
		r.Volume.MusicVolume = &vol
	}
	*r.Volume.VoiceVolume = clamp(*r.Volume.VoiceVolume, MinVolume, MaxVolume)
	*r.Volume.MusicVolume = clamp(*r.Volume.MusicVolume, MinVolume, MaxVolume)
	for i := range r.Volume.Segments {
		seg := &r.Volume.Segments[i]
		seg.StartSeconds = clamp(seg.StartSeconds, 0, dur)
		seg.EndSeconds = clamp(seg.EndSeconds, 0, dur)
		seg.MusicVolume = clamp(seg.MusicVolume, MinVolume, MaxVolume)
	}

	for i := range r.SentenceCues {
		cue := &r.SentenceCues[i]
		cue.Text = truncate(cue.Text, MaxTextLen)
		cue.SFXPrompt = truncate(cue.SFXPrompt, MaxTextLen)
	}
}

func containsCategory(c model.AdCategory) bool {
	for _, x := range model.ValidCategories {
		if x == c {
			return true
		}
	}
	return false
}

func containsTone(t model.Tone) bool {
	for _, x := range model.ValidTones {
		if x == t {
			return true
		}
	}
	return false
}

func containsEmotion(e model.Emotion) bool {
	for _, x := range model.ValidEmotions {
		if x == e {
			return true
		}
	}
	return false
}

func containsPace(p model.Pace) bool {
	for _, x := range model.ValidPaces {
		if x == p {
			return true
		}
	}
	return false
}

func containsGenre(g model.Genre) bool {
	for _, x := range model.ValidGenres {
		if x == g {
			return true
		}
	}
	return false
}

func containsMood(m model.Mood) bool {
	for _, x := range model.ValidMoods {
		if x == m {
			return true
		}
	}
	return false
}

func containsCurve(c model.FadeCurve) bool {
	for _, x := range model.ValidCurves {
		if x == c {
			return true
		}
	}
	return false
}

func containsMixPreset(p model.MixPreset) bool {
	for _, x := range model.ValidMixPresets {
		if x == p {
			return true
		}
	}
	return false
}
