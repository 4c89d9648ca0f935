package adformat

import (
	"strings"
	"testing"

	"github.com/spotforge/api/internal/model"
)

func musicSolo(idx int, dur float64) model.CreativeSegment {
	return model.CreativeSegment{
		Index:           idx,
		Type:            model.SegmentMusicSolo,
		DurationSeconds: dur,
		Music:           &model.MusicLayer{Prompt: "intro sting"},
	}
}

func voiceWithMusic(idx int, dur float64) model.CreativeSegment {
	return model.CreativeSegment{
		Index:           idx,
		Type:            model.SegmentVoiceWithMusic,
		DurationSeconds: dur,
		Voice:           &model.VoiceLayer{Text: "Come on down to the showroom."},
		Music:           &model.MusicLayer{Prompt: "bed"},
	}
}

func validPlan() *model.CreativePlan {
	return &model.CreativePlan{
		TemplateID:           "bookend",
		TotalDurationSeconds: 30,
		MusicDirection:       "bright and steady",
		Segments: []model.CreativeSegment{
			musicSolo(0, 2),
			voiceWithMusic(1, 26),
			musicSolo(2, 2),
		},
	}
}

func TestValidatePlanOK(t *testing.T) {
	if v := Validate(validPlan()); len(v) != 0 {
		t.Errorf("expected no violations, got %v", v)
	}
}

func TestValidateNilPlan(t *testing.T) {
	if v := Validate(nil); len(v) != 1 {
		t.Errorf("expected one violation for nil plan, got %v", v)
	}
}

func TestValidateIndexContiguity(t *testing.T) {
	plan := validPlan()
	plan.Segments[1].Index = 5

	v := Validate(plan)
	if !hasViolationContaining(v, "contiguity") {
		t.Errorf("expected contiguity violation, got %v", v)
	}
}

func TestValidateDurationSum(t *testing.T) {
	plan := validPlan()
	plan.TotalDurationSeconds = 40 // segments sum to 30

	v := Validate(plan)
	if !hasViolationContaining(v, "duration sum") {
		t.Errorf("expected duration-sum violation, got %v", v)
	}

	// Within the ±1s tolerance nothing fires.
	plan.TotalDurationSeconds = 30.8
	if v := Validate(plan); len(v) != 0 {
		t.Errorf("sum within tolerance should pass, got %v", v)
	}
}

func TestValidateLayerPresence(t *testing.T) {
	plan := validPlan()
	plan.Segments[1].Voice = nil // voiceover_with_music without a voice layer

	v := Validate(plan)
	if !hasViolationContaining(v, "requires a voice layer") {
		t.Errorf("expected missing-voice violation, got %v", v)
	}

	plan = validPlan()
	plan.Segments[0].Voice = &model.VoiceLayer{Text: "stray"} // music_solo with voice

	v = Validate(plan)
	if !hasViolationContaining(v, "must not carry a voice layer") {
		t.Errorf("expected stray-voice violation, got %v", v)
	}
}

func TestValidateUnknownSegmentType(t *testing.T) {
	plan := &model.CreativePlan{
		TemplateID:           "made-up-type",
		TotalDurationSeconds: 30,
		Segments: []model.CreativeSegment{
			voiceWithMusic(0, 13),
			{Index: 1, Type: "pause", DurationSeconds: 4},
			voiceWithMusic(2, 13),
		},
	}

	v := Validate(plan)
	if !hasViolationContaining(v, `unknown type "pause"`) {
		t.Errorf("expected unknown-type violation, got %v", v)
	}
}

func TestValidateRequiresVoiceSegment(t *testing.T) {
	plan := &model.CreativePlan{
		TemplateID:           "instrumental",
		TotalDurationSeconds: 4,
		Segments: []model.CreativeSegment{
			musicSolo(0, 2),
			musicSolo(1, 2),
		},
	}

	v := Validate(plan)
	if !hasViolationContaining(v, "no voice-bearing segment") {
		t.Errorf("expected no-voice violation, got %v", v)
	}
}

func TestValidateMusicSoloBetweenVoiceovers(t *testing.T) {
	plan := &model.CreativePlan{
		TemplateID:           "bad-gap",
		TotalDurationSeconds: 30,
		Segments: []model.CreativeSegment{
			voiceWithMusic(0, 13),
			musicSolo(1, 4),
			voiceWithMusic(2, 13),
		},
	}

	v := Validate(plan)
	if !hasViolationContaining(v, "music-only gap between voiceover segments") {
		t.Errorf("expected gap violation, got %v", v)
	}
}

func TestValidateMusicSoloDurationCap(t *testing.T) {
	plan := validPlan()
	plan.Segments[0].DurationSeconds = 9
	plan.Segments[1].DurationSeconds = 19

	v := Validate(plan)
	if !hasViolationContaining(v, "exceeds cap") {
		t.Errorf("expected duration-cap violation, got %v", v)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	plan := &model.CreativePlan{
		TemplateID:           "wreck",
		TotalDurationSeconds: 99,
		Segments: []model.CreativeSegment{
			{Index: 3, Type: model.SegmentMusicSolo, DurationSeconds: 12},
		},
	}

	v := Validate(plan)
	if len(v) < 4 {
		t.Errorf("expected at least 4 violations (index, sum, layer, voice), got %d: %v", len(v), v)
	}
}

func hasViolationContaining(violations []string, substr string) bool {
	for _, v := range violations {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}
