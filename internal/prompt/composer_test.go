package prompt

import (
	"strings"
	"testing"

	"github.com/spotforge/api/internal/model"
)

func structuredProduction() *model.ProductionResponse {
	button := true
	structure := "intro-build-peak-button"
	preset := model.MixPresetWarm
	voiceVolume := 1.0
	musicVolume := 0.8

	return &model.ProductionResponse{
		Script: "Summer is here. Visit Crestline Motors this weekend.",
		Context: model.AdContext{
			AdCategory:      model.CategoryAutomotive,
			Tone:            model.ToneFriendly,
			Emotion:         model.EmotionExcitement,
			Pace:            model.PaceUpbeat,
			DurationSeconds: 30,
		},
		Music: model.MusicDescriptor{
			Prompt:            "bright summer pop with handclaps",
			TargetBPM:         118,
			Genre:             model.GenrePop,
			Mood:              model.MoodEnergetic,
			ComposerDirection: "keep the energy rising until the tag line",
			Instrumentation: &model.Instrumentation{
				Drums:   "tight acoustic kit",
				Bass:    "round electric bass",
				Mids:    "strummed acoustic guitar",
				Effects: "light tambourine",
			},
			Arc: []model.ArcSegment{
				{StartSeconds: 0, EndSeconds: 18, Label: "build", MusicPrompt: "rising energy", TargetBPM: 118, EnergyLevel: 6},
				{StartSeconds: 18, EndSeconds: 30, Label: "peak", MusicPrompt: "full band", TargetBPM: 118, EnergyLevel: 9},
			},
			ButtonEnding:     &button,
			MusicalStructure: &structure,
		},
		Fades:     model.Fades{FadeInSeconds: 0.05, FadeOutSeconds: 0.4},
		Volume:    model.VolumePlan{VoiceVolume: &voiceVolume, MusicVolume: &musicVolume},
		MixPreset: &preset,
		SentenceCues: []model.SentenceCue{
			{SentenceIndex: 0, Text: "Summer is here.", SFXPrompt: "whoosh"},
		},
	}
}

func defaultHints() TimingHints {
	return TimingHints{
		Tempo:           118,
		TotalBars:       16,
		ExactSeconds:    32.5,
		PreRollSeconds:  4.1,
		PostRollSeconds: 2.0,
	}
}

func TestComposeCustomMode(t *testing.T) {
	out := Compose(structuredProduction(), "", defaultHints(), DefaultLimits)

	if !out.CustomMode {
		t.Fatal("structured plan should compose in custom mode")
	}
	if out.Truncated {
		t.Error("roomy budget should not truncate")
	}
	if out.Title == "" || len(out.Title) > DefaultLimits.TitleLimit {
		t.Errorf("title %q violates the %d-char limit", out.Title, DefaultLimits.TitleLimit)
	}
	if len(out.CompositionText) > DefaultLimits.CompositionLimit {
		t.Errorf("composition is %d chars, limit %d", len(out.CompositionText), DefaultLimits.CompositionLimit)
	}

	for _, want := range []string{
		"118 BPM",
		"exactly 16 bars",
		"Instrumentation: drums tight acoustic kit",
		"Direction: keep the energy rising",
		"button ending",
		"continuous musical idea",
	} {
		if !strings.Contains(out.CompositionText, want) {
			t.Errorf("composition missing %q:\n%s", want, out.CompositionText)
		}
	}
}

func TestComposeMandatorySectionsSurviveTightBudget(t *testing.T) {
	resp := structuredProduction()
	hints := defaultHints()

	// Every budget from "head and closing barely fit" up to "everything
	// fits" must keep the mandatory sections and stay under the limit.
	base := Compose(resp, "", hints, Limits{TitleLimit: 80, CompositionLimit: 10000, SimpleLimit: 500})
	full := len(base.CompositionText)

	for budget := 400; budget <= full+50; budget += 37 {
		limits := Limits{TitleLimit: 80, CompositionLimit: budget, SimpleLimit: 500}
		out := Compose(resp, "some long cultural style note", hints, limits)

		if len(out.CompositionText) > budget {
			t.Fatalf("budget %d: composition is %d chars", budget, len(out.CompositionText))
		}
		for _, want := range []string{"BPM", "Instrumentation:", "Direction:", "continuous musical idea"} {
			if !strings.Contains(out.CompositionText, want) {
				t.Fatalf("budget %d: mandatory section %q dropped:\n%s", budget, want, out.CompositionText)
			}
		}
	}
}

func TestComposeDropsLowPriorityFirst(t *testing.T) {
	resp := structuredProduction()
	hints := defaultHints()

	full := Compose(resp, "", hints, DefaultLimits)
	if !strings.Contains(full.CompositionText, "Accent near sentence") {
		t.Fatal("full budget should keep the SFX accent tail section")
	}

	// Shrink the budget just enough to evict the tail; the context body
	// section must survive because it has higher priority.
	tight := Compose(resp, "", hints, Limits{
		TitleLimit:       80,
		CompositionLimit: len(full.CompositionText) - 10,
		SimpleLimit:      500,
	})
	if !tight.Truncated {
		t.Fatal("shrunken budget should mark the prompt truncated")
	}
	if strings.Contains(tight.CompositionText, "Accent near sentence") {
		t.Error("lowest-priority section should be dropped first")
	}
	if !strings.Contains(tight.CompositionText, "Context: 30-second automotive ad") {
		t.Error("high-priority context section should survive")
	}
}

func TestComposeSimpleFallback(t *testing.T) {
	resp := structuredProduction()
	resp.Music.Instrumentation = nil
	resp.Music.Arc = nil
	resp.Music.ComposerDirection = ""

	out := Compose(resp, "", defaultHints(), DefaultLimits)
	if out.CustomMode {
		t.Fatal("unstructured descriptor should fall back to simple mode")
	}
	if out.CompositionText != "" {
		t.Error("simple mode must not populate the composition text")
	}
	if !strings.Contains(out.Prompt, "instrumental pop") {
		t.Errorf("simple prompt missing genre: %q", out.Prompt)
	}
	if len(out.Prompt) > DefaultLimits.SimpleLimit {
		t.Errorf("simple prompt is %d chars, limit %d", len(out.Prompt), DefaultLimits.SimpleLimit)
	}
}

func TestComposeSimpleFallbackTruncates(t *testing.T) {
	resp := structuredProduction()
	resp.Music.Instrumentation = nil
	resp.Music.Arc = nil
	resp.Music.ComposerDirection = ""
	resp.Music.Prompt = strings.Repeat("lush strings and warm brass, ", 40)

	out := Compose(resp, "", defaultHints(), DefaultLimits)
	if !out.Truncated {
		t.Error("over-limit simple prompt should be marked truncated")
	}
	if len(out.Prompt) > DefaultLimits.SimpleLimit {
		t.Errorf("simple prompt is %d chars, limit %d", len(out.Prompt), DefaultLimits.SimpleLimit)
	}
}

func TestComposeHardTruncateLastResort(t *testing.T) {
	resp := structuredProduction()
	resp.Music.ComposerDirection = strings.Repeat("swell and release, ", 100)

	limits := Limits{TitleLimit: 80, CompositionLimit: 200, SimpleLimit: 500}
	out := Compose(resp, "", defaultHints(), limits)

	if !out.Truncated {
		t.Error("overflowing mandatory sections should mark the prompt truncated")
	}
	if len(out.CompositionText) > limits.CompositionLimit {
		t.Errorf("hard truncation failed: %d chars over a %d limit",
			len(out.CompositionText), limits.CompositionLimit)
	}
}

func TestForProvider(t *testing.T) {
	out := Compose(structuredProduction(), "", defaultHints(), DefaultLimits)

	tightened := ForProvider(out, 300)
	if len(tightened.CompositionText) > 300 {
		t.Errorf("re-truncation left %d chars over a 300 limit", len(tightened.CompositionText))
	}
	if !tightened.Truncated {
		t.Error("re-truncation should mark the prompt truncated")
	}

	// A prompt already under the limit passes through unchanged.
	same := ForProvider(out, len(out.CompositionText)+10)
	if same.CompositionText != out.CompositionText || same.Truncated != out.Truncated {
		t.Error("under-limit prompt should pass through unchanged")
	}

	simple := model.ComposedPrompt{CustomMode: false, Prompt: strings.Repeat("a", 600)}
	if got := ForProvider(simple, 500); len(got.Prompt) != 500 || !got.Truncated {
		t.Errorf("simple prompt re-truncation failed: len=%d truncated=%v", len(got.Prompt), got.Truncated)
	}
}

func TestComposeTitleLimit(t *testing.T) {
	resp := structuredProduction()
	resp.Context.AdCategory = model.AdCategory(strings.Repeat("verylongcategory", 10))

	out := Compose(resp, "", defaultHints(), DefaultLimits)
	if len(out.Title) > DefaultLimits.TitleLimit {
		t.Errorf("title is %d chars, limit %d", len(out.Title), DefaultLimits.TitleLimit)
	}
}
