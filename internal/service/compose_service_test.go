package service

import (
	"math"
	"strings"
	"testing"

	"github.com/spotforge/api/internal/config"
	"github.com/spotforge/api/internal/model"
)

func testComposeService() *ComposeService {
	return NewComposeService(&config.Config{
		Music: config.MusicConfig{
			MaxGenSeconds:    120,
			CompositionLimit: 2500,
			TitleLimit:       80,
			SimpleLimit:      500,
		},
		SFX: config.SFXConfig{PromptLimit: 450},
	})
}

const rawPlan = `{
	"script": "Summer is here. Visit Crestline Motors this weekend and drive home happy.",
	"context": {"adCategory": "automotive", "tone": "friendly", "emotion": "excitement", "pace": "upbeat", "durationSeconds": 30},
	"music": {"prompt": "bright summer pop with handclaps", "targetBPM": 118, "genre": "pop", "mood": "energetic", "composerDirection": "keep the energy rising"},
	"fades": {"fadeInSeconds": 0.05, "fadeOutSeconds": 0.4, "curve": "exponential"},
	"volume": {"voiceVolume": 1.0, "musicVolume": 0.8}
}`

func TestComposeValidPlan(t *testing.T) {
	svc := testComposeService()

	out, err := svc.Compose(ComposeInput{RawOutput: rawPlan, VoiceSeconds: 26})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.UsedFallback {
		t.Error("valid raw output should not fall back")
	}
	if out.ParseError != "" {
		t.Errorf("unexpected parse error: %s", out.ParseError)
	}
	if out.Production.Music.TargetBPM != out.Timing.Tempo {
		t.Errorf("production BPM %v should carry the fitted tempo %v",
			out.Production.Music.TargetBPM, out.Timing.Tempo)
	}
	if d := math.Abs(out.Timing.Tempo - 118); d > tempoSearchRadius {
		t.Errorf("tempo %v drifted more than ±%d from the requested 118", out.Timing.Tempo, tempoSearchRadius)
	}

	// The plan's music length must be whole bars.
	bars := out.Timing.MusicSeconds / out.Timing.BarSeconds
	if math.Abs(bars-math.Round(bars)) > 1e-6 {
		t.Errorf("music length %.4fs is not bar-aligned at %.4fs per bar",
			out.Timing.MusicSeconds, out.Timing.BarSeconds)
	}

	if !out.Prompt.CustomMode {
		t.Error("structured descriptor should compose in custom mode")
	}
	if len(out.Prompt.CompositionText) > 2500 {
		t.Errorf("composition text %d chars exceeds the provider limit", len(out.Prompt.CompositionText))
	}
}

func TestComposeFallsBackWithBrief(t *testing.T) {
	svc := testComposeService()
	brief := &model.SpotBrief{
		ProductName:     "Crestline Motors",
		KeyMessage:      "Summer sale this weekend only",
		AdCategory:      model.CategoryAutomotive,
		Tone:            model.ToneFriendly,
		DurationSeconds: 30,
	}

	out, err := svc.Compose(ComposeInput{RawOutput: "no plan, sorry", FallbackBrief: brief})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.UsedFallback {
		t.Fatal("unparseable output should use the fallback plan")
	}
	if out.ParseError == "" {
		t.Error("fallback response should carry the parse error")
	}
	if out.Production.Context.AdCategory != model.CategoryAutomotive {
		t.Errorf("fallback should take the brief's category, got %s", out.Production.Context.AdCategory)
	}
	if out.Production.Music.Prompt == "" {
		t.Error("fallback plan must carry a music prompt")
	}
	if out.Timing.Tempo <= 0 {
		t.Error("fallback still needs a usable timing plan")
	}
}

func TestComposeDropsInvalidCreativePlan(t *testing.T) {
	svc := testComposeService()

	// Segment index 5 breaks contiguity; the rest of the plan is fine.
	raw := strings.Replace(rawPlan, `"volume": {"voiceVolume": 1.0, "musicVolume": 0.8}`,
		`"volume": {"voiceVolume": 1.0, "musicVolume": 0.8},
		"adFormat": {
			"templateId": "bookend",
			"totalDurationSeconds": 30,
			"segments": [
				{"index": 5, "type": "voiceover_with_music", "durationSeconds": 30,
				 "voice": {"text": "Visit us this weekend."}, "music": {"prompt": "bed"}}
			]
		}`, 1)

	out, err := svc.Compose(ComposeInput{RawOutput: raw, VoiceSeconds: 26})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.PlanViolations) == 0 {
		t.Fatal("broken creative plan should surface violations")
	}
	if out.Production.AdFormat != nil {
		t.Error("broken creative plan should be dropped from the production")
	}
	if out.UsedFallback {
		t.Error("a dropped creative plan must not force the fallback")
	}
}

func TestBuildTimingPlanShortSpot(t *testing.T) {
	plan, hints, err := BuildTimingPlan(26, 30, "pop", 118, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.SeedBars != 0 || plan.LoopCount != 0 {
		t.Errorf("music under the generation cap needs no loop plan, got %+v", plan)
	}
	// ~30s of music near 118 BPM fits cleanest at 120 (15 exact 2.0s bars).
	if plan.Tempo != 120 {
		t.Errorf("fitted tempo = %v; want 120", plan.Tempo)
	}
	// At the fitted tempo the bar hits the 2.0s threshold, so a 30s spot
	// earns the two-bar intro.
	if plan.PreRollBars != 2 || plan.PostRollBars != 1 {
		t.Errorf("pre/post = %d/%d; want 2/1", plan.PreRollBars, plan.PostRollBars)
	}
	if hints.TotalBars != plan.TotalBars {
		t.Errorf("hints bars %d should match the plan's %d when not looping", hints.TotalBars, plan.TotalBars)
	}
}

func TestBuildTimingPlanLoops(t *testing.T) {
	// 60s of voice at 120 BPM needs ~68s of music; a 20s cap forces a loop.
	plan, hints, err := BuildTimingPlan(60, 60, "pop", 120, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.SeedBars == 0 || plan.LoopCount < 2 {
		t.Fatalf("expected a loop plan, got %+v", plan)
	}
	if plan.SeedSeconds > 20+1e-6 {
		t.Errorf("seed %.2fs exceeds the 20s generation cap", plan.SeedSeconds)
	}
	if got := float64(plan.LoopCount) * plan.SeedSeconds; got < plan.TrimSeconds {
		t.Errorf("loops cover %.2fs, need %.2fs", got, plan.TrimSeconds)
	}
	if hints.ExactSeconds != plan.SeedSeconds {
		t.Errorf("prompt hints should ask for the seed (%.2fs), got %.2fs", plan.SeedSeconds, hints.ExactSeconds)
	}
}

func TestBuildTimingPlanRejectsZeroVoice(t *testing.T) {
	if _, _, err := BuildTimingPlan(0, 30, "pop", 118, 120); err == nil {
		t.Error("zero voice duration should be rejected")
	}
}

func TestSFXPromptRetruncated(t *testing.T) {
	svc := testComposeService()
	svc.sfxLimit = 40

	production := &model.ProductionResponse{
		SentenceCues: []model.SentenceCue{
			{SentenceIndex: 0, SFXPrompt: "deep cinematic whoosh with a long tail"},
			{SentenceIndex: 1, SFXPrompt: "cash register bell, bright and close"},
		},
	}

	got := svc.sfxPrompt(production)
	if got == "" {
		t.Fatal("expected a joined SFX prompt")
	}
	if len(got) > 40 {
		t.Errorf("sfx prompt %d chars exceeds the 40-char cap", len(got))
	}
}
