package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/spotforge/api/internal/adformat"
	"github.com/spotforge/api/internal/config"
	"github.com/spotforge/api/internal/model"
	"github.com/spotforge/api/internal/prompt"
	"github.com/spotforge/api/internal/schema"
	"github.com/spotforge/api/internal/timing"
)

// tempoSearchRadius bounds the BPM adjustment the duration fit may apply.
// Wider drifts would change the feel the plan asked for.
const tempoSearchRadius = 5

// ComposeService turns raw generative-model output into a validated
// production plan, a bar-exact timing plan, and the provider prompt. It
// is pure orchestration: no network calls, deterministic for fixed input.
type ComposeService struct {
	promptLimits  prompt.Limits
	maxGenSeconds float64
	sfxLimit      int
}

func NewComposeService(cfg *config.Config) *ComposeService {
	return &ComposeService{
		promptLimits: prompt.Limits{
			TitleLimit:       cfg.Music.TitleLimit,
			CompositionLimit: cfg.Music.CompositionLimit,
			SimpleLimit:      cfg.Music.SimpleLimit,
		},
		maxGenSeconds: cfg.Music.MaxGenSeconds,
		sfxLimit:      cfg.SFX.PromptLimit,
	}
}

// ComposeInput is everything the pipeline needs for one spot.
type ComposeInput struct {
	RawOutput     string
	VoiceSeconds  float64 // measured voiceover length; 0 means estimate from the script
	CulturalStyle string
	FallbackBrief *model.SpotBrief // enriches the fallback plan when parsing fails
}

// Compose runs the full pipeline: parse and sanitize, validate the
// creative plan, fit the tempo grid, and build the provider prompt.
func (s *ComposeService) Compose(in ComposeInput) (*model.ComposeResponse, error) {
	out := &model.ComposeResponse{}

	production, err := schema.ParseProduction(in.RawOutput)
	if err != nil {
		log.Printf("[Compose] Production parse failed, using fallback: %v", err)
		out.ParseError = err.Error()
		out.UsedFallback = true
		production = s.fallback(in)
	}

	// A structurally broken creative plan is dropped, not fatal: the
	// rest of the production still renders, just without the timeline.
	if production.AdFormat != nil {
		if violations := adformat.Validate(production.AdFormat); len(violations) > 0 {
			log.Printf("[Compose] Creative plan rejected (%d violations), continuing without it", len(violations))
			out.PlanViolations = violations
			production.AdFormat = nil
		}
	}

	voiceSeconds := in.VoiceSeconds
	if voiceSeconds <= 0 {
		voiceSeconds = schema.EstimateSpeechSeconds(production.Script)
	}

	plan, hints, err := BuildTimingPlan(
		voiceSeconds,
		production.Context.DurationSeconds,
		string(production.Music.Genre),
		production.Music.TargetBPM,
		s.maxGenSeconds,
	)
	if err != nil {
		return nil, fmt.Errorf("timing plan failed: %w", err)
	}

	// The prompt must carry the tempo the mix will actually cut on.
	production.Music.TargetBPM = plan.Tempo

	out.Production = *production
	out.Timing = plan
	out.Prompt = prompt.Compose(production, in.CulturalStyle, hints, s.promptLimits)
	out.SFXPrompt = s.sfxPrompt(production)
	return out, nil
}

// fallback builds the deterministic substitute plan. Brief facts are used
// when the caller has them; otherwise neutral defaults.
func (s *ComposeService) fallback(in ComposeInput) *model.ProductionResponse {
	category := model.CategoryRetail
	tone := model.ToneFriendly
	duration := 30.0
	script := in.RawOutput

	if b := in.FallbackBrief; b != nil {
		category = b.AdCategory
		tone = b.Tone
		duration = b.DurationSeconds
		if strings.TrimSpace(script) == "" {
			script = b.KeyMessage
		}
	}
	return schema.FallbackProduction(script, category, tone, duration)
}

// BuildTimingPlan fits an integer tempo near the requested one to the
// spot's music duration, computes pre/post-roll, and adds a loop plan
// when the provider's generation cap is shorter than the music needed.
func BuildTimingPlan(voiceSeconds, adSeconds float64, genre string, targetBPM, maxGenSeconds float64) (model.TimingPlan, prompt.TimingHints, error) {
	sig := timing.Sig4_4

	if voiceSeconds <= 0 {
		return model.TimingPlan{}, prompt.TimingHints{}, fmt.Errorf("voice duration must be positive, got %.2f", voiceSeconds)
	}
	if adSeconds <= 0 {
		adSeconds = voiceSeconds
	}

	roll := timing.CalculatePrePostRoll(voiceSeconds, targetBPM, genre, adSeconds, sig)
	fit := timing.OptimizeBPMForDuration(int(targetBPM), roll.MusicSeconds, tempoSearchRadius, sig)

	// Recompute the rolls at the fitted tempo so every figure in the
	// plan lives on the same grid.
	tempo := float64(fit.Tempo)
	roll = timing.CalculatePrePostRoll(voiceSeconds, tempo, genre, adSeconds, sig)
	grid := timing.NewBarGrid(roll.MusicSeconds, tempo, sig)

	plan := model.TimingPlan{
		Tempo:           tempo,
		BeatsPerBar:     grid.BeatsPerBar,
		BarSeconds:      grid.BarSeconds,
		TotalBars:       grid.TotalBars,
		PreRollBars:     roll.PreRollBars,
		PreRollSeconds:  roll.PreRollSeconds,
		PostRollBars:    roll.PostRollBars,
		PostRollSeconds: roll.PostRollSeconds,
		MusicSeconds:    grid.TotalSeconds,
	}

	if maxGenSeconds > 0 && grid.TotalSeconds > maxGenSeconds {
		loop, err := timing.CreateLoopPlan(grid.TotalSeconds, tempo, maxGenSeconds, sig)
		if err != nil {
			return model.TimingPlan{}, prompt.TimingHints{}, err
		}
		plan.SeedSeconds = loop.SeedSeconds
		plan.SeedBars = loop.SeedBars
		plan.LoopCount = loop.FullLoops
		plan.TrimSeconds = loop.TrimSeconds
	}

	hints := prompt.TimingHints{
		Tempo:           tempo,
		TotalBars:       grid.TotalBars,
		ExactSeconds:    grid.TotalSeconds,
		PreRollSeconds:  roll.PreRollSeconds,
		PostRollSeconds: roll.PostRollSeconds,
	}
	if plan.SeedBars > 0 {
		// When looping, the provider generates the seed, not the full
		// bed, so the prompt asks for the seed's bar count.
		hints.TotalBars = plan.SeedBars
		hints.ExactSeconds = plan.SeedSeconds
	}
	return plan, hints, nil
}

// sfxPrompt joins the per-sentence SFX cues into one provider prompt,
// re-truncated to the SFX provider's tighter cap.
func (s *ComposeService) sfxPrompt(production *model.ProductionResponse) string {
	var parts []string
	for _, cue := range production.SentenceCues {
		if cue.SFXPrompt != "" {
			parts = append(parts, cue.SFXPrompt)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	joined := strings.Join(parts, ", ")
	p := prompt.ForProvider(model.ComposedPrompt{Prompt: joined}, s.sfxLimit)
	return p.Prompt
}
