package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/spotforge/api/internal/client"
	"github.com/spotforge/api/internal/model"
	"github.com/spotforge/api/internal/service"
	"github.com/spotforge/api/internal/timing"
	"github.com/spotforge/api/internal/websocket"
)

// planSystemPrompt instructs the model to answer with nothing but the
// production-plan JSON object. The sanitizer tolerates fences and prose
// anyway, but asking keeps responses short.
const planSystemPrompt = `You are an audio advertising producer. Reply with a single JSON object and nothing else, using exactly these fields:
{"script": string, "context": {"adCategory", "tone", "emotion", "pace", "durationSeconds"}, "music": {"prompt", "targetBPM", "genre", "mood", "composerDirection", "instrumentation": {"drums","bass","mids","effects"}, "arc": [{"startSeconds","endSeconds","label","musicPrompt","targetBPM","energyLevel"}], "buttonEnding"}, "fades": {"fadeInSeconds","fadeOutSeconds","curve"}, "volume": {"voiceVolume","musicVolume"}}
Write a voiceover script that fits the requested duration when read aloud.`

// SpotWorker runs the full spot production pipeline for queued jobs
type SpotWorker struct {
	spotService    *service.SpotService
	composeService *service.ComposeService
	llmClient      *client.LLMClient
	musicClient    *client.MusicClient
	ttsClient      *client.TTSClient
	sfxClient      *client.SFXClient
	r2Client       client.StorageClient
	hub            *websocket.Hub
}

// NewSpotWorker creates a new spot worker
func NewSpotWorker(
	spotService *service.SpotService,
	composeService *service.ComposeService,
	llmClient *client.LLMClient,
	musicClient *client.MusicClient,
	ttsClient *client.TTSClient,
	sfxClient *client.SFXClient,
	r2Client client.StorageClient,
	hub *websocket.Hub,
) *SpotWorker {
	return &SpotWorker{
		spotService:    spotService,
		composeService: composeService,
		llmClient:      llmClient,
		musicClient:    musicClient,
		ttsClient:      ttsClient,
		sfxClient:      sfxClient,
		r2Client:       r2Client,
		hub:            hub,
	}
}

// ProcessTask handles spot task processing
func (w *SpotWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var taskPayload struct {
		JobID   string          `json:"jobId"`
		Payload json.RawMessage `json:"payload"`
	}

	if err := json.Unmarshal(t.Payload(), &taskPayload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	jobID := taskPayload.JobID
	log.Printf("Starting spot job: %s", jobID)

	var payload model.SpotJobPayload
	if err := json.Unmarshal(taskPayload.Payload, &payload); err != nil {
		w.failJob(ctx, jobID, "Invalid payload")
		return fmt.Errorf("failed to unmarshal spot payload: %w", err)
	}

	if w.llmClient == nil || !w.llmClient.IsConfigured() {
		return w.processWithMock(ctx, jobID, &payload)
	}

	return w.processSpot(ctx, jobID, &payload)
}

// processSpot runs the real pipeline: draft the plan, render the
// voiceover, fit the grid, generate the music, align, and store.
func (w *SpotWorker) processSpot(ctx context.Context, jobID string, payload *model.SpotJobPayload) error {
	brief := &payload.Brief

	// Step 1: Draft the production plan
	w.updateProgress(ctx, jobID, 5, "Drafting production plan...")
	raw, err := w.llmClient.ChatCompletion(ctx, planSystemPrompt, briefUserPrompt(brief))
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Plan drafting failed: %v", err))
		return err
	}

	// Step 2: First compose pass, voice length estimated from the script
	w.updateProgress(ctx, jobID, 15, "Validating production plan...")
	composed, err := w.composeService.Compose(service.ComposeInput{
		RawOutput:     raw,
		CulturalStyle: brief.CulturalStyle,
		FallbackBrief: brief,
	})
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Plan composition failed: %v", err))
		return err
	}
	if w.canceled(ctx, jobID) {
		return nil
	}

	// Step 3: Render the voiceover and measure it
	voiceURL := ""
	voiceSeconds := 0.0
	var sentences []client.SentenceTiming
	if w.ttsClient != nil && w.ttsClient.IsConfigured() {
		w.updateProgress(ctx, jobID, 30, "Rendering voiceover...")
		tts, err := w.ttsClient.Synthesize(ctx, &client.SynthesizeRequest{
			Text:      composed.Production.Script,
			Tone:      string(brief.Tone),
			Pace:      string(composed.Production.Context.Pace),
			OutputKey: fmt.Sprintf("spots/%s/%s/voice.wav", payload.ProjectID, jobID),
		})
		if err != nil {
			w.failJob(ctx, jobID, fmt.Sprintf("Voiceover rendering failed: %v", err))
			return err
		}
		voiceURL = tts.AudioURL
		voiceSeconds = tts.DurationSeconds
		sentences = tts.Sentences
	}

	// Step 4: Second compose pass against the measured voice length
	if voiceSeconds > 0 {
		w.updateProgress(ctx, jobID, 40, "Fitting bar grid...")
		composed, err = w.composeService.Compose(service.ComposeInput{
			RawOutput:     raw,
			VoiceSeconds:  voiceSeconds,
			CulturalStyle: brief.CulturalStyle,
			FallbackBrief: brief,
		})
		if err != nil {
			w.failJob(ctx, jobID, fmt.Sprintf("Plan composition failed: %v", err))
			return err
		}
		w.attachSentenceCues(composed, sentences)
	}
	if w.canceled(ctx, jobID) {
		return nil
	}

	// Step 5: Generate the music bed
	var musicURL string
	if w.musicClient != nil && w.musicClient.IsConfigured() {
		w.updateProgress(ctx, jobID, 50, "Generating music bed...")
		genResp, err := w.musicClient.GenerateMusic(ctx, client.RequestFromPrompt(composed.Prompt))
		if err != nil {
			w.failJob(ctx, jobID, fmt.Sprintf("Music generation failed: %v", err))
			return err
		}

		w.updateProgress(ctx, jobID, 60, "Waiting for music generation...")
		musicResult, err := w.musicClient.PollMusicStatus(ctx, genResp.TaskID, 5*time.Second, 10*time.Minute)
		if err != nil {
			w.failJob(ctx, jobID, fmt.Sprintf("Music generation timed out: %v", err))
			return err
		}
		musicURL = musicResult.AudioURL

		// Step 6: Decide how the generated track maps onto the grid
		w.updateProgress(ctx, jobID, 80, "Aligning music to voice...")
		align := timing.AlignMusicToVoice(
			musicResult.Duration,
			effectiveVoiceSeconds(voiceSeconds, composed),
			composed.Timing.Tempo,
			string(composed.Production.Music.Genre),
			timing.Sig4_4,
		)
		composed.Timing.AlignDecision = string(align.Decision)
		if align.Decision != timing.AlignUseAsIs {
			composed.Timing.TrimSeconds = align.TrimSeconds
		}
		if align.Decision == timing.AlignLoop {
			composed.Timing.LoopCount = align.LoopCount
		}
	}
	if w.canceled(ctx, jobID) {
		return nil
	}

	// Step 7: Optional SFX accents; failure here never sinks the spot
	if w.sfxClient != nil && w.sfxClient.IsConfigured() && composed.SFXPrompt != "" {
		w.updateProgress(ctx, jobID, 88, "Generating sound effects...")
		if _, err := w.sfxClient.GenerateSFX(ctx, &client.GenerateSFXRequest{Prompt: composed.SFXPrompt}); err != nil {
			log.Printf("SFX generation failed for job %s, continuing: %v", jobID, err)
		}
	}

	// Step 8: Persist the plan and finish
	w.updateProgress(ctx, jobID, 95, "Finalizing...")
	result := &model.SpotResultResponse{
		ID:             uuid.New().String(),
		Production:     composed.Production,
		UsedFallback:   composed.UsedFallback,
		PlanViolations: composed.PlanViolations,
		Prompt:         composed.Prompt,
		Timing:         composed.Timing,
		VoiceURL:       voiceURL,
		MusicURL:       musicURL,
		CreatedAt:      time.Now(),
	}
	result.PlanURL = w.storePlan(ctx, payload.ProjectID, jobID, result)

	if err := w.spotService.CompleteJob(ctx, jobID, result); err != nil {
		w.failJob(ctx, jobID, "Failed to save result")
		return err
	}

	w.hub.BroadcastComplete(jobID, result)
	log.Printf("Spot job %s completed", jobID)
	return nil
}

// processWithMock runs the deterministic pipeline for development: no
// providers, the fallback plan stands in for the model's draft.
func (w *SpotWorker) processWithMock(ctx context.Context, jobID string, payload *model.SpotJobPayload) error {
	steps := []struct {
		progress int
		step     string
		duration time.Duration
	}{
		{10, "Drafting production plan...", 1 * time.Second},
		{30, "Rendering voiceover...", 2 * time.Second},
		{50, "Fitting bar grid...", 1 * time.Second},
		{70, "Generating music bed...", 3 * time.Second},
		{90, "Aligning music to voice...", 1 * time.Second},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			log.Printf("Spot job %s cancelled", jobID)
			return ctx.Err()
		default:
		}

		w.updateProgress(ctx, jobID, step.progress, step.step)
		time.Sleep(step.duration)
	}

	// Empty raw output forces the fallback path, which the brief enriches.
	composed, err := w.composeService.Compose(service.ComposeInput{
		RawOutput:     "",
		CulturalStyle: payload.Brief.CulturalStyle,
		FallbackBrief: &payload.Brief,
	})
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Plan composition failed: %v", err))
		return err
	}

	result := &model.SpotResultResponse{
		ID:             uuid.New().String(),
		Production:     composed.Production,
		UsedFallback:   composed.UsedFallback,
		PlanViolations: composed.PlanViolations,
		Prompt:         composed.Prompt,
		Timing:         composed.Timing,
		CreatedAt:      time.Now(),
	}

	if err := w.spotService.CompleteJob(ctx, jobID, result); err != nil {
		w.failJob(ctx, jobID, "Failed to save result")
		return err
	}

	w.hub.BroadcastComplete(jobID, result)
	log.Printf("Spot job %s completed (mock)", jobID)
	return nil
}

// briefUserPrompt renders the advertiser's brief for the drafting model
func briefUserPrompt(b *model.SpotBrief) string {
	return fmt.Sprintf(
		"Product: %s\nKey message: %s\nCategory: %s\nTone: %s\nDuration: %.0f seconds\nCall to action: %s\nAudience: %s",
		b.ProductName, b.KeyMessage, b.AdCategory, b.Tone, b.DurationSeconds, b.CallToAction, b.Audience)
}

// attachSentenceCues merges measured sentence timings into the plan,
// snapping each cue to the nearest beat so accents land on the grid.
func (w *SpotWorker) attachSentenceCues(composed *model.ComposeResponse, sentences []client.SentenceTiming) {
	if len(sentences) == 0 {
		return
	}

	existing := make(map[int]model.SentenceCue, len(composed.Production.SentenceCues))
	for _, cue := range composed.Production.SentenceCues {
		existing[cue.SentenceIndex] = cue
	}

	cues := make([]model.SentenceCue, 0, len(sentences))
	for _, s := range sentences {
		cue := model.SentenceCue{
			SentenceIndex: s.Index,
			Text:          s.Text,
			StartSeconds:  timing.NearestBeat(s.StartSeconds, composed.Timing.Tempo, timing.Sig4_4),
		}
		if prev, ok := existing[s.Index]; ok {
			cue.SFXPrompt = prev.SFXPrompt
			cue.Emphasis = prev.Emphasis
		}
		cues = append(cues, cue)
	}
	composed.Production.SentenceCues = cues
}

// effectiveVoiceSeconds falls back to the pre/post-roll derived voice
// window when no measured duration exists.
func effectiveVoiceSeconds(measured float64, composed *model.ComposeResponse) float64 {
	if measured > 0 {
		return measured
	}
	return composed.Timing.MusicSeconds - composed.Timing.PreRollSeconds - composed.Timing.PostRollSeconds
}

// storePlan uploads the finished plan JSON to object storage. Failure is
// logged, not fatal: the plan still lives in the job record.
func (w *SpotWorker) storePlan(ctx context.Context, projectID, jobID string, result *model.SpotResultResponse) string {
	if w.r2Client == nil {
		return ""
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal plan for job %s: %v", jobID, err)
		return ""
	}

	key := fmt.Sprintf("spots/%s/%s/plan.json", projectID, jobID)
	url, err := w.r2Client.Upload(ctx, key, bytes.NewReader(data), "application/json")
	if err != nil {
		log.Printf("Failed to upload plan for job %s: %v", jobID, err)
		return ""
	}
	return url
}

func (w *SpotWorker) canceled(ctx context.Context, jobID string) bool {
	if w.spotService.IsCanceled(ctx, jobID) {
		log.Printf("Spot job %s canceled, stopping pipeline", jobID)
		return true
	}
	return false
}

func (w *SpotWorker) updateProgress(ctx context.Context, jobID string, progress int, step string) {
	if err := w.spotService.UpdateJobProgress(ctx, jobID, progress, step); err != nil {
		log.Printf("Failed to update progress: %v", err)
	}
	w.hub.BroadcastProgress(jobID, progress, model.JobStatusRunning, step)
}

func (w *SpotWorker) failJob(ctx context.Context, jobID, errMsg string) {
	if err := w.spotService.FailJob(ctx, jobID, errMsg); err != nil {
		log.Printf("Failed to mark job as failed: %v", err)
	}
	w.hub.BroadcastError(jobID, "SPOT_FAILED", errMsg)
}
