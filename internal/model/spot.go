package model

import "time"

// SpotBrief is what the advertiser gives us: everything the generative
// model needs to draft a production plan.
type SpotBrief struct {
	ProductName     string     `json:"productName" validate:"required,max=120"`
	KeyMessage      string     `json:"keyMessage" validate:"required,max=500"`
	AdCategory      AdCategory `json:"adCategory" validate:"required,oneof=retail automotive food_beverage finance healthcare tech travel entertainment real_estate nonprofit"`
	Tone            Tone       `json:"tone" validate:"required,oneof=friendly professional urgent playful luxurious heartfelt"`
	DurationSeconds float64    `json:"durationSeconds" validate:"required,min=5,max=120"`
	CallToAction    string     `json:"callToAction,omitempty" validate:"max=200"`
	Audience        string     `json:"audience,omitempty" validate:"max=200"`
	CulturalStyle   string     `json:"culturalStyle,omitempty" validate:"max=300"`
}

// SpotStartRequest starts an asynchronous spot production job
type SpotStartRequest struct {
	ProjectID string    `json:"projectId" validate:"required,uuid"`
	Brief     SpotBrief `json:"brief" validate:"required"`
}

// SpotStartResponse is returned when a spot job is queued
type SpotStartResponse struct {
	JobID             string    `json:"jobId"`
	Status            JobStatus `json:"status"`
	EstimatedDuration int       `json:"estimatedDuration"`
	CreatedAt         time.Time `json:"createdAt"`
}

// SpotStatusResponse reports job progress
type SpotStatusResponse struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RetryCount  int        `json:"retryCount"`
}

// SpotResultResponse is the finished production: the validated plan, the
// prompt that went to the music provider, and the bar-exact mix decisions
// the audio-assembly stage needs.
type SpotResultResponse struct {
	ID            string             `json:"id"`
	Production    ProductionResponse `json:"production"`
	UsedFallback  bool               `json:"usedFallback"`
	PlanViolations []string          `json:"planViolations,omitempty"`
	Prompt        ComposedPrompt     `json:"prompt"`
	Timing        TimingPlan         `json:"timing"`
	VoiceURL      string             `json:"voiceUrl,omitempty"`
	MusicURL      string             `json:"musicUrl,omitempty"`
	PlanURL       string             `json:"planUrl,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// SpotCancelResponse is returned when a job is canceled
type SpotCancelResponse struct {
	Success bool      `json:"success"`
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
}

// ComposedPrompt is the wire shape handed to a music/SFX provider.
type ComposedPrompt struct {
	CustomMode      bool   `json:"customMode"`
	Title           string `json:"title,omitempty"`
	CompositionText string `json:"compositionText,omitempty"`
	Prompt          string `json:"prompt,omitempty"`
	Truncated       bool   `json:"truncated"`
}

// TimingPlan is the flattened bar math the audio-assembly stage consumes
// to place literal trim and loop points.
type TimingPlan struct {
	Tempo            float64 `json:"tempo"`
	BeatsPerBar      int     `json:"beatsPerBar"`
	BarSeconds       float64 `json:"barSeconds"`
	TotalBars        int     `json:"totalBars"`
	PreRollBars      int     `json:"preRollBars"`
	PreRollSeconds   float64 `json:"preRollSeconds"`
	PostRollBars     int     `json:"postRollBars"`
	PostRollSeconds  float64 `json:"postRollSeconds"`
	MusicSeconds     float64 `json:"musicSeconds"`
	SeedSeconds      float64 `json:"seedSeconds,omitempty"`
	SeedBars         int     `json:"seedBars,omitempty"`
	LoopCount        int     `json:"loopCount,omitempty"`
	TrimSeconds      float64 `json:"trimSeconds,omitempty"`
	AlignDecision    string  `json:"alignDecision,omitempty"`
}

// ComposeRequest is the synchronous compose endpoint input: one raw text
// blob from a generative model, possibly fenced or followed by prose.
type ComposeRequest struct {
	RawOutput     string  `json:"rawOutput" validate:"required"`
	VoiceSeconds  float64 `json:"voiceSeconds,omitempty" validate:"omitempty,gt=0"`
	CulturalStyle string  `json:"culturalStyle,omitempty" validate:"max=300"`
}

// ComposeResponse returns the sanitized plan plus everything derived from it.
type ComposeResponse struct {
	Production     ProductionResponse `json:"production"`
	UsedFallback   bool               `json:"usedFallback"`
	ParseError     string             `json:"parseError,omitempty"`
	PlanViolations []string           `json:"planViolations,omitempty"`
	Prompt         ComposedPrompt     `json:"prompt"`
	SFXPrompt      string             `json:"sfxPrompt,omitempty"`
	Timing         TimingPlan         `json:"timing"`
}
