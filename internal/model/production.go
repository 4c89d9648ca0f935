package model

// ProductionResponse is the validated production plan for one ad spot.
// It is built once per generation request from raw model output and is
// immutable afterward.
type ProductionResponse struct {
	Script       string         `json:"script"`
	Context      AdContext      `json:"context"`
	Music        MusicDescriptor `json:"music"`
	Fades        Fades          `json:"fades"`
	Volume       VolumePlan     `json:"volume"`
	MixPreset    *MixPreset     `json:"mixPreset,omitempty"`
	SentenceCues []SentenceCue  `json:"sentenceCues,omitempty"`
	AdFormat     *CreativePlan  `json:"adFormat,omitempty"`
}

// AdContext describes the ad being produced.
type AdContext struct {
	AdCategory      AdCategory `json:"adCategory"`
	Tone            Tone       `json:"tone"`
	Emotion         Emotion    `json:"emotion"`
	Pace            Pace       `json:"pace"`
	DurationSeconds float64    `json:"durationSeconds"`
}

// MusicDescriptor carries everything the music provider needs to know.
// Optional facets are pointers: present or absent, never zero-valued guesses.
type MusicDescriptor struct {
	Prompt            string           `json:"prompt"`
	TargetBPM         float64          `json:"targetBPM"`
	Genre             Genre            `json:"genre"`
	Mood              Mood             `json:"mood"`
	ComposerDirection string           `json:"composerDirection"`
	Instrumentation   *Instrumentation `json:"instrumentation,omitempty"`
	Arc               []ArcSegment     `json:"arc,omitempty"`
	ButtonEnding      *bool            `json:"buttonEnding,omitempty"`
	MusicalStructure  *string          `json:"musicalStructure,omitempty"`
}

// Instrumentation describes the desired texture per frequency band.
type Instrumentation struct {
	Drums   string `json:"drums"`
	Bass    string `json:"bass"`
	Mids    string `json:"mids"`
	Effects string `json:"effects"`
}

// ArcSegment is a time-bounded window of the track with its own direction.
type ArcSegment struct {
	StartSeconds float64 `json:"startSeconds"`
	EndSeconds   float64 `json:"endSeconds"`
	Label        string  `json:"label"`
	MusicPrompt  string  `json:"musicPrompt"`
	TargetBPM    float64 `json:"targetBPM"`
	EnergyLevel  int     `json:"energyLevel"`
}

// Fades holds the fade-in/out envelope for the final mix.
type Fades struct {
	FadeInSeconds  float64    `json:"fadeInSeconds"`
	FadeOutSeconds float64    `json:"fadeOutSeconds"`
	Curve          *FadeCurve `json:"curve,omitempty"`
}

// VolumePlan holds static levels plus optional timed ducking segments.
// Levels are pointers so an explicit zero survives: absent means default,
// zero means silent.
type VolumePlan struct {
	VoiceVolume *float64        `json:"voiceVolume,omitempty"`
	MusicVolume *float64        `json:"musicVolume,omitempty"`
	Segments    []VolumeSegment `json:"segments,omitempty"`
}

// VolumeSegment lowers or raises the music level for a time window.
type VolumeSegment struct {
	StartSeconds float64 `json:"startSeconds"`
	EndSeconds   float64 `json:"endSeconds"`
	MusicVolume  float64 `json:"musicVolume"`
}

// SentenceCue attaches per-sentence hints the composer and SFX provider use.
type SentenceCue struct {
	SentenceIndex int     `json:"sentenceIndex"`
	Text          string  `json:"text"`
	StartSeconds  float64 `json:"startSeconds,omitempty"`
	SFXPrompt     string  `json:"sfxPrompt,omitempty"`
	Emphasis      bool    `json:"emphasis,omitempty"`
}
