package model

// Ad categories
type AdCategory string

const (
	CategoryRetail        AdCategory = "retail"
	CategoryAutomotive    AdCategory = "automotive"
	CategoryFoodBeverage  AdCategory = "food_beverage"
	CategoryFinance       AdCategory = "finance"
	CategoryHealthcare    AdCategory = "healthcare"
	CategoryTech          AdCategory = "tech"
	CategoryTravel        AdCategory = "travel"
	CategoryEntertainment AdCategory = "entertainment"
	CategoryRealEstate    AdCategory = "real_estate"
	CategoryNonprofit     AdCategory = "nonprofit"
)

var ValidCategories = []AdCategory{
	CategoryRetail, CategoryAutomotive, CategoryFoodBeverage, CategoryFinance,
	CategoryHealthcare, CategoryTech, CategoryTravel, CategoryEntertainment,
	CategoryRealEstate, CategoryNonprofit,
}

// Voice tones
type Tone string

const (
	ToneFriendly     Tone = "friendly"
	ToneProfessional Tone = "professional"
	ToneUrgent       Tone = "urgent"
	TonePlayful      Tone = "playful"
	ToneLuxurious    Tone = "luxurious"
	ToneHeartfelt    Tone = "heartfelt"
)

var ValidTones = []Tone{
	ToneFriendly, ToneProfessional, ToneUrgent,
	TonePlayful, ToneLuxurious, ToneHeartfelt,
}

// Target emotions
type Emotion string

const (
	EmotionExcitement Emotion = "excitement"
	EmotionTrust      Emotion = "trust"
	EmotionJoy        Emotion = "joy"
	EmotionNostalgia  Emotion = "nostalgia"
	EmotionCalm       Emotion = "calm"
	EmotionUrgency    Emotion = "urgency"
)

var ValidEmotions = []Emotion{
	EmotionExcitement, EmotionTrust, EmotionJoy,
	EmotionNostalgia, EmotionCalm, EmotionUrgency,
}

// Delivery paces
type Pace string

const (
	PaceSlow    Pace = "slow"
	PaceRelaxed Pace = "relaxed"
	PaceMedium  Pace = "medium"
	PaceUpbeat  Pace = "upbeat"
	PaceFast    Pace = "fast"
)

var ValidPaces = []Pace{PaceSlow, PaceRelaxed, PaceMedium, PaceUpbeat, PaceFast}

// Music genres
type Genre string

const (
	GenrePop        Genre = "pop"
	GenreRock       Genre = "rock"
	GenreElectronic Genre = "electronic"
	GenreJazz       Genre = "jazz"
	GenreHiphop     Genre = "hiphop"
	GenreAcoustic   Genre = "acoustic"
	GenreCinematic  Genre = "cinematic"
	GenreAmbient    Genre = "ambient"
	GenreFunk       Genre = "funk"
	GenreCountry    Genre = "country"
	GenreClassical  Genre = "classical"
	GenreCorporate  Genre = "corporate"
)

var ValidGenres = []Genre{
	GenrePop, GenreRock, GenreElectronic, GenreJazz, GenreHiphop,
	GenreAcoustic, GenreCinematic, GenreAmbient, GenreFunk,
	GenreCountry, GenreClassical, GenreCorporate,
}

// Music moods
type Mood string

const (
	MoodUplifting Mood = "uplifting"
	MoodEnergetic Mood = "energetic"
	MoodWarm      Mood = "warm"
	MoodDramatic  Mood = "dramatic"
	MoodMellow    Mood = "mellow"
	MoodBright    Mood = "bright"
	MoodDark      Mood = "dark"
	MoodPlayful   Mood = "playful"
)

var ValidMoods = []Mood{
	MoodUplifting, MoodEnergetic, MoodWarm, MoodDramatic,
	MoodMellow, MoodBright, MoodDark, MoodPlayful,
}

// Fade curves
type FadeCurve string

const (
	CurveLinear      FadeCurve = "linear"
	CurveExponential FadeCurve = "exponential"
	CurveSCurve      FadeCurve = "scurve"
)

var ValidCurves = []FadeCurve{CurveLinear, CurveExponential, CurveSCurve}

// Mix presets
type MixPreset string

const (
	MixPresetDefault      MixPreset = "default"
	MixPresetVoiceForward MixPreset = "voice_forward"
	MixPresetMusicForward MixPreset = "music_forward"
	MixPresetWarm         MixPreset = "warm"
	MixPresetBright       MixPreset = "bright"
)

var ValidMixPresets = []MixPreset{
	MixPresetDefault, MixPresetVoiceForward, MixPresetMusicForward,
	MixPresetWarm, MixPresetBright,
}

// Creative segment types
type SegmentType string

const (
	SegmentMusicSolo      SegmentType = "music_solo"
	SegmentVoiceWithMusic SegmentType = "voiceover_with_music"
	SegmentVoiceSolo      SegmentType = "voiceover_solo"
	SegmentSFX            SegmentType = "sfx"
	SegmentSilence        SegmentType = "silence"
)

var ValidSegmentTypes = []SegmentType{
	SegmentMusicSolo, SegmentVoiceWithMusic, SegmentVoiceSolo,
	SegmentSFX, SegmentSilence,
}

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)
