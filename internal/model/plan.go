package model

// CreativePlan is a segment-based creative timeline for an ad spot.
type CreativePlan struct {
	TemplateID           string            `json:"templateId"`
	TotalDurationSeconds float64           `json:"totalDurationSeconds"`
	MusicDirection       string            `json:"musicDirection"`
	Segments             []CreativeSegment `json:"segments"`
}

// CreativeSegment is one ordered slice of the creative timeline. The layer
// sub-records present must match the declared type exactly.
type CreativeSegment struct {
	Index           int          `json:"index"`
	Type            SegmentType  `json:"type"`
	DurationSeconds float64      `json:"durationSeconds"`
	Voice           *VoiceLayer  `json:"voice,omitempty"`
	Music           *MusicLayer  `json:"music,omitempty"`
	SFX             *SFXLayer    `json:"sfx,omitempty"`
	Transition      string       `json:"transition,omitempty"`
}

// VoiceLayer is the voiceover content for a segment.
type VoiceLayer struct {
	Text       string `json:"text"`
	VoiceStyle string `json:"voiceStyle,omitempty"`
}

// MusicLayer is the music bed for a segment.
type MusicLayer struct {
	Prompt string   `json:"prompt"`
	Volume *float64 `json:"volume,omitempty"`
}

// SFXLayer is the sound-effect content for a segment.
type SFXLayer struct {
	Prompt string `json:"prompt"`
}

// HasVoice reports whether the segment type carries a voice layer.
func (t SegmentType) HasVoice() bool {
	return t == SegmentVoiceWithMusic || t == SegmentVoiceSolo
}

// HasMusic reports whether the segment type carries a music layer.
func (t SegmentType) HasMusic() bool {
	return t == SegmentMusicSolo || t == SegmentVoiceWithMusic
}

// HasSFX reports whether the segment type carries an SFX layer.
func (t SegmentType) HasSFX() bool {
	return t == SegmentSFX
}
