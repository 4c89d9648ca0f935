package timing

import "math"

// TimeSignature identifies the rhythmic cycle the bar math runs on.
type TimeSignature string

const (
	Sig4_4  TimeSignature = "4/4"
	Sig3_4  TimeSignature = "3/4"
	Sig6_8  TimeSignature = "6/8"
	Sig12_8 TimeSignature = "12/8"
	Sig7_8  TimeSignature = "7/8"
)

// beatsPerBar is fixed per signature; unknown signatures fall back to 4/4.
var beatsPerBar = map[TimeSignature]int{
	Sig4_4:  4,
	Sig3_4:  3,
	Sig6_8:  6,
	Sig12_8: 12,
	Sig7_8:  7,
}

// beatUnit is the notated beat length relative to a quarter note: x/4
// signatures count quarters, compound x/8 signatures count eighths.
var beatUnit = map[TimeSignature]float64{
	Sig4_4:  1.0,
	Sig3_4:  1.0,
	Sig6_8:  0.5,
	Sig12_8: 0.5,
	Sig7_8:  0.5,
}

// barEpsilon absorbs float residue so snapping is idempotent on input
// that is already bar-aligned.
const barEpsilon = 1e-6

// BeatsPerBar returns the number of beats in one bar of the signature.
func BeatsPerBar(sig TimeSignature) int {
	if n, ok := beatsPerBar[sig]; ok {
		return n
	}
	return 4
}

// BeatDuration returns the length of one beat in seconds.
func BeatDuration(tempo float64, sig TimeSignature) float64 {
	if tempo <= 0 {
		return 0
	}
	unit, ok := beatUnit[sig]
	if !ok {
		unit = 1.0
	}
	return 60.0 / tempo * unit
}

// BarDuration returns the length of one bar in seconds.
func BarDuration(tempo float64, sig TimeSignature) float64 {
	return BeatDuration(tempo, sig) * float64(BeatsPerBar(sig))
}

// BarGrid is the bar-exact view of a duration at a given tempo.
type BarGrid struct {
	Tempo        float64       `json:"tempo"`
	Signature    TimeSignature `json:"signature"`
	BeatsPerBar  int           `json:"beatsPerBar"`
	BeatSeconds  float64       `json:"beatSeconds"`
	BarSeconds   float64       `json:"barSeconds"`
	TotalBars    int           `json:"totalBars"`
	TotalSeconds float64       `json:"totalSeconds"`
}

// NewBarGrid builds the grid covering at least the given duration.
// TotalSeconds is always TotalBars × BarSeconds, never the raw input.
func NewBarGrid(seconds, tempo float64, sig TimeSignature) BarGrid {
	beat := BeatDuration(tempo, sig)
	bar := BarDuration(tempo, sig)
	bars := 0
	if bar > 0 {
		bars = int(math.Ceil(seconds/bar - barEpsilon))
		if bars < 1 {
			bars = 1
		}
	}
	return BarGrid{
		Tempo:        tempo,
		Signature:    sig,
		BeatsPerBar:  BeatsPerBar(sig),
		BeatSeconds:  beat,
		BarSeconds:   bar,
		TotalBars:    bars,
		TotalSeconds: float64(bars) * bar,
	}
}

// CeilToBar snaps a duration up to the next whole-bar boundary.
func CeilToBar(seconds, tempo float64, sig TimeSignature) float64 {
	bar := BarDuration(tempo, sig)
	if bar <= 0 || seconds <= 0 {
		return 0
	}
	return math.Ceil(seconds/bar-barEpsilon) * bar
}

// FloorToBar snaps a duration down to the previous whole-bar boundary.
func FloorToBar(seconds, tempo float64, sig TimeSignature) float64 {
	bar := BarDuration(tempo, sig)
	if bar <= 0 || seconds <= 0 {
		return 0
	}
	return math.Floor(seconds/bar+barEpsilon) * bar
}

// RoundToBar snaps a duration to the closest whole-bar boundary.
func RoundToBar(seconds, tempo float64, sig TimeSignature) float64 {
	bar := BarDuration(tempo, sig)
	if bar <= 0 || seconds <= 0 {
		return 0
	}
	return math.Round(seconds/bar) * bar
}

// NearestDownbeat snaps a timestamp to the closest bar boundary. Cue
// points placed off the downbeat read as mistakes, not accents.
func NearestDownbeat(ts, tempo float64, sig TimeSignature) float64 {
	return RoundToBar(ts, tempo, sig)
}

// NearestBeat snaps a timestamp to the closest beat boundary.
func NearestBeat(ts, tempo float64, sig TimeSignature) float64 {
	beat := BeatDuration(tempo, sig)
	if beat <= 0 || ts <= 0 {
		return 0
	}
	return math.Round(ts/beat) * beat
}
