// Package adformat checks a segment-based creative timeline for structural
// consistency. Violations come back as data, not errors, so the caller can
// decide between auto-repair, regeneration, and rejection.
package adformat

import (
	"fmt"
	"math"

	"github.com/spotforge/api/internal/model"
)

// DurationTolerance is how far the segment durations may drift from the
// declared total. Fixed empirical constant; overridable, not inlined.
var DurationTolerance = 1.0

// MaxMusicSoloSeconds caps a music-only bumper. Anything longer stops
// being an intro or outro and starts being dead air.
var MaxMusicSoloSeconds = 6.0

// Validate runs every structural check and returns all violations found.
// An empty slice means the plan is valid.
func Validate(plan *model.CreativePlan) []string {
	if plan == nil {
		return []string{"plan: missing"}
	}

	var violations []string
	violations = append(violations, checkTypes(plan)...)
	violations = append(violations, checkIndices(plan)...)
	violations = append(violations, checkDurationSum(plan)...)
	violations = append(violations, checkLayerPresence(plan)...)
	violations = append(violations, checkVoicePresence(plan)...)
	violations = append(violations, checkMusicSoloPlacement(plan)...)
	return violations
}

// checkTypes rejects segment types outside the known set. An unknown type
// has no layer rules, so the presence checks below would wave it through.
func checkTypes(plan *model.CreativePlan) []string {
	var v []string
	for _, seg := range plan.Segments {
		if !knownSegmentType(seg.Type) {
			v = append(v, fmt.Sprintf("segment %d: unknown type %q", seg.Index, seg.Type))
		}
	}
	return v
}

func knownSegmentType(t model.SegmentType) bool {
	for _, x := range model.ValidSegmentTypes {
		if x == t {
			return true
		}
	}
	return false
}

// checkIndices requires segment indices contiguous from 0.
func checkIndices(plan *model.CreativePlan) []string {
	var v []string
	for i, seg := range plan.Segments {
		if seg.Index != i {
			v = append(v, fmt.Sprintf("segment %d: index %d breaks contiguity", i, seg.Index))
		}
	}
	return v
}

// checkDurationSum compares the segment sum against the claimed total.
func checkDurationSum(plan *model.CreativePlan) []string {
	var sum float64
	for _, seg := range plan.Segments {
		sum += seg.DurationSeconds
	}
	if math.Abs(sum-plan.TotalDurationSeconds) > DurationTolerance {
		return []string{fmt.Sprintf(
			"duration sum %.2fs differs from declared total %.2fs by more than %.1fs",
			sum, plan.TotalDurationSeconds, DurationTolerance)}
	}
	return nil
}

// checkLayerPresence requires the sub-records present to match the
// declared segment type exactly.
func checkLayerPresence(plan *model.CreativePlan) []string {
	var v []string
	for _, seg := range plan.Segments {
		t := seg.Type
		if t.HasVoice() && seg.Voice == nil {
			v = append(v, fmt.Sprintf("segment %d: type %s requires a voice layer", seg.Index, t))
		}
		if !t.HasVoice() && seg.Voice != nil {
			v = append(v, fmt.Sprintf("segment %d: type %s must not carry a voice layer", seg.Index, t))
		}
		if t.HasMusic() && seg.Music == nil {
			v = append(v, fmt.Sprintf("segment %d: type %s requires a music layer", seg.Index, t))
		}
		if !t.HasMusic() && seg.Music != nil {
			v = append(v, fmt.Sprintf("segment %d: type %s must not carry a music layer", seg.Index, t))
		}
		if t.HasSFX() && seg.SFX == nil {
			v = append(v, fmt.Sprintf("segment %d: type %s requires an sfx layer", seg.Index, t))
		}
		if !t.HasSFX() && seg.SFX != nil {
			v = append(v, fmt.Sprintf("segment %d: type %s must not carry an sfx layer", seg.Index, t))
		}
	}
	return v
}

// checkVoicePresence requires at least one voice-bearing segment: an ad
// with no voiceover has nothing to sell with.
func checkVoicePresence(plan *model.CreativePlan) []string {
	for _, seg := range plan.Segments {
		if seg.Type.HasVoice() {
			return nil
		}
	}
	return []string{"plan: no voice-bearing segment"}
}

// checkMusicSoloPlacement confines music-only segments to the first or
// last position, under the duration cap, and never between two voiceover
// segments.
func checkMusicSoloPlacement(plan *model.CreativePlan) []string {
	var v []string
	last := len(plan.Segments) - 1

	for i, seg := range plan.Segments {
		if seg.Type != model.SegmentMusicSolo {
			continue
		}
		if i != 0 && i != last {
			if surroundedByVoice(plan.Segments, i) {
				v = append(v, fmt.Sprintf("segment %d: music-only gap between voiceover segments", seg.Index))
			} else {
				v = append(v, fmt.Sprintf("segment %d: music-only segment must be first or last", seg.Index))
			}
		}
		if seg.DurationSeconds > MaxMusicSoloSeconds {
			v = append(v, fmt.Sprintf("segment %d: music-only duration %.2fs exceeds cap %.1fs",
				seg.Index, seg.DurationSeconds, MaxMusicSoloSeconds))
		}
	}
	return v
}

// surroundedByVoice reports whether a voice segment occurs somewhere
// before and somewhere after position i.
func surroundedByVoice(segs []model.CreativeSegment, i int) bool {
	before, after := false, false
	for j := 0; j < i; j++ {
		if segs[j].Type.HasVoice() {
			before = true
			break
		}
	}
	for j := i + 1; j < len(segs); j++ {
		if segs[j].Type.HasVoice() {
			after = true
			break
		}
	}
	return before && after
}
