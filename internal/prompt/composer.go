// Package prompt assembles the single text prompt handed to the music
// generation provider. Sections carry fixed priorities; when the provider's
// character budget runs out, low-priority sections are dropped whole, never
// cut mid-sentence.
package prompt

import (
	"fmt"
	"strings"

	"github.com/spotforge/api/internal/model"
)

// Limits are the per-provider character budgets.
type Limits struct {
	TitleLimit       int
	CompositionLimit int
	SimpleLimit      int
}

// DefaultLimits match the primary music provider.
var DefaultLimits = Limits{
	TitleLimit:       80,
	CompositionLimit: 2500,
	SimpleLimit:      500,
}

// TimingHints carries the bar math the composer folds into the prompt so
// the provider generates against the same grid the mix will cut on.
type TimingHints struct {
	Tempo           float64
	TotalBars       int
	ExactSeconds    float64
	PreRollSeconds  float64
	PostRollSeconds float64
}

// section is one candidate block of the composed text.
type section struct {
	text     string
	priority int // lower is kept longer
}

// Compose builds the provider request from a validated production plan.
// The three head sections and the closing section always survive; body and
// tail sections are appended in priority order until the budget is hit.
func Compose(resp *model.ProductionResponse, culturalStyle string, hints TimingHints, limits Limits) model.ComposedPrompt {
	if !hasStructuredContent(&resp.Music) {
		return simplePrompt(resp, hints, limits)
	}

	head := headSections(resp, hints)
	closing := closingSection(resp)
	body := bodySections(resp, culturalStyle, hints)

	fixed := strings.Join(head, "\n") + "\n"
	budget := limits.CompositionLimit

	out := model.ComposedPrompt{
		CustomMode: true,
		Title:      hardTruncate(buildTitle(resp), limits.TitleLimit),
	}

	used := len(fixed) + len(closing) + 1
	if used > budget {
		// Even the non-droppable sections overflow: hard truncation is the
		// last resort, the provider never sees over-limit text.
		out.CompositionText = hardTruncate(fixed+closing, budget)
		out.Truncated = true
		return out
	}

	var b strings.Builder
	b.WriteString(fixed)
	for _, s := range body {
		if used+len(s.text)+1 > budget {
			out.Truncated = true
			break // every lower-priority section is dropped too
		}
		b.WriteString(s.text)
		b.WriteString("\n")
		used += len(s.text) + 1
	}
	b.WriteString(closing)

	out.CompositionText = b.String()
	return out
}

// ForProvider reapplies truncation for a second provider with a tighter
// cap. The composition keeps its head; only the length changes.
func ForProvider(p model.ComposedPrompt, limit int) model.ComposedPrompt {
	if p.CustomMode {
		if len(p.CompositionText) > limit {
			p.CompositionText = hardTruncate(p.CompositionText, limit)
			p.Truncated = true
		}
		return p
	}
	if len(p.Prompt) > limit {
		p.Prompt = hardTruncate(p.Prompt, limit)
		p.Truncated = true
	}
	return p
}

// hasStructuredContent reports whether the descriptor justifies a custom
// request; otherwise a short comma-joined prompt is all we can honestly
// send.
func hasStructuredContent(m *model.MusicDescriptor) bool {
	return m.Instrumentation != nil || len(m.Arc) > 0 ||
		strings.TrimSpace(m.ComposerDirection) != ""
}

// headSections are never dropped: tempo/genre, instrumentation, composer
// direction.
func headSections(resp *model.ProductionResponse, hints TimingHints) []string {
	m := &resp.Music

	tempoLine := fmt.Sprintf("Instrumental %s track, %s mood, %.0f BPM", m.Genre, m.Mood, m.TargetBPM)
	if hints.TotalBars > 0 {
		tempoLine += fmt.Sprintf(", exactly %d bars (%.1f seconds)", hints.TotalBars, hints.ExactSeconds)
	}

	instLine := "Instrumentation: balanced full arrangement"
	if inst := m.Instrumentation; inst != nil {
		instLine = fmt.Sprintf("Instrumentation: drums %s; bass %s; mids %s; effects %s",
			orUnspecified(inst.Drums), orUnspecified(inst.Bass),
			orUnspecified(inst.Mids), orUnspecified(inst.Effects))
	}

	directionLine := "Direction: supportive advertising bed, keep the voice space clear"
	if strings.TrimSpace(m.ComposerDirection) != "" {
		directionLine = "Direction: " + m.ComposerDirection
	}

	return []string{tempoLine, instLine, directionLine}
}

// closingSection is never dropped: it pins the ending and continuity.
func closingSection(resp *model.ProductionResponse) string {
	ending := "end with a natural fade-ready sustain"
	if resp.Music.ButtonEnding != nil && *resp.Music.ButtonEnding {
		ending = "end with a clean button ending, no fade"
	}
	return "Keep one continuous musical idea throughout, no genre changes; " + ending + "."
}

// bodySections are droppable, ordered by fixed priority.
func bodySections(resp *model.ProductionResponse, culturalStyle string, hints TimingHints) []section {
	var sections []section
	m := &resp.Music

	sections = append(sections, section{
		priority: 10,
		text: fmt.Sprintf("Context: %.0f-second %s ad, %s tone, aiming for %s",
			resp.Context.DurationSeconds, resp.Context.AdCategory,
			resp.Context.Tone, resp.Context.Emotion),
	})

	if strings.TrimSpace(m.Prompt) != "" {
		sections = append(sections, section{priority: 20, text: "Description: " + m.Prompt})
	}

	for i, arc := range m.Arc {
		sections = append(sections, section{
			priority: 30 + i,
			text: fmt.Sprintf("From %.1fs to %.1fs (%s): %s, energy %d/10",
				arc.StartSeconds, arc.EndSeconds, arc.Label, arc.MusicPrompt, arc.EnergyLevel),
		})
	}

	if m.MusicalStructure != nil {
		sections = append(sections, section{priority: 40, text: "Structure: " + *m.MusicalStructure})
	}

	if hints.PreRollSeconds > 0 {
		sections = append(sections, section{
			priority: 50,
			text: fmt.Sprintf("Open with %.1fs of music before any melodic peak, leave %.1fs of settling room at the end",
				hints.PreRollSeconds, hints.PostRollSeconds),
		})
	}

	if culturalStyle != "" {
		sections = append(sections, section{priority: 60, text: "Style notes: " + culturalStyle})
	}

	// Tail: dropped first when the budget tightens.
	mixLine := fmt.Sprintf("Mix: fade in %.2fs, fade out %.2fs",
		resp.Fades.FadeInSeconds, resp.Fades.FadeOutSeconds)
	if resp.Volume.MusicVolume != nil {
		mixLine += fmt.Sprintf(", music bed at %.0f%% under voice", *resp.Volume.MusicVolume*100)
	}
	sections = append(sections, section{priority: 70, text: mixLine})

	if resp.MixPreset != nil {
		sections = append(sections, section{priority: 80, text: "Mix preset: " + string(*resp.MixPreset)})
	}

	for i, cue := range resp.SentenceCues {
		if cue.SFXPrompt == "" {
			continue
		}
		sections = append(sections, section{
			priority: 90 + i,
			text:     fmt.Sprintf("Accent near sentence %d: %s", cue.SentenceIndex, cue.SFXPrompt),
		})
	}

	return sections
}

// simplePrompt is the non-custom path: a short comma-joined description
// under the stricter simple-mode limit.
func simplePrompt(resp *model.ProductionResponse, hints TimingHints, limits Limits) model.ComposedPrompt {
	parts := []string{
		fmt.Sprintf("instrumental %s", resp.Music.Genre),
		string(resp.Music.Mood),
		fmt.Sprintf("%.0f BPM", resp.Music.TargetBPM),
	}
	if strings.TrimSpace(resp.Music.Prompt) != "" {
		parts = append(parts, resp.Music.Prompt)
	}
	parts = append(parts, fmt.Sprintf("%.0f second advertising background", resp.Context.DurationSeconds))

	joined := strings.Join(parts, ", ")
	out := model.ComposedPrompt{CustomMode: false, Prompt: joined}
	if len(joined) > limits.SimpleLimit {
		out.Prompt = hardTruncate(joined, limits.SimpleLimit)
		out.Truncated = true
	}
	return out
}

func buildTitle(resp *model.ProductionResponse) string {
	return fmt.Sprintf("%s %s bed, %.0fs %s spot",
		capitalize(string(resp.Music.Mood)), resp.Music.Genre,
		resp.Context.DurationSeconds, resp.Context.AdCategory)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unspecified"
	}
	return s
}

func hardTruncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
