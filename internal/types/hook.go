// Package types provides type definitions for structured data used throughout the hook generation system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Candidate sources
const (
	SourcePrimary    = "primary"
	SourceSimplified = "simplified"
	SourceStatic     = "static"
)

// HookCandidate is a single tri-modal hook: spoken line, visual direction and text overlay.
// Only the repair stage (SetVerbal) and the scorer (Score) mutate it; it is not
// touched after scoring.
type HookCandidate struct {
	VerbalHook  string          `json:"verbalHook"`
	VisualHook  string          `json:"visualHook"`
	TextualHook string          `json:"textualHook"`
	Framework   string          `json:"framework"`
	Category    string          `json:"category,omitempty"`
	Rationale   string          `json:"rationale,omitempty"`
	WordCount   int             `json:"wordCount"`
	Repaired    bool            `json:"repaired,omitempty"`
	Source      string          `json:"source,omitempty"`
	Score       *ScoreBreakdown `json:"score,omitempty"`
}

// CountWords returns the number of whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// NewHookCandidate builds a candidate with a derived word count.
func NewHookCandidate(verbal, visual, textual, framework, category, rationale string) HookCandidate {
	return HookCandidate{
		VerbalHook:  strings.TrimSpace(verbal),
		VisualHook:  strings.TrimSpace(visual),
		TextualHook: strings.TrimSpace(textual),
		Framework:   strings.TrimSpace(framework),
		Category:    strings.TrimSpace(category),
		Rationale:   strings.TrimSpace(rationale),
		WordCount:   CountWords(verbal),
	}
}

// SetVerbal replaces the verbal line and recomputes the word count.
func (h *HookCandidate) SetVerbal(verbal string) {
	h.VerbalHook = strings.TrimSpace(verbal)
	h.WordCount = CountWords(h.VerbalHook)
}

// Composite returns the composite score, or 0 if the candidate has not been scored.
func (h *HookCandidate) Composite() float64 {
	if h.Score == nil {
		return 0
	}
	return h.Score.Composite
}

// ValidationResult is derived from a candidate and a platform; it is never stored on its own.
type ValidationResult struct {
	Valid     bool     `json:"valid"`
	Issues    []string `json:"issues,omitempty"`
	WordCount int      `json:"wordCount"`
}

// JudgeScores are optional model-assigned ratings (each 0-1).
type JudgeScores struct {
	Curiosity float64 `json:"curiosity"`
	Clarity   float64 `json:"clarity"`
	BrandFit  float64 `json:"brandFit"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// ScoreBreakdown holds the component scores behind a composite score.
type ScoreBreakdown struct {
	WordCountFit   float64      `json:"wordCountFit"`
	FrameworkBonus float64      `json:"frameworkBonus"`
	ObjectiveBonus float64      `json:"objectiveBonus"`
	Baseline       float64      `json:"baseline"`
	Jitter         float64      `json:"jitter"`
	Judge          *JudgeScores `json:"judge,omitempty"`
	Composite      float64      `json:"composite"`
	Explanation    string       `json:"explanation"`
}
