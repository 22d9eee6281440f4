// Package types provides type definitions for structured data used throughout the hook generation system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// HookCount is the number of hooks in every GenerationResult.
const HookCount = 10

// VariantCount is the number of top-ranked hooks promoted to variants.
const VariantCount = 3

// ContentType is the coarse classification of a topic.
type ContentType string

// Content types
const (
	ContentEducational  ContentType = "educational"
	ContentStorytelling ContentType = "storytelling"
	ContentMixed        ContentType = "mixed"
)

// Variant is one of the top-ranked hooks, tagged with a label for A/B testing.
type Variant struct {
	Label string        `json:"label"`
	Rank  int           `json:"rank"`
	Hook  HookCandidate `json:"hook"`
}

// GenerationResult is the terminal output of the pipeline.
type GenerationResult struct {
	ID               string            `json:"id"`
	Request          GenerationRequest `json:"request"`
	ContentType      ContentType       `json:"contentType"`
	Categories       []string          `json:"categories"`
	Rung             string            `json:"rung"`
	Hooks            []HookCandidate   `json:"hooks"`
	TopThreeVariants []Variant         `json:"topThreeVariants"`
	Attempts         int               `json:"attempts"`
	RepairAttempts   int               `json:"repairAttempts"`
	Repaired         int               `json:"repaired"`
	Padded           int               `json:"padded,omitempty"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}
