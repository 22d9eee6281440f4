package taxonomy

import (
	"strings"

	"github.com/jonathan/hookgen/internal/types"
)

var educationalKeywords = []string{"how to", "tutorial", "learn", "guide", "tips", "technique"}

var storytellingKeywords = []string{"story", "journey", "experience", "transformation", "challenge"}

// categoryTable maps a content type to the three categories generation is biased toward.
var categoryTable = map[types.ContentType][]string{
	types.ContentEducational:  {StatementBased, Efficiency, QuestionBased},
	types.ContentStorytelling: {Narrative, QuestionBased, UrgencyExclusivity},
	types.ContentMixed:        {StatementBased, Narrative, QuestionBased},
}

// ClassifyContent maps a topic and objective to a content type using keyword matching.
// Matching both keyword sets, or neither, yields mixed.
func ClassifyContent(topic string, objective types.Objective) types.ContentType {
	text := strings.ToLower(topic + " " + string(objective))

	educational := containsAny(text, educationalKeywords)
	storytelling := containsAny(text, storytellingKeywords)

	switch {
	case educational && !storytelling:
		return types.ContentEducational
	case storytelling && !educational:
		return types.ContentStorytelling
	default:
		return types.ContentMixed
	}
}

// SelectCategories returns exactly three category names for a content type.
// The objective does not currently change the selection.
func SelectCategories(contentType types.ContentType, _ types.Objective) []string {
	selected, ok := categoryTable[contentType]
	if !ok {
		selected = categoryTable[types.ContentMixed]
	}
	out := make([]string, len(selected))
	copy(out, selected)
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
