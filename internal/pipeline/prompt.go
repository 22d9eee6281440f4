package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/prompts"
	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
	"github.com/jonathan/hookgen/internal/validation"
)

// examplesPerCategory caps the formulas shown to the model per category.
const examplesPerCategory = 2

// buildPrompt renders the generation prompt for a rung.
func buildPrompt(rung Rung, req *types.GenerationRequest, categories []string, avoid []string) (string, error) {
	return prompts.Render(rung.PromptKey, map[string]string{
		"Count":         strconv.Itoa(types.HookCount),
		"Topic":         req.Topic,
		"PlatformLabel": req.Platform.Label(),
		"PlatformRules": validation.Describe(req.Platform),
		"Objective":     string(req.Objective),
		"Company":       orNotSpecified(req.Brand.Company),
		"Industry":      orNotSpecified(req.Brand.Industry),
		"Audience":      orNotSpecified(req.Brand.Audience),
		"Voice":         orNotSpecified(req.Brand.Voice),
		"BannedTerms":   bannedTerms(req.Brand.BannedTerms),
		"Categories":    strings.Join(categories, ", "),
		"Examples":      formatExamples(categories, req.Topic),
		"AvoidLines":    formatAvoid(avoid),
		"OutputFormat":  llm.BuildOutputInstructions(llm.HooksSchema(types.HookCount)),
	})
}

func formatExamples(categories []string, topic string) string {
	var lines []string
	for _, name := range categories {
		for _, f := range taxonomy.ExampleTemplates(name, examplesPerCategory) {
			lines = append(lines, fmt.Sprintf("- %s / %s (%s): %s",
				name, f.Name, f.Framework, fillTemplate(f.Template, topic)))
		}
	}
	if len(lines) == 0 {
		return "- (none)"
	}
	return strings.Join(lines, "\n")
}

func formatAvoid(lines []string) string {
	if len(lines) == 0 {
		return "- (none)"
	}
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(l)
	}
	return sb.String()
}

func bannedTerms(terms []string) string {
	if len(terms) == 0 {
		return "none"
	}
	return strings.Join(terms, ", ")
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func fillTemplate(template, topic string) string {
	return strings.ReplaceAll(template, "{topic}", strings.TrimSpace(topic))
}

func normalizeLine(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
