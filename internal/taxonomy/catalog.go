// Package taxonomy holds the static catalog of hook categories and the keyword
// classifier that biases generation toward a subset of them.
package taxonomy

import "strings"

// Risk levels for formulas
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Category names
const (
	QuestionBased      = "Question-Based"
	StatementBased     = "Statement-Based"
	Narrative          = "Narrative"
	UrgencyExclusivity = "Urgency/Exclusivity"
	Efficiency         = "Efficiency"
)

// Formula is a named copywriting pattern within a category.
type Formula struct {
	Name      string `json:"name"`
	Framework string `json:"framework"`
	Template  string `json:"template"`
	Risk      string `json:"risk"`
}

// Category groups related formulas.
type Category struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Formulas    []Formula `json:"formulas"`
}

// Templates use {topic} as the only placeholder.
var catalog = []Category{
	{
		Name:        QuestionBased,
		Description: "Opens a curiosity gap by asking something the viewer cannot answer yet.",
		Formulas: []Formula{
			{Name: "Direct Question", Framework: "Open Loop", Template: "What nobody tells you about {topic} before day one", Risk: RiskLow},
			{Name: "Hypothetical", Framework: "Open Loop", Template: "What would happen if you tried {topic} for a week", Risk: RiskLow},
			{Name: "Rhetorical Challenge", Framework: "Contrarian", Template: "Why does everyone get {topic} completely wrong at the start", Risk: RiskMedium},
		},
	},
	{
		Name:        StatementBased,
		Description: "Leads with a bold claim, a number, or a counterintuitive fact.",
		Formulas: []Formula{
			{Name: "Bold Claim", Framework: "Contrarian", Template: "Most advice about {topic} is quietly costing you results", Risk: RiskMedium},
			{Name: "Surprising Stat", Framework: "Problem-Promise-Proof", Template: "Three numbers changed how I think about {topic} forever", Risk: RiskLow},
			{Name: "Myth Bust", Framework: "Pattern Interrupt", Template: "The biggest myth about {topic} finally gets exposed today", Risk: RiskMedium},
		},
	},
	{
		Name:        Narrative,
		Description: "Starts mid-story so the viewer stays for the resolution.",
		Formulas: []Formula{
			{Name: "In Medias Res", Framework: "Story Loop", Template: "Day three of {topic} is where everything went sideways", Risk: RiskLow},
			{Name: "Before and After", Framework: "Before-After-Bridge", Template: "Seven days ago I started {topic} and nothing prepared me", Risk: RiskLow},
			{Name: "Confession", Framework: "Story Loop", Template: "I almost quit {topic} until one small thing changed", Risk: RiskMedium},
		},
	},
	{
		Name:        UrgencyExclusivity,
		Description: "Creates scarcity or insider framing so the viewer acts now.",
		Formulas: []Formula{
			{Name: "Insider Secret", Framework: "Curiosity Gap", Template: "The part of {topic} experts rarely share in public", Risk: RiskMedium},
			{Name: "Time Pressure", Framework: "FOMO", Template: "Try this {topic} shift before everyone else catches on", Risk: RiskHigh},
			{Name: "Warning", Framework: "Pattern Interrupt", Template: "Avoid this one {topic} mistake that wastes your whole week", Risk: RiskMedium},
		},
	},
	{
		Name:        Efficiency,
		Description: "Promises a shortcut, a checklist, or a faster path.",
		Formulas: []Formula{
			{Name: "Shortcut", Framework: "Problem-Promise-Proof", Template: "The fastest way to make {topic} work in ten minutes", Risk: RiskLow},
			{Name: "Step List", Framework: "How-To List", Template: "Three simple steps that make {topic} feel almost easy", Risk: RiskLow},
			{Name: "One Change", Framework: "Before-After-Bridge", Template: "One tiny {topic} change saved me five hours weekly", Risk: RiskLow},
		},
	},
}

// Categories returns a copy of the full catalog.
func Categories() []Category {
	out := make([]Category, len(catalog))
	for i, c := range catalog {
		formulas := make([]Formula, len(c.Formulas))
		copy(formulas, c.Formulas)
		c.Formulas = formulas
		out[i] = c
	}
	return out
}

// Lookup finds a category by name.
func Lookup(name string) (Category, bool) {
	for _, c := range Categories() {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// ExampleTemplates returns up to n formula templates for a category, in catalog order.
func ExampleTemplates(category string, n int) []Formula {
	c, ok := Lookup(category)
	if !ok || n <= 0 {
		return nil
	}
	if n > len(c.Formulas) {
		n = len(c.Formulas)
	}
	return c.Formulas[:n]
}

// CategoryForFramework returns the first category whose formulas use framework.
func CategoryForFramework(framework string) string {
	for _, c := range catalog {
		for _, f := range c.Formulas {
			if strings.EqualFold(f.Framework, framework) {
				return c.Name
			}
		}
	}
	return ""
}
