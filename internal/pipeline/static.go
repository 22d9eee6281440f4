package pipeline

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
)

// Preset scores for static candidates: the first gets staticTopScore and each
// later one staticStep less.
const (
	staticTopScore = 3.0
	staticStep     = 0.1
	staticBaseline = 2.5
	overlayLimit   = 24
)

// StaticCandidates synthesizes n hooks from the taxonomy without any external
// call. Formulas from the preferred categories come first, taken round-robin,
// then the rest of the catalog. The output is deterministic for a given input.
func StaticCandidates(topic string, preferred []string, n int) []types.HookCandidate {
	formulas := orderedFormulas(preferred)
	out := make([]types.HookCandidate, 0, n)
	for i := 0; len(out) < n && len(formulas) > 0; i++ {
		pf := formulas[i%len(formulas)]
		verbal := fillTemplate(pf.formula.Template, topic)
		if i >= len(formulas) {
			// Catalog exhausted; vary the line so padding never repeats verbatim.
			verbal = fmt.Sprintf("%s, take %d", verbal, i/len(formulas)+1)
		}
		c := types.NewHookCandidate(
			verbal,
			fmt.Sprintf("Cold open on the first moment of %s", strings.TrimSpace(topic)),
			overlayFor(pf.formula.Name),
			pf.formula.Framework,
			pf.category,
			fmt.Sprintf("%s formula: %s", pf.formula.Name, pf.description),
		)
		c.Source = types.SourceStatic
		composite := staticTopScore - staticStep*float64(len(out))
		c.Score = &types.ScoreBreakdown{
			Baseline:    staticBaseline,
			Composite:   round1(composite),
			Explanation: fmt.Sprintf("static template, preset score %.1f", round1(composite)),
		}
		out = append(out, c)
	}
	return out
}

type placedFormula struct {
	category    string
	description string
	formula     taxonomy.Formula
}

func orderedFormulas(preferred []string) []placedFormula {
	cats := taxonomy.Categories()
	byName := make(map[string]taxonomy.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}

	var order []taxonomy.Category
	seen := make(map[string]bool)
	for _, name := range preferred {
		if c, ok := byName[name]; ok && !seen[name] {
			order = append(order, c)
			seen[name] = true
		}
	}
	var rest []taxonomy.Category
	for _, c := range cats {
		if !seen[c.Name] {
			rest = append(rest, c)
		}
	}

	out := roundRobin(order)
	return append(out, roundRobin(rest)...)
}

func roundRobin(cats []taxonomy.Category) []placedFormula {
	var out []placedFormula
	for depth := 0; ; depth++ {
		added := false
		for _, c := range cats {
			if depth < len(c.Formulas) {
				out = append(out, placedFormula{category: c.Name, description: c.Description, formula: c.Formulas[depth]})
				added = true
			}
		}
		if !added {
			return out
		}
	}
}

func overlayFor(name string) string {
	if utf8.RuneCountInString(name) <= overlayLimit {
		return name
	}
	return string([]rune(name)[:overlayLimit])
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
