// Package observability provides the process logger and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxIssuesToShow caps the issues listed per hook
	maxIssuesToShow = 3
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines wrap.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		for _, part := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(part, boxWidth-4))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs the request and how it was classified.
func (p *Printer) PrintRequest(result *types.GenerationResult) {
	if result == nil {
		return
	}
	req := result.Request

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic:      %s\n", req.Topic))
	sb.WriteString(fmt.Sprintf("Platform:   %s (%s)\n", req.Platform, req.Platform.Label()))
	sb.WriteString(fmt.Sprintf("Objective:  %s\n", req.Objective))
	if req.Brand.Company != "" {
		sb.WriteString(fmt.Sprintf("Brand:      %s\n", req.Brand.Company))
	}
	sb.WriteString(fmt.Sprintf("Content:    %s\n", result.ContentType))
	if len(result.Categories) > 0 {
		sb.WriteString(fmt.Sprintf("Categories: %s\n", strings.Join(result.Categories, ", ")))
	}

	p.printBox("GENERATION REQUEST", sb.String())
}

// PrintHooks outputs every ranked hook with its score breakdown.
func (p *Printer) PrintHooks(result *types.GenerationResult) {
	if result == nil || len(result.Hooks) == 0 {
		return
	}

	var sb strings.Builder
	for i, h := range result.Hooks {
		sb.WriteString(fmt.Sprintf("#%d  %.1f  %s", i+1, h.Composite(), h.Framework))
		if h.Repaired {
			sb.WriteString("  [repaired]")
		}
		if h.Source == types.SourceStatic {
			sb.WriteString("  [template]")
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    Say:  %s\n", h.VerbalHook))
		if h.VisualHook != "" {
			sb.WriteString(fmt.Sprintf("    Show: %s\n", h.VisualHook))
		}
		if h.TextualHook != "" {
			sb.WriteString(fmt.Sprintf("    Text: %s\n", h.TextualHook))
		}
		if h.Score != nil && h.Score.Explanation != "" {
			sb.WriteString(fmt.Sprintf("    Why:  %s\n", h.Score.Explanation))
		}
		if i < len(result.Hooks)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("RANKED HOOKS (%d)", len(result.Hooks)), sb.String())
}

// PrintVariants outputs the labelled top variants.
func (p *Printer) PrintVariants(result *types.GenerationResult) {
	if result == nil || len(result.TopThreeVariants) == 0 {
		return
	}

	var sb strings.Builder
	for _, v := range result.TopThreeVariants {
		sb.WriteString(fmt.Sprintf("%s  %s\n", v.Label, v.Hook.VerbalHook))
	}

	p.printBox("A/B VARIANTS", sb.String())
}

// PrintSummary outputs how the run got its hooks.
func (p *Printer) PrintSummary(result *types.GenerationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", result.ID))
	sb.WriteString(fmt.Sprintf("Rung:      %s\n", result.Rung))
	sb.WriteString(fmt.Sprintf("Attempts:  %d\n", result.Attempts))
	if result.RepairAttempts > 0 {
		sb.WriteString(fmt.Sprintf("Repairs:   %d of %d succeeded\n", result.Repaired, result.RepairAttempts))
	}
	if result.Padded > 0 {
		sb.WriteString(fmt.Sprintf("Padded:    %d from templates\n", result.Padded))
	}

	p.printBox("RUN SUMMARY", sb.String())
}

// PrintResult outputs the full result.
func (p *Printer) PrintResult(result *types.GenerationResult) {
	p.PrintRequest(result)
	p.PrintVariants(result)
	p.PrintHooks(result)
	p.PrintSummary(result)
}

// PrintValidation outputs per-hook validation results for a platform.
// Only shown if there are candidates.
func (p *Printer) PrintValidation(platform types.Platform, candidates []types.HookCandidate, results []types.ValidationResult) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	invalid := 0
	for i, c := range candidates {
		if i >= len(results) {
			break
		}
		res := results[i]
		mark := "✓"
		if !res.Valid {
			mark = "✗"
			invalid++
		}
		sb.WriteString(fmt.Sprintf("%s %2d words  %s\n", mark, res.WordCount, c.VerbalHook))

		count := min(len(res.Issues), maxIssuesToShow)
		for j := 0; j < count; j++ {
			sb.WriteString(fmt.Sprintf("    • %s\n", res.Issues[j]))
		}
		if len(res.Issues) > maxIssuesToShow {
			sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(res.Issues)-maxIssuesToShow))
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d hooks valid\n", len(candidates)-invalid, len(candidates)))

	p.printBox(fmt.Sprintf("VALIDATION (%s)", platform), sb.String())
}

// PrintTaxonomy outputs one box per category with its formulas.
func (p *Printer) PrintTaxonomy(categories []taxonomy.Category) {
	for _, c := range categories {
		var sb strings.Builder
		sb.WriteString(c.Description + "\n\n")
		for _, f := range c.Formulas {
			sb.WriteString(fmt.Sprintf("• %s (%s, %s risk)\n", f.Name, f.Framework, f.Risk))
			sb.WriteString(fmt.Sprintf("  %s\n", f.Template))
		}
		p.printBox(strings.ToUpper(c.Name), sb.String())
	}
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrap splits a line at word boundaries so no part exceeds width runes.
// Continuation lines keep the original indentation plus two spaces.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))] + "  "
	var parts []string
	current := ""
	for _, word := range strings.Fields(line) {
		for utf8.RuneCountInString(word) > width-len(indent) {
			// A single word longer than the box is hard-split.
			if current != "" {
				parts = append(parts, current)
				current = ""
			}
			r := []rune(word)
			cut := width - len(indent)
			parts = append(parts, indentFor(parts, line, indent)+string(r[:cut]))
			word = string(r[cut:])
		}
		candidate := word
		if current != "" {
			candidate = current + " " + word
		} else {
			candidate = indentFor(parts, line, indent) + word
		}
		if utf8.RuneCountInString(candidate) > width {
			parts = append(parts, current)
			current = indent + word
			continue
		}
		current = candidate
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

func indentFor(parts []string, line, indent string) string {
	if len(parts) == 0 {
		return line[:len(line)-len(strings.TrimLeft(line, " "))]
	}
	return indent
}
