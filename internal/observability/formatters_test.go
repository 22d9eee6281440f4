package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func sampleResult() *types.GenerationResult {
	first := types.NewHookCandidate("Day three without sugar is where everything went sideways for me",
		"Close-up of an empty sugar jar", "Day 3: no sugar", "Story Loop", "Narrative", "")
	first.Score = &types.ScoreBreakdown{Composite: 4.2, Explanation: "word count fits A"}
	first.Repaired = true
	second := types.NewHookCandidate("Three numbers changed how I think about sugar",
		"Whiteboard with three numbers", "3 numbers", "Problem-Promise-Proof", "Statement-Based", "")
	second.Score = &types.ScoreBreakdown{Composite: 3.9}
	third := types.NewHookCandidate("Avoid this one sugar mistake", "", "", "Pattern Interrupt", "", "")
	third.Source = types.SourceStatic
	third.Score = &types.ScoreBreakdown{Composite: 3.0}

	hooks := []types.HookCandidate{first, second, third}
	return &types.GenerationResult{
		ID: "run-1",
		Request: types.GenerationRequest{
			Topic:     "7-day sugar-free experiment",
			Platform:  types.PlatformA,
			Objective: types.ObjectiveWatchTime,
			Brand:     types.BrandProfile{Company: "Acme"},
		},
		ContentType:    types.ContentMixed,
		Categories:     []string{"Statement-Based", "Narrative", "Question-Based"},
		Rung:           "primary",
		Hooks:          hooks,
		Attempts:       2,
		RepairAttempts: 3,
		Repaired:       1,
		TopThreeVariants: []types.Variant{
			{Label: "A", Rank: 1, Hook: first},
			{Label: "B", Rank: 2, Hook: second},
			{Label: "C", Rank: 3, Hook: third},
		},
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "GENERATION REQUEST")
	assert.Contains(t, output, "7-day sugar-free experiment")
	assert.Contains(t, output, "short-form-a (A)")
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "Statement-Based, Narrative, Question-Based")
	assert.Contains(t, output, "A/B VARIANTS")
	assert.Contains(t, output, "RANKED HOOKS (3)")
	assert.Contains(t, output, "#1  4.2  Story Loop  [repaired]")
	assert.Contains(t, output, "[template]")
	assert.Contains(t, output, "RUN SUMMARY")
	assert.Contains(t, output, "Repairs:   1 of 3 succeeded")
	assert.NotContains(t, output, "Padded:")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_LinesFitWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHooks(sampleResult())

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	// The long verbal line is wrapped, not truncated
	assert.Contains(t, buf.String(), "sideways")
	assert.NotContains(t, buf.String(), "...")
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidates := []types.HookCandidate{
		types.NewHookCandidate("one two three four five six seven eight", "", "", "", "", ""),
		types.NewHookCandidate("too short", "", "", "", "", ""),
	}
	results := []types.ValidationResult{
		{Valid: true, WordCount: 8},
		{Valid: false, WordCount: 2, Issues: []string{"a", "b", "c", "d"}},
	}

	p.PrintValidation(types.PlatformA, candidates, results)
	output := buf.String()

	assert.Contains(t, output, "VALIDATION (short-form-a)")
	assert.Contains(t, output, "✓  8 words")
	assert.Contains(t, output, "✗  2 words")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "1 of 2 hooks valid")
}

func TestPrintTaxonomy(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTaxonomy(taxonomy.Categories())
	output := buf.String()

	assert.Contains(t, output, "QUESTION-BASED")
	assert.Contains(t, output, "URGENCY/EXCLUSIVITY")
	assert.Contains(t, output, "• In Medias Res (Story Loop, low risk)")
	assert.Equal(t, 5, strings.Count(output, "┌"))
}

func TestWrap(t *testing.T) {
	parts := wrap("  alpha beta gamma delta", 14)
	require.Len(t, parts, 3)
	assert.Equal(t, "  alpha beta", parts[0])
	assert.Equal(t, "    gamma", parts[1])
	assert.Equal(t, "    delta", parts[2])

	assert.Equal(t, []string{"short"}, wrap("short", 10))

	long := wrap(strings.Repeat("x", 25), 10)
	for _, part := range long {
		assert.LessOrEqual(t, utf8.RuneCountInString(part), 10)
	}
	assert.Equal(t, strings.Repeat("x", 25), strings.ReplaceAll(strings.Join(long, ""), " ", ""))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}
