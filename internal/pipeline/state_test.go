package pipeline

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/prompts"
	"github.com/jonathan/hookgen/internal/scoring"
	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
	"github.com/jonathan/hookgen/internal/validation"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StateClassifying, StateSelectingCategories, true},
		{StateSelectingCategories, StateGenerating, true},
		{StateGenerating, StateGenerating, true},
		{StateGenerating, StateValidating, true},
		{StateGenerating, StateRanking, true},
		{StateValidating, StateRepairing, true},
		{StateValidating, StateScoring, true},
		{StateRepairing, StateScoring, true},
		{StateScoring, StateRanking, true},
		{StateRanking, StateDone, true},
		{StateDone, StateClassifying, false},
		{StateScoring, StateGenerating, false},
		{StateValidating, StateGenerating, false},
		{StateClassifying, StateGenerating, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestMachine_RejectsIllegalTransition(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.to(StateSelectingCategories))
	assert.Error(t, m.to(StateDone))
	assert.Equal(t, StateSelectingCategories, m.current)
	assert.Equal(t, []State{StateClassifying, StateSelectingCategories}, m.history)
}

func TestDefaultLadder(t *testing.T) {
	ladder := DefaultLadder(0, 0)
	require.Len(t, ladder, 3)

	assert.Equal(t, RungPrimary, ladder[0].Kind)
	assert.Equal(t, 2, ladder[0].Attempts)
	assert.Equal(t, llm.TierAdvanced, ladder[0].Tier)
	assert.Equal(t, DefaultPrimaryTimeout, ladder[0].Timeout)
	assert.Equal(t, 25*time.Second, ladder[0].Timeout)

	assert.Equal(t, RungSimplified, ladder[1].Kind)
	assert.Equal(t, 1, ladder[1].Attempts)
	assert.Equal(t, llm.TierLite, ladder[1].Tier)
	assert.Equal(t, prompts.KeyGenerateSimplified, ladder[1].PromptKey)

	assert.Equal(t, RungStatic, ladder[2].Kind)
}

func TestNormalizeLadder(t *testing.T) {
	assert.Equal(t, []Rung{{Kind: RungStatic}}, normalizeLadder(nil))

	in := []Rung{
		{Kind: RungPrimary, Attempts: 0},
		{Kind: RungSimplified, Attempts: 1},
		{Kind: RungStatic},
		{Kind: RungPrimary, Attempts: 2},
	}
	out := normalizeLadder(in)
	require.Len(t, out, 2)
	assert.Equal(t, RungSimplified, out[0].Kind)
	assert.Equal(t, RungStatic, out[1].Kind)
}

func TestStaticCandidates(t *testing.T) {
	preferred := []string{taxonomy.Narrative, taxonomy.QuestionBased, taxonomy.UrgencyExclusivity}

	first := StaticCandidates("7-day sugar-free experiment", preferred, types.HookCount)
	second := StaticCandidates("7-day sugar-free experiment", preferred, types.HookCount)
	require.Len(t, first, types.HookCount)
	assert.Equal(t, first, second)

	assert.Equal(t, taxonomy.Narrative, first[0].Category)
	assert.Equal(t, taxonomy.QuestionBased, first[1].Category)
	assert.Equal(t, taxonomy.UrgencyExclusivity, first[2].Category)

	seen := map[string]bool{}
	for i, c := range first {
		assert.False(t, seen[c.VerbalHook], "duplicate line %q", c.VerbalHook)
		seen[c.VerbalHook] = true
		assert.NotContains(t, c.VerbalHook, "{topic}")
		assert.Contains(t, c.VerbalHook, "7-day sugar-free experiment")
		assert.Equal(t, types.SourceStatic, c.Source)
		require.NotNil(t, c.Score)
		assert.LessOrEqual(t, len([]rune(c.TextualHook)), 24)
		if i > 0 {
			assert.Less(t, c.Score.Composite, first[i-1].Score.Composite)
		}
	}
	assert.Equal(t, 3.0, first[0].Score.Composite)
	assert.Equal(t, 2.1, first[9].Score.Composite)
}

func TestStaticCandidates_MoreThanCatalog(t *testing.T) {
	out := StaticCandidates("sugar", nil, 20)
	require.Len(t, out, 20)
	seen := map[string]bool{}
	for _, c := range out {
		assert.False(t, seen[c.VerbalHook])
		seen[c.VerbalHook] = true
	}
	assert.True(t, strings.HasSuffix(out[15].VerbalHook, ", take 2"))
}

func TestBuildPrompt(t *testing.T) {
	req := &types.GenerationRequest{
		Topic:     "7-day sugar-free experiment",
		Platform:  types.PlatformB,
		Objective: types.ObjectiveSaves,
		Brand:     types.BrandProfile{Company: "Acme Foods", Voice: "Warm", BannedTerms: []string{"diet"}},
	}
	categories := []string{taxonomy.StatementBased, taxonomy.Efficiency}

	for _, rung := range DefaultLadder(0, 0)[:2] {
		prompt, err := buildPrompt(rung, req, categories, []string{"An old line"})
		require.NoError(t, err, rung.Kind)
		assert.NotContains(t, prompt, "{{.")
		assert.Contains(t, prompt, "7-day sugar-free experiment")
		assert.Contains(t, prompt, "between 6 and 15 words")
		assert.Contains(t, prompt, "Statement-Based, Efficiency")
		assert.Contains(t, prompt, "diet")
	}

	primary, err := buildPrompt(DefaultLadder(0, 0)[0], req, categories, []string{"An old line"})
	require.NoError(t, err)
	assert.Contains(t, primary, "Acme Foods")
	assert.Contains(t, primary, "- An old line")
	assert.Contains(t, primary, "Industry: Not specified")
	assert.Contains(t, primary, "Bold Claim")
	assert.NotContains(t, primary, "Myth Bust", "only two examples per category")
}

func TestPad(t *testing.T) {
	cands := StaticCandidates("sugar", nil, 3)
	cands[0].Source = types.SourcePrimary

	padded, n := pad(cands, "sugar", nil, types.PlatformA, nil)
	assert.Equal(t, 7, n)
	require.Len(t, padded, types.HookCount)

	seen := map[string]bool{}
	for _, c := range padded {
		assert.False(t, seen[c.VerbalHook])
		seen[c.VerbalHook] = true
	}

	long := StaticCandidates("sugar", nil, 12)
	trimmed, n := pad(long, "sugar", nil, types.PlatformA, nil)
	assert.Equal(t, 0, n)
	assert.Len(t, trimmed, types.HookCount)
}

func TestPad_ScoresBelowModelHooksAndPrefersValidTemplates(t *testing.T) {
	var cands []types.HookCandidate
	for i, composite := range []float64{4.1, 3.2, 2.4, 1.9, 1.4} {
		c := types.NewHookCandidate(fmt.Sprintf("Sugar gone, day %d, cravings gone too", i+1), "Jar", "NO SUGAR", "Story Loop", taxonomy.Narrative, "")
		c.Source = types.SourcePrimary
		c.Score = &types.ScoreBreakdown{Composite: composite}
		cands = append(cands, c)
	}

	padded, n := pad(cands, "7-day sugar-free experiment", nil, types.PlatformC, nil)
	require.Equal(t, 5, n)
	require.Len(t, padded, types.HookCount)

	seenInvalid := false
	for _, c := range padded[5:] {
		assert.Equal(t, types.SourceStatic, c.Source)
		assert.Less(t, c.Composite(), 1.4, "padded %q", c.VerbalHook)
		assert.GreaterOrEqual(t, c.Composite(), 0.0)

		valid := validation.Validate(c, types.PlatformC, nil).Valid
		if seenInvalid {
			assert.False(t, valid, "valid template %q placed after an invalid one", c.VerbalHook)
		}
		if !valid {
			seenInvalid = true
		}
	}

	ranked := scoring.Rank(padded)
	for _, v := range scoring.TopVariants(ranked) {
		assert.Equal(t, types.SourcePrimary, v.Hook.Source)
	}
}
