package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hookgen/internal/completion"
	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/llm/llmtest"
	"github.com/jonathan/hookgen/internal/types"
)

func TestJudge_Rate(t *testing.T) {
	mock := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierLite, tier)
			assert.Contains(t, prompt, "7-day sugar-free experiment")
			assert.Contains(t, prompt, "Playful")
			return "```json\n{\"curiosity\": 0.9, \"clarity\": 1.4, \"brand_fit\": -0.2, \"reasoning\": \" Strong gap \"}\n```", nil
		},
	}
	judge := NewJudge(completion.NewClient(mock), time.Second, 2, nil)
	r := req(types.PlatformA, types.ObjectiveWatchTime)
	r.Brand.Voice = "Playful"

	scores, err := judge.Rate(context.Background(), hook("Seven days without sugar", "Open Loop"), r)
	require.NoError(t, err)
	assert.Equal(t, 0.9, scores.Curiosity)
	assert.Equal(t, 1.0, scores.Clarity)
	assert.Equal(t, 0.0, scores.BrandFit)
	assert.Equal(t, "Strong gap", scores.Reasoning)
}

func TestJudge_RateErrors(t *testing.T) {
	failing := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("down")
		},
	}
	_, err := NewJudge(completion.NewClient(failing), time.Second, 1, nil).
		Rate(context.Background(), hook("x", ""), req(types.PlatformA, types.ObjectiveSaves))
	assert.Error(t, err)

	garbage := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "not json", nil
		},
	}
	_, err = NewJudge(completion.NewClient(garbage), time.Second, 1, nil).
		Rate(context.Background(), hook("x", ""), req(types.PlatformA, types.ObjectiveSaves))
	assert.Error(t, err)

	_, err = NewJudge(completion.NewClient(garbage), time.Second, 1, nil).Rate(context.Background(), hook("x", ""), nil)
	assert.Error(t, err)
}

func TestJudge_RateAllLeavesCompositeAlone(t *testing.T) {
	mock := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			if strings.Contains(prompt, "fails here") {
				return "", errors.New("boom")
			}
			return `{"curiosity": 0.5, "clarity": 0.5, "brand_fit": 0.5}`, nil
		},
	}
	r := req(types.PlatformA, types.ObjectiveWatchTime)
	cands := []types.HookCandidate{
		hook("Seven days without sugar and my cravings did something strange", "Open Loop"),
		hook("this one fails here", "Story Loop"),
		hook("never scored", "FOMO"),
	}
	ScoreAll(cands[:2], r, NoJitter{})
	before := []float64{cands[0].Composite(), cands[1].Composite()}

	rated := NewJudge(completion.NewClient(mock), time.Second, 2, nil).RateAll(context.Background(), cands, r)

	assert.Equal(t, 1, rated)
	assert.Equal(t, 2, mock.JSONCalls())
	require.NotNil(t, cands[0].Score.Judge)
	assert.Equal(t, 0.5, cands[0].Score.Judge.Curiosity)
	assert.Contains(t, cands[0].Score.Explanation, "judge curiosity 0.50")
	assert.Nil(t, cands[1].Score.Judge)
	assert.Nil(t, cands[2].Score)
	assert.Equal(t, before, []float64{cands[0].Composite(), cands[1].Composite()})
}
