package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/prompts"
	"github.com/jonathan/hookgen/internal/types"
)

// JSONCompleter returns a cleaned JSON payload for a prompt.
type JSONCompleter interface {
	CompleteJSON(ctx context.Context, prompt string, tier llm.ModelTier, timeout time.Duration) (string, error)
}

// judgeResponse represents the expected JSON response from the model.
type judgeResponse struct {
	Curiosity float64 `json:"curiosity"`
	Clarity   float64 `json:"clarity"`
	BrandFit  float64 `json:"brand_fit"`
	Reasoning string  `json:"reasoning"`
}

// Judge asks a lightweight model to rate scored hooks. Its ratings are
// attached for display and never change the composite score.
type Judge struct {
	client  JSONCompleter
	timeout time.Duration
	limit   int
	logger  *zap.Logger
}

// NewJudge creates a Judge.
func NewJudge(client JSONCompleter, timeout time.Duration, limit int, logger *zap.Logger) *Judge {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = 4
	}
	return &Judge{client: client, timeout: timeout, limit: limit, logger: logger}
}

// Rate judges a single hook.
func (j *Judge) Rate(ctx context.Context, c types.HookCandidate, req *types.GenerationRequest) (*types.JudgeScores, error) {
	prompt, err := buildJudgePrompt(c, req)
	if err != nil {
		return nil, err
	}

	jsonResp, err := j.client.CompleteJSON(ctx, prompt, llm.TierLite, j.timeout)
	if err != nil {
		return nil, fmt.Errorf("judge generation failed: %w", err)
	}

	var response judgeResponse
	if err := json.Unmarshal([]byte(jsonResp), &response); err != nil {
		return nil, fmt.Errorf("failed to parse judge response: %w (content: %s)", err, jsonResp)
	}

	return &types.JudgeScores{
		Curiosity: unit(response.Curiosity),
		Clarity:   unit(response.Clarity),
		BrandFit:  unit(response.BrandFit),
		Reasoning: strings.TrimSpace(response.Reasoning),
	}, nil
}

// RateAll judges every scored candidate in place. Failures are logged and the
// candidate keeps its breakdown without judge scores. Returns how many were rated.
func (j *Judge) RateAll(ctx context.Context, candidates []types.HookCandidate, req *types.GenerationRequest) int {
	var (
		mu    sync.Mutex
		rated int
	)
	g := new(errgroup.Group)
	g.SetLimit(j.limit)

	for i := range candidates {
		if candidates[i].Score == nil {
			continue
		}
		idx := i
		g.Go(func() error {
			scores, err := j.Rate(ctx, candidates[idx], req)
			if err != nil {
				j.logger.Warn("judge failed", zap.Int("candidate", idx), zap.Error(err))
				return nil
			}
			b := *candidates[idx].Score
			b.Judge = scores
			b.Explanation += fmt.Sprintf("; judge curiosity %.2f clarity %.2f fit %.2f",
				scores.Curiosity, scores.Clarity, scores.BrandFit)
			candidates[idx].Score = &b

			mu.Lock()
			rated++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return rated
}

func buildJudgePrompt(c types.HookCandidate, req *types.GenerationRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("judge needs a request")
	}
	voice := req.Brand.Voice
	if strings.TrimSpace(voice) == "" {
		voice = "Not specified"
	}
	return prompts.Render(prompts.KeyJudgeHook, map[string]string{
		"PlatformLabel": req.Platform.Label(),
		"Objective":     string(req.Objective),
		"Topic":         req.Topic,
		"Voice":         voice,
		"VerbalHook":    c.VerbalHook,
		"VisualHook":    c.VisualHook,
		"TextualHook":   c.TextualHook,
		"OutputFormat":  llm.BuildOutputInstructions(llm.JudgeSchema()),
	})
}

func unit(v float64) float64 {
	return clamp(v, 0, 1)
}
