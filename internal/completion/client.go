package completion

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/types"
)

// Default deadlines
const (
	DefaultGenerateTimeout = 25 * time.Second
	DefaultRewriteTimeout  = 10 * time.Second
)

// Status is the tri-state result of a completion call.
type Status int

const (
	// StatusSuccess means candidates were parsed.
	StatusSuccess Status = iota
	// StatusMalformed means the service answered but the payload was unusable.
	StatusMalformed
	// StatusUnavailable means the call timed out, was cancelled, or failed in transport.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusMalformed:
		return "malformed"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Outcome is the value every generation call resolves to.
type Outcome struct {
	Status     Status
	Candidates []types.HookCandidate
	Err        error
	Latency    time.Duration
}

// GenerateRequest describes one generation attempt.
type GenerateRequest struct {
	Prompt   string
	Tier     llm.ModelTier
	Timeout  time.Duration
	MinHooks int
}

// Client issues deadline-bounded completion requests. It never retries; retry
// policy belongs to the caller. A shared semaphore caps in-flight calls.
type Client struct {
	llm    llm.Client
	sem    *semaphore.Weighted
	logger *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithMaxConcurrent caps the number of concurrent external calls.
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient wraps an llm.Client.
func NewClient(client llm.Client, opts ...Option) *Client {
	c := &Client{
		llm:    client,
		sem:    semaphore.NewWeighted(4),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate requests a full set of hooks and resolves to a typed outcome.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) Outcome {
	start := time.Now()
	minHooks := req.MinHooks
	if minHooks <= 0 {
		minHooks = MinHooks
	}

	raw, err := c.call(ctx, req.Prompt, req.Tier, orDefault(req.Timeout, DefaultGenerateTimeout), true)
	if err != nil {
		c.logger.Warn("generation call failed",
			zap.String("tier", string(req.Tier)),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return Outcome{Status: StatusUnavailable, Err: err, Latency: time.Since(start)}
	}

	candidates, perr := ParseHooks(raw, minHooks)
	if perr != nil {
		c.logger.Warn("generation response rejected",
			zap.String("tier", string(req.Tier)),
			zap.String("kind", string(perr.Kind)),
			zap.Error(perr))
		return Outcome{Status: StatusMalformed, Err: perr, Latency: time.Since(start)}
	}

	c.logger.Debug("generation succeeded",
		zap.String("tier", string(req.Tier)),
		zap.Int("hooks", len(candidates)),
		zap.Duration("latency", time.Since(start)))
	return Outcome{Status: StatusSuccess, Candidates: candidates, Latency: time.Since(start)}
}

// Rewrite requests a single rewritten verbal line.
func (c *Client) Rewrite(ctx context.Context, prompt string, tier llm.ModelTier, timeout time.Duration) (string, error) {
	raw, err := c.call(ctx, prompt, tier, orDefault(timeout, DefaultRewriteTimeout), false)
	if err != nil {
		return "", err
	}
	line, perr := ParseRewrite(raw)
	if perr != nil {
		return "", perr
	}
	return line, nil
}

// CompleteJSON returns a cleaned JSON payload for small auxiliary requests.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, tier llm.ModelTier, timeout time.Duration) (string, error) {
	raw, err := c.call(ctx, prompt, tier, orDefault(timeout, DefaultRewriteTimeout), true)
	if err != nil {
		return "", err
	}
	return llm.RepairTrailingCommas(llm.CleanJSONBlock(raw)), nil
}

// call runs one request under its own deadline. The deadline covers the wait
// for a semaphore slot as well as the call itself.
func (c *Client) call(ctx context.Context, prompt string, tier llm.ModelTier, timeout time.Duration, asJSON bool) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.sem.Acquire(callCtx, 1); err != nil {
		return "", classifyCallError(callCtx, "waiting for a call slot", err)
	}
	defer c.sem.Release(1)

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var r result
		if asJSON {
			r.text, r.err = c.llm.GenerateJSON(callCtx, prompt, tier)
		} else {
			r.text, r.err = c.llm.GenerateContent(callCtx, prompt, tier)
		}
		done <- r
	}()

	// Do not wait on a provider that ignores cancellation.
	select {
	case <-callCtx.Done():
		return "", classifyCallError(callCtx, "request did not complete", callCtx.Err())
	case r := <-done:
		if r.err != nil {
			return "", classifyCallError(callCtx, "provider returned an error", r.err)
		}
		return r.text, nil
	}
}

func classifyCallError(ctx context.Context, msg string, err error) *CallError {
	timeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
	if timeout {
		msg = "deadline exceeded: " + msg
	}
	return &CallError{Message: msg, Timeout: timeout, Cause: err}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
