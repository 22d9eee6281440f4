// Package pipeline drives one generation request through classification,
// generation with a fallback ladder, validation, repair, scoring and ranking.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/hookgen/internal/completion"
	"github.com/jonathan/hookgen/internal/repair"
	"github.com/jonathan/hookgen/internal/scoring"
	"github.com/jonathan/hookgen/internal/store"
	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
	"github.com/jonathan/hookgen/internal/validation"
)

// avoidLimit caps how many remembered lines are fed back into the prompt.
const avoidLimit = 20

// Generator produces a full set of candidates for a prompt.
type Generator interface {
	Generate(ctx context.Context, req completion.GenerateRequest) completion.Outcome
}

// Repairer rewrites invalid candidates in place.
type Repairer interface {
	RepairAll(ctx context.Context, candidates []types.HookCandidate, results []types.ValidationResult, platform types.Platform, opts *validation.Options) repair.Report
}

// Rater attaches optional judge scores to scored candidates.
type Rater interface {
	RateAll(ctx context.Context, candidates []types.HookCandidate, req *types.GenerationRequest) int
}

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	RunID   string `json:"run_id"`
	State   State  `json:"state"`
	Rung    string `json:"rung,omitempty"`
	Attempt int    `json:"attempt,omitempty"`
	Message string `json:"message"`
}

// ProgressCallback is called on every state transition
type ProgressCallback func(event ProgressEvent)

// Orchestrator runs generation requests. It holds no per-request state and is
// safe for concurrent use if its collaborators are.
type Orchestrator struct {
	generator  Generator
	repairer   Repairer
	judge      Rater
	history    store.HistoryStore
	jitter     scoring.Jitter
	ladder     []Rung
	onProgress ProgressCallback
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLadder replaces the default fallback ladder. A static rung is always
// appended if missing.
func WithLadder(ladder []Rung) Option {
	return func(o *Orchestrator) { o.ladder = ladder }
}

// WithJudge enables optional judge scores.
func WithJudge(judge Rater) Option {
	return func(o *Orchestrator) { o.judge = judge }
}

// WithHistory sets the store used to avoid repeating earlier lines.
func WithHistory(history store.HistoryStore) Option {
	return func(o *Orchestrator) { o.history = history }
}

// WithJitter sets the score jitter source.
func WithJitter(jitter scoring.Jitter) Option {
	return func(o *Orchestrator) {
		if jitter != nil {
			o.jitter = jitter
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(o *Orchestrator) { o.onProgress = cb }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an Orchestrator.
func New(generator Generator, repairer Repairer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		generator: generator,
		repairer:  repairer,
		jitter:    scoring.NewRandomJitter(),
		ladder:    DefaultLadder(0, 0),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.ladder = normalizeLadder(o.ladder)
	return o
}

// run carries the mutable state of a single request.
type run struct {
	id      string
	req     *types.GenerationRequest
	machine *machine
	logger  *zap.Logger
	result  *types.GenerationResult
}

// Run processes one request. The only error is a rejected request, returned
// before any external call; every other failure is absorbed and the result
// always carries exactly types.HookCount hooks.
func (o *Orchestrator) Run(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := &run{
		id:      uuid.NewString(),
		req:     req,
		machine: newMachine(),
		result: &types.GenerationResult{
			Request: *req,
		},
	}
	r.result.ID = r.id
	r.logger = o.logger.With(zap.String("run_id", r.id))

	// Classifying
	o.emit(r, "", 0, "classifying topic")
	r.result.ContentType = taxonomy.ClassifyContent(req.Topic, req.Objective)

	// SelectingCategories
	o.advance(r, StateSelectingCategories, "", 0, "selecting categories for "+string(r.result.ContentType))
	r.result.Categories = taxonomy.SelectCategories(r.result.ContentType, req.Objective)

	avoid := o.recall(ctx, r)

	// Generating, walking the ladder
	candidates, rung := o.generate(ctx, r, avoid)
	r.result.Rung = string(rung)

	vopts := &validation.Options{BannedTerms: req.Brand.BannedTerms}
	if rung != RungStatic {
		// Validating
		o.advance(r, StateValidating, string(rung), 0, "validating candidates")
		results := validation.ValidateAll(candidates, req.Platform, vopts)
		invalid := validation.CountInvalid(results)
		r.logger.Debug("validated candidates", zap.Int("total", len(candidates)), zap.Int("invalid", invalid))

		// Repairing
		if invalid > 0 && o.repairer != nil {
			o.advance(r, StateRepairing, string(rung), 0, "repairing invalid candidates")
			report := o.repairer.RepairAll(ctx, candidates, results, req.Platform, vopts)
			r.result.RepairAttempts = report.Attempts
			r.result.Repaired = report.Repaired
			r.logger.Info("repair pass finished",
				zap.Int("attempts", report.Attempts),
				zap.Int("repaired", report.Repaired),
				zap.Int("failed", report.Failed))
		}

		// Scoring
		o.advance(r, StateScoring, string(rung), 0, "scoring candidates")
		scoring.ScoreAll(candidates, req, o.jitter)
		if o.judge != nil {
			rated := o.judge.RateAll(ctx, candidates, req)
			r.logger.Debug("judge pass finished", zap.Int("rated", rated))
		}

		candidates, r.result.Padded = pad(candidates, req.Topic, r.result.Categories, req.Platform, vopts)
		if r.result.Padded > 0 {
			r.logger.Warn("padded result with static candidates", zap.Int("padded", r.result.Padded))
		}
	}

	// Ranking
	o.advance(r, StateRanking, string(rung), 0, "ranking candidates")
	ranked := scoring.Rank(candidates)
	r.result.Hooks = ranked
	r.result.TopThreeVariants = scoring.TopVariants(ranked)
	r.result.GeneratedAt = o.now().UTC()

	if rung != RungStatic {
		o.remember(ctx, r, ranked)
	}

	o.advance(r, StateDone, string(rung), 0, "done")
	return r.result, nil
}

// generate walks the ladder monotonically and returns the first successful
// rung's candidates. The static rung always succeeds.
func (o *Orchestrator) generate(ctx context.Context, r *run, avoid []string) ([]types.HookCandidate, RungKind) {
	first := true
	for _, rung := range o.ladder {
		if rung.Kind == RungStatic {
			break
		}
		if ctx.Err() != nil {
			r.logger.Warn("context done, skipping to static templates", zap.Error(ctx.Err()))
			break
		}

		prompt, err := buildPrompt(rung, r.req, r.result.Categories, avoid)
		if err != nil {
			r.logger.Error("failed to build prompt", zap.String("rung", string(rung.Kind)), zap.Error(err))
			continue
		}

		for attempt := 1; attempt <= rung.Attempts; attempt++ {
			if first {
				o.advance(r, StateGenerating, string(rung.Kind), attempt, "requesting hooks")
				first = false
			} else {
				o.advance(r, StateGenerating, string(rung.Kind), attempt, "retrying generation")
			}

			r.result.Attempts++
			outcome := o.generator.Generate(ctx, completion.GenerateRequest{
				Prompt:   prompt,
				Tier:     rung.Tier,
				Timeout:  rung.Timeout,
				MinHooks: completion.MinHooks,
			})
			if outcome.Status == completion.StatusSuccess {
				for i := range outcome.Candidates {
					outcome.Candidates[i].Source = string(rung.Kind)
				}
				r.logger.Info("generation succeeded",
					zap.String("rung", string(rung.Kind)),
					zap.Int("attempt", attempt),
					zap.Int("hooks", len(outcome.Candidates)),
					zap.Duration("latency", outcome.Latency))
				return outcome.Candidates, rung.Kind
			}

			r.logger.Warn("generation attempt failed",
				zap.String("rung", string(rung.Kind)),
				zap.Int("attempt", attempt),
				zap.String("status", outcome.Status.String()),
				zap.Error(outcome.Err))
			if ctx.Err() != nil {
				break
			}
		}
	}

	if first {
		o.advance(r, StateGenerating, string(RungStatic), 0, "using static templates")
	} else {
		o.advance(r, StateGenerating, string(RungStatic), 0, "falling back to static templates")
	}
	return StaticCandidates(r.req.Topic, r.result.Categories, types.HookCount), RungStatic
}

// pad trims a long candidate set and tops up a short one with static templates. Templates that
// pass validation for the platform are used before those that do not, and
// every padded hook scores below the lowest-scoring candidate already present.
func pad(candidates []types.HookCandidate, topic string, categories []string, platform types.Platform, vopts *validation.Options) ([]types.HookCandidate, int) {
	if len(candidates) >= types.HookCount {
		return candidates[:types.HookCount], 0
	}

	seen := make(map[string]bool, len(candidates))
	floor := -1.0
	for _, c := range candidates {
		seen[normalizeLine(c.VerbalHook)] = true
		if c.Score != nil && (floor < 0 || c.Composite() < floor) {
			floor = c.Composite()
		}
	}

	var valid, invalid []types.HookCandidate
	for _, s := range StaticCandidates(topic, categories, types.HookCount*2) {
		if seen[normalizeLine(s.VerbalHook)] {
			continue
		}
		seen[normalizeLine(s.VerbalHook)] = true
		if validation.Validate(s, platform, vopts).Valid {
			valid = append(valid, s)
		} else {
			invalid = append(invalid, s)
		}
	}

	need := types.HookCount - len(candidates)
	padded := 0
	for _, s := range append(valid, invalid...) {
		if padded == need {
			break
		}
		if floor >= 0 {
			composite := math.Max(0, round1(floor-staticStep*float64(padded+1)))
			s.Score.Composite = composite
			s.Score.Explanation = fmt.Sprintf("static template, padded below scored hooks at %.1f", composite)
		}
		candidates = append(candidates, s)
		padded++
	}
	return candidates, padded
}

func (o *Orchestrator) recall(ctx context.Context, r *run) []string {
	if o.history == nil {
		return nil
	}
	lines, err := o.history.Recent(ctx, r.req.HistoryKey(), avoidLimit)
	if err != nil {
		r.logger.Warn("history lookup failed", zap.Error(err))
		return nil
	}
	return lines
}

func (o *Orchestrator) remember(ctx context.Context, r *run, hooks []types.HookCandidate) {
	if o.history == nil {
		return
	}
	var lines []string
	for _, h := range hooks {
		if h.Source != types.SourceStatic {
			lines = append(lines, h.VerbalHook)
		}
	}
	if err := o.history.Remember(ctx, r.req.HistoryKey(), lines); err != nil {
		r.logger.Warn("history write failed", zap.Error(err))
	}
}

func (o *Orchestrator) advance(r *run, next State, rung string, attempt int, message string) {
	if err := r.machine.to(next); err != nil {
		// Programmer error; log loudly but never fail the run.
		r.logger.Error("state machine", zap.Error(err))
	}
	o.emit(r, rung, attempt, message)
}

// emit calls the progress callback if configured
func (o *Orchestrator) emit(r *run, rung string, attempt int, message string) {
	r.logger.Debug("state", zap.String("state", string(r.machine.current)), zap.String("rung", rung), zap.String("message", message))
	if o.onProgress != nil {
		o.onProgress(ProgressEvent{
			RunID:   r.id,
			State:   r.machine.current,
			Rung:    rung,
			Attempt: attempt,
			Message: message,
		})
	}
}
