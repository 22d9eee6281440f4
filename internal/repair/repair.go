package repair

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hookgen/internal/completion"
	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/prompts"
	"github.com/jonathan/hookgen/internal/types"
	"github.com/jonathan/hookgen/internal/validation"
)

// ErrEmptyRewrite is returned when the model answers with a blank line.
var ErrEmptyRewrite = errors.New("empty rewrite")

// Rewriter returns a single rewritten line for a prompt.
type Rewriter interface {
	Rewrite(ctx context.Context, prompt string, tier llm.ModelTier, timeout time.Duration) (string, error)
}

// Report summarises one repair pass.
type Report struct {
	Attempts int     `json:"attempts"`
	Repaired int     `json:"repaired"`
	Failed   int     `json:"failed"`
	Errors   []error `json:"-"`
}

// Repairer sends one rewrite request per invalid candidate.
type Repairer struct {
	rewriter Rewriter
	tier     llm.ModelTier
	timeout  time.Duration
	limit    int
	logger   *zap.Logger
}

// Option configures a Repairer
type Option func(*Repairer)

// WithTier sets the model tier used for rewrites.
func WithTier(tier llm.ModelTier) Option {
	return func(r *Repairer) { r.tier = tier }
}

// WithTimeout sets the per-rewrite deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Repairer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithConcurrency bounds how many rewrites run at once.
func WithConcurrency(n int) Option {
	return func(r *Repairer) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repairer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepairer creates a Repairer.
func NewRepairer(rewriter Rewriter, opts ...Option) *Repairer {
	r := &Repairer{
		rewriter: rewriter,
		tier:     llm.TierStandard,
		timeout:  completion.DefaultRewriteTimeout,
		limit:    4,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RepairAll repairs every candidate whose result is invalid, in place.
// Valid candidates are never sent. Failures leave the candidate untouched and
// are counted in the report; they are never returned as an error.
func (r *Repairer) RepairAll(ctx context.Context, candidates []types.HookCandidate, results []types.ValidationResult, platform types.Platform, opts *validation.Options) Report {
	var (
		mu     sync.Mutex
		report Report
	)

	g := new(errgroup.Group)
	g.SetLimit(r.limit)

	for i := range candidates {
		if i >= len(results) || results[i].Valid {
			continue
		}
		idx := i
		mu.Lock()
		report.Attempts++
		mu.Unlock()

		g.Go(func() error {
			err := r.Repair(ctx, &candidates[idx], results[idx].Issues, platform, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, &Error{Index: idx, Message: "rewrite failed", Cause: err})
				r.logger.Warn("repair failed, keeping original line",
					zap.Int("candidate", idx),
					zap.Error(err))
				return nil
			}
			report.Repaired++
			return nil
		})
	}

	_ = g.Wait()
	return report
}

// Repair rewrites one candidate's verbal line. On success the line and word
// count are replaced and the candidate is marked repaired.
func (r *Repairer) Repair(ctx context.Context, c *types.HookCandidate, issues []string, platform types.Platform, opts *validation.Options) error {
	prompt, err := BuildPrompt(*c, issues, platform, opts)
	if err != nil {
		return err
	}

	line, err := r.rewriter.Rewrite(ctx, prompt, r.tier, r.timeout)
	if err != nil {
		return err
	}
	if strings.TrimSpace(line) == "" {
		return ErrEmptyRewrite
	}

	before := c.VerbalHook
	c.SetVerbal(line)
	c.Repaired = true
	r.logger.Debug("repaired candidate",
		zap.String("before", before),
		zap.String("after", c.VerbalHook),
		zap.Int("words", c.WordCount))
	return nil
}

// BuildPrompt renders the repair prompt for a candidate.
func BuildPrompt(c types.HookCandidate, issues []string, platform types.Platform, opts *validation.Options) (string, error) {
	minWords, maxWords, ok := validation.WordWindow(platform)
	if !ok {
		return "", fmt.Errorf("unknown platform %q", string(platform))
	}

	banned := "none"
	if opts != nil && len(opts.BannedTerms) > 0 {
		banned = strings.Join(opts.BannedTerms, ", ")
	}

	var issueLines strings.Builder
	for _, issue := range issues {
		issueLines.WriteString("- ")
		issueLines.WriteString(issue)
		issueLines.WriteString("\n")
	}

	return prompts.Render(prompts.KeyRepairVerbal, map[string]string{
		"VerbalHook":   c.VerbalHook,
		"VisualHook":   orNone(c.VisualHook),
		"TextualHook":  orNone(c.TextualHook),
		"Framework":    orNone(c.Framework),
		"Rationale":    orNone(c.Rationale),
		"Issues":       strings.TrimRight(issueLines.String(), "\n"),
		"MinWords":     strconv.Itoa(minWords),
		"MaxWords":     strconv.Itoa(maxWords),
		"BannedTerms":  banned,
		"ExtraRule":    "- " + validation.SignalRule(platform),
		"OutputFormat": llm.BuildOutputInstructions(llm.RewriteSchema()),
	})
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}
