package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/hookgen/internal/types"
)

// Score computes the breakdown for one candidate. It never fails; apart from
// the jitter term the result depends only on the candidate and the request.
func Score(c types.HookCandidate, req *types.GenerationRequest, jitter Jitter) types.ScoreBreakdown {
	if jitter == nil {
		jitter = NoJitter{}
	}

	var platform types.Platform
	var objective types.Objective
	if req != nil {
		platform, objective = req.Platform, req.Objective
	}

	fit := WordCountFit(platform, types.CountWords(c.VerbalHook))
	fw := FrameworkBonus(c.Framework) * frameworkWeight
	obj := ObjectiveBonus(platform, objective, c.Framework)
	j := clamp(jitter.For(c.VerbalHook), -MaxJitter, MaxJitter)

	raw := fit*wordCountWeight + fw + obj + baseline + j
	composite := round1(clamp(raw, minComposite, maxComposite))

	return types.ScoreBreakdown{
		WordCountFit:   fit,
		FrameworkBonus: fw,
		ObjectiveBonus: obj,
		Baseline:       baseline,
		Jitter:         j,
		Composite:      composite,
		Explanation:    explain(c, fit, fw, obj, j, composite),
	}
}

// ScoreAll scores every candidate in place.
func ScoreAll(candidates []types.HookCandidate, req *types.GenerationRequest, jitter Jitter) {
	for i := range candidates {
		b := Score(candidates[i], req, jitter)
		candidates[i].Score = &b
	}
}

// WordCountFit is exp(-(n-μ)²/(2σ²)) for the platform's optimum, or 0 for an unknown platform.
func WordCountFit(platform types.Platform, words int) float64 {
	g, ok := wordCountFit[platform]
	if !ok {
		return 0
	}
	d := float64(words) - g.mu
	return math.Exp(-(d * d) / (2 * g.sigma * g.sigma))
}

func explain(c types.HookCandidate, fit, fw, obj, j, composite float64) string {
	framework := c.Framework
	if strings.TrimSpace(framework) == "" {
		framework = "unnamed"
	}
	return fmt.Sprintf("%d words fit %.2f×%.1f + framework %.2f (%s) + objective %.2f + baseline %.1f + jitter %+.2f = %.1f",
		types.CountWords(c.VerbalHook), fit, wordCountWeight, fw, framework, obj, baseline, j, composite)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
