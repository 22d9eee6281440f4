package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/hookgen/internal/types"
)

// Options provides optional parameters for validation
type Options struct {
	BannedTerms []string // brand terms that must not appear in the verbal line or overlay
}

// Validate checks a candidate against the platform's rules. It never fails:
// an unknown platform is reported as an issue.
func Validate(candidate types.HookCandidate, platform types.Platform, opts *Options) types.ValidationResult {
	words := types.CountWords(candidate.VerbalHook)
	result := types.ValidationResult{WordCount: words, Issues: []string{}}

	rule, ok := RuleFor(platform)
	if !ok {
		result.Issues = append(result.Issues, fmt.Sprintf("Unknown platform %q", string(platform)))
		return result
	}

	// 1. Word-count window
	if words < rule.MinWords || words > rule.MaxWords {
		result.Issues = append(result.Issues, fmt.Sprintf("Word count %d outside %s range %d-%d",
			words, platform.Label(), rule.MinWords, rule.MaxWords))
	}

	// 2. Overlay cap
	if rule.OverlayCap > 0 {
		if n := utf8.RuneCountInString(candidate.TextualHook); n > rule.OverlayCap {
			result.Issues = append(result.Issues, fmt.Sprintf("Overlay text is %d characters, over the %s limit of %d",
				n, platform.Label(), rule.OverlayCap))
		}
	}

	// 3. Required signal
	if issue := checkSignal(rule.Signal, candidate); issue != "" {
		result.Issues = append(result.Issues, issue)
	}

	// 4. Cliché openings
	if prefix := clichePrefix(candidate.VerbalHook); prefix != "" {
		result.Issues = append(result.Issues, fmt.Sprintf("Opens with cliché %q", prefix))
	}

	// 5. Brand banned terms
	if opts != nil {
		result.Issues = append(result.Issues, CheckBannedTerms(candidate, opts.BannedTerms)...)
	}

	result.Valid = len(result.Issues) == 0
	return result
}

// ValidateAll validates candidates in order.
func ValidateAll(candidates []types.HookCandidate, platform types.Platform, opts *Options) []types.ValidationResult {
	results := make([]types.ValidationResult, len(candidates))
	for i, c := range candidates {
		results[i] = Validate(c, platform, opts)
	}
	return results
}

// CountInvalid returns how many results carry issues.
func CountInvalid(results []types.ValidationResult) int {
	n := 0
	for _, r := range results {
		if !r.Valid {
			n++
		}
	}
	return n
}

func checkSignal(signal Signal, c types.HookCandidate) string {
	switch signal {
	case SignalVisualColdOpen:
		if strings.TrimSpace(c.VisualHook) == "" {
			return "Missing visual cold-open direction"
		}
	case SignalOverlay:
		if strings.TrimSpace(c.TextualHook) == "" {
			return "Missing on-screen overlay text"
		}
	case SignalProofCue:
		if !hasProofCue(c.VerbalHook) && !hasProofCue(c.TextualHook) {
			return "Missing proof cue (number or stat)"
		}
	}
	return ""
}

func hasProofCue(text string) bool {
	if strings.ContainsAny(text, "0123456789%") {
		return true
	}
	for _, w := range strings.Fields(normalizeForMatching(text)) {
		if statWords[strings.TrimFunc(w, isTrimmable)] {
			return true
		}
	}
	return false
}

// clichePrefix returns the cliché the line opens with, or "".
// A prefix only matches on a word boundary, so "this island" is not "this is".
func clichePrefix(verbal string) string {
	line := strings.TrimLeftFunc(normalizeForMatching(verbal), isTrimmable)
	for _, prefix := range ClichePrefixes {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		rest := line[len(prefix):]
		if rest == "" {
			return prefix
		}
		r, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return prefix
		}
	}
	return ""
}

func isTrimmable(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
