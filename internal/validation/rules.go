// Package validation checks hook candidates against per-platform structural rules.
package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/hookgen/internal/types"
)

// Signal is the platform-specific element a hook must carry.
type Signal string

// Required signals
const (
	SignalVisualColdOpen Signal = "visual cold-open"
	SignalOverlay        Signal = "on-screen overlay"
	SignalProofCue       Signal = "proof cue"
)

// Rule describes the structural constraints for one platform.
type Rule struct {
	Platform   types.Platform
	MinWords   int
	MaxWords   int
	OverlayCap int // 0 means no cap
	Signal     Signal
}

var rules = map[types.Platform]Rule{
	types.PlatformA: {Platform: types.PlatformA, MinWords: 8, MaxWords: 12, Signal: SignalVisualColdOpen},
	types.PlatformB: {Platform: types.PlatformB, MinWords: 6, MaxWords: 15, OverlayCap: 24, Signal: SignalOverlay},
	types.PlatformC: {Platform: types.PlatformC, MinWords: 4, MaxWords: 8, Signal: SignalProofCue},
}

// RuleFor returns the rule for a platform.
func RuleFor(platform types.Platform) (Rule, bool) {
	r, ok := rules[platform]
	return r, ok
}

// WordWindow returns the inclusive word-count window for a platform.
func WordWindow(platform types.Platform) (minWords, maxWords int, ok bool) {
	r, ok := rules[platform]
	if !ok {
		return 0, 0, false
	}
	return r.MinWords, r.MaxWords, true
}

// ClichePrefixes are openings rejected on every platform.
var ClichePrefixes = []string{
	"if you",
	"stop scrolling",
	"did you know",
	"here's",
	"this is",
	"watch this",
}

// statWords count as a proof cue alongside digits and '%'.
var statWords = map[string]bool{
	"percent": true, "percentage": true, "half": true, "double": true, "doubled": true,
	"triple": true, "tripled": true, "twice": true, "times": true, "stat": true,
	"stats": true, "data": true, "study": true, "studies": true, "research": true,
	"survey": true, "proven": true, "measured": true,
	"one": true, "two": true, "three": true, "four": true, "five": true,
	"six": true, "seven": true, "eight": true, "nine": true, "ten": true,
	"dozen": true, "hundred": true, "thousand": true, "million": true,
}

// Describe renders the platform's rules as prompt instructions.
func Describe(platform types.Platform) string {
	r, ok := rules[platform]
	if !ok {
		return ""
	}
	lines := []string{fmt.Sprintf("- Spoken line between %d and %d words.", r.MinWords, r.MaxWords)}
	if r.OverlayCap > 0 {
		lines = append(lines, fmt.Sprintf("- On-screen text at most %d characters.", r.OverlayCap))
	}
	lines = append(lines, "- "+SignalRule(platform))
	return strings.Join(lines, "\n")
}

// SignalRule is the one-line instruction for the platform's required signal.
func SignalRule(platform types.Platform) string {
	switch rules[platform].Signal {
	case SignalVisualColdOpen:
		return "Open on a strong visual: the visual direction must describe the first frame."
	case SignalOverlay:
		return "Always include short on-screen overlay text."
	case SignalProofCue:
		return "Include a proof cue: a number, a percentage or a statistic."
	default:
		return ""
	}
}
