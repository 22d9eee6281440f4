// Package scoring computes composite hook scores and ranks candidates.
package scoring

import (
	"strings"

	"github.com/jonathan/hookgen/internal/types"
)

// Weights and constants of the composite formula
const (
	wordCountWeight = 1.2
	frameworkWeight = 1.0
	baseline        = 2.5
	maxObjective    = 0.6
	defaultBonus    = 0.4
	minComposite    = 0.0
	maxComposite    = 5.0
)

// gaussian is the word-count optimum for a platform.
type gaussian struct {
	mu    float64
	sigma float64
}

var wordCountFit = map[types.Platform]gaussian{
	types.PlatformA: {mu: 10, sigma: 2},
	types.PlatformB: {mu: 10, sigma: 2.5},
	types.PlatformC: {mu: 6, sigma: 1.5},
}

// Keys are lowercase framework names.
var frameworkBonus = map[string]float64{
	"open loop":             0.8,
	"problem-promise-proof": 0.7,
	"curiosity gap":         0.7,
	"pattern interrupt":     0.6,
	"story loop":            0.6,
	"contrarian":            0.6,
	"before-after-bridge":   0.5,
	"how-to list":           0.5,
	"fomo":                  0.5,
}

var objectiveBonus = map[types.Objective]map[string]float64{
	types.ObjectiveWatchTime: {
		"story loop":        0.6,
		"open loop":         0.5,
		"curiosity gap":     0.4,
		"pattern interrupt": 0.3,
	},
	types.ObjectiveShares: {
		"contrarian":          0.5,
		"pattern interrupt":   0.4,
		"before-after-bridge": 0.3,
	},
	types.ObjectiveSaves: {
		"how-to list":           0.6,
		"problem-promise-proof": 0.5,
		"before-after-bridge":   0.2,
	},
	types.ObjectiveClickThrough: {
		"fomo":          0.5,
		"curiosity gap": 0.5,
		"open loop":     0.3,
	},
}

// platformAffinity is added on top of the objective bonus; the sum is capped at maxObjective.
var platformAffinity = map[types.Platform]map[string]float64{
	types.PlatformA: {"pattern interrupt": 0.1, "story loop": 0.1},
	types.PlatformB: {"how-to list": 0.1, "curiosity gap": 0.1},
	types.PlatformC: {"problem-promise-proof": 0.1, "contrarian": 0.1},
}

// FrameworkBonus returns the bonus for a framework name (case-insensitive).
func FrameworkBonus(framework string) float64 {
	if b, ok := frameworkBonus[normalize(framework)]; ok {
		return b
	}
	return defaultBonus
}

// ObjectiveBonus returns the alignment bonus for (platform, objective, framework), 0 to 0.6.
func ObjectiveBonus(platform types.Platform, objective types.Objective, framework string) float64 {
	key := normalize(framework)
	bonus := objectiveBonus[objective][key] + platformAffinity[platform][key]
	if bonus > maxObjective {
		return maxObjective
	}
	return bonus
}

func normalize(framework string) string {
	return strings.ToLower(strings.TrimSpace(framework))
}
