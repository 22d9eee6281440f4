package pipeline

import (
	"fmt"
	"time"

	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/prompts"
	"github.com/jonathan/hookgen/internal/types"
)

// State is a stage of a generation run.
type State string

// Pipeline states
const (
	StateClassifying         State = "classifying"
	StateSelectingCategories State = "selecting_categories"
	StateGenerating          State = "generating"
	StateValidating          State = "validating"
	StateRepairing           State = "repairing"
	StateScoring             State = "scoring"
	StateRanking             State = "ranking"
	StateDone                State = "done"
)

// transitions lists the legal successors of each state. Generating may
// re-enter itself on a fallback descent, and goes straight to Ranking once
// the static rung is reached.
var transitions = map[State][]State{
	StateClassifying:         {StateSelectingCategories},
	StateSelectingCategories: {StateGenerating},
	StateGenerating:          {StateGenerating, StateValidating, StateRanking},
	StateValidating:          {StateRepairing, StateScoring},
	StateRepairing:           {StateScoring},
	StateScoring:             {StateRanking},
	StateRanking:             {StateDone},
	StateDone:                {},
}

// CanTransition reports whether to is a legal successor of from.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// machine tracks the current state of one run.
type machine struct {
	current State
	history []State
}

func newMachine() *machine {
	return &machine{current: StateClassifying, history: []State{StateClassifying}}
}

func (m *machine) to(next State) error {
	if !CanTransition(m.current, next) {
		return fmt.Errorf("illegal transition %s -> %s", m.current, next)
	}
	m.current = next
	m.history = append(m.history, next)
	return nil
}

// RungKind identifies a fallback rung.
type RungKind string

// Rung kinds, in descent order
const (
	RungPrimary    RungKind = types.SourcePrimary
	RungSimplified RungKind = types.SourceSimplified
	RungStatic     RungKind = types.SourceStatic
)

// Rung is one step of the fallback ladder. The static rung makes no external
// call and cannot fail.
type Rung struct {
	Kind      RungKind
	Attempts  int
	Tier      llm.ModelTier
	PromptKey string
	Timeout   time.Duration
}

// Default rung deadlines
const (
	DefaultPrimaryTimeout    = 25 * time.Second
	DefaultSimplifiedTimeout = 15 * time.Second
)

// DefaultLadder is Primary (2 attempts) -> Simplified (1 attempt) -> Static.
func DefaultLadder(primaryTimeout, simplifiedTimeout time.Duration) []Rung {
	if primaryTimeout <= 0 {
		primaryTimeout = DefaultPrimaryTimeout
	}
	if simplifiedTimeout <= 0 {
		simplifiedTimeout = DefaultSimplifiedTimeout
	}
	return []Rung{
		{Kind: RungPrimary, Attempts: 2, Tier: llm.TierAdvanced, PromptKey: prompts.KeyGenerate, Timeout: primaryTimeout},
		{Kind: RungSimplified, Attempts: 1, Tier: llm.TierLite, PromptKey: prompts.KeyGenerateSimplified, Timeout: simplifiedTimeout},
		{Kind: RungStatic},
	}
}

// normalizeLadder guarantees the ladder ends in exactly one static rung.
func normalizeLadder(ladder []Rung) []Rung {
	out := make([]Rung, 0, len(ladder)+1)
	for _, r := range ladder {
		if r.Kind == RungStatic {
			break
		}
		if r.Attempts <= 0 {
			continue
		}
		out = append(out, r)
	}
	return append(out, Rung{Kind: RungStatic})
}
