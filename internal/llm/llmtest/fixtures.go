package llmtest

import (
	"encoding/json"
	"fmt"
)

// Hook mirrors one entry of a generation response.
type Hook struct {
	VerbalHook  string `json:"verbalHook"`
	VisualHook  string `json:"visualHook"`
	TextualHook string `json:"textualHook"`
	Framework   string `json:"framework"`
	Rationale   string `json:"rationale"`
}

// HooksJSON renders hooks as a {"hooks": [...]} response body.
func HooksJSON(hooks []Hook) string {
	b, err := json.Marshal(map[string][]Hook{"hooks": hooks})
	if err != nil {
		panic(fmt.Sprintf("llmtest: marshal hooks: %v", err))
	}
	return string(b)
}

// SugarFreeHooks returns n well-formed hooks for the topic "7-day sugar-free
// experiment". Each verbal line has exactly ten words.
func SugarFreeHooks(n int) []Hook {
	lines := []Hook{
		{"Seven days without sugar and my cravings did something strange", "Close-up of an empty sugar jar", "Day 7: no sugar", "Story Loop", "Opens mid-journey"},
		{"What actually happens to your body after one week sugar-free", "Split screen of day one and day seven", "1 week, 0 sugar", "Open Loop", "Poses an unanswered question"},
		{"I quit sugar for a week and tracked every craving", "Hand writing tallies in a notebook", "Every craving logged", "Before-After-Bridge", "Promises a transformation"},
		{"Most people quit sugar the wrong way and here's why", "Person tossing a candy bar into bin", "You're doing it wrong", "Contrarian", "Challenges a belief"},
		{"Day three of going sugar-free is where everything went sideways", "Shaky handheld shot in a kitchen", "Day 3 was rough", "Story Loop", "Drops viewer into conflict"},
		{"Three numbers from my sugar-free week that honestly shocked me", "Numbers popping up over a food diary", "3 shocking numbers", "Problem-Promise-Proof", "Leads with data"},
		{"The one sugar swap that made my week much easier", "Swapping soda for sparkling water", "The one swap", "Problem-Promise-Proof", "Offers a concrete fix"},
		{"Nobody warned me about the headaches on day two sugar-free", "Person rubbing temples at a desk", "Day 2 headaches", "Open Loop", "Creates tension"},
		{"My energy levels after seven days without sugar surprised everyone", "Morning run at sunrise", "Energy check: day 7", "Before-After-Bridge", "Shows a result"},
		{"Try this sugar-free week before you buy another energy drink", "Fridge full of energy drinks", "Before your next can", "FOMO", "Adds urgency"},
	}
	if n > len(lines) {
		n = len(lines)
	}
	return lines[:n]
}
