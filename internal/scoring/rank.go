package scoring

import (
	"sort"

	"github.com/jonathan/hookgen/internal/types"
)

// VariantLabels are assigned to the top-ranked hooks in order.
var VariantLabels = []string{"A", "B", "C"}

// Rank returns the candidates sorted by composite score, highest first.
// Ties keep generation order. The input slice is not modified.
func Rank(candidates []types.HookCandidate) []types.HookCandidate {
	ranked := make([]types.HookCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Composite() > ranked[j].Composite()
	})
	return ranked
}

// TopVariants labels the first types.VariantCount ranked hooks.
func TopVariants(ranked []types.HookCandidate) []types.Variant {
	n := types.VariantCount
	if len(ranked) < n {
		n = len(ranked)
	}
	variants := make([]types.Variant, n)
	for i := 0; i < n; i++ {
		variants[i] = types.Variant{
			Label: VariantLabels[i],
			Rank:  i + 1,
			Hook:  ranked[i],
		}
	}
	return variants
}
