package taxonomy

import (
	"testing"

	"github.com/jonathan/hookgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyContent(t *testing.T) {
	tests := []struct {
		name      string
		topic     string
		objective types.Objective
		expected  types.ContentType
	}{
		{"educational keyword", "How to batch cook for a week", types.ObjectiveSaves, types.ContentEducational},
		{"educational uppercase", "BEGINNER GUIDE to sourdough", types.ObjectiveShares, types.ContentEducational},
		{"storytelling keyword", "My weight loss journey", types.ObjectiveWatchTime, types.ContentStorytelling},
		{"storytelling transformation", "Garage transformation in 30 days", types.ObjectiveShares, types.ContentStorytelling},
		{"both sets match", "Tips from my coding journey", types.ObjectiveSaves, types.ContentMixed},
		{"neither matches", "7-day sugar-free experiment", types.ObjectiveWatchTime, types.ContentMixed},
		{"empty topic", "", types.ObjectiveClickThrough, types.ContentMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyContent(tt.topic, tt.objective))
		})
	}
}

func TestSelectCategories(t *testing.T) {
	assert.Equal(t, []string{StatementBased, Efficiency, QuestionBased},
		SelectCategories(types.ContentEducational, types.ObjectiveSaves))
	assert.Equal(t, []string{Narrative, QuestionBased, UrgencyExclusivity},
		SelectCategories(types.ContentStorytelling, types.ObjectiveShares))
	assert.Equal(t, []string{StatementBased, Narrative, QuestionBased},
		SelectCategories(types.ContentMixed, types.ObjectiveWatchTime))

	// Unknown content type falls back to mixed
	assert.Len(t, SelectCategories(types.ContentType("other"), types.ObjectiveWatchTime), 3)
}

func TestSelectCategories_ReturnsCopy(t *testing.T) {
	first := SelectCategories(types.ContentMixed, types.ObjectiveWatchTime)
	first[0] = "mutated"
	second := SelectCategories(types.ContentMixed, types.ObjectiveWatchTime)
	assert.Equal(t, StatementBased, second[0])
}

func TestCatalog_EveryCategoryHasFormulas(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 5)
	for _, c := range cats {
		assert.NotEmpty(t, c.Description, c.Name)
		require.NotEmpty(t, c.Formulas, c.Name)
		for _, f := range c.Formulas {
			assert.Contains(t, f.Template, "{topic}", f.Name)
			assert.Contains(t, []string{RiskLow, RiskMedium, RiskHigh}, f.Risk, f.Name)
			assert.NotEmpty(t, f.Framework, f.Name)
		}
	}
}

func TestExampleTemplates(t *testing.T) {
	examples := ExampleTemplates(Narrative, 2)
	require.Len(t, examples, 2)
	assert.Equal(t, "In Medias Res", examples[0].Name)

	assert.Len(t, ExampleTemplates(Efficiency, 10), 3)
	assert.Nil(t, ExampleTemplates("Unknown", 2))
	assert.Nil(t, ExampleTemplates(Narrative, 0))
}

func TestLookup(t *testing.T) {
	c, ok := Lookup(UrgencyExclusivity)
	require.True(t, ok)
	assert.Equal(t, UrgencyExclusivity, c.Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestCategoryForFramework(t *testing.T) {
	assert.Equal(t, QuestionBased, CategoryForFramework("Open Loop"))
	assert.Equal(t, QuestionBased, CategoryForFramework("open loop"))
	assert.Equal(t, Narrative, CategoryForFramework("Story Loop"))
	assert.Equal(t, "", CategoryForFramework("Unheard Of"))
}
