package completion

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hookgen/internal/llm/llmtest"
	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
)

func TestParseHooks_Envelope(t *testing.T) {
	raw := llmtest.HooksJSON(llmtest.SugarFreeHooks(10))

	hooks, perr := ParseHooks(raw, MinHooks)
	require.Nil(t, perr)
	require.Len(t, hooks, 10)

	assert.Equal(t, "Seven days without sugar and my cravings did something strange", hooks[0].VerbalHook)
	assert.Equal(t, 10, hooks[0].WordCount)
	assert.Equal(t, taxonomy.Narrative, hooks[0].Category)
	assert.Equal(t, taxonomy.QuestionBased, hooks[1].Category)
}

func TestParseHooks_FencedWithPreamble(t *testing.T) {
	raw := "Sure! Here are your hooks:\n```json\n" + llmtest.HooksJSON(llmtest.SugarFreeHooks(9)) + "\n```"

	hooks, perr := ParseHooks(raw, MinHooks)
	require.Nil(t, perr)
	assert.Len(t, hooks, 9)
}

func TestParseHooks_BareArrayWithTrailingComma(t *testing.T) {
	body := llmtest.HooksJSON(llmtest.SugarFreeHooks(8))
	arr := strings.TrimSuffix(strings.TrimPrefix(body, `{"hooks":`), "}")
	arr = strings.TrimSuffix(arr, "]") + ",]"

	hooks, perr := ParseHooks(arr, MinHooks)
	require.Nil(t, perr)
	assert.Len(t, hooks, 8)
}

func TestParseHooks_TruncatesToHookCount(t *testing.T) {
	hooks := append(llmtest.SugarFreeHooks(10), llmtest.SugarFreeHooks(3)...)

	parsed, perr := ParseHooks(llmtest.HooksJSON(hooks), MinHooks)
	require.Nil(t, perr)
	assert.Len(t, parsed, types.HookCount)
}

func TestParseHooks_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind ParseErrorKind
	}{
		{"empty", "   ", ParseSyntax},
		{"not json", "I could not come up with any hooks today.", ParseSyntax},
		{"truncated json", `{"hooks": [{"verbalHook": "abc"`, ParseSyntax},
		{"missing hooks key", `{"items": []}`, ParseSchema},
		{"hook missing verbal", `{"hooks": [{"visualHook": "x"}]}`, ParseSchema},
		{"too few", llmtest.HooksJSON(llmtest.SugarFreeHooks(7)), ParseTooFew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hooks, perr := ParseHooks(tt.raw, MinHooks)
			require.NotNil(t, perr)
			assert.Nil(t, hooks)
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

func TestParseHooks_BlankVerbalCountsAgainstMinimum(t *testing.T) {
	hooks := llmtest.SugarFreeHooks(8)
	hooks[3].VerbalHook = "   "

	_, perr := ParseHooks(llmtest.HooksJSON(hooks), MinHooks)
	require.NotNil(t, perr)
	assert.Equal(t, ParseTooFew, perr.Kind)
	assert.Equal(t, 7, perr.Count)
}

func TestParseHooks_EmptyVerbalIsSkipped(t *testing.T) {
	hooks := llmtest.SugarFreeHooks(10)
	hooks[3].VerbalHook = ""

	parsed, perr := ParseHooks(llmtest.HooksJSON(hooks), MinHooks)
	require.Nil(t, perr)
	assert.Len(t, parsed, 9)
	for _, h := range parsed {
		assert.NotEmpty(t, strings.TrimSpace(h.VerbalHook))
	}
}

func TestParseHooks_NullOptionalFields(t *testing.T) {
	body := llmtest.HooksJSON(llmtest.SugarFreeHooks(10))
	var envelope map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	envelope["hooks"][0]["framework"] = nil
	envelope["hooks"][1]["visualHook"] = nil
	envelope["hooks"][2]["rationale"] = nil
	raw, err := json.Marshal(envelope)
	require.NoError(t, err)

	parsed, perr := ParseHooks(string(raw), MinHooks)
	require.Nil(t, perr)
	require.Len(t, parsed, 10)
	assert.Empty(t, parsed[0].Framework)
	assert.Empty(t, parsed[1].VisualHook)
	assert.Empty(t, parsed[2].Rationale)
}

func TestParseRewrite(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"json object", `{"verbalHook": "Seven sugar-free days rewired my cravings"}`, "Seven sugar-free days rewired my cravings"},
		{"fenced json", "```json\n{\"verbalHook\": \"Fenced line here\",}\n```", "Fenced line here"},
		{"quoted", `"A quoted rewrite"`, "A quoted rewrite"},
		{"plain multi-line", "\n  First real line\nSecond line", "First real line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, perr := ParseRewrite(tt.raw)
			require.Nil(t, perr)
			assert.Equal(t, tt.expected, line)
		})
	}
}

func TestParseRewrite_Errors(t *testing.T) {
	_, perr := ParseRewrite("")
	require.NotNil(t, perr)
	assert.Equal(t, ParseSyntax, perr.Kind)

	_, perr = ParseRewrite(`{"other": "x"}`)
	require.NotNil(t, perr)
	assert.Equal(t, ParseSchema, perr.Kind)
}
