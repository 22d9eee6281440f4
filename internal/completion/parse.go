package completion

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/schemas"
	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
)

// MinHooks is the fewest hooks a generation response may carry before it counts as malformed.
const MinHooks = 8

type rawHook struct {
	VerbalHook  string `json:"verbalHook"`
	VisualHook  string `json:"visualHook"`
	TextualHook string `json:"textualHook"`
	Framework   string `json:"framework"`
	Rationale   string `json:"rationale"`
}

type hooksEnvelope struct {
	Hooks []rawHook `json:"hooks"`
}

// ParseHooks turns loosely-structured model output into candidates.
// It strips markdown fences and preamble, repairs trailing commas, accepts a bare
// array in place of the {"hooks": [...]} envelope, checks the shape against the
// hooks schema, and rejects responses with fewer than minHooks entries.
// At most types.HookCount candidates are returned.
func ParseHooks(raw string, minHooks int) ([]types.HookCandidate, *ParseError) {
	cleaned := strings.TrimSpace(llm.RepairTrailingCommas(llm.CleanJSONBlock(raw)))
	if cleaned == "" {
		return nil, &ParseError{Kind: ParseSyntax, Message: "empty response"}
	}
	if strings.HasPrefix(cleaned, "[") {
		cleaned = `{"hooks": ` + cleaned + `}`
	}
	if !json.Valid([]byte(cleaned)) {
		return nil, &ParseError{Kind: ParseSyntax, Message: "response is not valid JSON", Cause: fmt.Errorf("content: %s", truncate(cleaned, 200))}
	}

	if err := schemas.ValidateHooksResponse(cleaned); err != nil {
		return nil, &ParseError{Kind: ParseSchema, Message: "response does not match hooks schema", Cause: err}
	}

	var envelope hooksEnvelope
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, &ParseError{Kind: ParseSyntax, Message: "failed to decode hooks", Cause: err}
	}

	candidates := make([]types.HookCandidate, 0, len(envelope.Hooks))
	for _, h := range envelope.Hooks {
		if strings.TrimSpace(h.VerbalHook) == "" {
			continue
		}
		candidates = append(candidates, types.NewHookCandidate(
			h.VerbalHook, h.VisualHook, h.TextualHook, h.Framework,
			taxonomy.CategoryForFramework(h.Framework), h.Rationale,
		))
	}

	if len(candidates) < minHooks {
		return nil, &ParseError{
			Kind:    ParseTooFew,
			Message: fmt.Sprintf("got %d hooks, need at least %d", len(candidates), minHooks),
			Count:   len(candidates),
		}
	}
	if len(candidates) > types.HookCount {
		candidates = candidates[:types.HookCount]
	}

	return candidates, nil
}

type rewriteResponse struct {
	VerbalHook string `json:"verbalHook"`
}

// ParseRewrite extracts a single rewritten line from a repair response.
// Accepts {"verbalHook": "..."}, a quoted string, or plain text (first non-empty line).
func ParseRewrite(raw string) (string, *ParseError) {
	cleaned := strings.TrimSpace(llm.CleanJSONBlock(raw))

	if strings.HasPrefix(cleaned, "{") {
		var resp rewriteResponse
		if err := json.Unmarshal([]byte(llm.RepairTrailingCommas(cleaned)), &resp); err == nil {
			if line := strings.TrimSpace(resp.VerbalHook); line != "" {
				return line, nil
			}
		}
		return "", &ParseError{Kind: ParseSchema, Message: "rewrite response has no verbalHook"}
	}

	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "\"'`")
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
	return "", &ParseError{Kind: ParseSyntax, Message: "empty rewrite response"}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
