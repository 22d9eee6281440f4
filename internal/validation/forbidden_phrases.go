package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/hookgen/internal/types"
)

// CheckBannedTerms reports one issue per banned term found in the verbal line or overlay.
func CheckBannedTerms(c types.HookCandidate, bannedTerms []string) []string {
	if len(bannedTerms) == 0 {
		return nil
	}

	haystack := normalizeForMatching(c.VerbalHook + "\n" + c.TextualHook)
	var issues []string
	seen := make(map[string]bool, len(bannedTerms))
	for _, term := range bannedTerms {
		needle := normalizeForMatching(strings.TrimSpace(term))
		if needle == "" || seen[needle] {
			continue
		}
		seen[needle] = true
		if containsWord(haystack, needle) {
			issues = append(issues, fmt.Sprintf("Contains banned term %q", strings.TrimSpace(term)))
		}
	}
	return issues
}

// containsWord reports whether needle occurs in haystack bounded by non-word
// runes on both sides, so "art" does not match inside "start".
func containsWord(haystack, needle string) bool {
	for offset := 0; offset <= len(haystack)-len(needle); {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(needle)
		if isBoundary(haystack[:start], true) && isBoundary(haystack[end:], false) {
			return true
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		offset = start + size
	}
	return false
}

func isBoundary(side string, before bool) bool {
	if side == "" {
		return true
	}
	var r rune
	if before {
		r, _ = utf8.DecodeLastRuneInString(side)
	} else {
		r, _ = utf8.DecodeRuneInString(side)
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// normalizeForMatching lowercases text and folds typographic quotes
// so "Here’s" and "here's" compare equal.
func normalizeForMatching(text string) string {
	text = strings.NewReplacer(
		"’", "'", "‘", "'",
		"“", `"`, "”", `"`,
	).Replace(text)
	return strings.ToLower(text)
}
