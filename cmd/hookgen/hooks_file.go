package main

import (
	"fmt"
	"os"

	"github.com/jonathan/hookgen/internal/completion"
	"github.com/jonathan/hookgen/internal/types"
)

// loadHooksFile reads candidates from a file in the completion response shape:
// {"hooks": [...]} or a bare array. Only the first ten hooks are kept.
func loadHooksFile(path string) ([]types.HookCandidate, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("hooks file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read hooks file: %w", err)
	}

	candidates, perr := completion.ParseHooks(string(content), 1)
	if perr != nil {
		return nil, fmt.Errorf("failed to parse hooks file: %w", perr)
	}
	return candidates, nil
}
