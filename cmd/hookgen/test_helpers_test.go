package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/hookgen/internal/llm/llmtest"
)

// getBinaryPath returns the path to the hookgen binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "hookgen"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/hookgen ./cmd/hookgen'", binaryPath)
	}

	return binaryPath
}

// writeHooksFile writes hooks in the completion response shape and returns the path.
func writeHooksFile(t *testing.T, hooks []llmtest.Hook) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hooks.json")
	require.NoError(t, os.WriteFile(path, []byte(llmtest.HooksJSON(hooks)), 0644))
	return path
}
