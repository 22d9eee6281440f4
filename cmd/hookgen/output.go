package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/hookgen/internal/export"
	"github.com/jonathan/hookgen/internal/observability"
	"github.com/jonathan/hookgen/internal/types"
)

// openOutput returns stdout when path is empty, otherwise a newly created file.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// writeResult renders result in the requested format.
func writeResult(w io.Writer, result *types.GenerationResult, format export.Format) error {
	if format == export.FormatText {
		observability.NewPrinter(w).PrintResult(result)
		return nil
	}
	return export.Write(w, result, format)
}
