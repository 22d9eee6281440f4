// Package export writes a GenerationResult in machine-readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/hookgen/internal/types"
)

// Format is an output format.
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format string. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected text, json or csv)", s)
}

// csvHeader is the column order for CSV output.
var csvHeader = []string{
	"rank", "variant", "composite", "verbal_hook", "visual_hook", "textual_hook",
	"framework", "category", "word_count", "repaired", "source", "explanation",
}

// WriteJSON writes the full result as indented JSON.
func WriteJSON(w io.Writer, result *types.GenerationResult) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// WriteCSV writes one row per ranked hook. Variants are identified by their label.
func WriteCSV(w io.Writer, result *types.GenerationResult) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}

	labels := make(map[int]string, len(result.TopThreeVariants))
	for _, v := range result.TopThreeVariants {
		labels[v.Rank] = v.Label
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, h := range result.Hooks {
		explanation := ""
		if h.Score != nil {
			explanation = h.Score.Explanation
		}
		row := []string{
			strconv.Itoa(i + 1),
			labels[i+1],
			strconv.FormatFloat(h.Composite(), 'f', 1, 64),
			h.VerbalHook,
			h.VisualHook,
			h.TextualHook,
			h.Framework,
			h.Category,
			strconv.Itoa(h.WordCount),
			strconv.FormatBool(h.Repaired),
			h.Source,
			explanation,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Write dispatches to the writer for format. Text output is handled by the
// observability printer and is rejected here.
func Write(w io.Writer, result *types.GenerationResult, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, result)
	case FormatCSV:
		return WriteCSV(w, result)
	default:
		return fmt.Errorf("format %q is not a machine-readable export", format)
	}
}
