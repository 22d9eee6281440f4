package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/hookgen/internal/observability"
	"github.com/jonathan/hookgen/internal/types"
	"github.com/jonathan/hookgen/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate hooks against a platform's rules",
	Long: `Runs the platform validator over a hooks JSON file ({"hooks": [...]} or a bare array)
and reports every issue. Exits non-zero if any hook is invalid.`,
	RunE: runValidate,
}

var (
	validateInput    string
	validatePlatform string
	validateBanned   []string
	validateJSON     bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "file", "i", "", "Path to hooks JSON file (required)")
	validateCmd.Flags().StringVarP(&validatePlatform, "platform", "p", "", "Platform to validate against (required)")
	validateCmd.Flags().StringSliceVar(&validateBanned, "banned", nil, "Terms no hook may contain")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print results as JSON")

	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("platform"); err != nil {
		panic(fmt.Sprintf("failed to mark platform flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

// validatedHook pairs a hook with its validation result for JSON output.
type validatedHook struct {
	VerbalHook string                 `json:"verbalHook"`
	Result     types.ValidationResult `json:"result"`
}

func runValidate(cmd *cobra.Command, _ []string) error {
	invalid, err := validateFile(cmd.OutOrStdout(), validateInput, validatePlatform, validateBanned, validateJSON)
	if err != nil {
		return err
	}
	if invalid > 0 {
		// Return error to indicate invalid hooks were found (exit code 1)
		return fmt.Errorf("validation found %d invalid hook(s)", invalid)
	}
	return nil
}

// validateFile validates every hook in path and returns how many are invalid.
func validateFile(w io.Writer, path, platform string, banned []string, asJSON bool) (int, error) {
	p, err := types.ParsePlatform(platform)
	if err != nil {
		return 0, err
	}

	candidates, err := loadHooksFile(path)
	if err != nil {
		return 0, err
	}

	results := validation.ValidateAll(candidates, p, &validation.Options{BannedTerms: banned})
	invalid := validation.CountInvalid(results)

	if asJSON {
		out := make([]validatedHook, len(candidates))
		for i, c := range candidates {
			out[i] = validatedHook{VerbalHook: c.VerbalHook, Result: results[i]}
		}
		jsonBytes, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return 0, fmt.Errorf("failed to marshal validation results: %w", err)
		}
		_, _ = fmt.Fprintln(w, string(jsonBytes))
		return invalid, nil
	}

	observability.NewPrinter(w).PrintValidation(p, candidates, results)
	return invalid, nil
}
