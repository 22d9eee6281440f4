// Package main provides the hookgen CLI for generating short-form video hooks.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/hookgen/internal/observability"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hookgen",
	Short: "Short-form video hook generator",
	Long: `hookgen turns a topic, a target platform and a business objective into ten
ranked hooks, each with a spoken line, a visual cold-open direction and a text
overlay, plus three labelled variants for A/B testing.

Generation degrades from a primary model request to a simplified one and
finally to static templates, so a result is always produced.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		logger, err = observability.NewLogger(verbose)
		return err
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// getLogger returns the process logger, or a no-op logger before initialization.
func getLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
