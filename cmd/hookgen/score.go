package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/hookgen/internal/export"
	"github.com/jonathan/hookgen/internal/observability"
	"github.com/jonathan/hookgen/internal/scoring"
	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank hooks without calling a model",
	Long:  "Scores every hook in a hooks JSON file for a platform and objective, ranks them and labels the top three as variants.",
	RunE:  runScore,
}

var (
	scoreInput     string
	scorePlatform  string
	scoreObjective string
	scoreTopic     string
	scoreSeed      uint64
	scoreFormat    string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "file", "i", "", "Path to hooks JSON file (required)")
	scoreCmd.Flags().StringVarP(&scorePlatform, "platform", "p", "", "Platform to score for (required)")
	scoreCmd.Flags().StringVar(&scoreObjective, "objective", string(types.ObjectiveWatchTime), "Objective: watch-time, shares, saves or click-through")
	scoreCmd.Flags().StringVarP(&scoreTopic, "topic", "t", "", "Topic the hooks were written for (used for classification only)")
	scoreCmd.Flags().Uint64Var(&scoreSeed, "seed", 0, "Jitter seed; 0 disables jitter")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", string(export.FormatText), "Output format: text, json or csv")

	if err := scoreCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("platform"); err != nil {
		panic(fmt.Sprintf("failed to mark platform flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(scoreFormat)
	if err != nil {
		return err
	}
	result, err := scoreFile(scoreInput, scorePlatform, scoreObjective, scoreTopic, scoreSeed)
	if err != nil {
		return err
	}
	return writeScored(cmd.OutOrStdout(), result, format)
}

// scoreFile scores and ranks the hooks in path. A zero seed means no jitter,
// so offline scoring is reproducible by default.
func scoreFile(path, platform, objective, topic string, seed uint64) (*types.GenerationResult, error) {
	p, err := types.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	o, err := types.ParseObjective(objective)
	if err != nil {
		return nil, err
	}

	candidates, err := loadHooksFile(path)
	if err != nil {
		return nil, err
	}

	req := &types.GenerationRequest{Topic: topic, Platform: p, Objective: o}

	var jitter scoring.Jitter = scoring.NoJitter{}
	if seed != 0 {
		jitter = scoring.NewSeededJitter(seed)
	}
	scoring.ScoreAll(candidates, req, jitter)
	ranked := scoring.Rank(candidates)

	contentType := taxonomy.ClassifyContent(topic, o)
	return &types.GenerationResult{
		Request:          *req,
		ContentType:      contentType,
		Categories:       taxonomy.SelectCategories(contentType, o),
		Hooks:            ranked,
		TopThreeVariants: scoring.TopVariants(ranked),
	}, nil
}

func writeScored(w io.Writer, result *types.GenerationResult, format export.Format) error {
	if format == export.FormatText {
		printer := observability.NewPrinter(w)
		printer.PrintVariants(result)
		printer.PrintHooks(result)
		return nil
	}
	return export.Write(w, result, format)
}
