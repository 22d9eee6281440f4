package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/hookgen/internal/completion"
	"github.com/jonathan/hookgen/internal/config"
	"github.com/jonathan/hookgen/internal/export"
	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/pipeline"
	"github.com/jonathan/hookgen/internal/repair"
	"github.com/jonathan/hookgen/internal/scoring"
	"github.com/jonathan/hookgen/internal/store"
	"github.com/jonathan/hookgen/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate ten ranked hooks for a topic",
	Long: `Generates ten tri-modal hooks for a topic, validates them against the
platform's rules, repairs the ones that fail, then scores and ranks them.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	generateConfigPath string
	generateTopic      string
	generatePlatform   string
	generateObjective  string
	generateCompany    string
	generateIndustry   string
	generateAudience   string
	generateVoice      string
	generateBanned     []string
	generateFormat     string
	generateOutput     string
	generateSeed       uint64
	generateJudge      bool
	generateProvider   string
	generateAPIKey     string
	generateRedisURL   string
)

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	cmd.Flags().StringVarP(&generateTopic, "topic", "t", "", "Video topic (required)")
	cmd.Flags().StringVarP(&generatePlatform, "platform", "p", "", "Target platform: short-form-a, short-form-b or short-form-c (required)")
	cmd.Flags().StringVar(&generateObjective, "objective", string(types.ObjectiveWatchTime), "Objective: watch-time, shares, saves or click-through")
	cmd.Flags().StringVar(&generateCompany, "company", "", "Brand or company name")
	cmd.Flags().StringVar(&generateIndustry, "industry", "", "Brand industry")
	cmd.Flags().StringVar(&generateAudience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&generateVoice, "voice", "", "Brand voice, e.g. \"playful, direct\"")
	cmd.Flags().StringSliceVar(&generateBanned, "banned", nil, "Terms no hook may contain (comma-separated or repeated)")
	cmd.Flags().StringVarP(&generateFormat, "format", "f", string(export.FormatText), "Output format: text, json or csv")
	cmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().Uint64Var(&generateSeed, "seed", 0, "Pin the score jitter seed for reproducible ranking")
	cmd.Flags().BoolVar(&generateJudge, "judge", false, "Attach model judge ratings to each hook (display only)")
	cmd.Flags().StringVar(&generateProvider, "provider", "", "Model provider: gemini or openai")

	// API key can be passed as a flag, or read from GEMINI_API_KEY / OPENAI_API_KEY
	cmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Provider API key (optional, defaults to the provider's env var)")

	// Redis URL for hook history
	cmd.Flags().StringVar(&generateRedisURL, "redis-url", "", "Redis URL for hook history (optional, defaults to REDIS_URL; in-memory when empty)")

	if err := cmd.MarkFlagRequired("topic"); err != nil {
		panic(fmt.Sprintf("failed to mark topic flag as required: %v", err))
	}
	if err := cmd.MarkFlagRequired("platform"); err != nil {
		panic(fmt.Sprintf("failed to mark platform flag as required: %v", err))
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log := getLogger()

	cfg, err := resolveGenerateConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}

	req, err := buildGenerationRequest(generateTopic, generatePlatform, generateObjective, cfg.Brand)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(generateFormat)
	if err != nil {
		return err
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("an API key is required: set --api-key, api_key in the config file, or %s / %s",
			config.EnvGeminiAPIKey, config.EnvOpenAIAPIKey)
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	history, err := store.New(ctx, cfg.RedisURL, cfg.HistoryTTL())
	if err != nil {
		log.Warn("hook history unavailable, continuing in memory", zap.Error(err))
		history = store.NewMemoryStore(cfg.HistoryTTL(), store.DefaultMaxLines)
	}
	defer func() { _ = history.Close() }()

	orchestrator := newOrchestrator(cfg, llmClient, history, log)

	result, err := orchestrator.Run(ctx, req)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(generateOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := writeResult(w, result, format); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if generateOutput != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", generateOutput)
	}
	return nil
}

// resolveGenerateConfig loads the config file, applies flags that were set,
// fills defaults and then the environment.
func resolveGenerateConfig(cmd *cobra.Command, getenv func(string) string) (*config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if generateConfigPath != "" {
		loadedCfg, err := config.LoadConfig(generateConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("company") {
		cfg.Brand.Company = generateCompany
	}
	if flags.Changed("industry") {
		cfg.Brand.Industry = generateIndustry
	}
	if flags.Changed("audience") {
		cfg.Brand.Audience = generateAudience
	}
	if flags.Changed("voice") {
		cfg.Brand.Voice = generateVoice
	}
	if flags.Changed("banned") {
		cfg.Brand.BannedTerms = generateBanned
	}
	if flags.Changed("seed") {
		cfg.JitterSeed = generateSeed
	}
	if flags.Changed("judge") {
		cfg.EnableJudge = generateJudge
	}
	if flags.Changed("provider") {
		cfg.Provider = generateProvider
	}
	if flags.Changed("api-key") {
		cfg.APIKey = generateAPIKey
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = generateRedisURL
	}
	if verbose {
		cfg.Verbose = true
	}

	// Step 3: Apply defaults for unset values, then the environment
	cfg = cfg.MergeWithDefaults(config.Default())
	cfg.ApplyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// buildGenerationRequest assembles and validates a request before any external call.
func buildGenerationRequest(topic, platform, objective string, brand types.BrandProfile) (*types.GenerationRequest, error) {
	p, err := types.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	o, err := types.ParseObjective(objective)
	if err != nil {
		return nil, err
	}
	req := &types.GenerationRequest{
		Topic:     topic,
		Platform:  p,
		Objective: o,
		Brand:     brand,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// newOrchestrator wires the pipeline from configuration.
func newOrchestrator(cfg *config.Config, client llm.Client, history store.HistoryStore, log *zap.Logger) *pipeline.Orchestrator {
	completer := completion.NewClient(client,
		completion.WithMaxConcurrent(cfg.MaxConcurrentCalls),
		completion.WithLogger(log))

	repairer := repair.NewRepairer(completer,
		repair.WithTimeout(cfg.RepairTimeout()),
		repair.WithConcurrency(cfg.MaxConcurrentCalls),
		repair.WithLogger(log))

	var jitter scoring.Jitter = scoring.NewRandomJitter()
	if cfg.JitterSeed != 0 {
		jitter = scoring.NewSeededJitter(cfg.JitterSeed)
	}

	opts := []pipeline.Option{
		pipeline.WithLadder(pipeline.DefaultLadder(cfg.PrimaryTimeout(), cfg.SimplifiedTimeout())),
		pipeline.WithHistory(history),
		pipeline.WithJitter(jitter),
		pipeline.WithLogger(log),
	}
	if cfg.EnableJudge {
		opts = append(opts, pipeline.WithJudge(
			scoring.NewJudge(completer, cfg.RepairTimeout(), cfg.MaxConcurrentCalls, log)))
	}
	if cfg.Verbose {
		opts = append(opts, pipeline.WithProgress(func(event pipeline.ProgressEvent) {
			printProgress(os.Stderr, event)
		}))
	}

	return pipeline.New(completer, repairer, opts...)
}
