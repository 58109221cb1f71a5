package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"business_document_generator/config"
	"business_document_generator/export"
	"business_document_generator/generator"
	"business_document_generator/notes"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bizdoc",
	Short: "Business document generator",
	Long: `bizdoc drafts business plans, feasibility studies, application forms and
pitch decks section by section with a hosted language model, runs a small
financial model, formats financial tables and summarizes meeting recordings.

Run "bizdoc serve" for the web interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = buildLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(financeCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(notesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// modelClient is what every provider offers: completions and transcription.
type modelClient interface {
	generator.LLMClient
	generator.Transcriber
}

func buildLLM(cfg config.Config) (modelClient, error) {
	settings := &generator.LLMSettings{
		Provider:           cfg.LLM.Provider,
		Model:              cfg.LLM.Model,
		APIKey:             cfg.LLM.APIKey,
		BaseURL:            cfg.LLM.BaseURL,
		TranscriptionModel: cfg.LLM.TranscriptionModel,
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func buildAssembler(llm generator.LLMClient) (*generator.Assembler, error) {
	return generator.NewAssembler(llm,
		generator.WithTokenBudget(cfg.Generation.ShortMaxTokens, cfg.Generation.LongMaxTokens),
		generator.WithTemperature(*cfg.Generation.Temperature),
		generator.WithConcurrency(cfg.Generation.Concurrency),
		generator.WithLogger(logger.Named("generator")),
	)
}

func buildExporter() *export.Exporter {
	return export.New(export.Settings{
		Title:            cfg.Export.Title,
		TempDir:          cfg.Export.TempDir,
		ImageWidthInches: cfg.Export.ImageWidthInches,
		Logger:           logger.Named("export"),
	})
}

func buildTaker(llm modelClient) (*notes.Taker, error) {
	return notes.NewTaker(llm, llm, cfg.Notes.SummaryMaxTokens, logger.Named("notes"))
}
