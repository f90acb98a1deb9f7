package cli

import (
	"context"
	"fmt"

	"skillfit/internal/ai"
	"skillfit/internal/common"
	"skillfit/internal/config"
	"skillfit/internal/errors"
	"skillfit/internal/jdparser"
	"skillfit/internal/taxonomy"
	"skillfit/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [job-description-file]",
	Short: "Parse a job description into structured requirements",
	Long: `Parse a job description into a structured form: required and preferred
skills with priorities, seniority level, responsibilities, and experience
requirements.

By default the assisted parser is used when an AI provider is configured,
falling back to deterministic pattern matching if extraction fails. Use
--no-assist to force the rule-based parser.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var (
	parseConfig   common.CommandConfig
	parseNoAssist bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	parseCmd.Flags().BoolVar(&parseNoAssist, "no-assist", false, "Skip assisted extraction and use the rule-based parser only")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// newExtractor builds the assisted-extraction service, or returns nil
// when AI is disabled so callers fall back to rule-based parsing.
func newExtractor(cfg *config.Config, logger *errors.Logger) (*ai.Service, error) {
	if !cfg.AI.Enabled {
		return nil, nil
	}
	extractAIConfig := cfg.GetExtractConfig()
	return ai.NewService(&extractAIConfig, "extract", logger)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	assisted := !parseNoAssist
	var extractor jdparser.Extractor
	if assisted {
		aiService, err := newExtractor(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create AI service: %w", err)
		}
		if aiService != nil {
			extractor = aiService
		}
	}
	parser := jdparser.New(taxonomy.Default(), extractor, logger)

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Starting job description parsing",
			"job_chars", len(input),
			"assisted", assisted && extractor != nil,
			"output_format", cfg.OutputFormat)
	}

	parseOperation := func(ctx context.Context, rawText string) (types.ParsedJobDescription, error) {
		return parser.Parse(ctx, rawText, assisted), nil
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		parseConfig,
		args,
		createInput,
		parseOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to parse job description: %w", err)
	}
	logger.Info("Job description parsing completed successfully")
	return nil
}
