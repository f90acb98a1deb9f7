package cli

import (
	"context"
	"fmt"

	"skillfit/internal/ai"
	"skillfit/internal/common"
	"skillfit/internal/gaps"
	"skillfit/internal/matching"
	"skillfit/internal/taxonomy"
	"skillfit/internal/types"

	"github.com/spf13/cobra"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps [profile-file] [parsed-job-file]",
	Short: "Generate targeted questions for uncovered job requirements",
	Long: `Generate targeted questions for the requirements a career profile does
not cover. The command scores the profile against the parsed job
description, then produces questions for each GAP requirement and each
PARTIAL requirement backed only by related experience.

When an AI provider is configured, questions for the most critical gaps
are drafted by the model and personalized to the profile; template-based
questions cover the rest. Use --no-assist to force templates only.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if gapsConfig.OutputFormat == "" {
			gapsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(gapsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runGaps,
}

var (
	gapsConfig   common.CommandConfig
	gapsNoAssist bool
)

func init() {
	gapsCmd.Flags().StringVarP(&gapsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	gapsCmd.Flags().StringVar(&gapsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	gapsCmd.Flags().BoolVar(&gapsNoAssist, "no-assist", false, "Skip model drafting and use question templates only")

	_ = gapsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runGaps(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	assisted := !gapsNoAssist && cfg.AI.Enabled
	var drafter gaps.Drafter
	if assisted {
		gapAIConfig := cfg.GetGapQuestionConfig()
		aiService, err := ai.NewService(&gapAIConfig, "gap_question", logger)
		if err != nil {
			return fmt.Errorf("failed to create AI service: %w", err)
		}
		drafter = aiService
	}

	engine := matching.NewEngine(taxonomy.Default())
	generator := gaps.NewGenerator(drafter, logger)

	logDetails := func(input matchInput, cfg common.CommandConfig) {
		logger.Info("Starting gap analysis",
			"profile_skills", len(input.career.Skills),
			"required_skills", len(input.job.RequiredSkills),
			"assisted", assisted,
			"output_format", cfg.OutputFormat)
	}

	gapsOperation := func(ctx context.Context, input matchInput) (types.GapAnalysis, error) {
		coverage := engine.GenerateCoverageMap(input.career, input.job)
		return generator.Generate(ctx, coverage, input.career, assisted), nil
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		gapsConfig,
		args,
		decodeMatchInput,
		gapsOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate gap questions: %w", err)
	}
	logger.Info("Gap analysis completed successfully")
	return nil
}
