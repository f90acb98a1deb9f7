package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"skillfit/internal/common"
	"skillfit/internal/matching"
	"skillfit/internal/taxonomy"
	"skillfit/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [profile-file] [parsed-job-file]",
	Short: "Score a career profile against a parsed job description",
	Long: `Score a career profile against a parsed job description. The command
takes two arguments: the path to the profile JSON and the path to a parsed
job description JSON (as produced by the parse command).

Each requirement is classified as FULL, PARTIAL, or GAP with supporting
evidence from the profile, and an overall score weights required skills at
70% and preferred skills at 30%.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

// matchInput pairs the two documents the coverage engine needs.
type matchInput struct {
	career types.CareerData
	job    types.ParsedJobDescription
}

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func decodeMatchInput(contents []string) (matchInput, error) {
	if len(contents) != 2 {
		return matchInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
	}
	var input matchInput
	if err := json.Unmarshal([]byte(contents[0]), &input.career); err != nil {
		return matchInput{}, fmt.Errorf("invalid profile JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(contents[1]), &input.job); err != nil {
		return matchInput{}, fmt.Errorf("invalid parsed job JSON: %w", err)
	}
	return input, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	engine := matching.NewEngine(taxonomy.Default())

	logDetails := func(input matchInput, cfg common.CommandConfig) {
		logger.Info("Starting coverage matching",
			"profile_skills", len(input.career.Skills),
			"required_skills", len(input.job.RequiredSkills),
			"preferred_skills", len(input.job.PreferredSkills),
			"output_format", cfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input matchInput) (types.CoverageMap, error) {
		return engine.GenerateCoverageMap(input.career, input.job), nil
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		decodeMatchInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate coverage map: %w", err)
	}
	logger.Info("Coverage matching completed successfully")
	return nil
}
