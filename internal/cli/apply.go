package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"skillfit/internal/common"
	"skillfit/internal/gaps"
	"skillfit/internal/types"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply [profile-file] [responses-file]",
	Short: "Apply gap question answers to a career profile",
	Long: `Apply answers to gap questions back into a career profile. Responses
that confirm experience add the corresponding skill to the profile;
responses without experience, or with blank answers, are skipped. Skills
already on the profile are never overwritten, so re-applying the same
responses is safe.

The updated profile is written as JSON.`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

var applyConfig common.CommandConfig

// applyInput pairs a profile with the responses to fold into it.
type applyInput struct {
	career    types.CareerData
	responses []types.GapQuestionResponse
}

func init() {
	applyCmd.Flags().StringVarP(&applyConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	// The updated profile is itself an input document, so only JSON makes sense
	applyConfig.OutputFormat = "json"
}

func decodeApplyInput(contents []string) (applyInput, error) {
	if len(contents) != 2 {
		return applyInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
	}
	var input applyInput
	if err := json.Unmarshal([]byte(contents[0]), &input.career); err != nil {
		return applyInput{}, fmt.Errorf("invalid profile JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(contents[1]), &input.responses); err != nil {
		return applyInput{}, fmt.Errorf("invalid responses JSON: %w", err)
	}
	return input, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	logDetails := func(input applyInput, cfg common.CommandConfig) {
		logger.Info("Applying gap question responses",
			"profile_skills", len(input.career.Skills),
			"responses", len(input.responses))
	}

	applyOperation := func(ctx context.Context, input applyInput) (types.CareerData, error) {
		return gaps.ApplyResponses(input.career, input.responses), nil
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		applyConfig,
		args,
		decodeApplyInput,
		applyOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to apply responses: %w", err)
	}
	logger.Info("Responses applied successfully")
	return nil
}
