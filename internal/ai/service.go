package ai

import (
	"context"
	"fmt"

	"skillfit/internal/config"
	"skillfit/internal/errors"
	"skillfit/internal/types"
)

// Service wraps a provider for one operation and adapts it to the
// parser and gap-generator interfaces, which do not care about token
// accounting. Usage is logged here instead.
type Service struct {
	Provider AIProvider // exported for access from the server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates an AI service for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// ExtractJobPosting satisfies the parser's extractor dependency
func (s *Service) ExtractJobPosting(ctx context.Context, rawText string) (types.JobExtraction, error) {
	extraction, usage, err := s.Provider.ExtractJobPosting(ctx, rawText)
	if err != nil {
		return types.JobExtraction{}, err
	}
	s.logTokenUsage("extract_job", usage)
	return extraction, nil
}

// DraftGapQuestion satisfies the gap generator's drafter dependency
func (s *Service) DraftGapQuestion(ctx context.Context, input types.GapQuestionInput) (types.GapQuestionDraft, error) {
	draft, usage, err := s.Provider.DraftGapQuestion(ctx, input)
	if err != nil {
		return types.GapQuestionDraft{}, err
	}
	s.logTokenUsage("draft_gap_question", usage)
	return draft, nil
}

// GetModelInfo returns model information for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

func (s *Service) logTokenUsage(operation string, usage *TokenUsage) {
	if usage == nil {
		return
	}
	s.logger.Debug("AI token usage",
		"operation", operation,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
		"total_tokens", usage.TotalTokens)
}
