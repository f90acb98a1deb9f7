package ai

import (
	"context"

	"skillfit/internal/types"
)

// AIProvider is the contract for assisted extraction backends. All
// methods return token usage; callers can ignore it if not needed.
type AIProvider interface {
	ExtractJobPosting(ctx context.Context, rawText string) (types.JobExtraction, *TokenUsage, error)
	DraftGapQuestion(ctx context.Context, input types.GapQuestionInput) (types.GapQuestionDraft, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
