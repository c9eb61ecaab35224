package workflow

import (
	"context"

	"github.com/floww-ai/backend/internal/entity"
)

// LLMConnector is the generative service boundary: prompt in, raw text out,
// *entity.ProviderError on failure.
type LLMConnector interface {
	Complete(ctx context.Context, req entity.CompletionRequest) (string, error)
}
