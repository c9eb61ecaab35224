package playbook

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/prompt"
)

// LLMConnector is the generative service boundary.
type LLMConnector interface {
	Complete(ctx context.Context, req entity.CompletionRequest) (string, error)
}

// EnrichmentConnector is the optional company-lookup provider. Nil when the
// feature is not configured.
type EnrichmentConnector interface {
	Lookup(ctx context.Context, query string) (*entity.CompanyProfile, error)
}

// Usecase implements the bulk playbook operations: one provider call per
// lead row, issued sequentially in row order.
type Usecase struct {
	llm        LLMConnector
	enrichment EnrichmentConnector
	logger     *zap.Logger
}

func NewUsecase(
	llm LLMConnector,
	enrichment EnrichmentConnector,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		llm:        llm,
		enrichment: enrichment,
		logger:     logger,
	}
}

// EnrichLeads folds over the input rows producing a result-or-error per
// row. A failed row captures its error and never aborts the rest of the
// batch; the output always has one entry per input row, in input order.
func (uc *Usecase) EnrichLeads(ctx context.Context, leads []entity.Lead) []entity.LeadSuggestion {
	results := make([]entity.LeadSuggestion, 0, len(leads))

	for i, lead := range leads {
		suggestion, err := uc.llm.Complete(ctx, prompt.LeadSuggestion(lead))
		if err != nil {
			ctxzap.Warn(ctx, "lead suggestion failed",
				zap.Int("row", i),
				zap.String("company", lead.Company),
				zap.Error(err),
			)
			results = append(results, entity.LeadSuggestion{Lead: lead, Error: err.Error()})
			continue
		}
		results = append(results, entity.LeadSuggestion{Lead: lead, Suggestion: suggestion})
	}

	ctxzap.Info(ctx, "lead batch processed",
		zap.Int("total", len(leads)),
		zap.Int("failed", countFailed(results)),
	)
	return results
}

// LookupCompany resolves a company profile through the enrichment provider.
func (uc *Usecase) LookupCompany(ctx context.Context, query string) (*entity.CompanyProfile, error) {
	if uc.enrichment == nil {
		return nil, entity.ErrEnrichmentDisabled
	}
	return uc.enrichment.Lookup(ctx, query)
}

func countFailed(results []entity.LeadSuggestion) int {
	n := 0
	for _, r := range results {
		if r.Error != "" {
			n++
		}
	}
	return n
}
