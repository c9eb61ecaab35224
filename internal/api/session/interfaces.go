package session

import (
	"context"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/formatter"
	"github.com/floww-ai/backend/internal/usecase/workflow"
)

// WorkflowUsecase is the workflow pipeline as seen by the API layer.
type WorkflowUsecase interface {
	Generate(ctx context.Context, sessionID string, req *entity.GenerateWorkflowRequest) (*entity.Workflow, error)
	Get(ctx context.Context, sessionID string) (*entity.Workflow, error)
	ApplyEdit(ctx context.Context, sessionID, payload string) (*entity.Workflow, error)
	Diagram(ctx context.Context, sessionID string, mode workflow.DiagramMode) (*entity.DiagramDTO, error)
	Export(ctx context.Context, sessionID string, format entity.ExportFormat) ([]byte, formatter.Formatter, error)
	LastRawResponse(sessionID string) (string, error)
}

// ProposalUsecase is the proposal pipeline as seen by the API layer.
type ProposalUsecase interface {
	Generate(ctx context.Context, sessionID string, req *entity.GenerateProposalRequest) (*entity.Proposal, error)
	Get(ctx context.Context, sessionID string) (*entity.Proposal, error)
	ApplyEdit(ctx context.Context, sessionID, payload string) (*entity.Proposal, error)
	Export(ctx context.Context, sessionID string, format entity.ExportFormat) ([]byte, formatter.Formatter, error)
	Pricing(ctx context.Context, sessionID string) (*entity.PricingTableDTO, error)
	AddPricingRow(ctx context.Context, sessionID string, req *entity.PricingRowRequest) (*entity.PricingTableDTO, error)
	UpdatePricingRow(ctx context.Context, sessionID string, index int, req *entity.PricingRowRequest) (*entity.PricingTableDTO, error)
	RemovePricingRow(ctx context.Context, sessionID string, index int) (*entity.PricingTableDTO, error)
	Metrics(ctx context.Context, sessionID string, upfront, annualBenefit, discountRate float64, years int) (*entity.MetricsDTO, error)
}
