package proposal

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/extract"
	"github.com/floww-ai/backend/internal/pkg/finance"
	"github.com/floww-ai/backend/internal/pkg/formatter"
	"github.com/floww-ai/backend/internal/pkg/prompt"
	"github.com/floww-ai/backend/internal/pkg/schema"
	"github.com/floww-ai/backend/internal/session"
)

// LLMConnector is the generative service boundary.
type LLMConnector interface {
	Complete(ctx context.Context, req entity.CompletionRequest) (string, error)
}

// Usecase implements proposal generation, pricing table edits and the
// derived ROI metrics.
type Usecase struct {
	sessions   *session.Store
	llm        LLMConnector
	formatters *formatter.Factory
	logger     *zap.Logger
}

func NewUsecase(
	sessions *session.Store,
	llm LLMConnector,
	formatters *formatter.Factory,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		sessions:   sessions,
		llm:        llm,
		formatters: formatters,
		logger:     logger,
	}
}

// Generate runs the proposal pipeline. The session's workflow, when one
// exists, informs the prompt; the proposal is validated independently.
func (uc *Usecase) Generate(ctx context.Context, sessionID string, req *entity.GenerateProposalRequest) (*entity.Proposal, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	workflowModel, err := sess.Workflow()
	if err != nil {
		workflowModel = nil // proposal generation works without a workflow
	}

	ctxzap.Info(ctx, "generating proposal",
		zap.String("industry", string(req.Industry)),
		zap.Bool("workflow_informed", workflowModel != nil),
	)

	raw, err := uc.llm.Complete(ctx, prompt.Proposal(*req, workflowModel))
	if err != nil {
		return nil, err
	}
	sess.RecordRawResponse(raw)

	model, err := decodeProposalResponse(raw)
	if err != nil {
		return nil, err
	}

	sess.ReplaceProposal(model)
	ctxzap.Info(ctx, "proposal generated",
		zap.Int("deliverable_count", len(model.Deliverables)),
		zap.Int("pricing_rows", len(model.Pricing)),
	)

	return model, nil
}

// Get returns the session's current proposal model.
func (uc *Usecase) Get(ctx context.Context, sessionID string) (*entity.Proposal, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Proposal()
}

// ApplyEdit re-validates a user-edited proposal payload. Failure preserves
// the previous valid model.
func (uc *Usecase) ApplyEdit(ctx context.Context, sessionID, payload string) (*entity.Proposal, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	model, err := decodeProposalResponse(payload)
	if err != nil {
		ctxzap.Warn(ctx, "proposal edit rejected", zap.Error(err))
		return nil, err
	}

	sess.ReplaceProposal(model)
	ctxzap.Info(ctx, "proposal edit applied")

	return model, nil
}

// Export renders the current proposal in the requested format.
func (uc *Usecase) Export(ctx context.Context, sessionID string, format entity.ExportFormat) ([]byte, formatter.Formatter, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	model, err := sess.Proposal()
	if err != nil {
		return nil, nil, err
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", entity.ErrInvalidParameter, err)
	}

	data, err := f.FormatProposal(model)
	if err != nil {
		return nil, nil, fmt.Errorf("format proposal as %s: %w", format, err)
	}

	ctxzap.Info(ctx, "proposal exported",
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)
	return data, f, nil
}

// Pricing returns the session pricing table with derived totals.
func (uc *Usecase) Pricing(ctx context.Context, sessionID string) (*entity.PricingTableDTO, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return pricingDTO(sess), nil
}

// AddPricingRow appends a row and returns the recomputed table.
func (uc *Usecase) AddPricingRow(ctx context.Context, sessionID string, req *entity.PricingRowRequest) (*entity.PricingTableDTO, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	err = sess.EditPricing(func(t *entity.PricingTable) error {
		return t.Add(rowFromRequest(req))
	})
	if err != nil {
		return nil, err
	}
	return pricingDTO(sess), nil
}

// UpdatePricingRow replaces the row at index and returns the recomputed
// table.
func (uc *Usecase) UpdatePricingRow(ctx context.Context, sessionID string, index int, req *entity.PricingRowRequest) (*entity.PricingTableDTO, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	err = sess.EditPricing(func(t *entity.PricingTable) error {
		return t.Update(index, rowFromRequest(req))
	})
	if err != nil {
		return nil, err
	}
	return pricingDTO(sess), nil
}

// RemovePricingRow deletes the row at index and returns the recomputed
// table.
func (uc *Usecase) RemovePricingRow(ctx context.Context, sessionID string, index int) (*entity.PricingTableDTO, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	err = sess.EditPricing(func(t *entity.PricingTable) error {
		return t.Remove(index)
	})
	if err != nil {
		return nil, err
	}
	return pricingDTO(sess), nil
}

// Metrics computes NPV and payback for the session. The upfront cost
// defaults to the pricing table's grand total when the caller passes zero.
func (uc *Usecase) Metrics(ctx context.Context, sessionID string, upfront, annualBenefit, discountRate float64, years int) (*entity.MetricsDTO, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if upfront == 0 {
		_, total := sess.PricingSnapshot()
		upfront = total
	}
	if years <= 0 {
		return nil, fmt.Errorf("%w: years must be positive", entity.ErrInvalidParameter)
	}
	if discountRate < 0 {
		return nil, fmt.Errorf("%w: discount_rate must not be negative", entity.ErrInvalidParameter)
	}

	return &entity.MetricsDTO{
		UpfrontCost:   upfront,
		AnnualBenefit: annualBenefit,
		DiscountRate:  discountRate,
		Years:         years,
		NPV:           finance.NPV(upfront, annualBenefit, discountRate, years),
		PaybackYears:  finance.PaybackYears(upfront, annualBenefit),
	}, nil
}

func rowFromRequest(req *entity.PricingRowRequest) entity.PricingLineItem {
	return entity.PricingLineItem{
		Item:  req.Item,
		Qty:   req.Qty,
		Unit:  req.Unit,
		Price: req.Price,
	}
}

func pricingDTO(sess *session.Session) *entity.PricingTableDTO {
	rows, total := sess.PricingSnapshot()
	dto := &entity.PricingTableDTO{
		Rows:  make([]entity.PricingRowDTO, 0, len(rows)),
		Total: total,
	}
	for _, li := range rows {
		dto.Rows = append(dto.Rows, entity.PricingRowDTO{
			Item:     li.Item,
			Qty:      li.Qty,
			Unit:     li.Unit,
			Price:    li.Price,
			Subtotal: li.Subtotal(),
		})
	}
	return dto
}

func decodeProposalResponse(raw string) (*entity.Proposal, error) {
	payload, err := extract.JSONObject(raw)
	if err != nil {
		return nil, err
	}
	return schema.DecodeProposal(payload)
}
