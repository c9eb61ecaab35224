package workflow

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/diagram"
	"github.com/floww-ai/backend/internal/pkg/extract"
	"github.com/floww-ai/backend/internal/pkg/formatter"
	"github.com/floww-ai/backend/internal/pkg/prompt"
	"github.com/floww-ai/backend/internal/pkg/schema"
	"github.com/floww-ai/backend/internal/session"
)

// DiagramMode selects between the deterministic linear chain and the
// phase-grouped variant that costs a second model round trip.
type DiagramMode string

const (
	DiagramModeLinear DiagramMode = "linear"
	DiagramModePhases DiagramMode = "phases"
)

// Usecase implements workflow generation, re-validation of user edits, and
// the derived views.
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

// Generate runs the full pipeline for one generation request: prompt,
// completion, extraction, validation. On success the session's workflow is
// replaced wholesale; on any failure the previous valid model stays.
func (uc *Usecase) Generate(ctx context.Context, sessionID string, req *entity.GenerateWorkflowRequest) (*entity.Workflow, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	params := entity.DealParams{
		Industry:   req.Industry,
		ClientType: req.ClientType,
		DealAmount: req.DealAmount,
		Company:    req.Company,
		Persona:    req.Persona,
	}

	ctxzap.Info(ctx, "generating workflow",
		zap.String("industry", string(params.Industry)),
		zap.String("client_type", string(params.ClientType)),
		zap.String("deal_size", string(params.Bucket())),
	)

	raw, err := uc.llm.Complete(ctx, prompt.Workflow(params))
	if err != nil {
		return nil, err
	}
	sess.RecordRawResponse(raw)

	model, err := decodeWorkflowResponse(raw)
	if err != nil {
		return nil, err
	}

	sess.ReplaceWorkflow(model)
	ctxzap.Info(ctx, "workflow generated", zap.Int("stage_count", len(model.Stages)))

	return model, nil
}

// Get returns the session's current workflow model.
func (uc *Usecase) Get(ctx context.Context, sessionID string) (*entity.Workflow, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Workflow()
}

// ApplyEdit re-validates a user-edited payload. Success replaces the model;
// failure leaves the previous valid model untouched and returns the error
// with the edit text still attached for the user to fix.
func (uc *Usecase) ApplyEdit(ctx context.Context, sessionID, payload string) (*entity.Workflow, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	model, err := decodeWorkflowResponse(payload)
	if err != nil {
		ctxzap.Warn(ctx, "workflow edit rejected", zap.Error(err))
		return nil, err
	}

	sess.ReplaceWorkflow(model)
	ctxzap.Info(ctx, "workflow edit applied", zap.Int("stage_count", len(model.Stages)))

	return model, nil
}

// Diagram produces a mermaid diagram description of the current workflow.
// The phases mode performs a second round trip whose output carries no
// schema guarantee; an unusable response falls back to the linear chain.
func (uc *Usecase) Diagram(ctx context.Context, sessionID string, mode DiagramMode) (*entity.DiagramDTO, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	model, err := sess.Workflow()
	if err != nil {
		return nil, err
	}

	if mode != DiagramModePhases {
		return &entity.DiagramDTO{Mode: string(DiagramModeLinear), Mermaid: diagram.LinearChain(model)}, nil
	}

	raw, err := uc.llm.Complete(ctx, prompt.Diagram(model))
	if err != nil {
		return nil, err
	}

	text := extract.StripFence(raw)
	if !diagram.Usable(text) {
		ctxzap.Warn(ctx, "phase diagram response unusable, falling back to linear chain",
			zap.Int("response_length", len(raw)),
		)
		return &entity.DiagramDTO{Mode: string(DiagramModeLinear), Mermaid: diagram.LinearChain(model)}, nil
	}

	return &entity.DiagramDTO{Mode: string(DiagramModePhases), Mermaid: text}, nil
}

// Export renders the current workflow in the requested format.
func (uc *Usecase) Export(ctx context.Context, sessionID string, format entity.ExportFormat) ([]byte, formatter.Formatter, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	model, err := sess.Workflow()
	if err != nil {
		return nil, nil, err
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", entity.ErrInvalidParameter, err)
	}

	data, err := f.FormatWorkflow(model)
	if err != nil {
		return nil, nil, fmt.Errorf("format workflow as %s: %w", format, err)
	}

	ctxzap.Info(ctx, "workflow exported",
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)
	return data, f, nil
}

// LastRawResponse exposes the raw model text of the latest generation so
// extraction failures can be inspected manually.
func (uc *Usecase) LastRawResponse(sessionID string) (string, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}
	return sess.LastRawResponse(), nil
}

// decodeWorkflowResponse is the two-phase parse contract: locate the
// payload region, then validate it. The two failure modes stay distinct
// error kinds.
func decodeWorkflowResponse(raw string) (*entity.Workflow, error) {
	payload, err := extract.JSONObject(raw)
	if err != nil {
		return nil, err
	}
	return schema.DecodeWorkflow(payload)
}
