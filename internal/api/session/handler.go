package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/logger"
	"github.com/floww-ai/backend/internal/pkg/response"
	"github.com/floww-ai/backend/internal/pkg/validator"
	"github.com/floww-ai/backend/internal/session"
	"github.com/floww-ai/backend/internal/usecase/workflow"
)

type Handler struct {
	sessions   *session.Store
	workflowUC WorkflowUsecase
	proposalUC ProposalUsecase
	validator  *validator.Validator
}

func NewHandler(
	sessions *session.Store,
	workflowUC WorkflowUsecase,
	proposalUC ProposalUsecase,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		sessions:   sessions,
		workflowUC: workflowUC,
		proposalUC: proposalUC,
		validator:  validator,
	}
}

// CreateSession handles POST /sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	sess := h.sessions.Create()
	ctxzap.Info(ctx, "session created", zap.String("session_id", sess.ID))

	response.Created(w, map[string]string{"session_id": sess.ID})
}

// GetSession handles GET /sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GetSession")

	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(sess))
}

// DeleteSession handles DELETE /sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "DeleteSession")

	h.sessions.Delete(sessionID)
	ctxzap.Info(ctx, "session deleted")

	response.NoContent(w)
}

// GenerateWorkflow handles POST /sessions/{id}/workflow
func (h *Handler) GenerateWorkflow(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GenerateWorkflow")

	var req entity.GenerateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadBody(ctx, w, err)
		return
	}
	if err := h.validator.ValidateGenerateWorkflow(&req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	model, err := h.workflowUC.Generate(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toWorkflowDTO(model))
}

// GetWorkflow handles GET /sessions/{id}/workflow
func (h *Handler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GetWorkflow")

	model, err := h.workflowUC.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toWorkflowDTO(model))
}

// EditWorkflow handles PUT /sessions/{id}/workflow, re-validation of a
// user-edited payload. A rejected edit returns the diagnostic, and the edit
// text stays in the error body rather than being discarded.
func (h *Handler) EditWorkflow(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "EditWorkflow")

	var req entity.EditPayloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadBody(ctx, w, err)
		return
	}
	if err := h.validator.ValidateEditPayload(&req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	model, err := h.workflowUC.ApplyEdit(ctx, sessionID, req.Payload)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toWorkflowDTO(model))
}

// GetDiagram handles GET /sessions/{id}/workflow/diagram
func (h *Handler) GetDiagram(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GetDiagram")

	mode := workflow.DiagramMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = workflow.DiagramModeLinear
	}
	if mode != workflow.DiagramModeLinear && mode != workflow.DiagramModePhases {
		h.respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("unknown diagram mode '%s'", mode), nil)
		return
	}

	dto, err := h.workflowUC.Diagram(ctx, sessionID, mode)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// ExportWorkflow handles GET /sessions/{id}/workflow/export
func (h *Handler) ExportWorkflow(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "ExportWorkflow")

	format, err := entity.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	data, f, err := h.workflowUC.Export(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Attachment(w, "deal_workflow"+f.FileExtension(), f.ContentType(), data)
}

// GetRawResponse handles GET /sessions/{id}/raw, the raw model text of the
// latest generation, for manual inspection after an extraction failure.
func (h *Handler) GetRawResponse(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GetRawResponse")

	raw, err := h.workflowUC.LastRawResponse(sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]string{"raw_text": raw})
}

// GenerateProposal handles POST /sessions/{id}/proposal
func (h *Handler) GenerateProposal(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GenerateProposal")

	var req entity.GenerateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadBody(ctx, w, err)
		return
	}
	if err := h.validator.ValidateGenerateProposal(&req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	model, err := h.proposalUC.Generate(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toProposalDTO(model))
}

// GetProposal handles GET /sessions/{id}/proposal
func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GetProposal")

	model, err := h.proposalUC.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toProposalDTO(model))
}

// EditProposal handles PUT /sessions/{id}/proposal
func (h *Handler) EditProposal(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "EditProposal")

	var req entity.EditPayloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadBody(ctx, w, err)
		return
	}
	if err := h.validator.ValidateEditPayload(&req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	model, err := h.proposalUC.ApplyEdit(ctx, sessionID, req.Payload)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toProposalDTO(model))
}

// ExportProposal handles GET /sessions/{id}/proposal/export
func (h *Handler) ExportProposal(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "ExportProposal")

	format, err := entity.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	data, f, err := h.proposalUC.Export(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Attachment(w, "proposal"+f.FileExtension(), f.ContentType(), data)
}

// GetMetrics handles GET /sessions/{id}/proposal/metrics
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GetMetrics")

	query := r.URL.Query()
	upfront := queryFloat(query.Get("upfront"), 0)
	benefit := queryFloat(query.Get("annual_benefit"), 0)
	rate := queryFloat(query.Get("discount_rate"), 0.1)
	years := int(queryFloat(query.Get("years"), 3))

	dto, err := h.proposalUC.Metrics(ctx, sessionID, upfront, benefit, rate, years)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// GetPricing handles GET /sessions/{id}/pricing
func (h *Handler) GetPricing(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "GetPricing")

	dto, err := h.proposalUC.Pricing(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// AddPricingRow handles POST /sessions/{id}/pricing
func (h *Handler) AddPricingRow(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "AddPricingRow")

	var req entity.PricingRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadBody(ctx, w, err)
		return
	}
	if err := h.validator.ValidatePricingRow(&req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	dto, err := h.proposalUC.AddPricingRow(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// UpdatePricingRow handles PUT /sessions/{id}/pricing/{index}
func (h *Handler) UpdatePricingRow(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "UpdatePricingRow")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "row index must be an integer", err)
		return
	}

	var req entity.PricingRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadBody(ctx, w, err)
		return
	}
	if err := h.validator.ValidatePricingRow(&req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	dto, err := h.proposalUC.UpdatePricingRow(ctx, sessionID, index, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

// RemovePricingRow handles DELETE /sessions/{id}/pricing/{index}
func (h *Handler) RemovePricingRow(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.requestContext(r, "RemovePricingRow")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "row index must be an integer", err)
		return
	}

	dto, err := h.proposalUC.RemovePricingRow(ctx, sessionID, index)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, dto)
}

func (h *Handler) requestContext(r *http.Request, action string) (context.Context, string) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", action),
	)
	return ctx, sessionID
}

func queryFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
