package playbook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/logger"
	"github.com/floww-ai/backend/internal/pkg/response"
	"github.com/floww-ai/backend/internal/pkg/validator"
)

// PlaybookUsecase is the bulk playbook pipeline as seen by the API layer.
type PlaybookUsecase interface {
	EnrichLeads(ctx context.Context, leads []entity.Lead) []entity.LeadSuggestion
	LookupCompany(ctx context.Context, query string) (*entity.CompanyProfile, error)
}

type Handler struct {
	usecase   PlaybookUsecase
	validator *validator.Validator
}

func NewHandler(usecase PlaybookUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// EnrichLeads handles POST /playbooks/enrich. Each row gets a result or a
// captured error; the response always has one entry per input row.
func (h *Handler) EnrichLeads(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "EnrichLeads")

	var req entity.EnrichLeadsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validator.ValidateEnrichLeads(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctxzap.Info(ctx, "enriching leads", zap.Int("row_count", len(req.Leads)))

	results := h.usecase.EnrichLeads(ctx, req.Leads)
	response.Success(w, map[string]any{"results": results})
}

// LookupCompany handles POST /company/lookup.
func (h *Handler) LookupCompany(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "LookupCompany")

	var req entity.CompanyLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validator.ValidateCompanyLookup(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	profile, err := h.usecase.LookupCompany(ctx, req.Query)
	if err != nil {
		if errors.Is(err, entity.ErrEnrichmentDisabled) {
			h.respondError(ctx, w, http.StatusNotImplemented, err.Error(), err)
			return
		}
		h.respondError(ctx, w, http.StatusBadGateway, err.Error(), err)
		return
	}

	response.Success(w, profile)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}
