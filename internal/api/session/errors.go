package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/response"
)

// handleUsecaseError converts pipeline failures into user-visible responses
// carrying the diagnostic payload. Nothing here terminates the session; the
// previous valid model, if any, is still in place.
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var extErr *entity.ExtractionError
	var schErr *entity.SchemaError
	var provErr *entity.ProviderError

	switch {
	case errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrNoWorkflow),
		errors.Is(err, entity.ErrNoProposal),
		errors.Is(err, entity.ErrRowNotFound):
		h.respondError(ctx, w, http.StatusNotFound, err.Error(), err)

	case errors.As(err, &extErr):
		// Surface the raw text verbatim for manual inspection.
		ctxzap.Warn(ctx, "extraction failure", zap.Int("raw_length", len(extErr.RawText)))
		response.JSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":    extErr.Error(),
			"raw_text": extErr.RawText,
		})

	case errors.As(err, &schErr):
		ctxzap.Warn(ctx, "schema validation failure",
			zap.String("field", schErr.Field),
			zap.String("reason", schErr.Reason),
		)
		response.JSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   schErr.Error(),
			"field":   schErr.Field,
			"payload": schErr.Payload,
		})

	case errors.As(err, &provErr):
		h.respondError(ctx, w, http.StatusBadGateway, provErr.Error(), err)

	case errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)

	case errors.Is(err, entity.ErrEnrichmentDisabled):
		h.respondError(ctx, w, http.StatusNotImplemented, err.Error(), err)

	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal error", err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) respondBadBody(ctx context.Context, w http.ResponseWriter, err error) {
	h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
}
