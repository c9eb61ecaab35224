package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/formatter"
	"github.com/floww-ai/backend/internal/pkg/validator"
	"github.com/floww-ai/backend/internal/session"
	proposaluc "github.com/floww-ai/backend/internal/usecase/proposal"
	workflowuc "github.com/floww-ai/backend/internal/usecase/workflow"
)

type stubLLM struct {
	response string
}

func (s *stubLLM) Complete(_ context.Context, _ entity.CompletionRequest) (string, error) {
	return s.response, nil
}

const workflowResponse = `{"workflow": [
	{"stage": "Discovery", "tip": "Ask open questions"},
	{"stage": "Closing", "tip": "Create urgency"}
]}`

func newTestRouter(llm *stubLLM) (chi.Router, *session.Store) {
	store := session.NewStore(time.Minute)
	formatters := formatter.NewFactory()
	logger := zap.NewNop()

	workflowUC := workflowuc.NewUsecase(store, llm, formatters, logger)
	proposalUC := proposaluc.NewUsecase(store, llm, formatters, logger)
	handler := NewHandler(store, workflowUC, proposalUC, validator.NewValidator())

	r := chi.NewRouter()
	RegisterRoutes(r, handler)
	return r, store
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestSessionLifecycle(t *testing.T) {
	router, _ := newTestRouter(&stubLLM{response: workflowResponse})

	rec := doJSON(t, router, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]string
	decodeBody(t, rec, &created)
	id := created["session_id"]
	require.NotEmpty(t, id)

	rec = doJSON(t, router, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary map[string]any
	decodeBody(t, rec, &summary)
	assert.Equal(t, false, summary["has_workflow"])

	rec = doJSON(t, router, http.MethodDelete, "/sessions/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateWorkflowEndpoint(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodPost, "/sessions/"+sess.ID+"/workflow", entity.GenerateWorkflowRequest{
		Industry:   entity.IndustryFintech,
		ClientType: entity.ClientTypeEnterprise,
		DealAmount: 750_000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var dto entity.WorkflowDTO
	decodeBody(t, rec, &dto)
	require.Len(t, dto.Stages, 2)
	assert.Equal(t, "Discovery", dto.Stages[0].Name)
	assert.NotEmpty(t, dto.Payload)
}

func TestGenerateWorkflowRejectsBadParams(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodPost, "/sessions/"+sess.ID+"/workflow", entity.GenerateWorkflowRequest{
		Industry:   "Mining",
		ClientType: entity.ClientTypeSMB,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractionFailureReturnsRawText(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: "I cannot help with that."})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodPost, "/sessions/"+sess.ID+"/workflow", entity.GenerateWorkflowRequest{
		Industry:   entity.IndustrySaaS,
		ClientType: entity.ClientTypeSMB,
		DealAmount: 10_000,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "I cannot help with that.", body["raw_text"])

	// The raw endpoint returns the same text for manual inspection.
	rec = doJSON(t, router, http.MethodGet, "/sessions/"+sess.ID+"/raw", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	assert.Equal(t, "I cannot help with that.", body["raw_text"])
}

func TestEditWorkflowSchemaFailure(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodPut, "/sessions/"+sess.ID+"/workflow", entity.EditPayloadRequest{
		Payload: `{"workflow": []}`,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "workflow", body["field"])
	assert.NotEmpty(t, body["payload"])
}

func TestUnknownSessionIs404(t *testing.T) {
	router, _ := newTestRouter(&stubLLM{response: workflowResponse})

	rec := doJSON(t, router, http.MethodGet, "/sessions/ffffffff-0000-0000-0000-000000000000/workflow", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportWorkflowEndpoint(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodPost, "/sessions/"+sess.ID+"/workflow", entity.GenerateWorkflowRequest{
		Industry:   entity.IndustrySaaS,
		ClientType: entity.ClientTypeSMB,
		DealAmount: 10_000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/sessions/"+sess.ID+"/workflow/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "deal_workflow.csv")
	assert.Contains(t, rec.Body.String(), "Discovery")
}

func TestExportUnknownFormat(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodGet, "/sessions/"+sess.ID+"/workflow/export?format=rtf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiagramEndpointUnknownMode(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodGet, "/sessions/"+sess.ID+"/workflow/diagram?mode=spiral", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodGet,
		"/sessions/"+sess.ID+"/proposal/metrics?upfront=20000&annual_benefit=10000&discount_rate=0.1&years=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dto entity.MetricsDTO
	decodeBody(t, rec, &dto)
	assert.InDelta(t, 4868.52, dto.NPV, 0.01)
	assert.Equal(t, 2.0, dto.PaybackYears)
}

func TestPricingRowNotFound(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodDelete, "/sessions/"+sess.ID+"/pricing/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddPricingRowEndpoint(t *testing.T) {
	router, store := newTestRouter(&stubLLM{response: workflowResponse})
	sess := store.Create()

	rec := doJSON(t, router, http.MethodPost, "/sessions/"+sess.ID+"/pricing", entity.PricingRowRequest{
		Item: "Training", Qty: 2, Unit: "day", Price: 800,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var dto entity.PricingTableDTO
	decodeBody(t, rec, &dto)
	require.Len(t, dto.Rows, 1)
	assert.Equal(t, 1600.0, dto.Rows[0].Subtotal)
	assert.Equal(t, 1600.0, dto.Total)
}
