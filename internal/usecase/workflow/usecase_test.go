package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/pkg/formatter"
	"github.com/floww-ai/backend/internal/session"
)

type stubLLM struct {
	response string
	err      error
	calls    []entity.CompletionRequest
}

func (s *stubLLM) Complete(_ context.Context, req entity.CompletionRequest) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const workflowResponse = `Here you go:
{"workflow": [
	{"stage": "Discovery", "tip": "Ask open questions"},
	{"stage": "Demo", "tip": "Tailor to the champion"}
]}`

func newTestUsecase(llm *stubLLM) (*Usecase, *session.Store) {
	store := session.NewStore(time.Minute)
	uc := NewUsecase(store, llm, formatter.NewFactory(), zap.NewNop())
	return uc, store
}

func generateRequest() *entity.GenerateWorkflowRequest {
	return &entity.GenerateWorkflowRequest{
		Industry:   entity.IndustryFintech,
		ClientType: entity.ClientTypeEnterprise,
		DealAmount: 750_000,
	}
}

func TestGenerate(t *testing.T) {
	llm := &stubLLM{response: workflowResponse}
	uc, store := newTestUsecase(llm)
	sess := store.Create()

	model, err := uc.Generate(context.Background(), sess.ID, generateRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"Discovery", "Demo"}, model.StageNames())
	require.Len(t, llm.calls, 1)
	assert.Contains(t, llm.calls[0].Content, "Deal Size: 500K-1M")

	stored, err := sess.Workflow()
	require.NoError(t, err)
	assert.Same(t, model, stored)
}

func TestGenerateUnknownSession(t *testing.T) {
	uc, _ := newTestUsecase(&stubLLM{response: workflowResponse})

	_, err := uc.Generate(context.Background(), "missing", generateRequest())
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestGenerateExtractionFailureKeepsRawText(t *testing.T) {
	llm := &stubLLM{response: "I am unable to help with that."}
	uc, store := newTestUsecase(llm)
	sess := store.Create()

	_, err := uc.Generate(context.Background(), sess.ID, generateRequest())

	var extErr *entity.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "I am unable to help with that.", extErr.RawText)

	// The raw text is recorded even though decoding failed.
	raw, err := uc.LastRawResponse(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "I am unable to help with that.", raw)

	_, err = sess.Workflow()
	assert.ErrorIs(t, err, entity.ErrNoWorkflow)
}

func TestGenerateProviderFailure(t *testing.T) {
	provErr := &entity.ProviderError{Err: errors.New("upstream timeout")}
	uc, store := newTestUsecase(&stubLLM{err: provErr})
	sess := store.Create()

	_, err := uc.Generate(context.Background(), sess.ID, generateRequest())

	var got *entity.ProviderError
	assert.ErrorAs(t, err, &got)
}

func TestApplyEdit(t *testing.T) {
	uc, store := newTestUsecase(&stubLLM{response: workflowResponse})
	sess := store.Create()

	model, err := uc.ApplyEdit(context.Background(), sess.ID, `{"workflow": [{"stage": "Kickoff"}]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kickoff"}, model.StageNames())
}

func TestApplyEditFailurePreservesPreviousModel(t *testing.T) {
	uc, store := newTestUsecase(&stubLLM{response: workflowResponse})
	sess := store.Create()

	_, err := uc.Generate(context.Background(), sess.ID, generateRequest())
	require.NoError(t, err)

	_, err = uc.ApplyEdit(context.Background(), sess.ID, `{"workflow": []}`)

	var schErr *entity.SchemaError
	require.ErrorAs(t, err, &schErr)

	current, err := uc.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Discovery", "Demo"}, current.StageNames(), "a rejected edit never clobbers the valid model")
}

func TestDiagramLinear(t *testing.T) {
	llm := &stubLLM{response: workflowResponse}
	uc, store := newTestUsecase(llm)
	sess := store.Create()

	_, err := uc.Generate(context.Background(), sess.ID, generateRequest())
	require.NoError(t, err)

	dto, err := uc.Diagram(context.Background(), sess.ID, DiagramModeLinear)
	require.NoError(t, err)

	assert.Equal(t, "linear", dto.Mode)
	assert.Contains(t, dto.Mermaid, "graph TD")
	assert.Len(t, llm.calls, 1, "the linear chain is derived locally, no second round trip")
}

func TestDiagramPhases(t *testing.T) {
	uc, store := newTestUsecase(&stubLLM{response: workflowResponse})
	sess := store.Create()

	_, err := uc.Generate(context.Background(), sess.ID, generateRequest())
	require.NoError(t, err)

	phaseDiagram := "```mermaid\ngraph TD\n  subgraph Qualify\n    A --> B\n  end\n```"
	uc.llm = &stubLLM{response: phaseDiagram}

	dto, err := uc.Diagram(context.Background(), sess.ID, DiagramModePhases)
	require.NoError(t, err)

	assert.Equal(t, "phases", dto.Mode)
	assert.Contains(t, dto.Mermaid, "subgraph Qualify")
	assert.NotContains(t, dto.Mermaid, "```", "the fence is stripped")
}

func TestDiagramPhasesFallsBackOnUnusableResponse(t *testing.T) {
	uc, store := newTestUsecase(&stubLLM{response: workflowResponse})
	sess := store.Create()

	_, err := uc.Generate(context.Background(), sess.ID, generateRequest())
	require.NoError(t, err)

	uc.llm = &stubLLM{response: "Sorry, I cannot draw diagrams."}

	dto, err := uc.Diagram(context.Background(), sess.ID, DiagramModePhases)
	require.NoError(t, err)

	assert.Equal(t, "linear", dto.Mode)
	assert.Contains(t, dto.Mermaid, `S0["Discovery"]`)
}

func TestDiagramWithoutWorkflow(t *testing.T) {
	uc, store := newTestUsecase(&stubLLM{})
	sess := store.Create()

	_, err := uc.Diagram(context.Background(), sess.ID, DiagramModeLinear)
	assert.ErrorIs(t, err, entity.ErrNoWorkflow)
}

func TestExport(t *testing.T) {
	uc, store := newTestUsecase(&stubLLM{response: workflowResponse})
	sess := store.Create()

	_, err := uc.Generate(context.Background(), sess.ID, generateRequest())
	require.NoError(t, err)

	data, f, err := uc.Export(context.Background(), sess.ID, entity.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, ".csv", f.FileExtension())
	assert.Contains(t, string(data), "Discovery")
}

func TestExportWithoutWorkflow(t *testing.T) {
	uc, store := newTestUsecase(&stubLLM{})
	sess := store.Create()

	_, _, err := uc.Export(context.Background(), sess.ID, entity.FormatCSV)
	assert.ErrorIs(t, err, entity.ErrNoWorkflow)
}
