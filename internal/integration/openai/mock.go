package openai

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
)

// MockConnector returns canned responses for local development without a
// real credential. Responses are wrapped in prose and code fences on purpose
// so the extraction path is exercised.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

const mockWorkflowResponse = "Here is the workflow you asked for:\n" +
	"```json\n" +
	`{"workflow": [
  {"stage": "Prospecting", "tip": "Qualify hard before investing time."},
  {"stage": "Discovery", "tip": "Map the buying committee early."},
  {"stage": "Proposal", "tip": "Anchor pricing to quantified value."},
  {"stage": "Negotiation", "tip": "Trade concessions, never give them."},
  {"stage": "Close", "tip": "Agree a mutual action plan with dates."}
]}` + "\n```\nGood luck with the deal!"

const mockProposalResponse = `{"title": "Proposal: Platform Rollout",
"executive_summary": "A phased rollout that pays for itself within two years.",
"background": "The client is consolidating three legacy systems.",
"solution_overview": "A managed migration followed by enablement.",
"deliverables": ["Discovery report", "Migration", "Training"],
"pricing": {"Integration": {"Qty": 2, "unit_price": 500, "unit": "day"},
"Training": {"quantity": 3, "price": 400}},
"next_steps": "Schedule a scoping workshop.",
"timeline_gantt": "gantt\n  title Delivery\n  section Phase 1\n  Discovery :a1, 2026-01-01, 30d"}`

const mockDiagramResponse = "```mermaid\n" +
	`graph TD
    subgraph Engage
    S0["Prospecting"] --> S1["Discovery"]
    end
    subgraph Commit
    S1 -->|qualified| S2["Proposal"]
    S2 --> S3["Negotiation"]
    S3 -->|signed| S4["Close"]
    end` + "\n```"

func (c *MockConnector) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	ctxzap.Info(ctx, "mock completion", zap.Int("content_length", len(req.Content)))

	switch {
	case strings.Contains(req.Instructions, "deal-closing workflow"):
		return mockWorkflowResponse, nil
	case strings.Contains(req.Instructions, "commercial proposal"):
		return mockProposalResponse, nil
	case strings.Contains(req.Instructions, "mermaid flowchart"):
		return mockDiagramResponse, nil
	default:
		return "Follow up with a tailored value summary within two business days.", nil
	}
}
