package schema

import (
	"encoding/json"
	"strings"

	"github.com/floww-ai/backend/internal/entity"
)

type proposalPayload struct {
	Title            *string         `json:"title"`
	ExecutiveSummary *string         `json:"executive_summary"`
	Background       string          `json:"background"`
	SolutionOverview string          `json:"solution_overview"`
	Deliverables     []string        `json:"deliverables"`
	Pricing          json.RawMessage `json:"pricing"`
	NextSteps        string          `json:"next_steps"`
	NPV              *float64        `json:"npv"`
	PaybackYears     *float64        `json:"payback_years"`
	TimelineGantt    string          `json:"timeline_gantt"`
	Risks            []entity.Risk   `json:"risks"`
}

// DecodeProposal validates an extracted payload against the proposal schema
// and returns the canonical model. Pricing normalization runs here, after
// primitive-type validation; either accepted pricing shape is already
// canonical in the result.
func DecodeProposal(payload string) (*entity.Proposal, error) {
	var raw proposalPayload
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &entity.SchemaError{Reason: jsonReason(err), Payload: payload}
	}

	if raw.Title == nil || strings.TrimSpace(*raw.Title) == "" {
		return nil, &entity.SchemaError{Field: "title", Reason: "title must be a non-empty string", Payload: payload}
	}
	if raw.ExecutiveSummary == nil {
		return nil, &entity.SchemaError{Field: "executive_summary", Reason: "missing required field", Payload: payload}
	}
	if len(raw.Deliverables) == 0 {
		return nil, &entity.SchemaError{Field: "deliverables", Reason: "proposal has zero deliverables", Payload: payload}
	}

	pricing, err := normalizePricing(raw.Pricing, payload)
	if err != nil {
		return nil, err
	}

	return &entity.Proposal{
		Title:            strings.TrimSpace(*raw.Title),
		ExecutiveSummary: strings.TrimSpace(*raw.ExecutiveSummary),
		Background:       strings.TrimSpace(raw.Background),
		SolutionOverview: strings.TrimSpace(raw.SolutionOverview),
		Deliverables:     raw.Deliverables,
		Pricing:          pricing,
		NextSteps:        strings.TrimSpace(raw.NextSteps),
		NPV:              raw.NPV,
		PaybackYears:     raw.PaybackYears,
		TimelineGantt:    strings.TrimSpace(raw.TimelineGantt),
		Risks:            raw.Risks,
		RawPayload:       payload,
	}, nil
}
