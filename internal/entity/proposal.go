package entity

import (
	"encoding/json"
	"fmt"
)

// Risk is one identified project risk with its mitigation, as returned by
// the generative service in the optional "risks" array.
type Risk struct {
	Description string `json:"description"`
	Impact      string `json:"impact,omitempty"`
	Mitigation  string `json:"mitigation,omitempty"`
}

// Proposal is the richer generated document: narrative sections,
// deliverables, pricing, and optional ROI fields. It may be informed by a
// Workflow but is validated independently and does not share Stage objects.
type Proposal struct {
	Title            string            `json:"title"`
	ExecutiveSummary string            `json:"executive_summary"`
	Background       string            `json:"background"`
	SolutionOverview string            `json:"solution_overview"`
	Deliverables     []string          `json:"deliverables"`
	Pricing          []PricingLineItem `json:"pricing"`
	NextSteps        string            `json:"next_steps"`

	// Optional ROI fields; nil when the model did not supply them.
	NPV           *float64 `json:"npv,omitempty"`
	PaybackYears  *float64 `json:"payback_years,omitempty"`
	TimelineGantt string   `json:"timeline_gantt,omitempty"`
	Risks         []Risk   `json:"risks,omitempty"`

	// RawPayload is the extracted source text the proposal was decoded
	// from, kept for round-trip re-editing.
	RawPayload string `json:"-"`
}

// PricingTotal is the grand total over the proposal's pricing rows.
func (p *Proposal) PricingTotal() float64 {
	var total float64
	for _, li := range p.Pricing {
		total += li.Subtotal()
	}
	return total
}

// Payload serializes the proposal back to its canonical wire shape.
func (p *Proposal) Payload() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal proposal payload: %w", err)
	}
	return string(data), nil
}
