package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floww-ai/backend/internal/entity"
)

const validProposal = `{
	"title": "Payments Modernization Proposal",
	"executive_summary": "Replace the legacy gateway in two quarters.",
	"background": "The current gateway fails under load.",
	"solution_overview": "A phased migration to the new platform.",
	"deliverables": ["Discovery report", "Migration plan", "Production cutover"],
	"pricing": [
		{"item": "Integration", "qty": 2, "unit": "sprint", "price": 500},
		{"item": "License", "qty": 10, "price": 120}
	],
	"next_steps": "Schedule the kickoff call.",
	"timeline_gantt": "gantt\n  title Delivery",
	"risks": [{"description": "Scope creep", "impact": "medium", "mitigation": "Change control"}]
}`

func TestDecodeProposal(t *testing.T) {
	p, err := DecodeProposal(validProposal)
	require.NoError(t, err)

	assert.Equal(t, "Payments Modernization Proposal", p.Title)
	assert.Len(t, p.Deliverables, 3)
	assert.Len(t, p.Risks, 1)
	require.Len(t, p.Pricing, 2)
	assert.Equal(t, entity.PricingLineItem{Item: "Integration", Qty: 2, Unit: "sprint", Price: 500}, p.Pricing[0])
	assert.Equal(t, 2200.0, p.PricingTotal())
}

func TestDecodeProposalFailures(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{
			name:      "missing title",
			payload:   `{"executive_summary": "x", "deliverables": ["a"]}`,
			wantField: "title",
		},
		{
			name:      "blank title",
			payload:   `{"title": "  ", "executive_summary": "x", "deliverables": ["a"]}`,
			wantField: "title",
		},
		{
			name:      "missing executive summary",
			payload:   `{"title": "T", "deliverables": ["a"]}`,
			wantField: "executive_summary",
		},
		{
			name:      "zero deliverables",
			payload:   `{"title": "T", "executive_summary": "x", "deliverables": []}`,
			wantField: "deliverables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProposal(tt.payload)

			var schErr *entity.SchemaError
			require.ErrorAs(t, err, &schErr)
			assert.Equal(t, tt.wantField, schErr.Field)
		})
	}
}

func TestNormalizePricingMapShape(t *testing.T) {
	// The map shape with inconsistently cased detail keys must normalize to
	// the same rows as the canonical array shape.
	payload := `{
		"title": "T", "executive_summary": "x", "deliverables": ["a"],
		"pricing": {
			"Integration": {"Qty": 2, "unit_price": 500},
			"License": {"quantity": 10, "Price": 120, "Units": "seat"}
		}
	}`

	p, err := DecodeProposal(payload)
	require.NoError(t, err)

	// Map-shaped pricing is ordered by sorted item name.
	require.Len(t, p.Pricing, 2)
	assert.Equal(t, entity.PricingLineItem{Item: "Integration", Qty: 2, Unit: "", Price: 500}, p.Pricing[0])
	assert.Equal(t, entity.PricingLineItem{Item: "License", Qty: 10, Unit: "seat", Price: 120}, p.Pricing[1])
	assert.Equal(t, 2200.0, p.PricingTotal())
}

func TestNormalizePricingDefaults(t *testing.T) {
	payload := `{
		"title": "T", "executive_summary": "x", "deliverables": ["a"],
		"pricing": [{"item": "Workshop"}]
	}`

	p, err := DecodeProposal(payload)
	require.NoError(t, err)

	require.Len(t, p.Pricing, 1)
	assert.Equal(t, 1, p.Pricing[0].Qty, "missing qty defaults to 1")
	assert.Equal(t, 0.0, p.Pricing[0].Price, "missing price defaults to 0")
}

func TestNormalizePricingAliasCasingIsDeterministic(t *testing.T) {
	// Two casings of the same alias in one detail object must resolve the
	// same way on every run. The exact-case key wins; without one the
	// lexicographically first folded match does.
	payload := `{
		"title": "T", "executive_summary": "x", "deliverables": ["a"],
		"pricing": {
			"Integration": {"qty": 2, "Qty": 5, "price": 500},
			"License": {"QTY": 7, "Qty": 3, "price": 120}
		}
	}`

	for i := 0; i < 10; i++ {
		p, err := DecodeProposal(payload)
		require.NoError(t, err)
		require.Len(t, p.Pricing, 2)
		assert.Equal(t, 2, p.Pricing[0].Qty)
		assert.Equal(t, 7, p.Pricing[1].Qty)
	}
}

func TestNormalizePricingMistypedFields(t *testing.T) {
	tests := []struct {
		name      string
		pricing   string
		wantField string
	}{
		{"string qty in list", `[{"item": "Integration", "qty": "2"}]`, "pricing[0].qty"},
		{"string price in list", `[{"item": "Integration", "price": "500"}]`, "pricing[0].price"},
		{"string qty in map", `{"License": {"qty": "10"}}`, "pricing[License].qty"},
		{"numeric unit in map", `{"License": {"unit": 3}}`, "pricing[License].unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"title": "T", "executive_summary": "x", "deliverables": ["a"], "pricing": ` + tt.pricing + `}`

			_, err := DecodeProposal(payload)

			var schErr *entity.SchemaError
			require.ErrorAs(t, err, &schErr)
			assert.Equal(t, tt.wantField, schErr.Field)
		})
	}
}

func TestNormalizePricingNullFieldsUseDefaults(t *testing.T) {
	payload := `{
		"title": "T", "executive_summary": "x", "deliverables": ["a"],
		"pricing": [{"item": "Workshop", "qty": null, "price": null}]
	}`

	p, err := DecodeProposal(payload)
	require.NoError(t, err)

	require.Len(t, p.Pricing, 1)
	assert.Equal(t, 1, p.Pricing[0].Qty)
	assert.Equal(t, 0.0, p.Pricing[0].Price)
}

func TestNormalizePricingRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name    string
		pricing string
	}{
		{"scalar", `"free"`},
		{"array of strings", `["Integration", "License"]`},
		{"map of scalars", `{"Integration": 500}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"title": "T", "executive_summary": "x", "deliverables": ["a"], "pricing": ` + tt.pricing + `}`

			_, err := DecodeProposal(payload)

			var schErr *entity.SchemaError
			require.ErrorAs(t, err, &schErr)
			assert.Equal(t, "pricing", schErr.Field)
		})
	}
}

func TestNormalizePricingEmptyListItem(t *testing.T) {
	payload := `{"title": "T", "executive_summary": "x", "deliverables": ["a"], "pricing": [{"qty": 1}]}`

	_, err := DecodeProposal(payload)

	var schErr *entity.SchemaError
	require.ErrorAs(t, err, &schErr)
	assert.Equal(t, "pricing[0].item", schErr.Field)
}

func TestDecodeProposalOmitsPricing(t *testing.T) {
	p, err := DecodeProposal(`{"title": "T", "executive_summary": "x", "deliverables": ["a"]}`)
	require.NoError(t, err)
	assert.Empty(t, p.Pricing)
	assert.Equal(t, 0.0, p.PricingTotal())
}
