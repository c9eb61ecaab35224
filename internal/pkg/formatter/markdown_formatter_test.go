package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floww-ai/backend/internal/entity"
)

func TestMarkdownFormatWorkflow(t *testing.T) {
	f := NewMarkdownFormatter()
	w := &entity.Workflow{Stages: []entity.Stage{
		{Name: "Discovery", Tip: "Ask open questions"},
		{Name: "Demo"},
	}}

	data, err := f.FormatWorkflow(w)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "1. **Discovery**: Ask open questions")
	assert.Contains(t, out, "2. **Demo**\n", "a stage without a tip gets no separator")
}

func TestMarkdownFormatProposal(t *testing.T) {
	f := NewMarkdownFormatter()
	p := &entity.Proposal{
		Title:            "Payments Modernization",
		ExecutiveSummary: "Replace the legacy gateway.",
		Deliverables:     []string{"Migration plan", "Cutover"},
		Pricing: []entity.PricingLineItem{
			{Item: "Integration", Qty: 2, Unit: "sprint", Price: 500},
		},
		TimelineGantt: "gantt\n  title Delivery",
	}

	data, err := f.FormatProposal(p)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# Payments Modernization")
	assert.Contains(t, out, "## Executive Summary")
	assert.Contains(t, out, "- Migration plan")
	assert.Contains(t, out, "| Integration | 2 | sprint | 500.00 | 1000.00 |")
	assert.Contains(t, out, "**Total: 1000.00**")
	assert.Contains(t, out, "```mermaid\ngantt")
	assert.NotContains(t, out, "## Background", "empty sections are skipped")
}
