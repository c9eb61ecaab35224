package formatter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floww-ai/backend/internal/entity"
)

func TestCSVFormatWorkflow(t *testing.T) {
	f := NewCSVFormatter()
	w := &entity.Workflow{Stages: []entity.Stage{
		{Name: "Discovery", Tip: "Ask open questions"},
		{Name: "Closing", Tip: "Create urgency"},
	}}

	data, err := f.FormatWorkflow(w)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"Stage", "Tip"}, records[0])
	assert.Equal(t, []string{"Discovery", "Ask open questions"}, records[1])
	assert.Equal(t, []string{"Closing", "Create urgency"}, records[2])
}

func TestCSVFormatProposal(t *testing.T) {
	f := NewCSVFormatter()
	p := &entity.Proposal{
		Title: "T",
		Pricing: []entity.PricingLineItem{
			{Item: "Integration", Qty: 2, Unit: "sprint", Price: 500},
			{Item: "License", Qty: 10, Unit: "seat", Price: 120},
		},
	}

	data, err := f.FormatProposal(p)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, []string{"Item", "Qty", "Unit", "Price", "Subtotal"}, records[0])
	assert.Equal(t, []string{"Integration", "2", "sprint", "500.00", "1000.00"}, records[1])
	assert.Equal(t, []string{"Total", "", "", "", "2200.00"}, records[3])
}

func TestCSVQuotesEmbeddedCommas(t *testing.T) {
	f := NewCSVFormatter()
	w := &entity.Workflow{Stages: []entity.Stage{
		{Name: "Demo, tailored", Tip: "show, don't tell"},
	}}

	data, err := f.FormatWorkflow(w)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Demo, tailored", "show, don't tell"}, records[1])
}

func TestCSVMetadata(t *testing.T) {
	f := NewCSVFormatter()
	assert.Equal(t, ".csv", f.FileExtension())
	assert.Contains(t, f.ContentType(), "text/csv")
}
