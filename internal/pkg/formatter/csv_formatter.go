package formatter

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/floww-ai/backend/internal/entity"
)

const (
	csvContentType   = "text/csv; charset=utf-8"
	csvFileExtension = ".csv"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) FormatWorkflow(w *entity.Workflow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	records := [][]string{{"Stage", "Tip"}}
	for _, s := range w.Stages {
		records = append(records, []string{s.Name, s.Tip})
	}

	if err := writer.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *CSVFormatter) FormatProposal(p *entity.Proposal) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	records := [][]string{{"Item", "Qty", "Unit", "Price", "Subtotal"}}
	for _, li := range p.Pricing {
		records = append(records, []string{
			li.Item,
			strconv.Itoa(li.Qty),
			li.Unit,
			formatMoney(li.Price),
			formatMoney(li.Subtotal()),
		})
	}
	records = append(records, []string{"Total", "", "", "", formatMoney(p.PricingTotal())})

	if err := writer.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *CSVFormatter) ContentType() string {
	return csvContentType
}

func (f *CSVFormatter) FileExtension() string {
	return csvFileExtension
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
