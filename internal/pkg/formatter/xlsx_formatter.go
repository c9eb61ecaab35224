package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/floww-ai/backend/internal/entity"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxFileExtension = ".xlsx"
)

type XLSXFormatter struct{}

func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

func (f *XLSXFormatter) FormatWorkflow(w *entity.Workflow) ([]byte, error) {
	wb := spreadsheet.New()
	defer wb.Close()

	sheet := wb.AddSheet()
	sheet.SetName("Deal Workflow")

	header := sheet.AddRow()
	header.AddCell().SetString("Stage")
	header.AddCell().SetString("Tip")

	for _, s := range w.Stages {
		row := sheet.AddRow()
		row.AddCell().SetString(s.Name)
		row.AddCell().SetString(s.Tip)
	}

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *XLSXFormatter) FormatProposal(p *entity.Proposal) ([]byte, error) {
	wb := spreadsheet.New()
	defer wb.Close()

	sheet := wb.AddSheet()
	sheet.SetName("Pricing")

	header := sheet.AddRow()
	for _, col := range []string{"Item", "Qty", "Unit", "Price", "Subtotal"} {
		header.AddCell().SetString(col)
	}

	for _, li := range p.Pricing {
		row := sheet.AddRow()
		row.AddCell().SetString(li.Item)
		row.AddCell().SetNumber(float64(li.Qty))
		row.AddCell().SetString(li.Unit)
		row.AddCell().SetNumber(li.Price)
		row.AddCell().SetNumber(li.Subtotal())
	}

	totalRow := sheet.AddRow()
	totalRow.AddCell().SetString("Total")
	totalRow.AddCell().SetString("")
	totalRow.AddCell().SetString("")
	totalRow.AddCell().SetString("")
	totalRow.AddCell().SetNumber(p.PricingTotal())

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *XLSXFormatter) ContentType() string {
	return xlsxContentType
}

func (f *XLSXFormatter) FileExtension() string {
	return xlsxFileExtension
}
