package formatter

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/floww-ai/backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// Layout constants, in points on a Letter page.
	pdfTopMargin    = 40.0
	pdfBottomMargin = 60.0
	pdfLeftMargin   = 40.0
	pdfIndent       = 60.0
	pdfTitleSize    = 14.0
	pdfBodySize     = 12.0
	pdfLineStep     = 18.0
	pdfBlockStep    = 28.0
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func (f *PDFFormatter) FormatWorkflow(w *entity.Workflow) ([]byte, error) {
	pdf, pg := f.newDocument("Floww Deal Workflow")

	pdf.SetFont("Helvetica", "", pdfBodySize)
	for i, stage := range w.Stages {
		if pg.Advance(pdfLineStep) {
			pdf.AddPage()
		}
		pdf.Text(pdfLeftMargin, pg.Y(), fmt.Sprintf("%d. %s", i+1, stage.Name))

		if pg.Advance(pdfBlockStep) {
			pdf.AddPage()
		}
		pdf.Text(pdfIndent, pg.Y(), "Tip: "+stage.Tip)
	}

	return f.output(pdf)
}

func (f *PDFFormatter) FormatProposal(p *entity.Proposal) ([]byte, error) {
	pdf, pg := f.newDocument(p.Title)

	sections := []struct {
		heading string
		body    string
	}{
		{"Executive Summary", p.ExecutiveSummary},
		{"Background", p.Background},
		{"Solution Overview", p.SolutionOverview},
		{"Next Steps", p.NextSteps},
	}

	for _, section := range sections {
		if section.body == "" {
			continue
		}
		f.writeHeading(pdf, pg, section.heading)
		f.writeBody(pdf, pg, section.body)
	}

	f.writeHeading(pdf, pg, "Deliverables")
	pdf.SetFont("Helvetica", "", pdfBodySize)
	for i, d := range p.Deliverables {
		if pg.Advance(pdfLineStep) {
			pdf.AddPage()
		}
		pdf.Text(pdfLeftMargin, pg.Y(), fmt.Sprintf("%d. %s", i+1, d))
	}

	if len(p.Pricing) > 0 {
		f.writeHeading(pdf, pg, "Pricing")
		pdf.SetFont("Helvetica", "", pdfBodySize)
		for _, li := range p.Pricing {
			if pg.Advance(pdfLineStep) {
				pdf.AddPage()
			}
			line := fmt.Sprintf("%s: %d %s @ %s = %s",
				li.Item, li.Qty, li.Unit, formatMoney(li.Price), formatMoney(li.Subtotal()))
			pdf.Text(pdfLeftMargin, pg.Y(), line)
		}
		if pg.Advance(pdfBlockStep) {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", pdfBodySize)
		pdf.Text(pdfLeftMargin, pg.Y(), "Total: "+formatMoney(p.PricingTotal()))
	}

	return f.output(pdf)
}

func (f *PDFFormatter) newDocument(title string) (*gofpdf.Fpdf, *Paginator) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	_, pageHeight := pdf.GetPageSize()
	pg := NewPaginator(pageHeight, pdfTopMargin, pdfBottomMargin)

	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.Text(pdfLeftMargin, pg.Y(), title)
	pg.Advance(2 * pdfLineStep)

	return pdf, pg
}

func (f *PDFFormatter) writeHeading(pdf *gofpdf.Fpdf, pg *Paginator, heading string) {
	if pg.Advance(pdfBlockStep) {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.Text(pdfLeftMargin, pg.Y(), heading)
}

func (f *PDFFormatter) writeBody(pdf *gofpdf.Fpdf, pg *Paginator, body string) {
	pdf.SetFont("Helvetica", "", pdfBodySize)
	lines := pdf.SplitText(body, 532) // page width minus margins
	for _, line := range lines {
		if pg.Advance(pdfLineStep) {
			pdf.AddPage()
		}
		pdf.Text(pdfLeftMargin, pg.Y(), line)
	}
}

func (f *PDFFormatter) output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (f *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
