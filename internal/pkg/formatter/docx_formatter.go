package formatter

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/document"

	"github.com/floww-ai/backend/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (f *DOCXFormatter) FormatWorkflow(w *entity.Workflow) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	writeDocxHeading(doc, "Heading1", "Floww Deal Workflow")

	for i, stage := range w.Stages {
		writeDocxHeading(doc, "Heading2", fmt.Sprintf("%d. %s", i+1, stage.Name))
		if stage.Tip != "" {
			writeDocxBody(doc, "Tip: "+stage.Tip)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *DOCXFormatter) FormatProposal(p *entity.Proposal) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	writeDocxHeading(doc, "Heading1", p.Title)

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
		writeDocxHeading(doc, "Heading2", section.heading)
		writeDocxBody(doc, section.body)
	}

	writeDocxHeading(doc, "Heading2", "Deliverables")
	for i, d := range p.Deliverables {
		writeDocxBody(doc, fmt.Sprintf("%d. %s", i+1, d))
	}

	if len(p.Pricing) > 0 {
		writeDocxHeading(doc, "Heading2", "Pricing")
		for _, li := range p.Pricing {
			writeDocxBody(doc, fmt.Sprintf("%s: %d %s @ %s = %s",
				li.Item, li.Qty, li.Unit, formatMoney(li.Price), formatMoney(li.Subtotal())))
		}
		writeDocxBody(doc, "Total: "+formatMoney(p.PricingTotal()))
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeDocxHeading(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	par.SetStyle(style)
	par.AddRun().AddText(text)
}

func writeDocxBody(doc *document.Document, text string) {
	par := doc.AddParagraph()
	par.AddRun().AddText(text)
}

func (f *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (f *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
