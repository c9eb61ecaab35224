package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/presentation"

	"github.com/floww-ai/backend/internal/entity"
)

const (
	pptxContentType   = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	pptxFileExtension = ".pptx"

	pptxTitleFontSize   = 36
	pptxHeadingFontSize = 28
	pptxBodyFontSize    = 18
)

type PPTXFormatter struct{}

func NewPPTXFormatter() *PPTXFormatter {
	return &PPTXFormatter{}
}

// FormatWorkflow produces a title slide followed by one slide per stage,
// with the stage name as heading and the tip as body.
func (f *PPTXFormatter) FormatWorkflow(w *entity.Workflow) ([]byte, error) {
	ppt := presentation.New()
	defer ppt.Close()

	addSlide(ppt, "Floww Deal Workflow", "AI-generated deal-closing workflow", pptxTitleFontSize)
	for _, stage := range w.Stages {
		addSlide(ppt, stage.Name, stage.Tip, pptxHeadingFontSize)
	}

	var buf bytes.Buffer
	if err := ppt.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatProposal produces a title slide, one slide per narrative section,
// a deliverables slide and a pricing summary slide.
func (f *PPTXFormatter) FormatProposal(p *entity.Proposal) ([]byte, error) {
	ppt := presentation.New()
	defer ppt.Close()

	addSlide(ppt, p.Title, p.ExecutiveSummary, pptxTitleFontSize)

	sections := []struct {
		heading string
		body    string
	}{
		{"Background", p.Background},
		{"Solution Overview", p.SolutionOverview},
		{"Next Steps", p.NextSteps},
	}
	for _, section := range sections {
		if section.body == "" {
			continue
		}
		addSlide(ppt, section.heading, section.body, pptxHeadingFontSize)
	}

	deliverables := ""
	for i, d := range p.Deliverables {
		if i > 0 {
			deliverables += "\n"
		}
		deliverables += "• " + d
	}
	addSlide(ppt, "Deliverables", deliverables, pptxHeadingFontSize)

	if len(p.Pricing) > 0 {
		addSlide(ppt, "Investment", "Total: "+formatMoney(p.PricingTotal()), pptxHeadingFontSize)
	}

	var buf bytes.Buffer
	if err := ppt.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addSlide(ppt *presentation.Presentation, heading, body string, headingSize float64) {
	slide := ppt.AddSlide()

	titleBox := slide.AddTextBox()
	titlePara := titleBox.AddParagraph()
	titleRun := titlePara.AddRun()
	titleRun.SetText(heading)
	titleRun.Properties().SetSize(measurement.Distance(headingSize) * measurement.Point)
	titleRun.Properties().SetBold(true)

	if body == "" {
		return
	}
	bodyBox := slide.AddTextBox()
	bodyPara := bodyBox.AddParagraph()
	bodyRun := bodyPara.AddRun()
	bodyRun.SetText(body)
	bodyRun.Properties().SetSize(pptxBodyFontSize * measurement.Point)
}

func (f *PPTXFormatter) ContentType() string {
	return pptxContentType
}

func (f *PPTXFormatter) FileExtension() string {
	return pptxFileExtension
}
