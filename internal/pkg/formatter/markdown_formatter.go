package formatter

import (
	"bytes"
	"fmt"

	"github.com/floww-ai/backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (f *MarkdownFormatter) FormatWorkflow(w *entity.Workflow) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Deal Workflow\n\n")
	for i, stage := range w.Stages {
		fmt.Fprintf(&buf, "%d. **%s**", i+1, stage.Name)
		if stage.Tip != "" {
			fmt.Fprintf(&buf, ": %s", stage.Tip)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func (f *MarkdownFormatter) FormatProposal(p *entity.Proposal) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", p.Title)

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
		fmt.Fprintf(&buf, "## %s\n\n%s\n\n", section.heading, section.body)
	}

	fmt.Fprintf(&buf, "## Deliverables\n\n")
	for _, d := range p.Deliverables {
		fmt.Fprintf(&buf, "- %s\n", d)
	}
	buf.WriteByte('\n')

	if len(p.Pricing) > 0 {
		fmt.Fprintf(&buf, "## Pricing\n\n")
		fmt.Fprintf(&buf, "| Item | Qty | Unit | Price | Subtotal |\n")
		fmt.Fprintf(&buf, "|---|---|---|---|---|\n")
		for _, li := range p.Pricing {
			fmt.Fprintf(&buf, "| %s | %d | %s | %s | %s |\n",
				li.Item, li.Qty, li.Unit, formatMoney(li.Price), formatMoney(li.Subtotal()))
		}
		fmt.Fprintf(&buf, "\n**Total: %s**\n", formatMoney(p.PricingTotal()))
	}

	if p.TimelineGantt != "" {
		fmt.Fprintf(&buf, "\n## Timeline\n\n```mermaid\n%s\n```\n", p.TimelineGantt)
	}

	return buf.Bytes(), nil
}

func (f *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (f *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
