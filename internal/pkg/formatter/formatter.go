// Package formatter renders the workflow and proposal models to exportable
// byte streams. Every formatter is a pure function of the model passed in;
// all of them iterate stages and pricing rows in model order.
package formatter

import (
	"fmt"

	"github.com/floww-ai/backend/internal/entity"
)

type Formatter interface {
	FormatWorkflow(w *entity.Workflow) ([]byte, error)
	FormatProposal(p *entity.Proposal) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatCSV:
		return NewCSVFormatter(), nil
	case entity.FormatXLSX:
		return NewXLSXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPPTX:
		return NewPPTXFormatter(), nil
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
