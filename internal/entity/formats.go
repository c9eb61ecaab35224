package entity

import "fmt"

type ExportFormat string

const (
	FormatCSV      ExportFormat = "csv"
	FormatXLSX     ExportFormat = "xlsx"
	FormatPDF      ExportFormat = "pdf"
	FormatDOCX     ExportFormat = "docx"
	FormatPPTX     ExportFormat = "pptx"
	FormatMarkdown ExportFormat = "md"
)

// ParseExportFormat validates a format query parameter.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatCSV, FormatXLSX, FormatPDF, FormatDOCX, FormatPPTX, FormatMarkdown:
		return ExportFormat(s), nil
	default:
		return "", fmt.Errorf("%w: unknown export format '%s'", ErrInvalidParameter, s)
	}
}
