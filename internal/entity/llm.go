package entity

// CompletionRequest is the boundary contract with the generative service:
// an instruction block fixing the output schema plus a content block with
// the interpolated parameters.
type CompletionRequest struct {
	Instructions string
	Content      string
	Temperature  float64
	MaxTokens    int
	Model        string
}

// CompanyProfile is the result of an optional enrichment lookup.
type CompanyProfile struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MarketCap   *float64 `json:"market_cap,omitempty"`
}

// Lead is one row of a bulk playbook operation.
type Lead struct {
	Company  string `json:"company"`
	Contact  string `json:"contact,omitempty"`
	Industry string `json:"industry,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// LeadSuggestion is the per-row output of a bulk playbook operation. Exactly
// one of Suggestion or Error is set; a failed row never aborts the batch.
type LeadSuggestion struct {
	Lead       Lead   `json:"lead"`
	Suggestion string `json:"suggestion,omitempty"`
	Error      string `json:"error,omitempty"`
}
