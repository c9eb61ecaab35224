package entity

// GenerateWorkflowRequest is the body of POST /sessions/{id}/workflow.
type GenerateWorkflowRequest struct {
	Industry   Industry   `json:"industry"`
	ClientType ClientType `json:"client_type"`
	DealAmount float64    `json:"deal_amount"`
	Company    string     `json:"company,omitempty"`
	Persona    string     `json:"persona,omitempty"`
}

// EditPayloadRequest carries a user-edited raw payload for re-validation.
type EditPayloadRequest struct {
	Payload string `json:"payload"`
}

// WorkflowDTO is the API representation of the current workflow model.
type WorkflowDTO struct {
	Stages  []Stage `json:"stages"`
	Payload string  `json:"payload"`
}

// ProposalDTO is the API representation of the current proposal model.
type ProposalDTO struct {
	Proposal     *Proposal `json:"proposal"`
	PricingTotal float64   `json:"pricing_total"`
	Payload      string    `json:"payload"`
}

// GenerateProposalRequest is the body of POST /sessions/{id}/proposal.
type GenerateProposalRequest struct {
	Industry      Industry   `json:"industry"`
	ClientType    ClientType `json:"client_type"`
	DealAmount    float64    `json:"deal_amount"`
	Company       string     `json:"company,omitempty"`
	MonthsToClose int        `json:"months_to_close,omitempty"`
}

// PricingRowRequest adds or replaces one pricing table row.
type PricingRowRequest struct {
	Item  string  `json:"item"`
	Qty   int     `json:"qty"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
}

// PricingTableDTO is the pricing table plus its derived totals. Subtotals
// and the grand total are recomputed on every read.
type PricingTableDTO struct {
	Rows  []PricingRowDTO `json:"rows"`
	Total float64         `json:"total"`
}

type PricingRowDTO struct {
	Item     string  `json:"item"`
	Qty      int     `json:"qty"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// MetricsDTO is the response of the proposal metrics endpoint.
type MetricsDTO struct {
	UpfrontCost   float64 `json:"upfront_cost"`
	AnnualBenefit float64 `json:"annual_benefit"`
	DiscountRate  float64 `json:"discount_rate"`
	Years         int     `json:"years"`
	NPV           float64 `json:"npv"`
	PaybackYears  float64 `json:"payback_years"`
}

// EnrichLeadsRequest is the body of POST /playbooks/enrich.
type EnrichLeadsRequest struct {
	Leads []Lead `json:"leads"`
}

// CompanyLookupRequest is the body of POST /company/lookup.
type CompanyLookupRequest struct {
	Query string `json:"query"`
}

// DiagramDTO is the response of the workflow diagram endpoint.
type DiagramDTO struct {
	Mode    string `json:"mode"`
	Mermaid string `json:"mermaid"`
}
