package entity

import (
	"encoding/json"
	"fmt"
)

type Industry string

const (
	IndustryFintech    Industry = "Fintech"
	IndustrySaaS       Industry = "SaaS"
	IndustryRetail     Industry = "Retail"
	IndustryHealthcare Industry = "Healthcare"
	IndustryOther      Industry = "Other"
)

func (i Industry) Validate() error {
	switch i {
	case IndustryFintech, IndustrySaaS, IndustryRetail, IndustryHealthcare, IndustryOther:
		return nil
	default:
		return fmt.Errorf("%w: unknown industry '%s'", ErrInvalidParameter, i)
	}
}

type ClientType string

const (
	ClientTypeSMB        ClientType = "SMB"
	ClientTypeMidMarket  ClientType = "Mid-Market"
	ClientTypeEnterprise ClientType = "Enterprise"
)

func (c ClientType) Validate() error {
	switch c {
	case ClientTypeSMB, ClientTypeMidMarket, ClientTypeEnterprise:
		return nil
	default:
		return fmt.Errorf("%w: unknown client type '%s'", ErrInvalidParameter, c)
	}
}

// DealSizeBucket is the discretized deal-size category shown to the model
// instead of the raw amount.
type DealSizeBucket string

const (
	BucketUnder100K  DealSizeBucket = "<100K"
	Bucket100Kto500K DealSizeBucket = "100K-500K"
	Bucket500Kto1M   DealSizeBucket = "500K-1M"
	Bucket1Mto5M     DealSizeBucket = "1M-5M"
	BucketOver5M     DealSizeBucket = ">5M"
)

// BucketForAmount maps a raw deal amount to its size bucket. A value exactly
// at a threshold falls into the higher bucket.
func BucketForAmount(amount float64) DealSizeBucket {
	switch {
	case amount < 100_000:
		return BucketUnder100K
	case amount < 500_000:
		return Bucket100Kto500K
	case amount < 1_000_000:
		return Bucket500Kto1M
	case amount < 5_000_000:
		return Bucket1Mto5M
	default:
		return BucketOver5M
	}
}

// DealParams are the user-supplied inputs to workflow generation.
type DealParams struct {
	Industry   Industry   `json:"industry"`
	ClientType ClientType `json:"client_type"`
	DealAmount float64    `json:"deal_amount"`
	Company    string     `json:"company,omitempty"`
	Persona    string     `json:"persona,omitempty"`
}

func (p *DealParams) Validate() error {
	if err := p.Industry.Validate(); err != nil {
		return err
	}
	if err := p.ClientType.Validate(); err != nil {
		return err
	}
	if p.DealAmount < 0 {
		return fmt.Errorf("%w: deal_amount must not be negative", ErrInvalidParameter)
	}
	return nil
}

// Bucket returns the size bucket for the deal amount.
func (p *DealParams) Bucket() DealSizeBucket {
	return BucketForAmount(p.DealAmount)
}

// Stage is one named step of a deal-closing workflow. Immutable once
// constructed; re-editing replaces the whole workflow.
type Stage struct {
	Name string `json:"stage"`
	Tip  string `json:"tip"`
}

// Workflow is an ordered sequence of stages plus the raw payload it was
// decoded from, kept so the user can re-edit and re-validate without losing
// unmodified source text.
type Workflow struct {
	Stages     []Stage
	RawPayload string
}

// TipFor returns the advisory tip for a stage name, or the empty string when
// the stage is unknown. Renderers iterate Stages and must never fail on a
// missing tip.
func (w *Workflow) TipFor(name string) string {
	for _, s := range w.Stages {
		if s.Name == name {
			return s.Tip
		}
	}
	return ""
}

// StageNames returns the stage names in workflow order.
func (w *Workflow) StageNames() []string {
	names := make([]string, len(w.Stages))
	for i, s := range w.Stages {
		names[i] = s.Name
	}
	return names
}

// Payload serializes the workflow back to its canonical wire shape.
func (w *Workflow) Payload() (string, error) {
	data, err := json.MarshalIndent(map[string][]Stage{"workflow": w.Stages}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal workflow payload: %w", err)
	}
	return string(data), nil
}
