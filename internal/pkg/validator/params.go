package validator

import (
	"fmt"
	"strings"

	"github.com/floww-ai/backend/internal/entity"
)

// Validator checks API request DTOs before they reach the use cases.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateWorkflow validates GenerateWorkflowRequest
func (v *Validator) ValidateGenerateWorkflow(req *entity.GenerateWorkflowRequest) error {
	params := entity.DealParams{
		Industry:   req.Industry,
		ClientType: req.ClientType,
		DealAmount: req.DealAmount,
	}
	return params.Validate()
}

// ValidateGenerateProposal validates GenerateProposalRequest
func (v *Validator) ValidateGenerateProposal(req *entity.GenerateProposalRequest) error {
	if err := req.Industry.Validate(); err != nil {
		return err
	}
	if err := req.ClientType.Validate(); err != nil {
		return err
	}
	if req.DealAmount < 0 {
		return fmt.Errorf("%w: deal_amount must not be negative", entity.ErrInvalidParameter)
	}
	if req.MonthsToClose < 0 {
		return fmt.Errorf("%w: months_to_close must not be negative", entity.ErrInvalidParameter)
	}
	return nil
}

// ValidateEditPayload validates a re-validation request
func (v *Validator) ValidateEditPayload(req *entity.EditPayloadRequest) error {
	if strings.TrimSpace(req.Payload) == "" {
		return fmt.Errorf("%w: payload", entity.ErrMissingField)
	}
	return nil
}

// ValidatePricingRow validates a pricing table row edit
func (v *Validator) ValidatePricingRow(req *entity.PricingRowRequest) error {
	li := entity.PricingLineItem{
		Item:  req.Item,
		Qty:   req.Qty,
		Unit:  req.Unit,
		Price: req.Price,
	}
	return li.Validate()
}

// ValidateEnrichLeads validates a bulk playbook request
func (v *Validator) ValidateEnrichLeads(req *entity.EnrichLeadsRequest) error {
	if len(req.Leads) == 0 {
		return fmt.Errorf("%w: leads", entity.ErrMissingField)
	}
	for i, lead := range req.Leads {
		if strings.TrimSpace(lead.Company) == "" {
			return fmt.Errorf("%w: leads[%d].company", entity.ErrMissingField, i)
		}
	}
	return nil
}

// ValidateCompanyLookup validates a company lookup request
func (v *Validator) ValidateCompanyLookup(req *entity.CompanyLookupRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return fmt.Errorf("%w: query", entity.ErrMissingField)
	}
	return nil
}
