package session

import (
	"time"

	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/session"
)

type sessionDTO struct {
	SessionID   string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
	HasWorkflow bool      `json:"has_workflow"`
	HasProposal bool      `json:"has_proposal"`
}

func toSessionDTO(sess *session.Session) sessionDTO {
	_, wErr := sess.Workflow()
	_, pErr := sess.Proposal()
	return sessionDTO{
		SessionID:   sess.ID,
		CreatedAt:   sess.CreatedAt,
		HasWorkflow: wErr == nil,
		HasProposal: pErr == nil,
	}
}

func toWorkflowDTO(w *entity.Workflow) entity.WorkflowDTO {
	payload, err := w.Payload()
	if err != nil {
		payload = w.RawPayload
	}
	return entity.WorkflowDTO{
		Stages:  w.Stages,
		Payload: payload,
	}
}

func toProposalDTO(p *entity.Proposal) entity.ProposalDTO {
	payload, err := p.Payload()
	if err != nil {
		payload = p.RawPayload
	}
	return entity.ProposalDTO{
		Proposal:     p,
		PricingTotal: p.PricingTotal(),
		Payload:      payload,
	}
}
