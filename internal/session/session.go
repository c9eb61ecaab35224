// Package session holds the per-session working state: the live workflow
// and proposal models, the pricing table, and the last raw model response.
// Models are replaced wholesale on regeneration or successful re-validation
// and are discarded with the session; nothing is stored durably.
package session

import (
	"sync"
	"time"

	"github.com/floww-ai/backend/internal/entity"
)

// Session is the exclusive owner of one user's models. The mutex serializes
// the HTTP server's access; within a session all mutation is synchronous and
// user triggered.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	workflow *entity.Workflow
	proposal *entity.Proposal
	pricing  entity.PricingTable

	// lastRawResponse keeps the most recent raw model text so extraction
	// failures can be surfaced verbatim.
	lastRawResponse string
}

// Workflow returns the current workflow model, or ErrNoWorkflow when none
// has been generated yet.
func (s *Session) Workflow() (*entity.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workflow == nil {
		return nil, entity.ErrNoWorkflow
	}
	return s.workflow, nil
}

// ReplaceWorkflow swaps in a new workflow model. Readers never observe a
// partial state; the previous model stays valid until this returns.
func (s *Session) ReplaceWorkflow(w *entity.Workflow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflow = w
}

// Proposal returns the current proposal model, or ErrNoProposal.
func (s *Session) Proposal() (*entity.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proposal == nil {
		return nil, entity.ErrNoProposal
	}
	return s.proposal, nil
}

// ReplaceProposal swaps in a new proposal model and seeds the session
// pricing table from its normalized pricing rows.
func (s *Session) ReplaceProposal(p *entity.Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposal = p
	s.pricing = entity.PricingTable{Items: append([]entity.PricingLineItem(nil), p.Pricing...)}
}

// EditPricing runs fn against the session pricing table under the session
// lock, so subtotals and the grand total the next reader sees are never
// stale.
func (s *Session) EditPricing(fn func(*entity.PricingTable) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.pricing)
}

// PricingSnapshot returns a copy of the pricing table rows and the derived
// grand total.
func (s *Session) PricingSnapshot() ([]entity.PricingLineItem, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := append([]entity.PricingLineItem(nil), s.pricing.Items...)
	return rows, s.pricing.Total()
}

// RecordRawResponse remembers the raw model text of the latest generation.
func (s *Session) RecordRawResponse(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRawResponse = raw
}

// LastRawResponse returns the raw model text of the latest generation.
func (s *Session) LastRawResponse() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRawResponse
}
