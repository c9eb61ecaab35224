package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floww-ai/backend/internal/entity"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(time.Minute)

	sess := store.Create()
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestStoreGetUnknownID(t *testing.T) {
	store := NewStore(time.Minute)

	_, err := store.Get("no-such-session")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	store.Delete(sess.ID)

	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	sess := store.Create()

	time.Sleep(50 * time.Millisecond)

	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSessionModelAccessBeforeGeneration(t *testing.T) {
	sess := NewStore(time.Minute).Create()

	_, err := sess.Workflow()
	assert.ErrorIs(t, err, entity.ErrNoWorkflow)

	_, err = sess.Proposal()
	assert.ErrorIs(t, err, entity.ErrNoProposal)

	rows, total := sess.PricingSnapshot()
	assert.Empty(t, rows)
	assert.Zero(t, total)
}

func TestSessionReplaceWorkflow(t *testing.T) {
	sess := NewStore(time.Minute).Create()

	w := &entity.Workflow{Stages: []entity.Stage{{Name: "Discovery"}}}
	sess.ReplaceWorkflow(w)

	got, err := sess.Workflow()
	require.NoError(t, err)
	assert.Same(t, w, got)
}

func TestSessionReplaceProposalSeedsPricing(t *testing.T) {
	sess := NewStore(time.Minute).Create()

	p := &entity.Proposal{
		Title: "T",
		Pricing: []entity.PricingLineItem{
			{Item: "Integration", Qty: 2, Price: 500},
		},
	}
	sess.ReplaceProposal(p)

	rows, total := sess.PricingSnapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, "Integration", rows[0].Item)
	assert.Equal(t, 1000.0, total)

	// Edits to the session table must not reach back into the proposal.
	err := sess.EditPricing(func(table *entity.PricingTable) error {
		return table.Add(entity.PricingLineItem{Item: "Support", Qty: 1, Price: 100})
	})
	require.NoError(t, err)
	assert.Len(t, p.Pricing, 1)
}

func TestSessionRawResponse(t *testing.T) {
	sess := NewStore(time.Minute).Create()

	assert.Empty(t, sess.LastRawResponse())

	sess.RecordRawResponse("model said something unparseable")
	assert.Equal(t, "model said something unparseable", sess.LastRawResponse())
}
