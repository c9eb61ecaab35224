package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.DeleteSession)
		r.Get("/{id}/raw", h.GetRawResponse)

		r.Post("/{id}/workflow", h.GenerateWorkflow)
		r.Get("/{id}/workflow", h.GetWorkflow)
		r.Put("/{id}/workflow", h.EditWorkflow)
		r.Get("/{id}/workflow/diagram", h.GetDiagram)
		r.Get("/{id}/workflow/export", h.ExportWorkflow)

		r.Post("/{id}/proposal", h.GenerateProposal)
		r.Get("/{id}/proposal", h.GetProposal)
		r.Put("/{id}/proposal", h.EditProposal)
		r.Get("/{id}/proposal/export", h.ExportProposal)
		r.Get("/{id}/proposal/metrics", h.GetMetrics)

		r.Get("/{id}/pricing", h.GetPricing)
		r.Post("/{id}/pricing", h.AddPricingRow)
		r.Put("/{id}/pricing/{index}", h.UpdatePricingRow)
		r.Delete("/{id}/pricing/{index}", h.RemovePricingRow)
	})
}
