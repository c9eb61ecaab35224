package playbook

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers playbook routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/playbooks/enrich", h.EnrichLeads)
	r.Post("/company/lookup", h.LookupCompany)
}
