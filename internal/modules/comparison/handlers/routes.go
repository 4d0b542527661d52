package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all comparison routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/compare", h.HandleCompare)
	r.Post("/compare", h.HandleCompare)
}
