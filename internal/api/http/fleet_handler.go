package http

import (
	"net/http"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/service"
)

type FleetHandler struct {
	fleet service.FleetService
}

func NewFleetHandler(fleet service.FleetService) *FleetHandler {
	return &FleetHandler{fleet: fleet}
}

// ListCars serves GET /carros, optionally filtered with ?status=.
func (h *FleetHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.fleet.ListCars(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if cars == nil {
		cars = []domain.Car{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"carros": cars})
}

func (h *FleetHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.fleet.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categorias": categories})
}
