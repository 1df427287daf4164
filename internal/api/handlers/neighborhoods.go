package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/morada-labs/morada/pkg/listing/models"
	"github.com/morada-labs/morada/pkg/listing/store"
)

// NeighborhoodsHandler handles the neighborhood catalog endpoints.
type NeighborhoodsHandler struct {
	store store.Store
}

// NewNeighborhoodsHandler creates a new NeighborhoodsHandler.
func NewNeighborhoodsHandler(s store.Store) *NeighborhoodsHandler {
	return &NeighborhoodsHandler{store: s}
}

// NeighborhoodRequest is the request body for creating or updating a neighborhood.
type NeighborhoodRequest struct {
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// List handles GET /neighborhoods.
func (h *NeighborhoodsHandler) List(w http.ResponseWriter, r *http.Request) {
	neighborhoods, err := h.store.ListNeighborhoods(r.Context())
	if err != nil {
		InternalServerError(w, "failed to list neighborhoods")
		return
	}
	WriteJSONOK(w, neighborhoods)
}

// Get handles GET /neighborhoods/{id}.
func (h *NeighborhoodsHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.GetNeighborhood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNeighborhoodNotFound) {
			NotFound(w, "neighborhood not found")
			return
		}
		InternalServerError(w, "failed to fetch neighborhood")
		return
	}
	WriteJSONOK(w, n)
}

// Create handles POST /neighborhoods.
func (h *NeighborhoodsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NeighborhoodRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	n := &models.Neighborhood{Name: req.Name, City: req.City}
	if err := n.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreateNeighborhood(r.Context(), n); err != nil {
		if errors.Is(err, models.ErrDuplicateNeighborhood) {
			Conflict(w, "neighborhood already exists")
			return
		}
		InternalServerError(w, "failed to create neighborhood")
		return
	}
	WriteJSONCreated(w, n)
}

// Update handles PUT /neighborhoods/{id}.
func (h *NeighborhoodsHandler) Update(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.GetNeighborhood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNeighborhoodNotFound) {
			NotFound(w, "neighborhood not found")
			return
		}
		InternalServerError(w, "failed to fetch neighborhood")
		return
	}

	var req NeighborhoodRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	n.Name = req.Name
	n.City = req.City
	if err := n.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdateNeighborhood(r.Context(), n); err != nil {
		if errors.Is(err, models.ErrDuplicateNeighborhood) {
			Conflict(w, "neighborhood already exists")
			return
		}
		InternalServerError(w, "failed to update neighborhood")
		return
	}
	WriteJSONOK(w, n)
}

// Delete handles DELETE /neighborhoods/{id}.
func (h *NeighborhoodsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteNeighborhood(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrNeighborhoodNotFound) {
			NotFound(w, "neighborhood not found")
			return
		}
		InternalServerError(w, "failed to delete neighborhood")
		return
	}
	WriteNoContent(w)
}
