package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/morada-labs/morada/pkg/listing/models"
	"github.com/morada-labs/morada/pkg/listing/store"
)

// PropertyTypesHandler handles the property type catalog endpoints.
type PropertyTypesHandler struct {
	store store.Store
}

// NewPropertyTypesHandler creates a new PropertyTypesHandler.
func NewPropertyTypesHandler(s store.Store) *PropertyTypesHandler {
	return &PropertyTypesHandler{store: s}
}

// PropertyTypeRequest is the request body for creating or updating a property type.
type PropertyTypeRequest struct {
	Name string `json:"name"`
}

// List handles GET /property-types.
func (h *PropertyTypesHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.store.ListPropertyTypes(r.Context())
	if err != nil {
		InternalServerError(w, "failed to list property types")
		return
	}
	WriteJSONOK(w, types)
}

// Get handles GET /property-types/{id}.
func (h *PropertyTypesHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.GetPropertyType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrPropertyTypeNotFound) {
			NotFound(w, "property type not found")
			return
		}
		InternalServerError(w, "failed to fetch property type")
		return
	}
	WriteJSONOK(w, t)
}

// Create handles POST /property-types.
func (h *PropertyTypesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PropertyTypeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	t := &models.PropertyType{Name: req.Name}
	if err := t.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreatePropertyType(r.Context(), t); err != nil {
		if errors.Is(err, models.ErrDuplicatePropertyType) {
			Conflict(w, "property type already exists")
			return
		}
		InternalServerError(w, "failed to create property type")
		return
	}
	WriteJSONCreated(w, t)
}

// Update handles PUT /property-types/{id}.
func (h *PropertyTypesHandler) Update(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.GetPropertyType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrPropertyTypeNotFound) {
			NotFound(w, "property type not found")
			return
		}
		InternalServerError(w, "failed to fetch property type")
		return
	}

	var req PropertyTypeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	t.Name = req.Name
	if err := t.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdatePropertyType(r.Context(), t); err != nil {
		if errors.Is(err, models.ErrDuplicatePropertyType) {
			Conflict(w, "property type already exists")
			return
		}
		InternalServerError(w, "failed to update property type")
		return
	}
	WriteJSONOK(w, t)
}

// Delete handles DELETE /property-types/{id}.
func (h *PropertyTypesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePropertyType(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrPropertyTypeNotFound) {
			NotFound(w, "property type not found")
			return
		}
		InternalServerError(w, "failed to delete property type")
		return
	}
	WriteNoContent(w)
}
