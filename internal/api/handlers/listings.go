package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/morada-labs/morada/internal/api/middleware"
	"github.com/morada-labs/morada/pkg/listing/models"
	"github.com/morada-labs/morada/pkg/listing/store"
)

// ListingsHandler handles listing API endpoints.
type ListingsHandler struct {
	store store.Store
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(s store.Store) *ListingsHandler {
	return &ListingsHandler{store: s}
}

// ListingRequest is the request body for creating or updating a listing.
type ListingRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Purpose        string  `json:"purpose"`
	Price          float64 `json:"price"`
	Address        string  `json:"address,omitempty"`
	Bedrooms       int     `json:"bedrooms,omitempty"`
	Bathrooms      int     `json:"bathrooms,omitempty"`
	ParkingSpots   int     `json:"parking_spots,omitempty"`
	AreaM2         float64 `json:"area_m2,omitempty"`
	Featured       bool    `json:"featured,omitempty"`
	NeighborhoodID string  `json:"neighborhood_id,omitempty"`
	PropertyTypeID string  `json:"property_type_id,omitempty"`
}

// List handles GET /listings with optional filters:
// neighborhood, property_type, purpose, featured, limit, offset.
func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ListingFilter{
		NeighborhoodID: q.Get("neighborhood"),
		PropertyTypeID: q.Get("property_type"),
		Purpose:        q.Get("purpose"),
	}

	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			BadRequest(w, "featured must be a boolean")
			return
		}
		filter.Featured = &featured
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			BadRequest(w, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			BadRequest(w, "offset must be a non-negative integer")
			return
		}
		filter.Offset = offset
	}

	listings, err := h.store.ListListings(r.Context(), filter)
	if err != nil {
		InternalServerError(w, "failed to list listings")
		return
	}
	WriteJSONOK(w, listings)
}

// Get handles GET /listings/{id}.
func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.store.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			NotFound(w, "listing not found")
			return
		}
		InternalServerError(w, "failed to fetch listing")
		return
	}
	WriteJSONOK(w, listing)
}

// Create handles POST /listings.
// The authenticated identity becomes the listing owner.
func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		Unauthenticated(w)
		return
	}

	var req ListingRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	owner, err := h.store.GetUserByEmail(r.Context(), identity.Subject)
	if err != nil {
		Unauthenticated(w)
		return
	}

	listing := &models.Listing{
		Title:          req.Title,
		Description:    req.Description,
		Purpose:        req.Purpose,
		Price:          req.Price,
		Address:        req.Address,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		ParkingSpots:   req.ParkingSpots,
		AreaM2:         req.AreaM2,
		Featured:       req.Featured,
		NeighborhoodID: req.NeighborhoodID,
		PropertyTypeID: req.PropertyTypeID,
		OwnerID:        owner.ID,
	}
	if err := listing.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreateListing(r.Context(), listing); err != nil {
		InternalServerError(w, "failed to create listing")
		return
	}
	WriteJSONCreated(w, listing)
}

// Update handles PUT /listings/{id}.
func (h *ListingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	listing, err := h.store.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			NotFound(w, "listing not found")
			return
		}
		InternalServerError(w, "failed to fetch listing")
		return
	}

	var req ListingRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	listing.Title = req.Title
	listing.Description = req.Description
	listing.Purpose = req.Purpose
	listing.Price = req.Price
	listing.Address = req.Address
	listing.Bedrooms = req.Bedrooms
	listing.Bathrooms = req.Bathrooms
	listing.ParkingSpots = req.ParkingSpots
	listing.AreaM2 = req.AreaM2
	listing.Featured = req.Featured
	listing.NeighborhoodID = req.NeighborhoodID
	listing.PropertyTypeID = req.PropertyTypeID

	if err := listing.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdateListing(r.Context(), listing); err != nil {
		InternalServerError(w, "failed to update listing")
		return
	}
	WriteJSONOK(w, listing)
}

// Delete handles DELETE /listings/{id}.
func (h *ListingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteListing(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			NotFound(w, "listing not found")
			return
		}
		InternalServerError(w, "failed to delete listing")
		return
	}
	WriteNoContent(w)
}
