package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/morada-labs/morada/pkg/listing/models"
	"github.com/morada-labs/morada/pkg/listing/store"
)

// PhotosHandler handles listing photo metadata endpoints.
// Binary upload and storage happen elsewhere; this tracks file names,
// paths, ordering and the cover flag.
type PhotosHandler struct {
	store store.Store
}

// NewPhotosHandler creates a new PhotosHandler.
func NewPhotosHandler(s store.Store) *PhotosHandler {
	return &PhotosHandler{store: s}
}

// PhotoRequest is the request body for adding a photo record.
type PhotoRequest struct {
	FileName string `json:"file_name"`
	Path     string `json:"path"`
	Cover    bool   `json:"cover,omitempty"`
	Position int    `json:"position,omitempty"`
}

// List handles GET /listings/{id}/photos.
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	if _, err := h.store.GetListing(r.Context(), listingID); err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			NotFound(w, "listing not found")
			return
		}
		InternalServerError(w, "failed to fetch listing")
		return
	}

	photos, err := h.store.ListPhotos(r.Context(), listingID)
	if err != nil {
		InternalServerError(w, "failed to list photos")
		return
	}
	WriteJSONOK(w, photos)
}

// Create handles POST /listings/{id}/photos.
func (h *PhotosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PhotoRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	photo := &models.Photo{
		ListingID: chi.URLParam(r, "id"),
		FileName:  req.FileName,
		Path:      req.Path,
		Cover:     req.Cover,
		Position:  req.Position,
	}
	if err := photo.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreatePhoto(r.Context(), photo); err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			NotFound(w, "listing not found")
			return
		}
		InternalServerError(w, "failed to create photo")
		return
	}

	if photo.Cover {
		if err := h.store.SetCoverPhoto(r.Context(), photo.ListingID, photo.ID); err != nil {
			InternalServerError(w, "failed to set cover photo")
			return
		}
	}
	WriteJSONCreated(w, photo)
}

// SetCover handles PUT /listings/{id}/photos/{photoID}/cover.
func (h *PhotosHandler) SetCover(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoID")

	if err := h.store.SetCoverPhoto(r.Context(), listingID, photoID); err != nil {
		if errors.Is(err, models.ErrPhotoNotFound) {
			NotFound(w, "photo not found")
			return
		}
		InternalServerError(w, "failed to set cover photo")
		return
	}
	WriteNoContent(w)
}

// Delete handles DELETE /listings/{id}/photos/{photoID}.
func (h *PhotosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePhoto(r.Context(), chi.URLParam(r, "photoID")); err != nil {
		if errors.Is(err, models.ErrPhotoNotFound) {
			NotFound(w, "photo not found")
			return
		}
		InternalServerError(w, "failed to delete photo")
		return
	}
	WriteNoContent(w)
}
