package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
)

type placeRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	BestTimeToVisit string   `json:"best_time_to_visit"`
	Location        string   `json:"location" validate:"required"`
	Hashtags        []string `json:"hashtags"`
	Image           string   `json:"image"`
	OwnerID         int64    `json:"owner_id" validate:"required,gt=0"`
}

// POST /places
func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.service.CreatePlace(r.Context(), domain.Place{
		Name:            req.Name,
		Description:     req.Description,
		BestTimeToVisit: req.BestTimeToVisit,
		Location:        req.Location,
		Hashtags:        req.Hashtags,
		Image:           req.Image,
		OwnerID:         req.OwnerID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GET /places?page=&page_size=&q=
func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid_pagination", "Invalid page parameter")
			return
		}
		page = parsed
	}
	pageSize := 10
	if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
		parsed, err := strconv.Atoi(sizeStr)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_pagination", "Invalid page_size parameter")
			return
		}
		pageSize = parsed
	}

	result, err := h.service.ListPlaces(r.Context(), r.URL.Query().Get("q"), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /places/{placeID}
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	placeID, ok := parseIDParam(w, r, "placeID")
	if !ok {
		return
	}
	place, err := h.service.GetPlace(r.Context(), placeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// PUT /places/{placeID}
func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	placeID, ok := parseIDParam(w, r, "placeID")
	if !ok {
		return
	}

	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	// Owner is immutable; only the content fields are validated here.
	if req.Name == "" || req.Location == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name and location are required")
		return
	}

	updated, err := h.service.UpdatePlace(r.Context(), domain.Place{
		ID:              placeID,
		Name:            req.Name,
		Description:     req.Description,
		BestTimeToVisit: req.BestTimeToVisit,
		Location:        req.Location,
		Hashtags:        req.Hashtags,
		Image:           req.Image,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /places/{placeID}
func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	placeID, ok := parseIDParam(w, r, "placeID")
	if !ok {
		return
	}
	if err := h.service.DeletePlace(r.Context(), placeID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /users/{userID}/places
func (h *Handler) PlacesByOwner(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}
	places, err := h.service.PlacesByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// POST /users/{userID}/saved/{placeID}
func (h *Handler) TogglePlaceSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}
	placeID, ok := parseIDParam(w, r, "placeID")
	if !ok {
		return
	}

	saved, err := h.service.TogglePlaceSave(r.Context(), userID, placeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SaveToggleResponse{PlaceID: placeID, Saved: saved})
}
