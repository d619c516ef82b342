package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
)

type recordInteractionRequest struct {
	UserID      int64    `json:"user_id" validate:"required,gt=0"`
	Action      string   `json:"action" validate:"required,oneof=view save unsave search tag_click"`
	PlaceID     *int64   `json:"place_id,omitempty" validate:"omitempty,gt=0"`
	SearchTerms []string `json:"search_terms,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// POST /interactions
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var req recordInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_event", "Malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_event", err.Error())
		return
	}

	ev, err := h.service.RecordInteraction(r.Context(), domain.Interaction{
		UserID:      req.UserID,
		Action:      domain.Action(req.Action),
		PlaceID:     req.PlaceID,
		SearchTerms: req.SearchTerms,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ev)
}

// GET /users/{userID}/interactions?limit=
func (h *Handler) GetRecentInteractions(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 200 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	events, err := h.service.RecentInteractions(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, InteractionsResponse{
		UserID:       userID,
		Interactions: events,
	})
}
