package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

type createUserRequest struct {
	ExternalID string `json:"external_id" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Picture    string `json:"picture"`
	Location   string `json:"location"`
}

// POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.service.CreateUser(r.Context(), domain.User{
		ExternalID: req.ExternalID,
		Username:   req.Username,
		Email:      req.Email,
		Picture:    req.Picture,
		Location:   req.Location,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GET /users/{userID}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}
	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GET /users/external/{externalID}
func (h *Handler) GetUserByExternalID(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "externalID")
	if externalID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid externalID parameter")
		return
	}
	user, err := h.service.GetUserByExternalID(r.Context(), externalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Picture  string `json:"picture"`
	Location string `json:"location"`
}

// PUT /users/{userID}. The external id is not updatable.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.service.UpdateUser(r.Context(), domain.User{
		ID:       userID,
		Username: req.Username,
		Email:    req.Email,
		Picture:  req.Picture,
		Location: req.Location,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /users/{userID}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}
	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
