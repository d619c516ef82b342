package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GET /users/{userID}/recommendations?page=&page_size=&q=
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}

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

	query := r.URL.Query().Get("q")

	rec, err := h.service.GetRecommendations(r.Context(), userID, page, pageSize, query)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		UserID:   userID,
		Places:   rec.Places,
		HasNext:  rec.HasNext,
		Fallback: rec.Fallback,
		Metadata: domain.RecommendationMeta{
			CacheHit:    rec.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Count:       len(rec.Places),
		},
	})
}

// parseIDParam reads a positive int64 URL parameter, writing a 400 on
// failure.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
