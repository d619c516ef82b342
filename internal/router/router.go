package router

import (
	"net/http"
	"time"

	"github.com/crowdsourceapp/place-recommendation-service/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Engine boundary
	r.Post("/interactions", h.RecordInteraction)
	r.Get("/users/{userID}/recommendations", h.GetRecommendations)
	r.Get("/users/{userID}/interactions", h.GetRecentInteractions)
	r.Get("/recommendations/batch", h.GetBatchRecommendations)

	// Place catalog
	r.Post("/places", h.CreatePlace)
	r.Get("/places", h.ListPlaces)
	r.Get("/places/{placeID}", h.GetPlace)
	r.Put("/places/{placeID}", h.UpdatePlace)
	r.Delete("/places/{placeID}", h.DeletePlace)
	r.Get("/users/{userID}/places", h.PlacesByOwner)
	r.Post("/users/{userID}/saved/{placeID}", h.TogglePlaceSave)

	// User directory
	r.Post("/users", h.CreateUser)
	r.Get("/users/{userID}", h.GetUser)
	r.Get("/users/external/{externalID}", h.GetUserByExternalID)
	r.Put("/users/{userID}", h.UpdateUser)
	r.Delete("/users/{userID}", h.DeleteUser)

	r.Get("/health", healthCheck)

	return r
}

// requestID echoes the caller's request id or mints one, so log lines
// from one request can be correlated.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, rid)
		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
