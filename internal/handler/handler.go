package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Service is the application surface the handlers call. Implemented by
// *service.Service; defined here so handler tests can stub it.
type Service interface {
	GetRecommendations(ctx context.Context, userID int64, page, pageSize int, query string) (*domain.RecommendationPage, error)
	GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error)
	RecordInteraction(ctx context.Context, ev domain.Interaction) (domain.Interaction, error)
	RecentInteractions(ctx context.Context, userID int64, limit int) ([]domain.Interaction, error)
	TogglePlaceSave(ctx context.Context, userID, placeID int64) (bool, error)
	CreatePlace(ctx context.Context, p domain.Place) (domain.Place, error)
	GetPlace(ctx context.Context, id int64) (*domain.Place, error)
	UpdatePlace(ctx context.Context, p domain.Place) (*domain.Place, error)
	DeletePlace(ctx context.Context, id int64) error
	ListPlaces(ctx context.Context, query string, page, pageSize int) (*domain.PlacePage, error)
	PlacesByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error)
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(svc Service) *Handler {
	return &Handler{
		service:  svc,
		validate: validator.New(),
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// writeServiceError maps the domain error taxonomy onto HTTP codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "User does not exist")
	case errors.Is(err, domain.ErrPlaceNotFound):
		writeError(w, http.StatusNotFound, "place_not_found", "Place does not exist")
	case errors.Is(err, domain.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, "invalid_event", err.Error())
	case errors.Is(err, domain.ErrInvalidPagination):
		writeError(w, http.StatusBadRequest, "invalid_pagination", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "Backing store is temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "Request timed out, please try again")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
