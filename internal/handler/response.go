package handler

import "github.com/crowdsourceapp/place-recommendation-service/internal/domain"

type RecommendationResponse struct {
	UserID   int64                     `json:"user_id"`
	Places   []domain.Place            `json:"places"`
	HasNext  bool                      `json:"has_next"`
	Fallback bool                      `json:"fallback"`
	Metadata domain.RecommendationMeta `json:"metadata"`
}

type InteractionsResponse struct {
	UserID       int64                `json:"user_id"`
	Interactions []domain.Interaction `json:"interactions"`
}

type SaveToggleResponse struct {
	PlaceID int64 `json:"place_id"`
	Saved   bool  `json:"saved"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
