package domain

import "time"

type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Picture    string    `json:"picture,omitempty"`
	Location   string    `json:"location,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Saved place ids, populated only when the caller asks for them.
	SavedPlaceIDs []int64 `json:"saved_place_ids,omitempty"`
}
