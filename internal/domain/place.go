package domain

import "time"

type Place struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	BestTimeToVisit string    `json:"best_time_to_visit,omitempty"`
	Location        string    `json:"location"`
	Hashtags        []string  `json:"hashtags"`
	Image           string    `json:"image,omitempty"`
	OwnerID         int64     `json:"owner_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
