package domain

import (
	"fmt"
	"time"
)

type Action string

const (
	ActionView     Action = "view"
	ActionSave     Action = "save"
	ActionUnsave   Action = "unsave"
	ActionSearch   Action = "search"
	ActionTagClick Action = "tag_click"
)

// Interaction is an append-only record of a single user action. The store
// assigns ID monotonically, which doubles as the tie-break when two events
// share a created_at timestamp.
type Interaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Action      Action    `json:"action"`
	PlaceID     *int64    `json:"place_id,omitempty"`
	SearchTerms []string  `json:"search_terms,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the shape rules for an event before it is recorded:
// every action except search needs a place, and search needs at least
// one term.
func (i Interaction) Validate() error {
	switch i.Action {
	case ActionView, ActionSave, ActionUnsave, ActionTagClick:
		if i.PlaceID == nil {
			return fmt.Errorf("%w: action %q requires a place", ErrInvalidEvent, i.Action)
		}
	case ActionSearch:
		if len(i.SearchTerms) == 0 {
			return fmt.Errorf("%w: search requires at least one term", ErrInvalidEvent)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidEvent, i.Action)
	}
	return nil
}
