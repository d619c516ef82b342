package service

import (
	"context"
	"fmt"
	"log"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
)

// RecordInteraction validates and appends one event, then drops the
// user's cached pages since any new event can shift their signals.
func (s *Service) RecordInteraction(ctx context.Context, ev domain.Interaction) (domain.Interaction, error) {
	if err := ev.Validate(); err != nil {
		return domain.Interaction{}, err
	}

	stored, err := s.interactions.Insert(ctx, ev)
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("record interaction: %w", err)
	}

	if err := s.cache.ClearUser(ctx, ev.UserID); err != nil {
		log.Printf("[service] cache invalidation error for user %d: %v", ev.UserID, err)
	}
	return stored, nil
}

// RecentInteractions exposes the raw window for observability and tests.
func (s *Service) RecentInteractions(ctx context.Context, userID int64, limit int) ([]domain.Interaction, error) {
	if limit <= 0 {
		limit = s.windowSize
	} else if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	events, err := s.interactions.RecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch interactions: %w", err)
	}
	return events, nil
}

// TogglePlaceSave flips saved-set membership and appends the matching
// save/unsave event. The two writes are sequential, not atomic: a rapid
// double-toggle can race, worst case one extra or missing flip, which the
// next toggle corrects.
func (s *Service) TogglePlaceSave(ctx context.Context, userID, placeID int64) (bool, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return false, err
	}
	place, err := s.places.GetPlaceByID(ctx, placeID)
	if err != nil {
		return false, err
	}

	saved, err := s.users.IsPlaceSaved(ctx, userID, placeID)
	if err != nil {
		return false, fmt.Errorf("check saved place: %w", err)
	}

	action := domain.ActionSave
	if saved {
		action = domain.ActionUnsave
		if err := s.users.RemoveSavedPlace(ctx, userID, placeID); err != nil {
			return false, fmt.Errorf("unsave place: %w", err)
		}
	} else {
		if err := s.users.AddSavedPlace(ctx, userID, placeID); err != nil {
			return false, fmt.Errorf("save place: %w", err)
		}
	}

	// The event carries the place's hashtags so tag affinity picks up
	// saves of tagged places, not just tag clicks.
	if _, err := s.RecordInteraction(ctx, domain.Interaction{
		UserID:  userID,
		Action:  action,
		PlaceID: &placeID,
		Tags:    place.Hashtags,
	}); err != nil {
		return false, err
	}

	return !saved, nil
}
