package service

import (
	"context"
	"fmt"
	"log"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
)

func (s *Service) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	created, err := s.users.CreateUser(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (s *Service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	saved, err := s.users.SavedPlaceIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch saved places: %w", err)
	}
	user.SavedPlaceIDs = saved
	return user, nil
}

func (s *Service) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	return s.users.GetUserByExternalID(ctx, externalID)
}

func (s *Service) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	return s.users.UpdateUser(ctx, u)
}

// DeleteUser cascades through interactions, owned places, and saved-set
// rows in one transaction, then drops the user's cached pages. The cache
// clear is best effort; entries expire on their own anyway.
func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.users.DeleteUserCascade(ctx, userID); err != nil {
		return err
	}
	if err := s.cache.ClearUser(ctx, userID); err != nil {
		log.Printf("[service] cache invalidation error for deleted user %d: %v", userID, err)
	}
	return nil
}
