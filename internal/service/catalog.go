package service

import (
	"context"
	"fmt"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
)

// Plain catalog operations. These are pass-throughs with pagination
// bookkeeping; the decision logic all lives in the recommendation path.

func (s *Service) CreatePlace(ctx context.Context, p domain.Place) (domain.Place, error) {
	if _, err := s.users.GetUserByID(ctx, p.OwnerID); err != nil {
		return domain.Place{}, err
	}
	created, err := s.places.CreatePlace(ctx, p)
	if err != nil {
		return domain.Place{}, fmt.Errorf("create place: %w", err)
	}
	return created, nil
}

func (s *Service) GetPlace(ctx context.Context, id int64) (*domain.Place, error) {
	return s.places.GetPlaceByID(ctx, id)
}

// UpdatePlace never touches the owner: ownership is immutable after
// creation, so the stored owner wins over whatever the caller sent.
func (s *Service) UpdatePlace(ctx context.Context, p domain.Place) (*domain.Place, error) {
	return s.places.UpdatePlace(ctx, p)
}

func (s *Service) DeletePlace(ctx context.Context, id int64) error {
	return s.places.DeletePlace(ctx, id)
}

func (s *Service) ListPlaces(ctx context.Context, query string, page, pageSize int) (*domain.PlacePage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidPagination, page)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidPagination, pageSize)
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	skip := (page - 1) * pageSize

	places, err := s.places.ListPlaces(ctx, query, skip, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	total, err := s.places.CountPlaces(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count places: %w", err)
	}

	return &domain.PlacePage{
		Places:  places,
		HasNext: total > skip+len(places),
	}, nil
}

func (s *Service) PlacesByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.places.PlacesByOwner(ctx, ownerID)
}
