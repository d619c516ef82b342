package service

import (
	"context"
	"fmt"
	"log"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/crowdsourceapp/place-recommendation-service/internal/signal"
)

// GetRecommendations runs the pipeline: resolve the user, read the recent
// window, extract signals, run the tiered candidate query, paginate, and
// fall back to a plain recency listing when nothing matches. Any store
// failure aborts the whole request; the only degraded path is the
// deliberate fallback.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, page, pageSize int, query string) (*domain.RecommendationPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidPagination, page)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidPagination, pageSize)
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	cached, hit, err := s.cache.Get(ctx, userID, page, pageSize, query)
	if err != nil {
		log.Printf("[service] cache get error for user %d: %v", userID, err)
	}
	if hit {
		page := *cached
		page.CacheHit = true
		return &page, nil
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	events, err := s.interactions.RecentByUser(ctx, userID, s.windowSize)
	if err != nil {
		return nil, fmt.Errorf("fetch interaction window: %w", err)
	}

	sig := signal.Extract(events, s.viewThreshold)
	skip := (page - 1) * pageSize
	q := signal.BuildQuery(userID, sig, query, skip, pageSize)

	rec, err := s.rankedPage(ctx, q)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, userID, page, pageSize, query, rec); cacheErr != nil {
		log.Printf("[service] cache set error for user %d: %v", userID, cacheErr)
	}
	return rec, nil
}

// rankedPage executes the tiered query and switches to fallback at most
// once, when no candidate survives the page window.
func (s *Service) rankedPage(ctx context.Context, q signal.CandidateQuery) (*domain.RecommendationPage, error) {
	if !q.HasSignals() {
		return s.fallbackPage(ctx, q)
	}

	places, err := s.places.FindCandidates(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	if len(places) == 0 {
		return s.fallbackPage(ctx, q)
	}

	total, err := s.places.CountCandidates(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count candidates: %w", err)
	}

	return &domain.RecommendationPage{
		Places:  places,
		HasNext: total > q.Skip+len(places),
	}, nil
}

// fallbackPage is the plain recency listing of other users' places for
// the same window. It is a single best-effort page: has_next is false by
// definition, so no count query runs here.
func (s *Service) fallbackPage(ctx context.Context, q signal.CandidateQuery) (*domain.RecommendationPage, error) {
	places, err := s.places.FindRecentExcluding(ctx, q.ExcludeOwnerID, q.Skip, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("query fallback page: %w", err)
	}
	return &domain.RecommendationPage{
		Places:   places,
		HasNext:  false,
		Fallback: true,
	}, nil
}
