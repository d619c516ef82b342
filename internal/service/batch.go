package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
)

// GetBatchRecommendations produces the first recommendation page for a
// page of users, used for cache warming and admin inspection. Users are
// processed concurrently behind a bounded semaphore; per-user failures
// are captured in the result rather than failing the batch.
func (s *Service) GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.users.UserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}
	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency)

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = s.processUserForBatch(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
	}, nil
}

func (s *Service) processUserForBatch(ctx context.Context, userID int64) domain.BatchUserResult {
	rec, err := s.GetRecommendations(ctx, userID, 1, defaultPageSize, "")
	if err != nil {
		log.Printf("[service] batch: failed for user %d: %v", userID, err)
		return domain.BatchUserResult{
			UserID: userID,
			Status: domain.StatusFailed,
			Error:  categorizeError(err),
		}
	}
	return domain.BatchUserResult{
		UserID: userID,
		Places: rec.Places,
		Status: domain.StatusSuccess,
	}
}

func categorizeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, domain.ErrInvalidPagination):
		return "invalid_pagination"
	default:
		return "internal_error"
	}
}
