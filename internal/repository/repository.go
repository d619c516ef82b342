package repository

import (
	"fmt"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// storeErr wraps an infrastructure failure so callers can test for
// domain.ErrStoreUnavailable while keeping the underlying cause in the
// message.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
