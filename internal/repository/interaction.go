package repository

import (
	"context"
	"fmt"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
)

// Insert appends one interaction event. The store assigns id and
// created_at; nothing here ever updates an existing row.
func (r *Repository) Insert(ctx context.Context, ev domain.Interaction) (domain.Interaction, error) {
	// Array columns are NOT NULL; nil slices would write SQL NULL.
	if ev.SearchTerms == nil {
		ev.SearchTerms = []string{}
	}
	if ev.Tags == nil {
		ev.Tags = []string{}
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO interactions (user_id, action, place_id, search_terms, tags)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		ev.UserID, ev.Action, ev.PlaceID, ev.SearchTerms, ev.Tags,
	).Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		return domain.Interaction{}, storeErr("insert interaction", err)
	}
	return ev, nil
}

// RecentByUser returns the limit most-recent events for a user, newest
// first. Ties on created_at break by the store-assigned id so same-instant
// events have a stable order.
func (r *Repository) RecentByUser(ctx context.Context, userID int64, limit int) ([]domain.Interaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, action, place_id, search_terms, tags, created_at
		 FROM interactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("query interactions for user %d", userID), err)
	}
	defer rows.Close()

	var events []domain.Interaction
	for rows.Next() {
		var ev domain.Interaction
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Action, &ev.PlaceID, &ev.SearchTerms, &ev.Tags, &ev.CreatedAt); err != nil {
			return nil, storeErr("scan interaction", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate interactions", err)
	}
	return events, nil
}

// DeleteByUser exists only for the account-deletion cascade.
func (r *Repository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM interactions WHERE user_id = $1`, userID); err != nil {
		return storeErr(fmt.Sprintf("delete interactions for user %d", userID), err)
	}
	return nil
}
