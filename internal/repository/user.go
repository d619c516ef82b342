package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, external_id, username, email, picture, location, created_at`

func (r *Repository) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (external_id, username, email, picture, location)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.ExternalID, u.Username, u.Email, u.Picture, u.Location,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return domain.User{}, storeErr("insert user", err)
	}
	return u, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user := &domain.User{}
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), userID,
	).Scan(&user.ID, &user.ExternalID, &user.Username, &user.Email, &user.Picture, &user.Location, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(fmt.Sprintf("query user id=%d", userID), err)
	}
	return user, nil
}

// GetUserByExternalID resolves the identity the auth layer hands us to a
// local user record.
func (r *Repository) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	user := &domain.User{}
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE external_id = $1`, userColumns), externalID,
	).Scan(&user.ID, &user.ExternalID, &user.Username, &user.Email, &user.Picture, &user.Location, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(fmt.Sprintf("query user external_id=%s", externalID), err)
	}
	return user, nil
}

// UpdateUser rewrites the profile fields. The external id is the auth
// identity and never changes here.
func (r *Repository) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	updated := &domain.User{}
	err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`UPDATE users
		 SET username = $1, email = $2, picture = $3, location = $4
		 WHERE id = $5
		 RETURNING %s`, userColumns),
		u.Username, u.Email, u.Picture, u.Location, u.ID,
	).Scan(&updated.ID, &updated.ExternalID, &updated.Username, &updated.Email, &updated.Picture, &updated.Location, &updated.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(fmt.Sprintf("update user id=%d", u.ID), err)
	}
	return updated, nil
}

// SavedPlaceIDs lists the user's saved set, most recently saved first.
func (r *Repository) SavedPlaceIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT place_id FROM saved_places WHERE user_id = $1 ORDER BY saved_at DESC`, userID)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("query saved places for user %d", userID), err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("scan saved place id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate saved place ids", err)
	}
	return ids, nil
}

func (r *Repository) IsPlaceSaved(ctx context.Context, userID, placeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_places WHERE user_id = $1 AND place_id = $2)`,
		userID, placeID,
	).Scan(&exists)
	if err != nil {
		return false, storeErr("check saved place", err)
	}
	return exists, nil
}

func (r *Repository) AddSavedPlace(ctx context.Context, userID, placeID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO saved_places (user_id, place_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, placeID)
	if err != nil {
		return storeErr("add saved place", err)
	}
	return nil
}

func (r *Repository) RemoveSavedPlace(ctx context.Context, userID, placeID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM saved_places WHERE user_id = $1 AND place_id = $2`, userID, placeID)
	if err != nil {
		return storeErr("remove saved place", err)
	}
	return nil
}

// CountUsers and UserIDsPaginated back the batch endpoint.
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, storeErr("count users", err)
	}
	return total, nil
}

func (r *Repository) UserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("query user ids for page %d", page), err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("scan user id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate user ids", err)
	}
	return ids, nil
}

// DeleteUserCascade removes a user together with their interactions,
// owned places, and saved-set rows in one transaction. Either everything
// goes or nothing does.
func (r *Repository) DeleteUserCascade(ctx context.Context, userID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin delete user", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM interactions WHERE user_id = $1`, userID); err != nil {
		return storeErr("delete interactions", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM saved_places
		 WHERE user_id = $1
		    OR place_id IN (SELECT id FROM places WHERE owner_id = $1)`, userID); err != nil {
		return storeErr("delete saved-place rows", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM places WHERE owner_id = $1`, userID); err != nil {
		return storeErr("delete owned places", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return storeErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit delete user", err)
	}
	return nil
}
