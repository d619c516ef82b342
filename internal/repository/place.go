package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/crowdsourceapp/place-recommendation-service/internal/signal"
	"github.com/jackc/pgx/v5"
)

const placeColumns = `id, name, description, best_time_to_visit, location, hashtags, image, owner_id, created_at, updated_at`

// likeEscaper neutralizes LIKE metacharacters in user-supplied text so a
// term like "100%" matches the literal string, not everything.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// candidateFilter renders a CandidateQuery as one WHERE clause. All four
// tiers are OR'd inside a single predicate so a place matching several
// tiers is returned once, then intersected with the owner exclusion and
// the optional free-text query.
func candidateFilter(q signal.CandidateQuery) (string, []any) {
	args := []any{q.ExcludeOwnerID}
	conds := []string{"owner_id <> $1"}

	var tiers []string
	if len(q.SavedPlaceIDs) > 0 {
		args = append(args, q.SavedPlaceIDs)
		tiers = append(tiers, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	for _, term := range q.SearchTerms {
		args = append(args, likePattern(term))
		n := len(args)
		tiers = append(tiers, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if len(q.TagAffinity) > 0 {
		args = append(args, q.TagAffinity)
		tiers = append(tiers, fmt.Sprintf("hashtags && $%d", len(args)))
	}
	if len(q.FrequentlyViewedIDs) > 0 {
		args = append(args, q.FrequentlyViewedIDs)
		tiers = append(tiers, fmt.Sprintf("id = ANY($%d)", len(args)))
	}

	if len(tiers) == 0 {
		// No signal can match; render a filter that returns nothing so
		// callers that skip the HasSignals check still behave.
		conds = append(conds, "FALSE")
	} else {
		conds = append(conds, "("+strings.Join(tiers, " OR ")+")")
	}

	if q.SearchQuery != "" {
		args = append(args, likePattern(q.SearchQuery))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", n, n, n))
	}

	return strings.Join(conds, " AND "), args
}

// FindCandidates executes the tiered candidate query, newest place first.
func (r *Repository) FindCandidates(ctx context.Context, q signal.CandidateQuery) ([]domain.Place, error) {
	where, args := candidateFilter(q)
	args = append(args, q.Limit, q.Skip)
	sql := fmt.Sprintf(
		`SELECT %s FROM places WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		placeColumns, where, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeErr("query candidate places", err)
	}
	defer rows.Close()
	return scanPlaces(rows)
}

// CountCandidates counts all matches of the tiered filter, ignoring the
// skip/limit window, so the paginator can compute has_next.
func (r *Repository) CountCandidates(ctx context.Context, q signal.CandidateQuery) (int, error) {
	where, args := candidateFilter(q)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM places WHERE `+where, args...).Scan(&total)
	if err != nil {
		return 0, storeErr("count candidate places", err)
	}
	return total, nil
}

// FindRecentExcluding is the fallback listing: other users' places by
// recency, no signal filtering.
func (r *Repository) FindRecentExcluding(ctx context.Context, ownerID int64, skip, limit int) ([]domain.Place, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM places WHERE owner_id <> $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		placeColumns), ownerID, limit, skip,
	)
	if err != nil {
		return nil, storeErr("query recent places", err)
	}
	defer rows.Close()
	return scanPlaces(rows)
}

func (r *Repository) CreatePlace(ctx context.Context, p domain.Place) (domain.Place, error) {
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO places (name, description, best_time_to_visit, location, hashtags, image, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.BestTimeToVisit, p.Location, p.Hashtags, p.Image, p.OwnerID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Place{}, storeErr("insert place", err)
	}
	return p, nil
}

func (r *Repository) GetPlaceByID(ctx context.Context, id int64) (*domain.Place, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM places WHERE id = $1`, placeColumns), id)
	p, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, storeErr(fmt.Sprintf("query place id=%d", id), err)
	}
	return p, nil
}

func (r *Repository) UpdatePlace(ctx context.Context, p domain.Place) (*domain.Place, error) {
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	row := r.pool.QueryRow(ctx, fmt.Sprintf(
		`UPDATE places
		 SET name = $1, description = $2, best_time_to_visit = $3, location = $4, hashtags = $5, image = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING %s`, placeColumns),
		p.Name, p.Description, p.BestTimeToVisit, p.Location, p.Hashtags, p.Image, p.ID,
	)
	updated, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, storeErr(fmt.Sprintf("update place id=%d", p.ID), err)
	}
	return updated, nil
}

func (r *Repository) DeletePlace(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return storeErr(fmt.Sprintf("delete place id=%d", id), err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlaceNotFound
	}
	return nil
}

// ListPlaces is the plain catalog listing with optional free-text search,
// newest first.
func (r *Repository) ListPlaces(ctx context.Context, query string, skip, limit int) ([]domain.Place, error) {
	where, args := listFilter(query)
	args = append(args, limit, skip)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM places WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		placeColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, storeErr("query places", err)
	}
	defer rows.Close()
	return scanPlaces(rows)
}

func (r *Repository) CountPlaces(ctx context.Context, query string) (int, error) {
	where, args := listFilter(query)
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM places WHERE `+where, args...).Scan(&total); err != nil {
		return 0, storeErr("count places", err)
	}
	return total, nil
}

func listFilter(query string) (string, []any) {
	if query == "" {
		return "TRUE", nil
	}
	return "(name ILIKE $1 OR description ILIKE $1 OR location ILIKE $1)", []any{likePattern(query)}
}

func (r *Repository) PlacesByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM places WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`,
		placeColumns), ownerID)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("query places for owner %d", ownerID), err)
	}
	defer rows.Close()
	return scanPlaces(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlace(row rowScanner) (*domain.Place, error) {
	var p domain.Place
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.BestTimeToVisit, &p.Location,
		&p.Hashtags, &p.Image, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlaces(rows pgx.Rows) ([]domain.Place, error) {
	var places []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, storeErr("scan place", err)
		}
		places = append(places, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate places", err)
	}
	return places, nil
}
