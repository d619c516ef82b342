package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/crowdsourceapp/place-recommendation-service/internal/signal"
)

// In-memory fakes mirroring the repository semantics closely enough for
// pipeline tests: the catalog applies the compound candidate filter the
// same way the SQL rendering does.

type fakeCatalog struct {
	places []domain.Place
	err    error
}

func (f *fakeCatalog) matches(p domain.Place, q signal.CandidateQuery) bool {
	if p.OwnerID == q.ExcludeOwnerID {
		return false
	}
	matched := false
	for _, id := range q.SavedPlaceIDs {
		if p.ID == id {
			matched = true
		}
	}
	for _, term := range q.SearchTerms {
		if containsFold(p.Name, term) || containsFold(p.Description, term) {
			matched = true
		}
	}
	for _, tag := range q.TagAffinity {
		for _, h := range p.Hashtags {
			if h == tag {
				matched = true
			}
		}
	}
	for _, id := range q.FrequentlyViewedIDs {
		if p.ID == id {
			matched = true
		}
	}
	if !matched {
		return false
	}
	if q.SearchQuery != "" &&
		!containsFold(p.Name, q.SearchQuery) &&
		!containsFold(p.Description, q.SearchQuery) &&
		!containsFold(p.Location, q.SearchQuery) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sortByRecency(places []domain.Place) {
	sort.SliceStable(places, func(i, j int) bool {
		if !places[i].CreatedAt.Equal(places[j].CreatedAt) {
			return places[i].CreatedAt.After(places[j].CreatedAt)
		}
		return places[i].ID > places[j].ID
	})
}

func pageOf(places []domain.Place, skip, limit int) []domain.Place {
	if skip >= len(places) {
		return nil
	}
	end := skip + limit
	if end > len(places) {
		end = len(places)
	}
	return places[skip:end]
}

func (f *fakeCatalog) candidates(q signal.CandidateQuery) []domain.Place {
	var out []domain.Place
	for _, p := range f.places {
		if f.matches(p, q) {
			out = append(out, p)
		}
	}
	sortByRecency(out)
	return out
}

func (f *fakeCatalog) FindCandidates(_ context.Context, q signal.CandidateQuery) ([]domain.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	return pageOf(f.candidates(q), q.Skip, q.Limit), nil
}

func (f *fakeCatalog) CountCandidates(_ context.Context, q signal.CandidateQuery) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.candidates(q)), nil
}

func (f *fakeCatalog) FindRecentExcluding(_ context.Context, ownerID int64, skip, limit int) ([]domain.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Place
	for _, p := range f.places {
		if p.OwnerID != ownerID {
			out = append(out, p)
		}
	}
	sortByRecency(out)
	return pageOf(out, skip, limit), nil
}

func (f *fakeCatalog) CreatePlace(_ context.Context, p domain.Place) (domain.Place, error) {
	if f.err != nil {
		return domain.Place{}, f.err
	}
	p.ID = int64(len(f.places) + 1)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.places = append(f.places, p)
	return p, nil
}

func (f *fakeCatalog) GetPlaceByID(_ context.Context, id int64) (*domain.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.places {
		if f.places[i].ID == id {
			p := f.places[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPlaceNotFound
}

func (f *fakeCatalog) UpdatePlace(_ context.Context, p domain.Place) (*domain.Place, error) {
	for i := range f.places {
		if f.places[i].ID == p.ID {
			p.OwnerID = f.places[i].OwnerID
			p.CreatedAt = f.places[i].CreatedAt
			p.UpdatedAt = time.Now()
			f.places[i] = p
			return &p, nil
		}
	}
	return nil, domain.ErrPlaceNotFound
}

func (f *fakeCatalog) DeletePlace(_ context.Context, id int64) error {
	for i := range f.places {
		if f.places[i].ID == id {
			f.places = append(f.places[:i], f.places[i+1:]...)
			return nil
		}
	}
	return domain.ErrPlaceNotFound
}

func (f *fakeCatalog) ListPlaces(_ context.Context, query string, skip, limit int) ([]domain.Place, error) {
	var out []domain.Place
	for _, p := range f.places {
		if query == "" || containsFold(p.Name, query) || containsFold(p.Description, query) || containsFold(p.Location, query) {
			out = append(out, p)
		}
	}
	sortByRecency(out)
	return pageOf(out, skip, limit), nil
}

func (f *fakeCatalog) CountPlaces(_ context.Context, query string) (int, error) {
	out, _ := f.ListPlaces(context.Background(), query, 0, len(f.places)+1)
	return len(out), nil
}

func (f *fakeCatalog) PlacesByOwner(_ context.Context, ownerID int64) ([]domain.Place, error) {
	var out []domain.Place
	for _, p := range f.places {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sortByRecency(out)
	return out, nil
}

type fakeDirectory struct {
	users map[int64]domain.User
	saved map[int64]map[int64]bool
	err   error
}

func newFakeDirectory(users ...domain.User) *fakeDirectory {
	d := &fakeDirectory{users: map[int64]domain.User{}, saved: map[int64]map[int64]bool{}}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (f *fakeDirectory) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	u.ID = int64(len(f.users) + 1)
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeDirectory) GetUserByID(_ context.Context, userID int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeDirectory) GetUserByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ExternalID == externalID {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeDirectory) UpdateUser(_ context.Context, u domain.User) (*domain.User, error) {
	existing, ok := f.users[u.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.ExternalID = existing.ExternalID
	u.CreatedAt = existing.CreatedAt
	f.users[u.ID] = u
	return &u, nil
}

func (f *fakeDirectory) SavedPlaceIDs(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for id, ok := range f.saved[userID] {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeDirectory) IsPlaceSaved(_ context.Context, userID, placeID int64) (bool, error) {
	return f.saved[userID][placeID], nil
}

func (f *fakeDirectory) AddSavedPlace(_ context.Context, userID, placeID int64) error {
	if f.saved[userID] == nil {
		f.saved[userID] = map[int64]bool{}
	}
	f.saved[userID][placeID] = true
	return nil
}

func (f *fakeDirectory) RemoveSavedPlace(_ context.Context, userID, placeID int64) error {
	delete(f.saved[userID], placeID)
	return nil
}

func (f *fakeDirectory) CountUsers(_ context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeDirectory) UserIDsPaginated(_ context.Context, page, limit int) ([]int64, error) {
	var ids []int64
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	skip := (page - 1) * limit
	if skip >= len(ids) {
		return nil, nil
	}
	end := skip + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[skip:end], nil
}

func (f *fakeDirectory) DeleteUserCascade(_ context.Context, userID int64) error {
	if _, ok := f.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, userID)
	delete(f.saved, userID)
	return nil
}

type fakeInteractions struct {
	events []domain.Interaction
	nextID int64
	err    error
}

func (f *fakeInteractions) Insert(_ context.Context, ev domain.Interaction) (domain.Interaction, error) {
	if f.err != nil {
		return domain.Interaction{}, f.err
	}
	f.nextID++
	ev.ID = f.nextID
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeInteractions) RecentByUser(_ context.Context, userID int64, limit int) ([]domain.Interaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Interaction
	for _, ev := range f.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeInteractions) DeleteByUser(_ context.Context, userID int64) error {
	var kept []domain.Interaction
	for _, ev := range f.events {
		if ev.UserID != userID {
			kept = append(kept, ev)
		}
	}
	f.events = kept
	return nil
}

type fakeCache struct {
	pages      map[string]*domain.RecommendationPage
	clearCalls int
	disabled   bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{pages: map[string]*domain.RecommendationPage{}}
}

func cacheKey(userID int64, page, pageSize int, query string) string {
	return fmt.Sprintf("%d|%d|%d|%s", userID, page, pageSize, query)
}

func (f *fakeCache) Get(_ context.Context, userID int64, page, pageSize int, query string) (*domain.RecommendationPage, bool, error) {
	if f.disabled {
		return nil, false, nil
	}
	rec, ok := f.pages[cacheKey(userID, page, pageSize, query)]
	return rec, ok, nil
}

func (f *fakeCache) Set(_ context.Context, userID int64, page, pageSize int, query string, rec *domain.RecommendationPage) error {
	if f.disabled {
		return nil
	}
	f.pages[cacheKey(userID, page, pageSize, query)] = rec
	return nil
}

func (f *fakeCache) ClearUser(_ context.Context, userID int64) error {
	f.clearCalls++
	prefix := fmt.Sprintf("%d|", userID)
	for k := range f.pages {
		if strings.HasPrefix(k, prefix) {
			delete(f.pages, k)
		}
	}
	return nil
}
