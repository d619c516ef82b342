package service

import (
	"context"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/crowdsourceapp/place-recommendation-service/internal/signal"
)

const (
	defaultPageSize  = 10
	maxPageSize      = 50
	maxRecentLimit   = 200
	batchConcurrency = 10
)

// Catalog is the read/write surface of the place store. The
// recommendation pipeline only uses the first three methods; the rest
// back the plain CRUD endpoints.
type Catalog interface {
	FindCandidates(ctx context.Context, q signal.CandidateQuery) ([]domain.Place, error)
	CountCandidates(ctx context.Context, q signal.CandidateQuery) (int, error)
	FindRecentExcluding(ctx context.Context, ownerID int64, skip, limit int) ([]domain.Place, error)
	CreatePlace(ctx context.Context, p domain.Place) (domain.Place, error)
	GetPlaceByID(ctx context.Context, id int64) (*domain.Place, error)
	UpdatePlace(ctx context.Context, p domain.Place) (*domain.Place, error)
	DeletePlace(ctx context.Context, id int64) error
	ListPlaces(ctx context.Context, query string, skip, limit int) ([]domain.Place, error)
	CountPlaces(ctx context.Context, query string) (int, error)
	PlacesByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error)
}

// Directory resolves and manages users and their saved-place sets.
type Directory interface {
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) (*domain.User, error)
	SavedPlaceIDs(ctx context.Context, userID int64) ([]int64, error)
	IsPlaceSaved(ctx context.Context, userID, placeID int64) (bool, error)
	AddSavedPlace(ctx context.Context, userID, placeID int64) error
	RemoveSavedPlace(ctx context.Context, userID, placeID int64) error
	CountUsers(ctx context.Context) (int, error)
	UserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	DeleteUserCascade(ctx context.Context, userID int64) error
}

// Interactions is the append-only interaction store.
type Interactions interface {
	Insert(ctx context.Context, ev domain.Interaction) (domain.Interaction, error)
	RecentByUser(ctx context.Context, userID int64, limit int) ([]domain.Interaction, error)
	DeleteByUser(ctx context.Context, userID int64) error
}

// PageCache caches whole recommendation pages. All cache errors are
// logged and bypassed, never surfaced to callers.
type PageCache interface {
	Get(ctx context.Context, userID int64, page, pageSize int, query string) (*domain.RecommendationPage, bool, error)
	Set(ctx context.Context, userID int64, page, pageSize int, query string, rec *domain.RecommendationPage) error
	ClearUser(ctx context.Context, userID int64) error
}

type Service struct {
	places        Catalog
	users         Directory
	interactions  Interactions
	cache         PageCache
	windowSize    int
	viewThreshold int
}

func NewService(places Catalog, users Directory, interactions Interactions, cache PageCache, windowSize, viewThreshold int) *Service {
	if windowSize < 1 {
		windowSize = signal.DefaultWindowSize
	}
	if viewThreshold < 1 {
		viewThreshold = signal.DefaultViewThreshold
	}
	return &Service{
		places:        places,
		users:         users,
		interactions:  interactions,
		cache:         cache,
		windowSize:    windowSize,
		viewThreshold: viewThreshold,
	}
}
