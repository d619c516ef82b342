package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/crowdsourceapp/place-recommendation-service/internal/handler"
	"github.com/crowdsourceapp/place-recommendation-service/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService lets each test wire only the methods it exercises.
type stubService struct {
	recommendations func(userID int64, page, pageSize int, query string) (*domain.RecommendationPage, error)
	record          func(ev domain.Interaction) (domain.Interaction, error)
	recent          func(userID int64, limit int) ([]domain.Interaction, error)
	toggle          func(userID, placeID int64) (bool, error)
	getUser         func(userID int64) (*domain.User, error)
	updateUser      func(u domain.User) (*domain.User, error)
}

func (s *stubService) GetRecommendations(_ context.Context, userID int64, page, pageSize int, query string) (*domain.RecommendationPage, error) {
	return s.recommendations(userID, page, pageSize, query)
}

func (s *stubService) GetBatchRecommendations(context.Context, int, int) (*domain.BatchResponse, error) {
	return &domain.BatchResponse{}, nil
}

func (s *stubService) RecordInteraction(_ context.Context, ev domain.Interaction) (domain.Interaction, error) {
	return s.record(ev)
}

func (s *stubService) RecentInteractions(_ context.Context, userID int64, limit int) ([]domain.Interaction, error) {
	return s.recent(userID, limit)
}

func (s *stubService) TogglePlaceSave(_ context.Context, userID, placeID int64) (bool, error) {
	return s.toggle(userID, placeID)
}

func (s *stubService) CreatePlace(_ context.Context, p domain.Place) (domain.Place, error) {
	p.ID = 1
	return p, nil
}

func (s *stubService) GetPlace(context.Context, int64) (*domain.Place, error) {
	return nil, domain.ErrPlaceNotFound
}

func (s *stubService) UpdatePlace(_ context.Context, p domain.Place) (*domain.Place, error) {
	return &p, nil
}

func (s *stubService) DeletePlace(context.Context, int64) error { return nil }

func (s *stubService) ListPlaces(context.Context, string, int, int) (*domain.PlacePage, error) {
	return &domain.PlacePage{}, nil
}

func (s *stubService) PlacesByOwner(context.Context, int64) ([]domain.Place, error) {
	return nil, nil
}

func (s *stubService) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	u.ID = 1
	return u, nil
}

func (s *stubService) GetUser(_ context.Context, userID int64) (*domain.User, error) {
	return s.getUser(userID)
}

func (s *stubService) GetUserByExternalID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubService) UpdateUser(_ context.Context, u domain.User) (*domain.User, error) {
	if s.updateUser != nil {
		return s.updateUser(u)
	}
	return &u, nil
}

func (s *stubService) DeleteUser(context.Context, int64) error { return nil }

func serve(t *testing.T, svc handler.Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.Setup(handler.NewHandler(svc)).ServeHTTP(rr, req)
	return rr
}

func TestGetRecommendationsOK(t *testing.T) {
	svc := &stubService{
		recommendations: func(userID int64, page, pageSize int, query string) (*domain.RecommendationPage, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, pageSize)
			assert.Equal(t, "sushi", query)
			return &domain.RecommendationPage{
				Places:  []domain.Place{{ID: 3, Name: "Harbor Grill"}},
				HasNext: true,
			}, nil
		},
	}

	rr := serve(t, svc, http.MethodGet, "/users/7/recommendations?page=2&page_size=5&q=sushi", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp handler.RecommendationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.UserID)
	assert.True(t, resp.HasNext)
	assert.Equal(t, 1, resp.Metadata.Count)
	assert.False(t, resp.Metadata.CacheHit)
}

func TestGetRecommendationsReportsCacheHit(t *testing.T) {
	svc := &stubService{
		recommendations: func(int64, int, int, string) (*domain.RecommendationPage, error) {
			return &domain.RecommendationPage{
				Places:   []domain.Place{{ID: 3, Name: "Harbor Grill"}},
				CacheHit: true,
			}, nil
		},
	}

	rr := serve(t, svc, http.MethodGet, "/users/7/recommendations", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp handler.RecommendationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Metadata.CacheHit)
}

func TestGetRecommendationsBadParams(t *testing.T) {
	svc := &stubService{}

	rr := serve(t, svc, http.MethodGet, "/users/abc/recommendations", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, svc, http.MethodGet, "/users/7/recommendations?page=0", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, svc, http.MethodGet, "/users/7/recommendations?page_size=99", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetRecommendationsErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{domain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"},
		{domain.ErrInvalidPagination, http.StatusBadRequest, "invalid_pagination"},
	}
	for _, tc := range cases {
		svc := &stubService{
			recommendations: func(int64, int, int, string) (*domain.RecommendationPage, error) {
				return nil, tc.err
			},
		}
		rr := serve(t, svc, http.MethodGet, "/users/7/recommendations", "")
		assert.Equal(t, tc.code, rr.Code)
		assert.Contains(t, rr.Body.String(), tc.body)
	}
}

func TestRecordInteractionCreated(t *testing.T) {
	svc := &stubService{
		record: func(ev domain.Interaction) (domain.Interaction, error) {
			assert.Equal(t, domain.ActionView, ev.Action)
			require.NotNil(t, ev.PlaceID)
			assert.Equal(t, int64(3), *ev.PlaceID)
			ev.ID = 10
			return ev, nil
		},
	}

	rr := serve(t, svc, http.MethodPost, "/interactions", `{"user_id":7,"action":"view","place_id":3}`)
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestRecordInteractionRejectsBadBody(t *testing.T) {
	svc := &stubService{}

	rr := serve(t, svc, http.MethodPost, "/interactions", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Unknown action fails validation before the service is reached.
	rr = serve(t, svc, http.MethodPost, "/interactions", `{"user_id":7,"action":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, svc, http.MethodPost, "/interactions", `{"action":"view","place_id":3}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordInteractionInvalidEvent(t *testing.T) {
	svc := &stubService{
		record: func(domain.Interaction) (domain.Interaction, error) {
			return domain.Interaction{}, domain.ErrInvalidEvent
		},
	}
	rr := serve(t, svc, http.MethodPost, "/interactions", `{"user_id":7,"action":"view","place_id":3}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid_event")
}

func TestGetRecentInteractions(t *testing.T) {
	svc := &stubService{
		recent: func(userID int64, limit int) ([]domain.Interaction, error) {
			return []domain.Interaction{{ID: 1, UserID: userID, Action: domain.ActionSearch, SearchTerms: []string{"sushi"}}}, nil
		},
	}

	rr := serve(t, svc, http.MethodGet, "/users/7/interactions?limit=5", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp handler.InteractionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Interactions, 1)
	assert.Equal(t, domain.ActionSearch, resp.Interactions[0].Action)
}

func TestToggleSave(t *testing.T) {
	svc := &stubService{
		toggle: func(userID, placeID int64) (bool, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, int64(3), placeID)
			return true, nil
		},
	}

	rr := serve(t, svc, http.MethodPost, "/users/7/saved/3", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp handler.SaveToggleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Saved)
	assert.Equal(t, int64(3), resp.PlaceID)
}

func TestGetUserNotFound(t *testing.T) {
	svc := &stubService{
		getUser: func(int64) (*domain.User, error) { return nil, domain.ErrUserNotFound },
	}
	rr := serve(t, svc, http.MethodGet, "/users/99", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateUserValidation(t *testing.T) {
	svc := &stubService{}

	rr := serve(t, svc, http.MethodPost, "/users", `{"external_id":"ext-1","username":"alice","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, svc, http.MethodPost, "/users", `{"external_id":"ext-1","username":"alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestUpdateUser(t *testing.T) {
	svc := &stubService{
		updateUser: func(u domain.User) (*domain.User, error) {
			assert.Equal(t, int64(7), u.ID)
			assert.Equal(t, "alice2", u.Username)
			assert.Empty(t, u.ExternalID)
			return &u, nil
		},
	}

	rr := serve(t, svc, http.MethodPut, "/users/7", `{"username":"alice2","email":"alice@example.com","location":"Lisbon"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, svc, http.MethodPut, "/users/7", `{"username":"alice2","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	svc.updateUser = func(domain.User) (*domain.User, error) { return nil, domain.ErrUserNotFound }
	rr = serve(t, svc, http.MethodPut, "/users/99", `{"username":"alice2","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealth(t *testing.T) {
	rr := serve(t, &stubService{}, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}
