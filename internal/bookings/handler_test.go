package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mounti/internal/auth"
	apperrors "mounti/pkg/errors"
	"mounti/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockService struct {
	getFunc         func(ctx context.Context, id string, actor *model.User) (*model.Booking, error)
	listMineFunc    func(ctx context.Context, actor *model.User) ([]*model.Booking, error)
	listForTripFunc func(ctx context.Context, tripID string, actor *model.User) ([]*model.Booking, error)
}

func (m *mockService) Create(ctx context.Context, input *model.BookingCreate, actor *model.User) (*model.Booking, error) {
	return nil, nil
}

func (m *mockService) Get(ctx context.Context, id string, actor *model.User) (*model.Booking, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id, actor)
	}
	return nil, apperrors.NotFoundWithID("Booking", id)
}

func (m *mockService) ListMine(ctx context.Context, actor *model.User) ([]*model.Booking, error) {
	if m.listMineFunc != nil {
		return m.listMineFunc(ctx, actor)
	}
	return []*model.Booking{}, nil
}

func (m *mockService) ListForTrip(ctx context.Context, tripID string, actor *model.User) ([]*model.Booking, error) {
	if m.listForTripFunc != nil {
		return m.listForTripFunc(ctx, tripID, actor)
	}
	return []*model.Booking{}, nil
}

func (m *mockService) UpdateStatus(ctx context.Context, id string, input *model.BookingStatusUpdate, actor *model.User) (*model.Booking, error) {
	return nil, nil
}

type mockAuthService struct {
	user *model.User
}

func (m *mockAuthService) CreateSession(ctx context.Context, sessionID string) (*auth.Session, error) {
	return nil, nil
}

func (m *mockAuthService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if m.user != nil && token == "valid-token" {
		return m.user, nil
	}
	return nil, apperrors.Unauthenticated("Invalid or expired session token")
}

func (m *mockAuthService) EndSession(ctx context.Context, token string) error {
	return nil
}

func newTestRouter(service Service) *httprouter.Router {
	router := httprouter.New()
	authSvc := &mockAuthService{user: &model.User{ID: "user-1"}}
	NewHandler(service, authSvc, testLogger()).RegisterRoutes(router)
	return router
}

func authedGet(router *httprouter.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBookingRoutes_Dispatch(t *testing.T) {
	service := &mockService{
		getFunc: func(ctx context.Context, id string, actor *model.User) (*model.Booking, error) {
			return &model.Booking{ID: id, ClientID: actor.ID}, nil
		},
		listMineFunc: func(ctx context.Context, actor *model.User) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "mine-1", ClientID: actor.ID}}, nil
		},
		listForTripFunc: func(ctx context.Context, tripID string, actor *model.User) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "for-trip-1", TripID: tripID}}, nil
		},
	}
	router := newTestRouter(service)

	// /bookings/{id} returns a single booking.
	rec := authedGet(router, "/api/v1/bookings/booking-42")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for get, got %d", rec.Code)
	}
	var getResp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&getResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if getResp.Data.ID != "booking-42" {
		t.Errorf("expected booking-42, got %s", getResp.Data.ID)
	}

	// /bookings/my lists the caller's bookings.
	rec = authedGet(router, "/api/v1/bookings/my")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for my bookings, got %d", rec.Code)
	}
	var listResp struct {
		Data []model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listResp.Data) != 1 || listResp.Data[0].ID != "mine-1" {
		t.Errorf("expected the caller's bookings, got %+v", listResp.Data)
	}

	// /bookings/trip/{tripID} lists a trip's bookings.
	rec = authedGet(router, "/api/v1/bookings/trip/trip-7")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for trip bookings, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&listResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listResp.Data) != 1 || listResp.Data[0].TripID != "trip-7" {
		t.Errorf("expected trip-7 bookings, got %+v", listResp.Data)
	}

	// Any other two-segment GET path under /bookings is a 404.
	rec = authedGet(router, "/api/v1/bookings/bogus/trip-7")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown subpath, got %d", rec.Code)
	}
}

func TestBookingRoutes_RequireSession(t *testing.T) {
	router := newTestRouter(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}
}
