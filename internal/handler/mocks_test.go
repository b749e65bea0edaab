package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"placerank/internal/app/account"
	"placerank/internal/app/live"
	"placerank/internal/app/place"
	"placerank/internal/app/store"
	"placerank/internal/configs"
	"placerank/internal/pkg/auth/jwt"
)

const testJWTSecret = "handler-test-secret"

type mockAccountStore struct {
	createAccountFn     func(ctx context.Context, a store.Account) (store.Account, error)
	getAccountByEmailFn func(ctx context.Context, email string) (store.Account, error)
	getAccountByIDFn    func(ctx context.Context, id string) (store.Account, error)
	updateProfileFn     func(ctx context.Context, id string, update account.ProfileUpdate) (store.Account, error)
}

func (m *mockAccountStore) CreateAccount(ctx context.Context, a store.Account) (store.Account, error) {
	return m.createAccountFn(ctx, a)
}

func (m *mockAccountStore) GetAccountByEmail(ctx context.Context, email string) (store.Account, error) {
	return m.getAccountByEmailFn(ctx, email)
}

func (m *mockAccountStore) GetAccountByID(ctx context.Context, id string) (store.Account, error) {
	return m.getAccountByIDFn(ctx, id)
}

func (m *mockAccountStore) UpdateProfile(ctx context.Context, id string, update account.ProfileUpdate) (store.Account, error) {
	return m.updateProfileFn(ctx, id, update)
}

type mockPlaceStore struct {
	createPlaceFn           func(ctx context.Context, p place.Place) (place.Place, error)
	getPlaceFn              func(ctx context.Context, id string) (place.Place, error)
	listPlacesFn            func(ctx context.Context, f place.Filter) ([]place.Place, error)
	listPlacesByOwnerFn     func(ctx context.Context, ownerID string) ([]place.Place, error)
	updatePlaceFn           func(ctx context.Context, p place.Place) (place.Place, error)
	deletePlaceFn           func(ctx context.Context, id string) error
	upsertRatingFn          func(ctx context.Context, r place.Rating) (place.Place, error)
	addCommentFn            func(ctx context.Context, c place.Comment) (place.Comment, error)
	listCommentsFn          func(ctx context.Context, placeID string) ([]place.Comment, error)
	listRatingsByAccountFn  func(ctx context.Context, accountID string) ([]place.Rating, error)
	listCommentsByAccountFn func(ctx context.Context, accountID string) ([]place.Comment, error)
}

func (m *mockPlaceStore) CreatePlace(ctx context.Context, p place.Place) (place.Place, error) {
	return m.createPlaceFn(ctx, p)
}

func (m *mockPlaceStore) GetPlace(ctx context.Context, id string) (place.Place, error) {
	return m.getPlaceFn(ctx, id)
}

func (m *mockPlaceStore) ListPlaces(ctx context.Context, f place.Filter) ([]place.Place, error) {
	return m.listPlacesFn(ctx, f)
}

func (m *mockPlaceStore) ListPlacesByOwner(ctx context.Context, ownerID string) ([]place.Place, error) {
	return m.listPlacesByOwnerFn(ctx, ownerID)
}

func (m *mockPlaceStore) UpdatePlace(ctx context.Context, p place.Place) (place.Place, error) {
	return m.updatePlaceFn(ctx, p)
}

func (m *mockPlaceStore) DeletePlace(ctx context.Context, id string) error {
	return m.deletePlaceFn(ctx, id)
}

func (m *mockPlaceStore) UpsertRating(ctx context.Context, r place.Rating) (place.Place, error) {
	return m.upsertRatingFn(ctx, r)
}

func (m *mockPlaceStore) AddComment(ctx context.Context, c place.Comment) (place.Comment, error) {
	return m.addCommentFn(ctx, c)
}

func (m *mockPlaceStore) ListComments(ctx context.Context, placeID string) ([]place.Comment, error) {
	return m.listCommentsFn(ctx, placeID)
}

func (m *mockPlaceStore) ListRatingsByAccount(ctx context.Context, accountID string) ([]place.Rating, error) {
	return m.listRatingsByAccountFn(ctx, accountID)
}

func (m *mockPlaceStore) ListCommentsByAccount(ctx context.Context, accountID string) ([]place.Comment, error) {
	return m.listCommentsByAccountFn(ctx, accountID)
}

// testDeps builds an AppDeps wired to the given mocks and a real live hub
// that is shut down with the test.
func testDeps(t *testing.T, accounts store.AccountStore, places store.PlaceStore) *AppDeps {
	t.Helper()
	hub := live.NewHub()
	t.Cleanup(hub.Shutdown)
	return &AppDeps{
		Config:   &configs.AppConfig{JWTSecret: testJWTSecret},
		Accounts: accounts,
		Places:   places,
		Hub:      hub,
	}
}

// withPayload attaches an authenticated identity to the request, the way the
// extractor middleware would.
func withPayload(r *http.Request, id, name string, role account.Role) *http.Request {
	payload := &jwt.Payload{ID: id, Name: name, Email: name + "@example.com", Role: role}
	ctx := context.WithValue(r.Context(), jwt.ContextAuthPayloadKey, payload)
	return r.WithContext(ctx)
}

// withURLParam attaches a chi URL parameter to the request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeEnvelope reads the response envelope and returns its business code
// with the raw data payload.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (int, json.RawMessage) {
	t.Helper()
	var env struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("response is not an envelope: %v", err)
	}
	return env.Code, env.Data
}
