package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"placerank/internal/app/account"
	"placerank/internal/app/place"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func respond(t *testing.T, w http.ResponseWriter, code int, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"message": message,
		"data":    data,
	}); err != nil {
		t.Fatal(err)
	}
}

func TestLoginDecodesAuthResult(t *testing.T) {
	want := AuthResult{
		Token: "jwt-token",
		User: account.Identity{
			ID:    "1",
			Name:  "John Doe",
			Email: "john.doe@example.com",
			Role:  account.RoleIndividual,
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["email"] != "john.doe@example.com" || body["password"] != "user123" {
			t.Errorf("credentials not forwarded: %v", body)
		}
		respond(t, w, 0, "Success", want)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken(""), server.Client())

	got, err := client.Login(context.Background(), "john.doe@example.com", "user123")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("auth result mismatch (-want +got):\n%s", diff)
	}
}

func TestBusinessCodeBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		respond(t, w, 3002, "Invalid email or password", nil)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, server.Client())

	_, err := client.Login(context.Background(), "x@example.com", "bad")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != 3002 {
		t.Errorf("Code = %d, want 3002", apiErr.Code)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		respond(t, w, 0, "Success", ProfileResult{})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("abc"), server.Client())
	if _, err := client.FetchProfile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer abc")
	}

	client = NewClient(server.URL, staticToken(""), server.Client())
	if _, err := client.FetchProfile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("anonymous request carried Authorization %q", gotAuth)
	}
}

func TestListPlacesEncodesFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("category") != "Museums" || q.Get("q") != "tashkent" || q.Get("min_rating") != "4" {
			t.Errorf("query not encoded: %s", r.URL.RawQuery)
		}
		respond(t, w, 0, "Success", map[string]any{
			"places": []place.Place{{ID: "p1", Name: "Amir Timur Museum"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, server.Client())
	places, err := client.ListPlaces(context.Background(), place.Filter{
		Category:  "Museums",
		Query:     "tashkent",
		MinRating: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(places) != 1 || places[0].ID != "p1" {
		t.Errorf("places = %v", places)
	}
}

func TestListPlacesOmitsZeroFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("zero filter produced query %q", r.URL.RawQuery)
		}
		respond(t, w, 0, "Success", map[string]any{"places": []place.Place{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, server.Client())
	if _, err := client.ListPlaces(context.Background(), place.Filter{}); err != nil {
		t.Fatal(err)
	}
}

func TestAddRatingPostsStars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/places/p1/ratings" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]int
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["stars"] != 5 {
			t.Errorf("stars = %d, want 5", body["stars"])
		}
		respond(t, w, 0, "Success", map[string]any{
			"place": place.Place{ID: "p1", Rating: 4.5, Reviews: 2},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("t"), server.Client())
	updated, err := client.AddRating(context.Background(), "p1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Rating != 4.5 || updated.Reviews != 2 {
		t.Errorf("updated place = %+v", updated)
	}
}

func TestDeletePlace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/places/p1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		respond(t, w, 0, "Success", map[string]string{"deleted": "p1"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("t"), server.Client())
	if err := client.DeletePlace(context.Background(), "p1"); err != nil {
		t.Fatal(err)
	}
}
