package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"placerank/internal/app/place"
	"placerank/internal/client/api"
)

func TestAddPlaceEditUpdatesInPlace(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody api.PlaceInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"message":"OK","data":{"place":{"id":"p1","name":"Registan Square"}}}`))
	}))
	defer srv.Close()

	m := NewAddPlaceModel(api.NewClient(srv.URL, staticToken("t"), srv.Client()), DefaultStyles())
	m = m.StartEdit(place.Place{
		ID:       "p1",
		Name:     "Registan Square",
		Location: "Samarkand",
		Category: place.Categories[2],
		PhotoURL: "https://cdn.example.com/places/registan.jpg",
	})

	if m.name.Value() != "Registan Square" || m.location.Value() != "Samarkand" {
		t.Fatalf("form not prefilled: name=%q location=%q", m.name.Value(), m.location.Value())
	}
	if m.categoryIdx != 2 {
		t.Errorf("categoryIdx = %d, want 2", m.categoryIdx)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit produced no command")
	}
	msg := cmd()
	saved, ok := msg.(placeSavedMsg)
	if !ok {
		t.Fatalf("message = %T, want placeSavedMsg", msg)
	}
	if saved.err != nil {
		t.Fatalf("update failed: %v", saved.err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/places/p1" {
		t.Errorf("request = %s %s, want PUT /api/places/p1", gotMethod, gotPath)
	}
	if gotBody.PhotoURL != "https://cdn.example.com/places/registan.jpg" {
		t.Errorf("PhotoURL = %q, stored photo dropped on edit", gotBody.PhotoURL)
	}
}

func TestAddPlaceResetLeavesEditMode(t *testing.T) {
	m := NewAddPlaceModel(api.NewClient("http://unused.invalid", staticToken(""), nil), DefaultStyles())
	m = m.StartEdit(place.Place{ID: "p1", Name: "x", Location: "y", Category: place.Categories[0]})
	m = m.Reset()
	if m.editID != "" || m.editPhotoURL != "" {
		t.Error("reset kept the edit state")
	}
	if m.name.Value() != "" {
		t.Errorf("name = %q, want cleared", m.name.Value())
	}
}
