package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"placerank/internal/app/account"
	"placerank/internal/app/place"
	"placerank/internal/client/api"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func orgProfileModel(client *api.Client) ProfileModel {
	m := NewProfileModel(client, DefaultStyles())
	m.loaded = true
	m.result = api.ProfileResult{
		User: account.Identity{ID: "org-1", Name: "Heritage Tours", Role: account.RoleOrganization},
		Places: []place.Place{
			{ID: "p1", Name: "Registan Square", Rating: 4.8, Reviews: 2},
			{ID: "p2", Name: "Chorsu Bazaar", Rating: 4.1, Reviews: 5},
		},
	}
	return m
}

func TestProfileDeleteConfirmAndRemove(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"message":"OK","data":null}`))
	}))
	defer srv.Close()

	m := orgProfileModel(api.NewClient(srv.URL, staticToken("t"), srv.Client()))

	m, _ = m.Update(keyRune('j'))
	m, cmd := m.Update(keyRune('x'))
	if cmd != nil {
		t.Fatal("delete ran before confirmation")
	}
	if !strings.Contains(m.View(), `delete "Chorsu Bazaar"?`) {
		t.Fatal("no confirmation prompt for the selected place")
	}

	m, cmd = m.Update(keyRune('y'))
	if cmd == nil {
		t.Fatal("confirmation produced no command")
	}
	msg := cmd()
	deleted, ok := msg.(placeDeletedMsg)
	if !ok {
		t.Fatalf("message = %T, want placeDeletedMsg", msg)
	}
	if deleted.err != nil {
		t.Fatalf("delete failed: %v", deleted.err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/places/p2" {
		t.Errorf("request = %s %s, want DELETE /api/places/p2", gotMethod, gotPath)
	}

	m, _ = m.Update(msg)
	if len(m.result.Places) != 1 || m.result.Places[0].ID != "p1" {
		t.Errorf("places after delete = %+v", m.result.Places)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestProfileDeleteCancelKeepsPlace(t *testing.T) {
	m := orgProfileModel(api.NewClient("http://unused.invalid", staticToken(""), nil))

	m, _ = m.Update(keyRune('x'))
	m, cmd := m.Update(keyRune('n'))
	if cmd != nil {
		t.Fatal("cancel produced a command")
	}
	if m.confirming {
		t.Error("still confirming after cancel")
	}
	if len(m.result.Places) != 2 {
		t.Errorf("places = %d, want 2", len(m.result.Places))
	}
}

func TestProfileEnterOpensPlaceEdit(t *testing.T) {
	m := orgProfileModel(api.NewClient("http://unused.invalid", staticToken(""), nil))

	m, _ = m.Update(keyRune('j'))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(editPlaceMsg)
	if !ok {
		t.Fatalf("message = %T, want editPlaceMsg", cmd())
	}
	if msg.place.ID != "p2" {
		t.Errorf("place = %q, want the selected p2", msg.place.ID)
	}
}

func TestProfileIndividualHasNoDeleteAction(t *testing.T) {
	m := NewProfileModel(api.NewClient("http://unused.invalid", staticToken(""), nil), DefaultStyles())
	m.loaded = true
	m.result = api.ProfileResult{
		User: account.Identity{ID: "u1", Name: "John Doe", Role: account.RoleIndividual},
	}

	m, cmd := m.Update(keyRune('x'))
	if cmd != nil || m.confirming {
		t.Error("individual profile offered the delete flow")
	}
}

func TestPadRightKeepsRunesWhole(t *testing.T) {
	got := padRight("Ичан-Қалъа тарихий мажмуаси", 12)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 12 {
		t.Errorf("rune count = %d, want 12", n)
	}
	if got := padRight("Parks", 8); got != "Parks   " {
		t.Errorf("padding = %q", got)
	}
}
