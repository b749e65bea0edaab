package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"placerank/internal/app/account"
)

func testIdentity(role account.Role) account.Identity {
	return account.Identity{
		ID:    "6f1d2c52-0000-0000-0000-000000000001",
		Name:  "John Doe",
		Email: "john.doe@example.com",
		Role:  role,
	}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	store.Load()
	return store, path
}

func TestLoadWithoutFileStartsSignedOut(t *testing.T) {
	store, _ := newTestStore(t)

	if store.Loading() {
		t.Error("store still loading after Load")
	}
	if store.IsAuthenticated() {
		t.Error("expected signed out store")
	}
	if _, ok := store.Current(); ok {
		t.Error("Current returned an identity for a signed out store")
	}
}

func TestLoadingClearsOnlyAfterLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	if !store.Loading() {
		t.Fatal("new store must report loading before Load")
	}
	store.Load()
	if store.Loading() {
		t.Error("store still loading after Load")
	}
}

func TestLoginPersistsAcrossRestart(t *testing.T) {
	store, path := newTestStore(t)
	identity := testIdentity(account.RoleIndividual)

	store.Login("token-1", identity)

	restarted := NewStore(path)
	restarted.Load()

	got, ok := restarted.Current()
	if !ok {
		t.Fatal("session did not survive restart")
	}
	if diff := cmp.Diff(identity, got); diff != "" {
		t.Errorf("restored identity mismatch (-want +got):\n%s", diff)
	}
	if restarted.Token() != "token-1" {
		t.Errorf("restored token = %q, want %q", restarted.Token(), "token-1")
	}
}

func TestMalformedFileDegradesToSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	store.Load()

	if store.IsAuthenticated() {
		t.Error("malformed file produced a session")
	}
	if store.Loading() {
		t.Error("store still loading after Load")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("malformed session file was not removed")
	}
}

func TestUnknownRoleInFileDegradesToSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	payload := `{"token":"t","user":{"id":"1","name":"x","email":"x@example.com","role":"admin"}}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	store.Load()

	if store.IsAuthenticated() {
		t.Error("unknown role produced a session")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	store, path := newTestStore(t)
	store.Login("token-1", testIdentity(account.RoleIndividual))

	store.Logout()
	store.Logout()

	if store.IsAuthenticated() {
		t.Error("still authenticated after Logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file survived Logout")
	}
}

func TestUpdateIdentityMergesShallowly(t *testing.T) {
	store, _ := newTestStore(t)
	store.Login("token-1", testIdentity(account.RoleIndividual))

	bio := "traveler"
	store.UpdateIdentity(account.ProfileUpdate{Bio: &bio})

	got, _ := store.Current()
	if got.Bio != "traveler" {
		t.Errorf("Bio = %q, want %q", got.Bio, "traveler")
	}
	if got.Name != "John Doe" || got.Email != "john.doe@example.com" {
		t.Error("untouched fields did not survive the merge")
	}
	if store.Token() != "token-1" {
		t.Error("token changed during a profile merge")
	}
}

func TestUpdateIdentityWithoutSessionIsNoOp(t *testing.T) {
	store, path := newTestStore(t)

	name := "ghost"
	store.UpdateIdentity(account.ProfileUpdate{Name: &name})

	if store.IsAuthenticated() {
		t.Error("update created a session out of nothing")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("update without a session wrote a file")
	}
}

func TestCurrentReturnsACopy(t *testing.T) {
	store, _ := newTestStore(t)
	store.Login("token-1", testIdentity(account.RoleIndividual))

	got, _ := store.Current()
	got.Name = "mutated"

	again, _ := store.Current()
	if again.Name != "John Doe" {
		t.Error("mutating the returned identity changed the store")
	}
}

func TestRolePredicates(t *testing.T) {
	store, _ := newTestStore(t)

	if store.IsIndividual() || store.IsOrganization() {
		t.Error("signed out store claims a role")
	}

	store.Login("t", testIdentity(account.RoleIndividual))
	if !store.IsIndividual() || store.IsOrganization() {
		t.Error("individual session misreported")
	}

	store.Login("t", testIdentity(account.RoleOrganization))
	if store.IsIndividual() || !store.IsOrganization() {
		t.Error("organization session misreported")
	}
}

func TestReplaceKeepsTokenWhenEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	store.Login("token-1", testIdentity(account.RoleIndividual))

	updated := testIdentity(account.RoleIndividual)
	updated.Name = "John D."
	store.Replace("", updated)

	if store.Token() != "token-1" {
		t.Errorf("Token = %q, want retained %q", store.Token(), "token-1")
	}
	got, _ := store.Current()
	if got.Name != "John D." {
		t.Error("Replace did not swap the identity")
	}

	store.Replace("token-2", updated)
	if store.Token() != "token-2" {
		t.Error("Replace ignored the new token")
	}
}
