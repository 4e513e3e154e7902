package profile

import (
	"context"
	"testing"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

type stubProfileAPI struct {
	user      *domain.User
	updated   *domain.User
	err       error
	prefCalls int
}

func (a *stubProfileAPI) Get(context.Context) (*domain.User, error) { return a.user, a.err }

func (a *stubProfileAPI) Update(context.Context, remote.ProfileInput) (*domain.User, error) {
	return a.updated, a.err
}

func (a *stubProfileAPI) ChangePassword(context.Context, string, string) error { return a.err }

func (a *stubProfileAPI) UpdatePreferences(context.Context, domain.Preferences) error {
	a.prefCalls++
	return a.err
}

type memPersister struct {
	prefs  *domain.Preferences
	stored bool
}

func (p *memPersister) SavePreferences(prefs domain.Preferences) error {
	p.prefs = &prefs
	p.stored = true
	return nil
}

func (p *memPersister) LoadPreferences() (*domain.Preferences, bool, error) {
	return p.prefs, p.stored, nil
}

func TestFetchAdoptsServerPreferences(t *testing.T) {
	prefs := domain.DefaultPreferences()
	prefs.Theme = "dark"
	api := &stubProfileAPI{user: &domain.User{ID: "u1", Name: "Ana", Preferences: &prefs}}
	persist := &memPersister{}
	store := New(api, persist, nil)

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if store.Profile().ID != "u1" {
		t.Fatal("profile not adopted")
	}
	if store.Preferences().Theme != "dark" {
		t.Fatal("server preferences should replace the defaults")
	}
	if !persist.stored || persist.prefs.Theme != "dark" {
		t.Fatal("adopted preferences should be persisted")
	}
}

func TestUpdateMergesWithoutRemoving(t *testing.T) {
	api := &stubProfileAPI{
		user:    &domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Avatar: "a.png"},
		updated: &domain.User{Name: "Ana B."},
	}
	store := New(api, nil, nil)
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if err := store.Update(context.Background(), remote.ProfileInput{Name: "Ana B."}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := store.Profile()
	if got.Name != "Ana B." {
		t.Fatalf("name = %q", got.Name)
	}
	if got.Email != "ana@example.com" || got.Avatar != "a.png" {
		t.Fatal("fields absent from the response must survive the merge")
	}
}

func TestUpdatePreferencesPersists(t *testing.T) {
	api := &stubProfileAPI{}
	persist := &memPersister{}
	store := New(api, persist, nil)

	prefs := domain.DefaultPreferences()
	prefs.Language = "es"
	if err := store.UpdatePreferences(context.Background(), prefs); err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	if api.prefCalls != 1 {
		t.Fatal("preferences should be pushed to the backend")
	}
	if store.Preferences().Language != "es" || persist.prefs.Language != "es" {
		t.Fatal("preferences should be adopted and persisted")
	}
}

func TestUpdatePreferencesFailureKeepsCurrent(t *testing.T) {
	api := &stubProfileAPI{err: domain.NewError(domain.ErrCodeServer, "boom")}
	store := New(api, nil, nil)

	prefs := domain.DefaultPreferences()
	prefs.Theme = "dark"
	if err := store.UpdatePreferences(context.Background(), prefs); err == nil {
		t.Fatal("expected failure")
	}
	if store.Preferences().Theme != "light" {
		t.Fatal("failed update must not change the held preferences")
	}
}

func TestRestoreHydratesPreferences(t *testing.T) {
	saved := domain.DefaultPreferences()
	saved.Theme = "dark"
	store := New(&stubProfileAPI{}, &memPersister{prefs: &saved, stored: true}, nil)

	if err := store.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if store.Preferences().Theme != "dark" {
		t.Fatal("restore should apply the persisted preferences")
	}
}

func TestResetReturnsDefaults(t *testing.T) {
	store := New(&stubProfileAPI{}, nil, nil)
	store.ApplyTheme("dark")

	store.Reset()
	if store.Preferences().Theme != "light" {
		t.Fatal("reset should restore default preferences")
	}
	if store.Profile() != nil {
		t.Fatal("reset should drop the held profile")
	}
}
