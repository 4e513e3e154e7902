// Package profile holds the signed-in user's own profile and preferences.
// Of its state only the preferences survive a restart.
package profile

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

// Persister is the serialize boundary for the preferences snapshot.
type Persister interface {
	SavePreferences(prefs domain.Preferences) error
	LoadPreferences() (*domain.Preferences, bool, error)
}

type Store struct {
	api     remote.ProfileAPI
	persist Persister
	logger  *zap.Logger

	mu          sync.Mutex
	profile     *domain.User
	preferences domain.Preferences
	loading     bool
	lastError   string
}

func New(api remote.ProfileAPI, persist Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:         api,
		persist:     persist,
		logger:      logger,
		preferences: domain.DefaultPreferences(),
	}
}

// Restore hydrates preferences from the persisted snapshot.
func (s *Store) Restore() error {
	if s.persist == nil {
		return nil
	}
	prefs, found, err := s.persist.LoadPreferences()
	if err != nil {
		return err
	}
	if found {
		s.mu.Lock()
		s.preferences = *prefs
		s.mu.Unlock()
	}
	return nil
}

func (s *Store) Fetch(ctx context.Context) error {
	s.begin()
	user, err := s.api.Get(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.profile = user
	if user.Preferences != nil {
		s.preferences = *user.Preferences
	}
	s.loading = false
	s.lastError = ""
	prefs := s.preferences
	s.mu.Unlock()
	s.savePreferences(prefs)
	return nil
}

// Update merges the server response into the held profile; absent fields are
// never dropped.
func (s *Store) Update(ctx context.Context, input remote.ProfileInput) error {
	s.begin()
	updated, err := s.api.Update(ctx, input)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	if s.profile == nil {
		s.profile = updated
	} else {
		if updated.Name != "" {
			s.profile.Name = updated.Name
		}
		if updated.Email != "" {
			s.profile.Email = updated.Email
		}
		if updated.Avatar != "" {
			s.profile.Avatar = updated.Avatar
		}
	}
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) ChangePassword(ctx context.Context, current, next string) error {
	s.begin()
	if err := s.api.ChangePassword(ctx, current, next); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// UpdatePreferences pushes the merged preferences to the backend and persists
// them locally.
func (s *Store) UpdatePreferences(ctx context.Context, prefs domain.Preferences) error {
	s.begin()
	if err := s.api.UpdatePreferences(ctx, prefs); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.preferences = prefs
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	s.savePreferences(prefs)
	return nil
}

// ApplyTheme records the theme locally without a network round-trip; the
// registry uses it when bootstrapping from the signed-in user's preferences.
func (s *Store) ApplyTheme(theme string) {
	if theme == "" {
		return
	}
	s.mu.Lock()
	s.preferences.Theme = theme
	prefs := s.preferences
	s.mu.Unlock()
	s.savePreferences(prefs)
}

func (s *Store) Profile() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	clone := *s.profile
	return &clone
}

func (s *Store) Preferences() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// Reset returns the store to its initial state. Idempotent.
func (s *Store) Reset() {
	s.mu.Lock()
	s.profile = nil
	s.preferences = domain.DefaultPreferences()
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Store) savePreferences(prefs domain.Preferences) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SavePreferences(prefs); err != nil {
		s.logger.Warn("failed to save preferences snapshot", zap.Error(err))
	}
}
