// Package auth owns the authenticated-user session: who is signed in, the
// remember-me preference, and the login/logout/profile operations. The bearer
// token itself lives in the credentials store and is injected into requests
// by the HTTP adapter, never handed to domain stores.
package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hrboard/client/credentials"
	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

// Persister is the serialize/deserialize boundary for the session snapshot.
// Only {user, isAuthenticated, rememberMe} cross it.
type Persister interface {
	SaveSession(session domain.Session) error
	LoadSession() (*domain.Session, bool, error)
	ClearSession() error
}

// Store is the session state container. States: anonymous → authenticating →
// authenticated, and back to anonymous on logout or forced invalidation.
type Store struct {
	api     remote.AuthAPI
	tokens  credentials.Store
	persist Persister
	logger  *zap.Logger
	now     func() time.Time

	mu            sync.Mutex
	user          *domain.User
	authenticated bool
	rememberMe    bool
	loading       bool
	lastError     string
}

func New(api remote.AuthAPI, tokens credentials.Store, persist Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:     api,
		tokens:  tokens,
		persist: persist,
		logger:  logger,
		now:     time.Now,
	}
}

// Restore hydrates the session from the persisted snapshot. The bearer token
// is session-scoped and never persisted, so a restored session still needs
// CheckAuth before it can reach the backend.
func (s *Store) Restore() error {
	if s.persist == nil {
		return nil
	}
	snap, found, err := s.persist.LoadSession()
	if err != nil {
		return err
	}
	if !found || !snap.Valid() || !snap.IsAuthenticated {
		return nil
	}
	s.mu.Lock()
	s.user = snap.User
	s.authenticated = true
	s.rememberMe = snap.RememberMe
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a session. Field validation is a caller
// concern. On failure any pre-existing session is left untouched; only the
// loading and error fields change.
func (s *Store) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.User, error) {
	s.begin()

	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	if result.Token != "" {
		s.tokens.Set(result.Token)
	}

	user := cloneUser(result.User)
	user.Role = domain.RoleOrDefault(user.Role)

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.rememberMe = rememberMe
	s.loading = false
	s.lastError = ""
	snap := s.sessionLocked()
	s.mu.Unlock()

	s.saveSnapshot(snap)
	s.logger.Info("signed in", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return cloneUser(user), nil
}

// Register creates an administrator account. It never touches the current
// session; the caller signs in separately.
func (s *Store) Register(ctx context.Context, input remote.RegisterInput) error {
	s.begin()
	if err := s.api.RegisterAdmin(ctx, input); err != nil {
		s.fail(err)
		return err
	}
	s.finish()
	return nil
}

// Logout clears tokens and identity. It always succeeds locally; no remote
// call is made.
func (s *Store) Logout() error {
	s.tokens.Clear()

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.rememberMe = false
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.ClearSession(); err != nil {
			s.logger.Warn("failed to clear session snapshot", zap.Error(err))
		}
	}
	return nil
}

// CheckAuth validates the stored token against the profile endpoint. Without
// a token it fails immediately and never contacts the backend; a token whose
// exp claim has visibly passed is treated the same way.
func (s *Store) CheckAuth(ctx context.Context) (*domain.User, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, domain.ErrNoToken
	}
	if credentials.Expired(token, s.now()) {
		s.tokens.Clear()
		s.resetIdentity("")
		return nil, domain.ErrTokenExpired
	}

	s.begin()
	user, err := s.api.Me(ctx)
	if err != nil {
		s.tokens.Clear()
		s.resetIdentity(err.Error())
		return nil, err
	}

	user = cloneUser(user)
	user.Role = domain.RoleOrDefault(user.Role)

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.loading = false
	s.lastError = ""
	snap := s.sessionLocked()
	s.mu.Unlock()

	s.saveSnapshot(snap)
	return cloneUser(user), nil
}

// UpdateProfile merges the returned fields into the current identity. Fields
// absent from the response are never removed.
func (s *Store) UpdateProfile(ctx context.Context, input remote.ProfileInput) (*domain.User, error) {
	s.begin()
	updated, err := s.api.UpdateProfile(ctx, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.user = mergeUser(s.user, updated)
	s.authenticated = s.user != nil
	s.loading = false
	s.lastError = ""
	merged := cloneUser(s.user)
	snap := s.sessionLocked()
	s.mu.Unlock()

	s.saveSnapshot(snap)
	return merged, nil
}

// ChangePassword updates the credential server-side; local state is limited
// to loading and error.
func (s *Store) ChangePassword(ctx context.Context, current, next string) error {
	s.begin()
	if err := s.api.ChangePassword(ctx, current, next); err != nil {
		s.fail(err)
		return err
	}
	s.finish()
	return nil
}

// Invalidate tears the session down after a 401 observed anywhere in the
// system. The HTTP adapter has already cleared the credential store.
func (s *Store) Invalidate() {
	s.resetIdentity("")
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// Reset returns the store to its initial state without touching persistence.
// Intended for tests and the registry's ClearAll path, which persists through
// Logout instead.
func (s *Store) Reset() {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.rememberMe = false
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
}

// Session returns the current persisted projection.
func (s *Store) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionLocked()
}

func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUser(s.user)
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Store) RememberMe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rememberMe
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

func (s *Store) HasRole(role string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == role
}

func (s *Store) HasAnyRole(roles ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	for _, role := range roles {
		if s.user.Role == role {
			return true
		}
	}
	return false
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) finish() {
	s.mu.Lock()
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Store) resetIdentity(errMsg string) {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.loading = false
	s.lastError = errMsg
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.ClearSession(); err != nil {
			s.logger.Warn("failed to clear session snapshot", zap.Error(err))
		}
	}
}

func (s *Store) sessionLocked() domain.Session {
	return domain.Session{
		User:            cloneUser(s.user),
		IsAuthenticated: s.authenticated,
		RememberMe:      s.rememberMe,
	}
}

func (s *Store) saveSnapshot(snap domain.Session) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveSession(snap); err != nil {
		s.logger.Warn("failed to save session snapshot", zap.Error(err))
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Preferences != nil {
		prefs := *u.Preferences
		clone.Preferences = &prefs
	}
	return &clone
}

// mergeUser overlays non-zero fields of update onto current.
func mergeUser(current, update *domain.User) *domain.User {
	if current == nil {
		merged := cloneUser(update)
		if merged != nil {
			merged.Role = domain.RoleOrDefault(merged.Role)
		}
		return merged
	}
	merged := *current
	if update != nil {
		if update.ID != "" {
			merged.ID = update.ID
		}
		if update.Name != "" {
			merged.Name = update.Name
		}
		if update.Email != "" {
			merged.Email = update.Email
		}
		if update.Role != "" {
			merged.Role = update.Role
		}
		if update.Status != "" {
			merged.Status = update.Status
		}
		if update.Avatar != "" {
			merged.Avatar = update.Avatar
		}
		if update.Preferences != nil {
			prefs := *update.Preferences
			merged.Preferences = &prefs
		}
		if !update.UpdatedAt.IsZero() {
			merged.UpdatedAt = update.UpdatedAt
		}
	}
	merged.Role = domain.RoleOrDefault(merged.Role)
	return &merged
}
