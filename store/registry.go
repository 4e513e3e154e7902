// Package store composes the per-domain state containers and resolves which
// of them a given role works with.
package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/hrboard/client/credentials"
	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
	"github.com/hrboard/client/store/auth"
	"github.com/hrboard/client/store/dashboard"
	"github.com/hrboard/client/store/profile"
	"github.com/hrboard/client/store/task"
	"github.com/hrboard/client/store/ui"
	"github.com/hrboard/client/store/user"
)

// Capability names a domain store a role works with.
type Capability string

const (
	CapAuth      Capability = "auth"
	CapUI        Capability = "ui"
	CapTasks     Capability = "tasks"
	CapUsers     Capability = "users"
	CapDashboard Capability = "dashboard"
	CapProfile   Capability = "profile"
)

// roleCapabilities is the single declarative role table. Exactly one entry
// per known role; unknown roles get only the common set.
var roleCapabilities = map[string][]Capability{
	domain.RoleAdmin:    {CapTasks, CapUsers, CapDashboard},
	domain.RoleEmployer: {CapTasks, CapProfile},
	domain.RoleUser:     {CapTasks, CapProfile},
}

// CapabilitiesFor resolves the capability set for a role. The common stores
// (auth, ui) are always included.
func CapabilitiesFor(role string) []Capability {
	caps := []Capability{CapAuth, CapUI}
	return append(caps, roleCapabilities[role]...)
}

// StoreSet is the slice of the registry a role actually works with; stores
// outside the role's capabilities are nil.
type StoreSet struct {
	Auth      *auth.Store
	UI        *ui.Store
	Tasks     *task.Store
	Users     *user.Store
	Dashboard *dashboard.Store
	Profile   *profile.Store
}

// Registry owns one instance of every state container. It replaces the
// original's module-global singletons so tests and callers control lifetime
// explicitly.
type Registry struct {
	Auth          *auth.Store
	UI            *ui.Store
	AdminTasks    *task.Store
	EmployerTasks *task.Store
	UserTasks     *task.Store
	Users         *user.Store
	Dashboard     *dashboard.Store
	Profile       *profile.Store
	logger        *zap.Logger
}

// Deps bundles the outbound ports and persistence the registry wires in.
type Deps struct {
	Auth      remote.AuthAPI
	Tasks     remote.TaskAPI
	Users     remote.UserAPI
	Dashboard remote.DashboardAPI
	Profile   remote.ProfileAPI

	SessionPersist auth.Persister
	PrefsPersist   profile.Persister
	UIPersist      ui.Persister

	Tokens credentials.Store
	Logger *zap.Logger
}

// NewRegistry builds every store against the shared outbound ports.
func NewRegistry(deps Deps) *Registry {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		Auth:          auth.New(deps.Auth, deps.Tokens, deps.SessionPersist, logger),
		UI:            ui.New(deps.UIPersist),
		AdminTasks:    task.NewAdmin(deps.Tasks, logger),
		EmployerTasks: task.NewEmployer(deps.Tasks, logger),
		UserTasks:     task.NewUser(deps.Tasks, logger),
		Users:         user.New(deps.Users, logger),
		Dashboard:     dashboard.New(deps.Dashboard, logger),
		Profile:       profile.New(deps.Profile, deps.PrefsPersist, logger),
		logger:        logger,
	}
}

// Restore hydrates every persisted snapshot at process start.
func (r *Registry) Restore() error {
	if err := r.Auth.Restore(); err != nil {
		return err
	}
	if err := r.UI.Restore(); err != nil {
		return err
	}
	return r.Profile.Restore()
}

// StoresFor resolves the store set for a role. Unknown roles get only the
// common stores.
func (r *Registry) StoresFor(role string) StoreSet {
	set := StoreSet{Auth: r.Auth, UI: r.UI}
	for _, capability := range roleCapabilities[role] {
		switch capability {
		case CapTasks:
			switch role {
			case domain.RoleAdmin:
				set.Tasks = r.AdminTasks
			case domain.RoleEmployer:
				set.Tasks = r.EmployerTasks
			default:
				set.Tasks = r.UserTasks
			}
		case CapUsers:
			set.Users = r.Users
		case CapDashboard:
			set.Dashboard = r.Dashboard
		case CapProfile:
			set.Profile = r.Profile
		}
	}
	return set
}

// Initialize performs the role-specific bootstrap fetches. Each failure is
// logged and skipped; initialization of the remaining stores continues.
// A nil user is a no-op.
func (r *Registry) Initialize(ctx context.Context, u *domain.User) error {
	if u == nil {
		return nil
	}

	if u.Preferences != nil && u.Preferences.Theme != "" {
		r.Profile.ApplyTheme(u.Preferences.Theme)
	}

	role := domain.RoleOrDefault(u.Role)
	switch role {
	case domain.RoleAdmin:
		if err := r.Dashboard.FetchStats(ctx); err != nil {
			r.logger.Warn("dashboard bootstrap failed", zap.Error(err))
		}
	case domain.RoleEmployer:
		if _, err := r.EmployerTasks.TeamMembers(ctx, remote.TaskQuery{}); err != nil {
			r.logger.Warn("team bootstrap failed", zap.Error(err))
		}
	default:
		if err := r.Profile.Fetch(ctx); err != nil {
			r.logger.Warn("profile bootstrap failed", zap.Error(err))
		}
		if err := r.UserTasks.FetchYours(ctx, remote.TaskQuery{}); err != nil {
			r.logger.Warn("task bootstrap failed", zap.Error(err))
		}
	}
	return nil
}

// ClearAll resets every store at logout: session torn down, modals closed,
// domain collections emptied. Idempotent — safe when already clear.
func (r *Registry) ClearAll() {
	_ = r.Auth.Logout()

	r.UI.CloseAllModals()
	r.UI.Reset()

	r.AdminTasks.Reset()
	r.EmployerTasks.Reset()
	r.UserTasks.Reset()
	r.Users.Reset()
	r.Dashboard.Reset()
	r.Profile.Reset()
}
