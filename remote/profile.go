package remote

import (
	"context"

	"github.com/hrboard/client/domain"
)

// ProfileAPI is the outbound port for the /users/profile endpoint family.
type ProfileAPI interface {
	Get(ctx context.Context) (*domain.User, error)
	Update(ctx context.Context, input ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	UpdatePreferences(ctx context.Context, prefs domain.Preferences) error
}
