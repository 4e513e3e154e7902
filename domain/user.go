package domain

import "time"

// Known account roles. Unknown roles fall back to RoleUser.
const (
	RoleAdmin    = "admin"
	RoleEmployer = "employer"
	RoleUser     = "user"
)

// User represents an identity known to the platform.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email,omitempty"`
	Role        string       `json:"role"`
	Status      string       `json:"status,omitempty"`
	Avatar      string       `json:"avatar,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Preferences holds per-user interface settings.
type Preferences struct {
	Theme         string            `json:"theme,omitempty"`
	Language      string            `json:"language,omitempty"`
	Timezone      string            `json:"timezone,omitempty"`
	Notifications NotificationPrefs `json:"notifications"`
}

// NotificationPrefs toggles each notification channel.
type NotificationPrefs struct {
	Email          bool `json:"email"`
	Push           bool `json:"push"`
	TaskReminders  bool `json:"taskReminders"`
	DeadlineAlerts bool `json:"deadlineAlerts"`
}

// DefaultPreferences matches what the backend assigns to new accounts.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:    "light",
		Language: "en",
		Timezone: "UTC",
		Notifications: NotificationPrefs{
			Email:          true,
			Push:           true,
			TaskReminders:  true,
			DeadlineAlerts: true,
		},
	}
}

// RoleOrDefault returns the role with the backend's implicit default applied.
func RoleOrDefault(role string) string {
	if role == "" {
		return RoleUser
	}
	return role
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == "active"
}
