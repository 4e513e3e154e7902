package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrCodeUnreachable, "network error", cause)

	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause should be reachable through errors.Is")
	}
	if err.Error() != "network error: connection refused" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestIsDomainError(t *testing.T) {
	err := fmt.Errorf("fetch: %w", ErrTaskNotFound)

	if !IsDomainError(err, ErrCodeNotFound) {
		t.Fatal("classification should survive further wrapping")
	}
	if IsDomainError(err, ErrCodeServer) {
		t.Fatal("wrong code must not match")
	}
	if IsDomainError(errors.New("plain"), ErrCodeNotFound) {
		t.Fatal("plain errors carry no classification")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(ErrNoToken); got != ErrCodeNoToken {
		t.Fatalf("CodeOf = %s", got)
	}
	if got := CodeOf(errors.New("plain")); got != ErrCodeServer {
		t.Fatalf("unclassified errors default to SERVER, got %s", got)
	}
}

func TestSessionValid(t *testing.T) {
	cases := []struct {
		name    string
		session Session
		want    bool
	}{
		{"anonymous", Session{}, true},
		{"authenticated with user", Session{User: &User{ID: "u1"}, IsAuthenticated: true}, true},
		{"authenticated without user", Session{IsAuthenticated: true}, false},
		{"user without flag", Session{User: &User{ID: "u1"}}, false},
	}
	for _, tc := range cases {
		if got := tc.session.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRoleOrDefault(t *testing.T) {
	if RoleOrDefault("") != RoleUser {
		t.Fatal("empty role defaults to user")
	}
	if RoleOrDefault(RoleAdmin) != RoleAdmin {
		t.Fatal("explicit roles pass through")
	}
}
