package service

import (
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, profile, err := env.auth.Register("alice@example.com", "password123", "Alice Smith")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if profile.UserID != user.ID {
		t.Errorf("profile.UserID = %d, want %d", profile.UserID, user.ID)
	}

	session, loggedIn, err := env.auth.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in user %d, want %d", loggedIn.ID, user.ID)
	}

	validated, err := env.auth.ValidateSession(session.ID)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("validated user %d, want %d", validated.ID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.newProfile(t, "alice@example.com", "Alice Smith")

	_, _, err := env.auth.Register("alice@example.com", "password123", "Alice Clone")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.newProfile(t, "alice@example.com", "Alice Smith")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "not-the-password"},
		{"unknown email", "ghost@example.com", "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.auth.Login(tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	env.newProfile(t, "alice@example.com", "Alice Smith")

	session, _, err := env.auth.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := env.auth.Logout(session.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := env.auth.ValidateSession(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ValidateSession() error = %v, want ErrSessionNotFound", err)
	}
}
