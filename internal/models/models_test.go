package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"future expiry", time.Now().Add(time.Hour), false},
		{"past expiry", time.Now().Add(-time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{ExpiresAt: tt.expiresAt}
			if got := s.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInviteIsValid(t *testing.T) {
	tests := []struct {
		name      string
		used      bool
		expiresAt time.Time
		want      bool
	}{
		{"fresh invite", false, time.Now().Add(time.Hour), true},
		{"already used", true, time.Now().Add(time.Hour), false},
		{"expired", false, time.Now().Add(-time.Minute), false},
		{"used and expired", true, time.Now().Add(-time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invite{Used: tt.used, ExpiresAt: tt.expiresAt}
			if got := inv.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTriviaCheckAnswer(t *testing.T) {
	q := TriviaQuestion{Answer: "Grandma Rosa"}
	tests := []struct {
		name  string
		guess string
		want  bool
	}{
		{"exact match", "Grandma Rosa", true},
		{"case insensitive", "grandma rosa", true},
		{"surrounding whitespace", "  Grandma Rosa  ", true},
		{"wrong answer", "Grandpa Joe", false},
		{"empty guess", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.CheckAnswer(tt.guess); got != tt.want {
				t.Errorf("CheckAnswer(%q) = %v, want %v", tt.guess, got, tt.want)
			}
		})
	}
}
