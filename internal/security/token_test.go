package security

import (
	"strings"
	"testing"
)

func TestGenerateInviteCode(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"password length", InvitePasswordLength},
		{"token length", InviteTokenLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[string]bool)
			for i := 0; i < 100; i++ {
				code, err := GenerateInviteCode(tt.length)
				if err != nil {
					t.Fatalf("GenerateInviteCode() error = %v", err)
				}
				if len(code) != tt.length {
					t.Errorf("code length = %d, want %d", len(code), tt.length)
				}
				for _, c := range code {
					if !strings.ContainsRune(inviteAlphabet, c) {
						t.Errorf("code contains %q, not in alphabet", c)
					}
				}
				if seen[code] {
					t.Errorf("duplicate code generated: %s", code)
				}
				seen[code] = true
			}
		})
	}
}

func TestRealtimeTicketRoundTrip(t *testing.T) {
	secret := "test-secret"

	ticket, err := MintRealtimeTicket(secret, 42, 7)
	if err != nil {
		t.Fatalf("MintRealtimeTicket() error = %v", err)
	}

	profileID, familyID, err := VerifyRealtimeTicket(secret, ticket)
	if err != nil {
		t.Fatalf("VerifyRealtimeTicket() error = %v", err)
	}
	if profileID != 42 || familyID != 7 {
		t.Errorf("got (%d, %d), want (42, 7)", profileID, familyID)
	}
}

func TestRealtimeTicketWrongSecret(t *testing.T) {
	ticket, err := MintRealtimeTicket("secret-a", 1, 1)
	if err != nil {
		t.Fatalf("MintRealtimeTicket() error = %v", err)
	}
	if _, _, err := VerifyRealtimeTicket("secret-b", ticket); err == nil {
		t.Error("expected verification to fail with wrong secret")
	}
}

func TestRealtimeTicketGarbage(t *testing.T) {
	if _, _, err := VerifyRealtimeTicket("secret", "not-a-ticket"); err == nil {
		t.Error("expected verification to fail for malformed ticket")
	}
}
