package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"kyn/internal/security"
)

func TestGeneratePasswordOverwrites(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	first, err := env.invites.GeneratePassword(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("GeneratePassword() error = %v", err)
	}
	if len(first) != security.InvitePasswordLength {
		t.Errorf("password length = %d, want %d", len(first), security.InvitePasswordLength)
	}

	second, err := env.invites.GeneratePassword(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("second GeneratePassword() error = %v", err)
	}

	// The old password no longer admits anyone
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")
	if _, err := env.invites.JoinByPassword(bob.ID, first); !errors.Is(err, ErrInvalidInvite) {
		t.Errorf("JoinByPassword(old) error = %v, want ErrInvalidInvite", err)
	}
	if _, err := env.invites.JoinByPassword(bob.ID, second); err != nil {
		t.Errorf("JoinByPassword(current) error = %v", err)
	}
}

func TestJoinByPassword(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	password, err := env.invites.GeneratePassword(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("GeneratePassword() error = %v", err)
	}

	joined, err := env.invites.JoinByPassword(bob.ID, password)
	if err != nil {
		t.Fatalf("JoinByPassword() error = %v", err)
	}
	if joined.ID != family.ID {
		t.Errorf("joined family %d, want %d", joined.ID, family.ID)
	}

	// The password stays valid for further joiners
	carol := env.newProfile(t, "carol@example.com", "Carol White")
	if _, err := env.invites.JoinByPassword(carol.ID, password); err != nil {
		t.Errorf("second JoinByPassword() error = %v", err)
	}

	// But not for existing members
	if _, err := env.invites.JoinByPassword(bob.ID, password); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("repeat JoinByPassword() error = %v, want ErrAlreadyMember", err)
	}
}

func TestJoinByPasswordAmbiguous(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")

	f1, err := env.families.CreateFamily(alice.ID, "Family One")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}
	f2, err := env.families.CreateFamily(bob.ID, "Family Two")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	// Force a password collision directly
	if err := env.familyRepo.SetInvitePassword(f1.ID, "collide12"); err != nil {
		t.Fatalf("SetInvitePassword() error = %v", err)
	}
	if err := env.familyRepo.SetInvitePassword(f2.ID, "collide12"); err != nil {
		t.Fatalf("SetInvitePassword() error = %v", err)
	}

	carol := env.newProfile(t, "carol@example.com", "Carol White")
	if _, err := env.invites.JoinByPassword(carol.ID, "collide12"); !errors.Is(err, ErrAmbiguousInvite) {
		t.Errorf("JoinByPassword() error = %v, want ErrAmbiguousInvite", err)
	}
}

func TestGenerateInviteLink(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	invite, joinURL, err := env.invites.GenerateInviteLink(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("GenerateInviteLink() error = %v", err)
	}
	if len(invite.Token) != security.InviteTokenLength {
		t.Errorf("token length = %d, want %d", len(invite.Token), security.InviteTokenLength)
	}

	want := fmt.Sprintf("https://kyn.test/join?family=%d&token=%s", family.ID, invite.Token)
	if joinURL != want {
		t.Errorf("joinURL = %q, want %q", joinURL, want)
	}
	if !strings.Contains(joinURL, "/join?family=") {
		t.Errorf("joinURL missing join path: %q", joinURL)
	}
}

func TestJoinByTokenSingleUse(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")
	carol := env.newProfile(t, "carol@example.com", "Carol White")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	invite, _, err := env.invites.GenerateInviteLink(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("GenerateInviteLink() error = %v", err)
	}

	joined, err := env.invites.JoinByToken(bob.ID, family.ID, invite.Token)
	if err != nil {
		t.Fatalf("JoinByToken() error = %v", err)
	}
	if joined.ID != family.ID {
		t.Errorf("joined family %d, want %d", joined.ID, family.ID)
	}

	// Second redemption fails: the token is single-use
	if _, err := env.invites.JoinByToken(carol.ID, family.ID, invite.Token); !errors.Is(err, ErrInviteUsed) {
		t.Errorf("second JoinByToken() error = %v, want ErrInviteUsed", err)
	}
}

func TestJoinByTokenRejections(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	// Unknown token
	if _, err := env.invites.JoinByToken(bob.ID, family.ID, "nosuchtoken12345"); !errors.Is(err, ErrInvalidInvite) {
		t.Errorf("JoinByToken(unknown) error = %v, want ErrInvalidInvite", err)
	}

	// Token bound to a different family than the link claims
	invite, _, err := env.invites.GenerateInviteLink(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("GenerateInviteLink() error = %v", err)
	}
	if _, err := env.invites.JoinByToken(bob.ID, family.ID+99, invite.Token); !errors.Is(err, ErrInvalidInvite) {
		t.Errorf("JoinByToken(wrong family) error = %v, want ErrInvalidInvite", err)
	}

	// Existing member cannot redeem
	if _, err := env.invites.JoinByToken(alice.ID, family.ID, invite.Token); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("JoinByToken(member) error = %v, want ErrAlreadyMember", err)
	}
}

func TestJoinByTokenExpired(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	invite, _, err := env.invites.GenerateInviteLink(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("GenerateInviteLink() error = %v", err)
	}

	// Backdate the expiry
	if _, err := env.db.Exec("UPDATE family_invites SET expires_at = ? WHERE id = ?", time.Now().Add(-2*time.Hour), invite.ID); err != nil {
		t.Fatalf("failed to backdate invite: %v", err)
	}

	if _, err := env.invites.JoinByToken(bob.ID, family.ID, invite.Token); !errors.Is(err, ErrInviteExpired) {
		t.Errorf("JoinByToken(expired) error = %v, want ErrInviteExpired", err)
	}
}
