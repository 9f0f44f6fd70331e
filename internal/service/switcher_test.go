package service

import (
	"errors"
	"testing"
)

func TestSwitcherFallsBackToFirstMembership(t *testing.T) {
	env := newTestEnv(t)
	switcher := NewSwitcher(NewMemorySelectionStore(), env.familyRepo)

	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	selected, err := switcher.Selected(alice.ID)
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if selected.Family.ID != family.ID {
		t.Errorf("selected family %d, want %d", selected.Family.ID, family.ID)
	}
}

func TestSwitcherHonoursStoredSelection(t *testing.T) {
	env := newTestEnv(t)
	store := NewMemorySelectionStore()
	switcher := NewSwitcher(store, env.familyRepo)

	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")

	own, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}
	other, err := env.families.CreateFamily(bob.ID, "The Joneses")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	password, err := env.invites.GeneratePassword(bob.ID, other.ID)
	if err != nil {
		t.Fatalf("GeneratePassword() error = %v", err)
	}
	if _, err := env.invites.JoinByPassword(alice.ID, password); err != nil {
		t.Fatalf("JoinByPassword() error = %v", err)
	}

	if _, err := switcher.Select(alice.ID, other.ID); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	selected, err := switcher.Selected(alice.ID)
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if selected.Family.ID != other.ID {
		t.Errorf("selected family %d, want %d", selected.Family.ID, other.ID)
	}
	_ = own
}

func TestSwitcherRejectsNonMembership(t *testing.T) {
	env := newTestEnv(t)
	switcher := NewSwitcher(NewMemorySelectionStore(), env.familyRepo)

	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")
	theirs, err := env.families.CreateFamily(bob.ID, "The Joneses")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}
	if _, err := env.families.CreateFamily(alice.ID, "The Smiths"); err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	if _, err := switcher.Select(alice.ID, theirs.ID); !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("Select() error = %v, want ErrNotFamilyMember", err)
	}
}

func TestSwitcherDropsStaleSelection(t *testing.T) {
	env := newTestEnv(t)
	store := NewMemorySelectionStore()
	switcher := NewSwitcher(store, env.familyRepo)

	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	// Selection points at a family alice never joined
	if err := store.Set(alice.ID, family.ID+100); err != nil {
		t.Fatalf("store.Set() error = %v", err)
	}

	selected, err := switcher.Selected(alice.ID)
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if selected.Family.ID != family.ID {
		t.Errorf("selected family %d, want fallback %d", selected.Family.ID, family.ID)
	}
}

func TestSwitcherNoMemberships(t *testing.T) {
	env := newTestEnv(t)
	switcher := NewSwitcher(NewMemorySelectionStore(), env.familyRepo)

	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	if _, err := switcher.Selected(alice.ID); !errors.Is(err, ErrNoFamilies) {
		t.Errorf("Selected() error = %v, want ErrNoFamilies", err)
	}
}
