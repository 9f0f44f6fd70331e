package service

import (
	"context"
	"errors"
	"testing"
)

func TestCreateFamily(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")

	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}
	if family.Name != "The Smiths" || family.CreatedBy != alice.ID {
		t.Errorf("unexpected family: %+v", family)
	}

	memberships, err := env.families.ListMemberships(alice.ID)
	if err != nil {
		t.Fatalf("ListMemberships() error = %v", err)
	}
	if len(memberships) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(memberships))
	}
	if memberships[0].Role != "admin" {
		t.Errorf("creator role = %q, want admin", memberships[0].Role)
	}
	if !memberships[0].CreatedByMe {
		t.Error("createdByMe should be true for the creator")
	}
}

func TestCreateFamilyOnePerCreator(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")

	if _, err := env.families.CreateFamily(alice.ID, "The Smiths"); err != nil {
		t.Fatalf("first CreateFamily() error = %v", err)
	}

	_, err := env.families.CreateFamily(alice.ID, "Second Family")
	if !errors.Is(err, ErrAlreadyCreatedFamily) {
		t.Errorf("second CreateFamily() error = %v, want ErrAlreadyCreatedFamily", err)
	}
}

func TestCreateFamilyNameScopedToCreator(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")

	if _, err := env.families.CreateFamily(alice.ID, "The Smiths"); err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	// Names are only reserved within one creator's families, so another
	// profile can reuse the same name.
	family, err := env.families.CreateFamily(bob.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() with a name used by another creator error = %v", err)
	}
	if family.CreatedBy != bob.ID {
		t.Errorf("family.CreatedBy = %d, want %d", family.CreatedBy, bob.ID)
	}
}

func TestGetFamilyByNameScopedToCreator(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")

	created, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	found, err := env.familyRepo.GetFamilyByName("The Smiths", alice.ID)
	if err != nil {
		t.Fatalf("GetFamilyByName() error = %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("GetFamilyByName(alice) = %+v, want family %d", found, created.ID)
	}

	notFound, err := env.familyRepo.GetFamilyByName("The Smiths", bob.ID)
	if err != nil {
		t.Fatalf("GetFamilyByName() error = %v", err)
	}
	if notFound != nil {
		t.Errorf("GetFamilyByName(bob) = %+v, want nil", notFound)
	}
}

func TestInviteByEmail(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")

	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	member, err := env.families.InviteByEmail(context.Background(), alice.ID, family.ID, "bob@example.com")
	if err != nil {
		t.Fatalf("InviteByEmail() error = %v", err)
	}
	if member.ProfileID != bob.ID || member.Role != "member" {
		t.Errorf("unexpected member: %+v", member)
	}

	// Inviting again reports the duplicate
	_, err = env.families.InviteByEmail(context.Background(), alice.ID, family.ID, "bob@example.com")
	if !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("repeat InviteByEmail() error = %v, want ErrAlreadyMember", err)
	}
}

func TestInviteByEmailIgnoresCase(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Jones")

	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	member, err := env.families.InviteByEmail(context.Background(), alice.ID, family.ID, " Bob@Example.COM ")
	if err != nil {
		t.Fatalf("InviteByEmail() with mixed-case email error = %v", err)
	}
	if member.ProfileID != bob.ID {
		t.Errorf("member.ProfileID = %d, want %d", member.ProfileID, bob.ID)
	}
}

func TestInviteByEmailUnknownAccount(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	_, err = env.families.InviteByEmail(context.Background(), alice.ID, family.ID, "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("InviteByEmail() error = %v, want ErrUserNotFound", err)
	}
}

func TestListMembersRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	mallory := env.newProfile(t, "mallory@example.com", "Mallory Evil")

	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}

	if _, err := env.families.ListMembers(mallory.ID, family.ID); !errors.Is(err, ErrNotFamilyMember) {
		t.Errorf("ListMembers() error = %v, want ErrNotFamilyMember", err)
	}
}

func TestFamilyTree(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newProfile(t, "alice@example.com", "Alice Smith")
	bob := env.newProfile(t, "bob@example.com", "Bob Smith")

	family, err := env.families.CreateFamily(alice.ID, "The Smiths")
	if err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}
	if _, err := env.families.InviteByEmail(context.Background(), alice.ID, family.ID, "bob@example.com"); err != nil {
		t.Fatalf("InviteByEmail() error = %v", err)
	}

	members, err := env.families.ListMembers(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	var aliceMemberID, bobMemberID int64
	for _, m := range members {
		switch m.ProfileID {
		case alice.ID:
			aliceMemberID = m.MemberID
		case bob.ID:
			bobMemberID = m.MemberID
		}
	}

	if err := env.families.SetMemberParent(alice.ID, family.ID, bobMemberID, &aliceMemberID); err != nil {
		t.Fatalf("SetMemberParent() error = %v", err)
	}

	roots, err := env.families.BuildTree(alice.ID, family.ID)
	if err != nil {
		t.Fatalf("BuildTree() error = %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if roots[0].Member.MemberID != aliceMemberID {
		t.Errorf("root member = %d, want %d", roots[0].Member.MemberID, aliceMemberID)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Member.MemberID != bobMemberID {
		t.Errorf("expected bob as alice's child, got %+v", roots[0].Children)
	}

	// Self-parenting is rejected
	if err := env.families.SetMemberParent(alice.ID, family.ID, bobMemberID, &bobMemberID); err == nil {
		t.Error("expected error linking member to itself")
	}
}
