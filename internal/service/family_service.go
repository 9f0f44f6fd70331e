package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"kyn/internal/models"
	"kyn/internal/repository"
	"kyn/internal/validation"
)

var (
	ErrAlreadyCreatedFamily = errors.New("you have already created a family")
	ErrDuplicateFamilyName  = errors.New("a family with this name already exists")
	ErrAlreadyMember        = errors.New("already a member of this family")
	ErrNotFamilyMember      = errors.New("not a member of this family")
	ErrUserNotFound         = errors.New("no account found for this email")
)

// FamilyService handles family and membership business logic
type FamilyService struct {
	familyRepo  *repository.FamilyRepository
	profileRepo *repository.ProfileRepository
	email       *EmailService
}

// NewFamilyService creates a new family service
func NewFamilyService(familyRepo *repository.FamilyRepository, profileRepo *repository.ProfileRepository, email *EmailService) *FamilyService {
	return &FamilyService{
		familyRepo:  familyRepo,
		profileRepo: profileRepo,
		email:       email,
	}
}

// CreateFamily creates a family with the caller as its admin.
// Each profile may create at most one family, and a creator cannot
// reuse one of their own family names. Different creators may pick the
// same name. Both checks are pre-flights; the unique index on
// created_by is the real guard under concurrency.
func (s *FamilyService) CreateFamily(creatorProfileID int64, name string) (*models.Family, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existing, err := s.familyRepo.GetFamilyByCreator(creatorProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing family: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyCreatedFamily
	}

	sameName, err := s.familyRepo.GetFamilyByName(name, creatorProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to check family name: %w", err)
	}
	if sameName != nil {
		return nil, ErrDuplicateFamilyName
	}

	family, err := s.familyRepo.CreateFamily(name, creatorProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	return family, nil
}

// ListMemberships retrieves every family the profile belongs to
func (s *FamilyService) ListMemberships(profileID int64) ([]models.Membership, error) {
	return s.familyRepo.ListMemberships(profileID)
}

// ListMembers retrieves a family's members. The caller must belong to
// the family.
func (s *FamilyService) ListMembers(callerProfileID, familyID int64) ([]models.MemberProfile, error) {
	isMember, err := s.familyRepo.IsFamilyMember(callerProfileID, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, ErrNotFamilyMember
	}

	return s.familyRepo.GetFamilyMembers(familyID)
}

// InviteByEmail enrolls an existing account into the family directly.
// The invited person must already have a profile; inviting an unknown
// email fails rather than creating a pending invitation.
func (s *FamilyService) InviteByEmail(ctx context.Context, inviterProfileID, familyID int64, email string) (*models.MemberProfile, error) {
	isMember, err := s.familyRepo.IsFamilyMember(inviterProfileID, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, ErrNotFamilyMember
	}

	invitee, err := s.profileRepo.GetProfileByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitee: %w", err)
	}
	if invitee == nil {
		return nil, ErrUserNotFound
	}

	alreadyMember, err := s.familyRepo.IsFamilyMember(invitee.ID, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invitee membership: %w", err)
	}
	if alreadyMember {
		return nil, ErrAlreadyMember
	}

	if err := s.familyRepo.AddMember(familyID, invitee.ID, "member"); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	// Courtesy notification; enrollment already happened
	if s.email != nil && s.email.IsEnabled() {
		family, err := s.familyRepo.GetFamilyByID(familyID)
		if err == nil && family != nil {
			if err := s.email.SendFamilyAddedEmail(ctx, invitee.Email, invitee.FullName, family.Name); err != nil {
				log.Printf("Failed to send family notification email to %s: %v", invitee.Email, err)
			}
		}
	}

	members, err := s.familyRepo.GetFamilyMembers(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload members: %w", err)
	}
	for i := range members {
		if members[i].ProfileID == invitee.ID {
			return &members[i], nil
		}
	}
	return nil, fmt.Errorf("new member not found after enrollment")
}

// BuildTree assembles the family tree from parent links. Members with
// no parent (or a dangling one) become roots.
func (s *FamilyService) BuildTree(callerProfileID, familyID int64) ([]*models.TreeNode, error) {
	members, err := s.ListMembers(callerProfileID, familyID)
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*models.TreeNode, len(members))
	for i := range members {
		nodes[members[i].MemberID] = &models.TreeNode{Member: members[i], Children: []*models.TreeNode{}}
	}

	var roots []*models.TreeNode
	for _, m := range members {
		node := nodes[m.MemberID]
		if m.ParentMemberID != nil {
			if parent, ok := nodes[*m.ParentMemberID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots, nil
}

// SetMemberParent links a member under another member in the tree
func (s *FamilyService) SetMemberParent(callerProfileID, familyID, memberID int64, parentMemberID *int64) error {
	isMember, err := s.familyRepo.IsFamilyMember(callerProfileID, familyID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return ErrNotFamilyMember
	}

	if parentMemberID != nil && *parentMemberID == memberID {
		return errors.New("a member cannot be its own parent")
	}

	return s.familyRepo.SetParentMember(familyID, memberID, parentMemberID)
}
