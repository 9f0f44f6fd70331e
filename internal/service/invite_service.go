package service

import (
	"errors"
	"fmt"
	"time"

	"kyn/internal/models"
	"kyn/internal/repository"
	"kyn/internal/security"
)

const inviteTokenTTL = 1 * time.Hour

var (
	ErrInvalidInvite   = errors.New("invalid invite")
	ErrInviteUsed      = errors.New("invalid or expired invite link")
	ErrInviteExpired   = errors.New("this invite link has expired")
	ErrAmbiguousInvite = errors.New("multiple families found for this password")
)

// InviteService handles both invite flows: the shareable family
// password and single-use tokenized links
type InviteService struct {
	familyRepo *repository.FamilyRepository
	inviteRepo *repository.InviteRepository
	appBaseURL string
}

// NewInviteService creates a new invite service
func NewInviteService(familyRepo *repository.FamilyRepository, inviteRepo *repository.InviteRepository, appBaseURL string) *InviteService {
	return &InviteService{
		familyRepo: familyRepo,
		inviteRepo: inviteRepo,
		appBaseURL: appBaseURL,
	}
}

// GeneratePassword creates a fresh shareable password for the family.
// The password is multi-use, never expires and overwrites any previous
// one, which immediately invalidates the old password.
func (s *InviteService) GeneratePassword(callerProfileID, familyID int64) (string, error) {
	if err := s.requireMembership(callerProfileID, familyID); err != nil {
		return "", err
	}

	password, err := security.GenerateInvitePassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	if err := s.familyRepo.SetInvitePassword(familyID, password); err != nil {
		return "", err
	}

	return password, nil
}

// GenerateInviteLink creates a single-use invite link valid for one hour
func (s *InviteService) GenerateInviteLink(callerProfileID, familyID int64) (*models.Invite, string, error) {
	if err := s.requireMembership(callerProfileID, familyID); err != nil {
		return nil, "", err
	}

	token, err := security.GenerateInviteToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	invite, err := s.inviteRepo.CreateInvite(familyID, token, time.Now().Add(inviteTokenTTL))
	if err != nil {
		return nil, "", err
	}

	joinURL := fmt.Sprintf("%s/join?family=%d&token=%s", s.appBaseURL, familyID, token)
	return invite, joinURL, nil
}

// JoinByToken redeems a single-use invite link. The token must exist,
// match the family in the link, be unused and unexpired, and the caller
// must not already belong to the family.
func (s *InviteService) JoinByToken(profileID, familyID int64, token string) (*models.Family, error) {
	invite, err := s.inviteRepo.GetInviteByToken(token)
	if err != nil {
		return nil, err
	}
	if invite == nil || invite.FamilyID != familyID {
		return nil, ErrInvalidInvite
	}
	if invite.Used {
		return nil, ErrInviteUsed
	}
	if invite.IsExpired() {
		return nil, ErrInviteExpired
	}

	isMember, err := s.familyRepo.IsFamilyMember(profileID, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	if err := s.inviteRepo.RedeemInvite(invite.ID, familyID, profileID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// lost a race with another redemption of the same token
			return nil, ErrInviteUsed
		}
		return nil, err
	}

	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, err
	}
	return family, nil
}

// JoinByPassword joins the family matching a shared password. Exactly
// one family must match; several matching families is ambiguous and the
// join is refused rather than guessing.
func (s *InviteService) JoinByPassword(profileID int64, password string) (*models.Family, error) {
	if password == "" {
		return nil, ErrInvalidInvite
	}

	families, err := s.familyRepo.FindFamiliesByPassword(password)
	if err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return nil, ErrInvalidInvite
	}
	if len(families) > 1 {
		return nil, ErrAmbiguousInvite
	}

	family := families[0]
	isMember, err := s.familyRepo.IsFamilyMember(profileID, family.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	if err := s.familyRepo.AddMember(family.ID, profileID, "member"); err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}

	return &family, nil
}

func (s *InviteService) requireMembership(profileID, familyID int64) error {
	isMember, err := s.familyRepo.IsFamilyMember(profileID, familyID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return ErrNotFamilyMember
	}
	return nil
}
