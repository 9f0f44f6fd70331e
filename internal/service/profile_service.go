package service

import (
	"errors"
	"fmt"

	"kyn/internal/models"
	"kyn/internal/repository"
	"kyn/internal/validation"
)

// ErrProfileNotFound means the account has no person profile yet.
// Family operations cannot proceed until onboarding creates one.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileService resolves the person behind a login account
type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfileForUser resolves the profile for an authenticated user
func (s *ProfileService) GetProfileForUser(userID int64) (*models.Profile, error) {
	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// EnsureProfile resolves the user's profile, creating one during
// onboarding for accounts that predate profile records
func (s *ProfileService) EnsureProfile(userID int64, email, fullName string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	if err := validation.ValidateName(fullName); err != nil {
		return nil, err
	}

	profile, err = s.profileRepo.CreateProfile(userID, email, fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile updates the display fields on a profile
func (s *ProfileService) UpdateProfile(profileID int64, fullName string, avatarURL *string) (*models.Profile, error) {
	if err := validation.ValidateName(fullName); err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdateProfile(profileID, fullName, avatarURL); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	profile, err := s.profileRepo.GetProfileByID(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	return profile, nil
}
