package service

import (
	"testing"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
	"kyn/internal/repository"
	"kyn/migrations"
)

// testEnv wires services against a fresh in-memory database
type testEnv struct {
	db          *database.DB
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	familyRepo  *repository.FamilyRepository
	inviteRepo  *repository.InviteRepository
	auth        *AuthService
	profiles    *ProfileService
	families    *FamilyService
	invites     *InviteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Initialize(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(migrations.FS); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	inviteRepo := repository.NewInviteRepository(db)

	disabledEmail := &EmailService{}

	return &testEnv{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		familyRepo:  familyRepo,
		inviteRepo:  inviteRepo,
		auth:        NewAuthService(userRepo, profileRepo, time.Hour),
		profiles:    NewProfileService(profileRepo),
		families:    NewFamilyService(familyRepo, profileRepo, disabledEmail),
		invites:     NewInviteService(familyRepo, inviteRepo, "https://kyn.test"),
	}
}

// newProfile registers an account and returns its profile
func (e *testEnv) newProfile(t *testing.T, email, name string) *models.Profile {
	t.Helper()
	_, profile, err := e.auth.Register(email, "password123", name)
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return profile
}
