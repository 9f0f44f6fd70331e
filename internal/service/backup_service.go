package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"kyn/internal/database"
)

// BackupData is the portable export of the core identity and
// membership tables. Feature content is not included; backups exist to
// move accounts and families between database engines.
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Users      []UserBackup    `json:"users"`
	Profiles   []ProfileBackup `json:"profiles"`
	Families   []FamilyBackup  `json:"families"`
	Invites    []InviteBackup  `json:"invites"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileBackup represents a profile record for backup
type ProfileBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FamilyBackup represents a family record with its memberships
type FamilyBackup struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	CreatedBy      int64          `json:"created_by"`
	InvitePassword *string        `json:"invite_password"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Members        []MemberBackup `json:"members"`
}

// MemberBackup represents a family membership record
type MemberBackup struct {
	ProfileID      int64  `json:"profile_id"`
	Role           string `json:"role"`
	ParentMemberID *int64 `json:"parent_member_id"`
}

// InviteBackup represents a tokenized invite record
type InviteBackup struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupService handles database export and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a backup of the core tables to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes a backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportProfiles(backup); err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	if err := s.exportFamilies(backup); err != nil {
		return fmt.Errorf("failed to export families: %w", err)
	}
	if err := s.exportInvites(backup); err != nil {
		return fmt.Errorf("failed to export invites: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d profiles, %d families, %d invites",
		len(backup.Users), len(backup.Profiles), len(backup.Families), len(backup.Invites))
	return nil
}

// Import restores a backup file into an empty database
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup from a reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Dependency order: users before profiles before families
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importProfiles(backup.Profiles); err != nil {
		return fmt.Errorf("failed to import profiles: %w", err)
	}
	if err := s.importFamilies(backup.Families); err != nil {
		return fmt.Errorf("failed to import families: %w", err)
	}
	if err := s.importInvites(backup.Invites); err != nil {
		return fmt.Errorf("failed to import invites: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, password_hash, created_at, updated_at FROM users ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportProfiles(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, email, full_name, avatar_url, created_at, updated_at FROM profiles ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProfileBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.Email, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		backup.Profiles = append(backup.Profiles, p)
	}
	return rows.Err()
}

func (s *BackupService) exportFamilies(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, created_by, invite_password, created_at, updated_at FROM families ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FamilyBackup
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedBy, &f.InvitePassword, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return err
		}
		backup.Families = append(backup.Families, f)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range backup.Families {
		memberRows, err := s.db.Query("SELECT profile_id, role, parent_member_id FROM family_members WHERE family_id = ? ORDER BY id", backup.Families[i].ID)
		if err != nil {
			return err
		}
		for memberRows.Next() {
			var m MemberBackup
			if err := memberRows.Scan(&m.ProfileID, &m.Role, &m.ParentMemberID); err != nil {
				memberRows.Close()
				return err
			}
			backup.Families[i].Members = append(backup.Families[i].Members, m)
		}
		if err := memberRows.Err(); err != nil {
			memberRows.Close()
			return err
		}
		memberRows.Close()
	}
	return nil
}

func (s *BackupService) exportInvites(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, family_id, token, expires_at, used, created_at FROM family_invites ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var inv InviteBackup
		if err := rows.Scan(&inv.ID, &inv.FamilyID, &inv.Token, &inv.ExpiresAt, &inv.Used, &inv.CreatedAt); err != nil {
			return err
		}
		backup.Invites = append(backup.Invites, inv)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importProfiles(profiles []ProfileBackup) error {
	log.Printf("Importing %d profiles...", len(profiles))
	for _, p := range profiles {
		query := "INSERT INTO profiles (id, user_id, email, full_name, avatar_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, p.ID, p.UserID, p.Email, p.FullName, p.AvatarURL, p.CreatedAt, p.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import profile %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFamilies(families []FamilyBackup) error {
	log.Printf("Importing %d families...", len(families))
	for _, f := range families {
		query := "INSERT INTO families (id, name, created_by, invite_password, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, f.ID, f.Name, f.CreatedBy, f.InvitePassword, f.CreatedAt, f.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import family %d: %w", f.ID, err)
		}

		for _, m := range f.Members {
			memberQuery := "INSERT INTO family_members (family_id, profile_id, role, parent_member_id) VALUES (?, ?, ?, ?)"
			if _, err := s.db.Exec(memberQuery, f.ID, m.ProfileID, m.Role, m.ParentMemberID); err != nil {
				return fmt.Errorf("failed to import member %d for family %d: %w", m.ProfileID, f.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importInvites(invites []InviteBackup) error {
	log.Printf("Importing %d invites...", len(invites))
	for _, inv := range invites {
		query := "INSERT INTO family_invites (id, family_id, token, expires_at, used, created_at) VALUES (?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, inv.ID, inv.FamilyID, inv.Token, inv.ExpiresAt, inv.Used, inv.CreatedAt); err != nil {
			return fmt.Errorf("failed to import invite %d: %w", inv.ID, err)
		}
	}
	return nil
}
