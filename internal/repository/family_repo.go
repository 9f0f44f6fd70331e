package repository

import (
	"database/sql"
	"fmt"
	"time"

	"kyn/internal/database"
	"kyn/internal/models"
)

// FamilyRepository handles database operations for families and memberships
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// CreateFamily creates a family and enrolls the creator as admin in one
// transaction. The unique index on families.created_by is the real guard
// against a creator racing two creations.
func (r *FamilyRepository) CreateFamily(name string, creatorProfileID int64) (*models.Family, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO families (name, created_by) VALUES (?, ?)"
	familyID, err := tx.ExecReturningID(query, name, creatorProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	query = "INSERT INTO family_members (family_id, profile_id, role) VALUES (?, ?, 'admin')"
	if _, err := tx.Exec(query, familyID, creatorProfileID); err != nil {
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	family := &models.Family{
		ID:        familyID,
		Name:      name,
		CreatedBy: creatorProfileID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return family, nil
}

// GetFamilyByID retrieves a family by ID
func (r *FamilyRepository) GetFamilyByID(familyID int64) (*models.Family, error) {
	query := "SELECT id, name, created_by, invite_password, created_at, updated_at FROM families WHERE id = ?"
	return r.scanOne(query, familyID)
}

// GetFamilyByCreator retrieves the family created by a profile, if any
func (r *FamilyRepository) GetFamilyByCreator(profileID int64) (*models.Family, error) {
	query := "SELECT id, name, created_by, invite_password, created_at, updated_at FROM families WHERE created_by = ?"
	return r.scanOne(query, profileID)
}

// GetFamilyByName retrieves a family by exact name within one
// creator's families. Names are not unique across creators.
func (r *FamilyRepository) GetFamilyByName(name string, createdBy int64) (*models.Family, error) {
	query := "SELECT id, name, created_by, invite_password, created_at, updated_at FROM families WHERE name = ? AND created_by = ?"
	return r.scanOne(query, name, createdBy)
}

// FindFamiliesByPassword retrieves every family whose shared invite
// password matches. More than one match is possible and the caller must
// treat it as ambiguous.
func (r *FamilyRepository) FindFamiliesByPassword(password string) ([]models.Family, error) {
	query := "SELECT id, name, created_by, invite_password, created_at, updated_at FROM families WHERE invite_password = ?"
	rows, err := r.db.Query(query, password)
	if err != nil {
		return nil, fmt.Errorf("failed to query families by password: %w", err)
	}
	defer rows.Close()

	var families []models.Family
	for rows.Next() {
		var f models.Family
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedBy, &f.InvitePassword, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan family: %w", err)
		}
		families = append(families, f)
	}

	return families, rows.Err()
}

// SetInvitePassword overwrites the family's shared invite password
func (r *FamilyRepository) SetInvitePassword(familyID int64, password string) error {
	query := "UPDATE families SET invite_password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, password, familyID)
	if err != nil {
		return fmt.Errorf("failed to set invite password: %w", err)
	}
	return nil
}

// ListMemberships retrieves every family a profile belongs to,
// with the profile's role and whether it created the family
func (r *FamilyRepository) ListMemberships(profileID int64) ([]models.Membership, error) {
	query := `
		SELECT f.id, f.name, f.created_by, f.invite_password, f.created_at, f.updated_at, fm.role
		FROM families f
		INNER JOIN family_members fm ON f.id = fm.family_id
		WHERE fm.profile_id = ?
		ORDER BY fm.joined_at ASC
	`
	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.Family.ID, &m.Family.Name, &m.Family.CreatedBy, &m.Family.InvitePassword,
			&m.Family.CreatedAt, &m.Family.UpdatedAt, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.CreatedByMe = m.Family.CreatedBy == profileID
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// AddMember adds a profile to a family
func (r *FamilyRepository) AddMember(familyID, profileID int64, role string) error {
	query := "INSERT INTO family_members (family_id, profile_id, role) VALUES (?, ?, ?)"
	_, err := r.db.Exec(query, familyID, profileID, role)
	if err != nil {
		return fmt.Errorf("failed to add family member: %w", err)
	}
	return nil
}

// IsFamilyMember checks if a profile belongs to a family
func (r *FamilyRepository) IsFamilyMember(profileID, familyID int64) (bool, error) {
	query := "SELECT COUNT(*) FROM family_members WHERE profile_id = ? AND family_id = ?"
	var count int
	if err := r.db.QueryRow(query, profileID, familyID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check family membership: %w", err)
	}
	return count > 0, nil
}

// GetFamilyMembers retrieves all members of a family with person details
func (r *FamilyRepository) GetFamilyMembers(familyID int64) ([]models.MemberProfile, error) {
	query := `
		SELECT fm.id, fm.profile_id, p.full_name, p.email, p.avatar_url, fm.role, fm.parent_member_id, fm.joined_at
		FROM family_members fm
		INNER JOIN profiles p ON fm.profile_id = p.id
		WHERE fm.family_id = ?
		ORDER BY fm.joined_at ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	var members []models.MemberProfile
	for rows.Next() {
		var m models.MemberProfile
		if err := rows.Scan(&m.MemberID, &m.ProfileID, &m.FullName, &m.Email, &m.AvatarURL,
			&m.Role, &m.ParentMemberID, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// SetParentMember links a member to its parent in the family tree.
// A nil parent detaches the member.
func (r *FamilyRepository) SetParentMember(familyID, memberID int64, parentMemberID *int64) error {
	query := "UPDATE family_members SET parent_member_id = ? WHERE id = ? AND family_id = ?"
	result, err := r.db.Exec(query, parentMemberID, memberID, familyID)
	if err != nil {
		return fmt.Errorf("failed to set parent member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FamilyRepository) scanOne(query string, args ...interface{}) (*models.Family, error) {
	family := &models.Family{}
	err := r.db.QueryRow(query, args...).Scan(
		&family.ID,
		&family.Name,
		&family.CreatedBy,
		&family.InvitePassword,
		&family.CreatedAt,
		&family.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return family, nil
}
