package models

import "time"

// Family represents a household group
type Family struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	CreatedBy      int64     `json:"createdBy"`
	InvitePassword *string   `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FamilyMember represents the relationship between a profile and a family
type FamilyMember struct {
	ID             int64     `json:"id"`
	FamilyID       int64     `json:"familyId"`
	ProfileID      int64     `json:"profileId"`
	Role           string    `json:"role"` // 'member' or 'admin'
	ParentMemberID *int64    `json:"parentMemberId,omitempty"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// Membership pairs a family with the caller's role in it
type Membership struct {
	Family      Family `json:"family"`
	Role        string `json:"role"`
	CreatedByMe bool   `json:"createdByMe"`
}

// MemberProfile is a co-member row with the person details joined in
type MemberProfile struct {
	MemberID       int64     `json:"memberId"`
	ProfileID      int64     `json:"profileId"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	AvatarURL      *string   `json:"avatarUrl,omitempty"`
	Role           string    `json:"role"`
	ParentMemberID *int64    `json:"parentMemberId,omitempty"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// TreeNode is a member with its children resolved, for the family tree view
type TreeNode struct {
	Member   MemberProfile `json:"member"`
	Children []*TreeNode   `json:"children"`
}
