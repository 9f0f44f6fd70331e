package models

import "time"

// Invite is a single-use tokenized invitation to a family
type Invite struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"familyId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *Invite) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

func (i *Invite) IsValid() bool {
	return !i.Used && !i.IsExpired()
}
