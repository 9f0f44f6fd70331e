package security

import (
	"crypto/rand"
	"fmt"
)

// inviteAlphabet is the URL-safe character set used for invite codes:
// case-sensitive alphanumerics, safe in query strings.
const inviteAlphabet = "useandom26T198340PX75pxJACKVERYMINDBUSHWOLFGQZbfghjklqvwyzrict"

const (
	InvitePasswordLength = 8
	InviteTokenLength    = 16
)

// GenerateInviteCode produces a random code of n characters drawn
// from the invite alphabet
func GenerateInviteCode(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i, b := range bytes {
		bytes[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(bytes), nil
}

// GenerateInvitePassword produces a shareable family password
func GenerateInvitePassword() (string, error) {
	return GenerateInviteCode(InvitePasswordLength)
}

// GenerateInviteToken produces a single-use invite link token
func GenerateInviteToken() (string, error) {
	return GenerateInviteCode(InviteTokenLength)
}
