package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Realtime sockets cannot rely on the session cookie because the SPA
// connects cross-origin. Instead the client requests a short-lived
// ticket over the authenticated API and presents it on the socket URL.

const ticketTTL = 30 * time.Second

type ticketClaims struct {
	ProfileID int64 `json:"pid"`
	FamilyID  int64 `json:"fid"`
	jwt.RegisteredClaims
}

// MintRealtimeTicket signs a short-lived ticket binding a profile to a family
func MintRealtimeTicket(secret string, profileID, familyID int64) (string, error) {
	now := time.Now()
	claims := ticketClaims{
		ProfileID: profileID,
		FamilyID:  familyID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ticketTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyRealtimeTicket validates a ticket and returns the bound profile and family
func VerifyRealtimeTicket(secret, ticket string) (profileID, familyID int64, err error) {
	claims := &ticketClaims{}
	_, err = jwt.ParseWithClaims(ticket, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("invalid realtime ticket: %w", err)
	}
	return claims.ProfileID, claims.FamilyID, nil
}
