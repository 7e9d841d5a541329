package utils // package utils provides helper functions for token creation and secrets

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. Access tokens are short-lived and sent in
// the Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Ability scopes a token can carry. Tokens issued without an explicit
// ability list receive all of them.
const (
	ScopeReservationShow   = "reservation.show"
	ScopeReservationCreate = "reservation.create"
	ScopeReservationCancel = "reservation.cancel"
)

var AllScopes = []string{
	ScopeReservationShow,
	ScopeReservationCreate,
	ScopeReservationCancel,
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, the ability scopes granted to the token,
// and a TTL in minutes. The JWT includes the subject (sub), a scopes
// claim, expiration (exp) and issued at (iat). Handlers never inspect
// scopes directly; the RequireScope middleware gates routes on them.
func NewAccessToken(secret string, userID uint64, scopes []string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":    userID,
		"scopes": scopes,
		"exp":    exp.Unix(),
		"iat":    time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
