package utils // package utils provides helper functions for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// RoleAdmin is the role claim carried by tokens issued after the admin gate.
const RoleAdmin = "ADMIN"

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp. Access tokens are short-lived and sent in the Authorization
// header when calling admin endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT. It takes the signing secret,
// the subject, the role and a TTL in minutes. The JWT includes the standard
// claims sub, role, exp and iat.
func NewAccessToken(secret, subject, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
