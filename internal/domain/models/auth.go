package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims represents the JWT claims carried by bearer tokens issued by the
// identity provider. The subject claim is the owner ID that scopes every
// folder and document.
type AuthClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
}

// OwnerID returns the owner identity from the JWT subject claim.
func (c *AuthClaims) OwnerID() string {
	return c.Subject
}
