package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents the JWT claims issued by the identity provider.
// The stable user identifier is the registered "sub" claim.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// verifies bearer credentials against a shared HS256 secret
type Verifier struct {
	secret []byte
}
