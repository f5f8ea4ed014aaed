package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenPayload captures the data available when minting a session token.
type SessionTokenPayload struct {
	UserID   uint
	Username string
	JTI      string
}

// SessionTokenClaims represents the typed token stored in the session cookie.
// The registered ID (jti) doubles as the server-side session key.
type SessionTokenClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
