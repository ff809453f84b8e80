package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set of a session token. The "sub" claim carries
// the user ID.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Username is cached in the token so realtime presences can be built
	// without a database lookup.
	Username string `json:"usn,omitempty"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers or
// stored on the client side.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`

	// Username is extracted from the "usn" claim.
	Username string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
