package jwt

import (
	"github.com/golang-jwt/jwt"

	"placerank/internal/app/account"
)

// Payload defines the JWT claims issued by the Place Rank API.
// It combines the standard claims with the fields needed to identify and
// authorize an account without a database round trip.
type Payload struct {
	// StandardClaims embeds the JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer), required for validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the account identifier the token was issued for.
	ID string `json:"id"`

	// Name is the account's display name at issue time.
	Name string `json:"name"`

	// Email is the account's sign-in address.
	Email string `json:"email"`

	// Role is the account kind. Gated endpoints branch on this claim, so it is
	// validated against the closed role set when the token is parsed.
	Role account.Role `json:"role"`
}
