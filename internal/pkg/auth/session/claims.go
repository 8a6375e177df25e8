package session

import "github.com/golang-jwt/jwt"

// Claims is the signed payload stored in the session cookie. It embeds
// the JWT standard claims for expiry checks plus the identity fields
// handlers need without a database round trip.
type Claims struct {
	jwt.StandardClaims

	// UserID is the authenticated user's id (UUID string).
	UserID string `json:"user_id"`

	// Name is the user's display name, shown in the navigation bar.
	Name string `json:"name"`
}
