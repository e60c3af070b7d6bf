package models

import (
	"github.com/golang-jwt/jwt"
)

// Claims is the payload carried by an access token. User identity is managed
// externally; the token claim is the only thing this service knows about a user.
type Claims struct {
	UserID int    `json:"userId"`
	Email  string `json:"email,omitempty"`
	jwt.StandardClaims
}

// UserStatus is the outcome of the best-effort active-user lookup.
type UserStatus int

const (
	UserStatusUnknown UserStatus = iota
	UserStatusActive
	UserStatusInactive
)
