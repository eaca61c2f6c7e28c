package domain

import (
	"errors"
	"time"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already in use")
var ErrUserNotFound = errors.New("user not found")

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleMember || r == RoleAdmin
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
