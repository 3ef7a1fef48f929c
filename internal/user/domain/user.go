package domain

import (
	"fmt"
	"time"
)

// User is a dashboard account. Accounts are provisioned by the external
// identity provider; this service upserts them on session resolution.
type User struct {
	ID           string     `json:"id"`
	Name         *string    `json:"name"`
	Email        *string    `json:"email"`
	LoginMethod  *string    `json:"loginMethod"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastSignedIn time.Time  `json:"lastSignedIn"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string at the boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}
