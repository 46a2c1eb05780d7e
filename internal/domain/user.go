package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUnset  Role = ""
	RoleOwner  Role = "owner"
	RoleRenter Role = "renter"
)

// ParseRole validates a client-supplied role string. Only "owner" and
// "renter" are assignable; the unset role can never be chosen explicitly.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleRenter:
		return Role(s), nil
	default:
		return RoleUnset, fmt.Errorf("role must be %q or %q: %w", RoleOwner, RoleRenter, ErrInvalidArgument)
	}
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Fullname     string    `json:"fullname"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is an identity whose role has been assigned. Role-gated operations
// accept an Actor rather than a User, so "no role yet" is unrepresentable
// past this point.
type Actor struct {
	UserID string
	Role   Role
}

// Actor converts a user into an Actor. It fails while the role is unset;
// such users may only register, log in, and pick a role.
func (u *User) Actor() (Actor, error) {
	if u.Role != RoleOwner && u.Role != RoleRenter {
		return Actor{}, fmt.Errorf("user %s has no role assigned: %w", u.ID, ErrForbidden)
	}
	return Actor{UserID: u.ID, Role: u.Role}, nil
}
