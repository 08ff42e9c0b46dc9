package domain

import (
	"errors"
	"time"
)

// Role is the access tier of a user. Roles form a strict hierarchy:
// employee < manager < admin. A higher role satisfies every requirement
// of a lower one.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// roleRank encodes the total order of the role hierarchy.
var roleRank = map[Role]int{
	RoleEmployee: 1,
	RoleManager:  2,
	RoleAdmin:    3,
}

var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidRole = errors.New("invalid role")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// ParseRole validates a caller-supplied role string against the closed
// enumeration. An empty string defaults to RoleEmployee.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleEmployee, nil
	}
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", ErrInvalidRole
	}
	return r, nil
}

// IsValid reports whether r is a member of the role enumeration.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r satisfies a minimum-role requirement under the
// employee < manager < admin order. An unknown role never satisfies anything.
func (r Role) AtLeast(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	return rank >= roleRank[min]
}

// User models an account in the system. PasswordHash is opaque and never
// serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated identity reconstructed from a verified
// token. It reflects the user's role at token-issuance time; role changes
// after issuance are not visible until the token expires.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
