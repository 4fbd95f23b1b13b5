package auth

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnknownRole        = errors.New("unknown role")

	// ErrForbidden matches every error returned by Forbidden.
	ErrForbidden = errors.New("forbidden")
)

type forbiddenError struct {
	msg string
}

func (e *forbiddenError) Error() string { return e.msg }
func (e *forbiddenError) Unwrap() error { return ErrForbidden }

// Forbidden returns an authorization failure whose message is safe to show
// to the caller.
func Forbidden(msg string) error {
	return &forbiddenError{msg: msg}
}

// Role is the closed set of user roles. The zero value is not a valid role.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleManager
	RoleEmployee
)

// ParseRole converts the persisted/transmitted role name to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "manager":
		return RoleManager, nil
	case "employee":
		return RoleEmployee, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleEmployee:
		return "employee"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// User represents an authenticated caller.
type User struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// IsManager returns true if the user has the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// UserLookup resolves the subject of a verified token to a user.
type UserLookup interface {
	LookupUser(ctx context.Context, id string) (*User, error)
}
