package user

import (
	"time"

	"github.com/alecgard/candor/internal/auth"
)

// User represents a registered user account. TeamID and ManagerID serialize
// as null when unset.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	TeamID       *string   `json:"teamId"`
	ManagerID    *string   `json:"managerId"`
	CreatedAt    time.Time `json:"-"`
}

// CreateUserInput holds the fields required to create a new user.
type CreateUserInput struct {
	Name      string
	Email     string
	Password  string
	Role      auth.Role
	TeamID    *string
	ManagerID *string
}

// ReportsTo returns true if the user's manager is managerID.
func (u *User) ReportsTo(managerID string) bool {
	return u.ManagerID != nil && *u.ManagerID == managerID
}
