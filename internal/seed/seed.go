// Package seed populates an empty database with the demo organisation: one
// manager, her team, and three reports.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/team"
	"github.com/alecgard/candor/internal/user"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password"

// UserStore is the subset of user.Store the seeder writes through.
type UserStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, in user.CreateUserInput) (*user.User, error)
}

// TeamStore is the subset of team.Store the seeder writes through.
type TeamStore interface {
	Create(ctx context.Context, name, managerID string) (*team.Team, error)
}

// Employee names and emails created under the demo manager.
var demoEmployees = []struct{ Name, Email string }{
	{"Mike Chen", "mike@company.com"},
	{"Emily Davis", "emily@company.com"},
	{"John Smith", "john@company.com"},
}

// Demo seeds the demo organisation unless any user already exists. It
// reports whether anything was written.
func Demo(ctx context.Context, users UserStore, teams TeamStore) (bool, error) {
	n, err := users.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		slog.Info("seed skipped, users already present", "users", n)
		return false, nil
	}

	manager, err := users.Create(ctx, user.CreateUserInput{
		Name:     "Sarah Johnson",
		Email:    "sarah@company.com",
		Password: DemoPassword,
		Role:     auth.RoleManager,
	})
	if err != nil {
		return false, fmt.Errorf("seeding manager: %w", err)
	}

	t, err := teams.Create(ctx, "Development Team", manager.ID)
	if err != nil {
		return false, fmt.Errorf("seeding team: %w", err)
	}

	for _, e := range demoEmployees {
		if _, err := users.Create(ctx, user.CreateUserInput{
			Name:      e.Name,
			Email:     e.Email,
			Password:  DemoPassword,
			Role:      auth.RoleEmployee,
			TeamID:    &t.ID,
			ManagerID: &manager.ID,
		}); err != nil {
			return false, fmt.Errorf("seeding %s: %w", e.Email, err)
		}
	}

	slog.Info("seeded demo organisation", "manager", manager.Email, "team", t.Name, "employees", len(demoEmployees))
	return true, nil
}
