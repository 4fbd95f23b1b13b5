package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/team"
	"github.com/alecgard/candor/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	created []user.CreateUserInput
	failOn  string
}

func (f *fakeUsers) Count(context.Context) (int, error) { return len(f.created), nil }

func (f *fakeUsers) Create(_ context.Context, in user.CreateUserInput) (*user.User, error) {
	if in.Email == f.failOn {
		return nil, errors.New("insert failed")
	}
	f.created = append(f.created, in)
	return &user.User{
		ID:        fmt.Sprintf("user-%d", len(f.created)),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		TeamID:    in.TeamID,
		ManagerID: in.ManagerID,
	}, nil
}

type fakeTeams struct {
	created []*team.Team
}

func (f *fakeTeams) Create(_ context.Context, name, managerID string) (*team.Team, error) {
	t := &team.Team{ID: "team-1", Name: name, ManagerID: managerID}
	f.created = append(f.created, t)
	return t, nil
}

func TestDemo(t *testing.T) {
	users, teams := &fakeUsers{}, &fakeTeams{}

	seeded, err := Demo(context.Background(), users, teams)
	require.NoError(t, err)
	assert.True(t, seeded)

	require.Len(t, users.created, 4)
	manager := users.created[0]
	assert.Equal(t, "sarah@company.com", manager.Email)
	assert.Equal(t, auth.RoleManager, manager.Role)
	assert.Nil(t, manager.TeamID)

	require.Len(t, teams.created, 1)
	assert.Equal(t, "Development Team", teams.created[0].Name)
	assert.Equal(t, "user-1", teams.created[0].ManagerID)

	for _, e := range users.created[1:] {
		assert.Equal(t, auth.RoleEmployee, e.Role)
		assert.Equal(t, DemoPassword, e.Password)
		require.NotNil(t, e.ManagerID)
		assert.Equal(t, "user-1", *e.ManagerID)
		require.NotNil(t, e.TeamID)
		assert.Equal(t, "team-1", *e.TeamID)
	}
}

func TestDemoIsIdempotent(t *testing.T) {
	users, teams := &fakeUsers{}, &fakeTeams{}
	_, err := Demo(context.Background(), users, teams)
	require.NoError(t, err)

	seeded, err := Demo(context.Background(), users, teams)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Len(t, users.created, 4)
	assert.Len(t, teams.created, 1)
}

func TestDemoPropagatesErrors(t *testing.T) {
	users := &fakeUsers{failOn: "emily@company.com"}
	_, err := Demo(context.Background(), users, &fakeTeams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emily@company.com")
}
