package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides database operations for teams.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new team store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const teamColumns = `id, name, manager_id, created_at`

func scanTeam(row pgx.Row) (*Team, error) {
	t := &Team{}
	if err := row.Scan(&t.ID, &t.Name, &t.ManagerID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a team owned by managerID.
func (s *Store) Create(ctx context.Context, name, managerID string) (*Team, error) {
	t, err := scanTeam(s.pool.QueryRow(ctx,
		`INSERT INTO teams (id, name, manager_id) VALUES ($1, $2, $3)
		 RETURNING `+teamColumns,
		uuid.NewString(), name, managerID,
	))
	if err != nil {
		return nil, fmt.Errorf("creating team: %w", err)
	}
	return t, nil
}
