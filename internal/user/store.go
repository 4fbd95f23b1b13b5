package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecgard/candor/internal/auth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

// ErrEmailTaken is returned when creating a user whose email already exists.
var ErrEmailTaken = errors.New("email already registered")

// Store provides database operations for users.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new user store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id, name, email, password_hash, role::text, team_id, manager_id, created_at`

// scanUser scans a user row, parsing the role column.
func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.TeamID, &u.ManagerID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role, err = auth.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return u, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func CheckPassword(u *User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *Store) Create(ctx context.Context, in CreateUserInput) (*User, error) {
	if !in.Role.Valid() {
		return nil, auth.ErrUnknownRole
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(s.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, team_id, manager_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userColumns,
		uuid.NewString(), in.Name, in.Email, hash, in.Role.String(), in.TeamID, in.ManagerID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// GetByID retrieves a user by primary key.
func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by exact email match.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// ListByManager returns the users whose manager is managerID, ordered by name.
func (s *Store) ListByManager(ctx context.Context, managerID string) ([]*User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE manager_id = $1 ORDER BY name, id`, managerID)
	if err != nil {
		return nil, fmt.Errorf("listing users by manager: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetPassword replaces the password hash of the user with the given id. It
// returns pgx.ErrNoRows if no such user exists.
func (s *Store) SetPassword(ctx context.Context, id, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("setting password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("setting password: %w", pgx.ErrNoRows)
	}
	return nil
}

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}
