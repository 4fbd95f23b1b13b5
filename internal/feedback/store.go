package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecgard/candor/internal/crypto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides database operations for feedback records. When a cipher is
// configured the two free-text columns are sealed at rest.
type Store struct {
	pool   *pgxpool.Pool
	cipher *crypto.FieldCipher
}

// NewStore creates a new Store backed by the given connection pool. cipher
// may be nil.
func NewStore(pool *pgxpool.Pool, cipher *crypto.FieldCipher) *Store {
	return &Store{pool: pool, cipher: cipher}
}

// selectFrom reads feedback rows from source (a table or CTE name) joined
// with the manager and employee names.
func selectFrom(source string) string {
	return `SELECT f.id, f.manager_id, f.employee_id,
		COALESCE(m.name, ''), COALESCE(e.name, ''),
		f.strengths, f.areas_to_improve, f.sentiment::text,
		f.acknowledged, f.acknowledged_at, f.created_at, f.updated_at
	FROM ` + source + ` AS f
	LEFT JOIN users m ON m.id = f.manager_id
	LEFT JOIN users e ON e.id = f.employee_id`
}

// scanFeedback scans a single joined row and opens sealed text columns.
func (s *Store) scanFeedback(row pgx.Row) (*Feedback, error) {
	var f Feedback
	var sentiment string
	err := row.Scan(
		&f.ID,
		&f.ManagerID,
		&f.EmployeeID,
		&f.ManagerName,
		&f.EmployeeName,
		&f.Strengths,
		&f.AreasToImprove,
		&sentiment,
		&f.Acknowledged,
		&f.AcknowledgedAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if f.Sentiment, err = ParseSentiment(sentiment); err != nil {
		return nil, fmt.Errorf("feedback %s: %w", f.ID, err)
	}
	if f.Strengths, err = s.cipher.Open(f.Strengths, f.ID); err != nil {
		return nil, fmt.Errorf("opening strengths of %s: %w", f.ID, err)
	}
	if f.AreasToImprove, err = s.cipher.Open(f.AreasToImprove, f.ID); err != nil {
		return nil, fmt.Errorf("opening areas_to_improve of %s: %w", f.ID, err)
	}
	return &f, nil
}

func (s *Store) queryList(ctx context.Context, query string, args ...any) ([]*Feedback, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Feedback{}
	for rows.Next() {
		f, err := s.scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning feedback row: %w", err)
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// Create inserts a new, unacknowledged feedback record authored by managerID.
func (s *Store) Create(ctx context.Context, managerID string, in CreateFeedbackInput) (*Feedback, error) {
	id := uuid.NewString()

	strengths, err := s.cipher.Seal(in.Strengths, id)
	if err != nil {
		return nil, fmt.Errorf("sealing strengths: %w", err)
	}
	areas, err := s.cipher.Seal(in.AreasToImprove, id)
	if err != nil {
		return nil, fmt.Errorf("sealing areas_to_improve: %w", err)
	}

	query := `WITH inserted AS (
		INSERT INTO feedback (id, manager_id, employee_id, strengths, areas_to_improve, sentiment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	) ` + selectFrom("inserted")

	f, err := s.scanFeedback(s.pool.QueryRow(ctx, query,
		id, managerID, in.EmployeeID, strengths, areas, string(in.Sentiment),
	))
	if err != nil {
		return nil, fmt.Errorf("creating feedback: %w", err)
	}
	return f, nil
}

// GetByID retrieves a feedback record by id.
func (s *Store) GetByID(ctx context.Context, id string) (*Feedback, error) {
	f, err := s.scanFeedback(s.pool.QueryRow(ctx, selectFrom("feedback")+` WHERE f.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("getting feedback by id: %w", err)
	}
	return f, nil
}

// ListByManager returns the feedback authored by managerID, newest first.
func (s *Store) ListByManager(ctx context.Context, managerID string) ([]*Feedback, error) {
	items, err := s.queryList(ctx,
		selectFrom("feedback")+` WHERE f.manager_id = $1 ORDER BY f.created_at DESC, f.id`, managerID)
	if err != nil {
		return nil, fmt.Errorf("listing feedback by manager: %w", err)
	}
	return items, nil
}

// ListByEmployee returns the feedback addressed to employeeID, newest first.
func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]*Feedback, error) {
	items, err := s.queryList(ctx,
		selectFrom("feedback")+` WHERE f.employee_id = $1 ORDER BY f.created_at DESC, f.id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing feedback by employee: %w", err)
	}
	return items, nil
}

// Update applies the non-nil fields of in and always touches updated_at.
func (s *Store) Update(ctx context.Context, id string, in UpdateFeedbackInput) (*Feedback, error) {
	setClauses := []string{"updated_at = now()"}
	var args []any
	argIdx := 1

	if in.Strengths != nil {
		v, err := s.cipher.Seal(*in.Strengths, id)
		if err != nil {
			return nil, fmt.Errorf("sealing strengths: %w", err)
		}
		setClauses = append(setClauses, fmt.Sprintf("strengths = $%d", argIdx))
		args = append(args, v)
		argIdx++
	}
	if in.AreasToImprove != nil {
		v, err := s.cipher.Seal(*in.AreasToImprove, id)
		if err != nil {
			return nil, fmt.Errorf("sealing areas_to_improve: %w", err)
		}
		setClauses = append(setClauses, fmt.Sprintf("areas_to_improve = $%d", argIdx))
		args = append(args, v)
		argIdx++
	}
	if in.Sentiment != nil {
		setClauses = append(setClauses, fmt.Sprintf("sentiment = $%d", argIdx))
		args = append(args, string(*in.Sentiment))
		argIdx++
	}

	args = append(args, id)
	query := fmt.Sprintf(`WITH updated AS (
		UPDATE feedback SET %s WHERE id = $%d
		RETURNING *
	) `, strings.Join(setClauses, ", "), argIdx) + selectFrom("updated")

	f, err := s.scanFeedback(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("updating feedback: %w", err)
	}
	return f, nil
}

// Acknowledge marks the record acknowledged. The first call stamps
// acknowledged_at and updated_at; later calls leave the row as it is.
func (s *Store) Acknowledge(ctx context.Context, id string) (*Feedback, error) {
	query := `WITH updated AS (
		UPDATE feedback SET
			acknowledged = TRUE,
			acknowledged_at = COALESCE(acknowledged_at, now()),
			updated_at = CASE WHEN acknowledged THEN updated_at ELSE now() END
		WHERE id = $1
		RETURNING *
	) ` + selectFrom("updated")

	f, err := s.scanFeedback(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("acknowledging feedback: %w", err)
	}
	return f, nil
}
