package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/user"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned when the feedback id does not exist.
	ErrNotFound = errors.New("feedback not found")
	// ErrInvalid matches every ValidationError.
	ErrInvalid = errors.New("invalid feedback")
	// ErrForbidden is the auth package sentinel, re-exported for callers that
	// only import feedback.
	ErrForbidden = auth.ErrForbidden
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Repository is the persistence surface the Service needs. *Store satisfies it.
type Repository interface {
	Create(ctx context.Context, managerID string, in CreateFeedbackInput) (*Feedback, error)
	GetByID(ctx context.Context, id string) (*Feedback, error)
	ListByManager(ctx context.Context, managerID string) ([]*Feedback, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Feedback, error)
	Update(ctx context.Context, id string, in UpdateFeedbackInput) (*Feedback, error)
	Acknowledge(ctx context.Context, id string) (*Feedback, error)
}

// Service enforces role and ownership rules over a Repository.
type Service struct {
	repo  Repository
	users user.Getter
}

// NewService creates a Service. users resolves the subject employee when
// feedback is created.
func NewService(repo Repository, users user.Getter) *Service {
	return &Service{repo: repo, users: users}
}

// List returns the feedback visible to requester: authored by a manager, or
// addressed to an employee.
func (s *Service) List(ctx context.Context, requester *auth.User) ([]*Feedback, error) {
	switch requester.Role {
	case auth.RoleManager:
		return s.repo.ListByManager(ctx, requester.ID)
	case auth.RoleEmployee:
		return s.repo.ListByEmployee(ctx, requester.ID)
	default:
		return nil, auth.Forbidden("unknown role")
	}
}

// Create records new feedback from a manager about one of their reports.
// This is stricter than an existence check on employeeId: an id matching no
// user is a validation error on employeeId, and a subject who is not an
// employee reporting to the requester is forbidden.
func (s *Service) Create(ctx context.Context, requester *auth.User, in CreateFeedbackInput) (*Feedback, error) {
	if !requester.IsManager() {
		return nil, auth.Forbidden("only managers can create feedback")
	}

	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	if in.EmployeeID == "" {
		return nil, invalid("employeeId", "is required")
	}
	if isBlank(in.Strengths) {
		return nil, invalid("strengths", "is required")
	}
	if isBlank(in.AreasToImprove) {
		return nil, invalid("areasToImprove", "is required")
	}
	if !in.Sentiment.Valid() {
		return nil, invalid("sentiment", "must be one of: positive, neutral, negative")
	}

	employee, err := s.users.GetByID(ctx, in.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invalid("employeeId", "does not match any user")
		}
		return nil, fmt.Errorf("resolving employee: %w", err)
	}
	if employee.Role != auth.RoleEmployee || !employee.ReportsTo(requester.ID) {
		return nil, auth.Forbidden("employee does not report to you")
	}

	return s.repo.Create(ctx, requester.ID, in)
}

// Update applies a partial edit. Only the authoring manager may edit.
func (s *Service) Update(ctx context.Context, requester *auth.User, id string, in UpdateFeedbackInput) (*Feedback, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsManager() || existing.ManagerID != requester.ID {
		return nil, auth.Forbidden("you can only edit feedback you wrote")
	}

	if in.Strengths != nil && isBlank(*in.Strengths) {
		return nil, invalid("strengths", "must not be blank")
	}
	if in.AreasToImprove != nil && isBlank(*in.AreasToImprove) {
		return nil, invalid("areasToImprove", "must not be blank")
	}
	if in.Sentiment != nil && !in.Sentiment.Valid() {
		return nil, invalid("sentiment", "must be one of: positive, neutral, negative")
	}

	f, err := s.repo.Update(ctx, id, in)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

// Acknowledge marks feedback as read by its subject employee. Repeated calls
// return the record unchanged.
func (s *Service) Acknowledge(ctx context.Context, requester *auth.User, id string) (*Feedback, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch requester.Role {
	case auth.RoleEmployee:
		if existing.EmployeeID != requester.ID {
			return nil, auth.Forbidden("you can only acknowledge your own feedback")
		}
	case auth.RoleManager:
		return nil, auth.Forbidden("only the employee can acknowledge feedback")
	default:
		return nil, auth.Forbidden("unknown role")
	}

	if existing.Acknowledged {
		return existing, nil
	}

	f, err := s.repo.Acknowledge(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *Service) get(ctx context.Context, id string) (*Feedback, error) {
	f, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
