package team

import (
	"context"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/user"
)

// MemberLister lists the direct reports of a manager. *user.Store satisfies it.
type MemberLister interface {
	ListByManager(ctx context.Context, managerID string) ([]*user.User, error)
}

// Service answers team membership questions.
type Service struct {
	members MemberLister
}

// NewService creates a new Service.
func NewService(members MemberLister) *Service {
	return &Service{members: members}
}

// ListMembers returns every user whose manager is requester, ordered by name.
// Reports are matched on manager_id, so members of other teams who report to
// requester are included.
func (s *Service) ListMembers(ctx context.Context, requester *auth.User) ([]*user.User, error) {
	switch requester.Role {
	case auth.RoleManager:
		return s.members.ListByManager(ctx, requester.ID)
	case auth.RoleEmployee:
		return nil, auth.Forbidden("only managers can view team members")
	default:
		return nil, auth.Forbidden("unknown role")
	}
}
