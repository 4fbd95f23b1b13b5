package user

import (
	"context"

	"github.com/alecgard/candor/internal/auth"
)

// Getter is the subset of Store needed to resolve token subjects.
type Getter interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// AuthAdapter adapts a user store to the auth.UserLookup interface.
type AuthAdapter struct {
	store Getter
}

// NewAuthAdapter creates a new AuthAdapter wrapping the given user store.
func NewAuthAdapter(store Getter) *AuthAdapter {
	return &AuthAdapter{store: store}
}

// LookupUser loads the user with the given id and returns it as an auth.User.
func (a *AuthAdapter) LookupUser(ctx context.Context, id string) (*auth.User, error) {
	u, err := a.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}, nil
}
