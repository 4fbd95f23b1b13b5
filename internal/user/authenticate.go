package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alecgard/candor/internal/auth"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore is the subset of Store needed to check a login.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// dummyHash is compared against when the email is unknown so that both
// failure paths spend the same bcrypt time.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("candor-placeholder"), bcrypt.DefaultCost)
	return h
})

// Authenticator checks email/password logins and issues access tokens.
type Authenticator struct {
	store  CredentialStore
	tokens *auth.TokenIssuer
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(store CredentialStore, tokens *auth.TokenIssuer) *Authenticator {
	return &Authenticator{store: store, tokens: tokens}
}

// Authenticate returns a signed token and the user on success. An unknown
// email and a wrong password both return auth.ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (string, *User, error) {
	u, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return "", nil, auth.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(u, password) {
		return "", nil, auth.ErrInvalidCredentials
	}

	token, _, err := a.tokens.Issue(u.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}
	return token, u, nil
}
