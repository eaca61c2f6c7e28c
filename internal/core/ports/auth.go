package ports

import (
	"context"

	"github.com/skprofiling/members-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     *string
	Role     string // defaults to member when empty
}

// AuthService implements registration and login. Both return a signed token
// alongside the user so clients can authenticate immediately.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts the user. A duplicate email maps to domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
