package ports

import (
	"context"

	"github.com/taskforge/task-system/internal/core/domain"
)

// RegisterInput carries the fields accepted at account registration.
// Role is optional; when empty the account is created as an employee.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService defines registration and login. Both return a signed token
// alongside the user so clients can authenticate immediately.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
