package services

import (
	"context"

	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/grana-app/grana-backend/internal/dto"
)

// UserSvcFacade exposes registration and credential checks.
// Token refresh and third-party identity are external concerns.
type UserSvcFacade interface {
	// Register creates a new user with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies credentials and returns the user on success.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// IssueToken creates a signed JWT for an authenticated user.
	IssueToken(user *domain.User) (string, error)
}
