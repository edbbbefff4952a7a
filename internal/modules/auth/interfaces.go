package auth

import (
	"context"

	"coliving/internal/domain"
)

type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
}

type TokenIssuer interface {
	GenerateToken(staffID string, role string) (string, error)
}
