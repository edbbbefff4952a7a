package auth

import (
	"context"
	"errors"

	"coliving/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	staff  StaffRepository
	tokens TokenIssuer
}

func NewService(staff StaffRepository, tokens TokenIssuer) *Service {
	return &Service{staff: staff, tokens: tokens}
}

type LoginResult struct {
	Token string            `json:"token"`
	Staff *domain.StaffUser `json:"staff"`
}

// Login checks the staff credentials and issues a JWT. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Staff: u}, nil
}
