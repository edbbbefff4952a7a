package auth

import (
	"context"
	"testing"

	"coliving/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(staffID, role string) (string, error) {
	args := m.Called(staffID, role)
	return args.String(0), args.Error(1)
}

func testStaff(t *testing.T, password string) *domain.StaffUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.StaffUser{
		ID:           "s1",
		Email:        "admin@coliving.local",
		Name:         "Admin",
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
	}
}

func TestLogin_Success(t *testing.T) {
	staff := new(MockStaffRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(staff, tokens)

	user := testStaff(t, "admin123")
	staff.On("GetByEmail", mock.Anything, "admin@coliving.local").Return(user, nil)
	tokens.On("GenerateToken", "s1", "admin").Return("tok", nil)

	res, err := svc.Login(context.Background(), "admin@coliving.local", "admin123")

	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "s1", res.Staff.ID)
	tokens.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	staff := new(MockStaffRepository)
	tokens := new(MockTokenIssuer)
	svc := NewService(staff, tokens)

	staff.On("GetByEmail", mock.Anything, "admin@coliving.local").Return(testStaff(t, "admin123"), nil)

	_, err := svc.Login(context.Background(), "admin@coliving.local", "nope")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	staff := new(MockStaffRepository)
	svc := NewService(staff, new(MockTokenIssuer))

	staff.On("GetByEmail", mock.Anything, "ghost@coliving.local").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), "ghost@coliving.local", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
