package domain

import "time"

type StaffRole string

const (
	RoleAdmin       StaffRole = "admin"
	RoleManager     StaffRole = "manager"
	RoleHousekeeper StaffRole = "housekeeper"
)

// StaffUser is a dashboard login.
type StaffUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         StaffRole `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
