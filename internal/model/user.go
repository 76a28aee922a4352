package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account holder, either a patient or a doctor
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Phone        *string   `json:"phone" db:"phone"`
	DateOfBirth  *Date     `json:"date_of_birth" db:"date_of_birth"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateUserRequest represents profile update parameters. Email and role cannot change.
type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Phone       *string `json:"phone"`
	DateOfBirth *Date   `json:"date_of_birth"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}
