package model

const TokenTypeBearer = "bearer"

// RegisterRequest creates a patient account
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	Name        string  `json:"name" validate:"required"`
	Phone       *string `json:"phone"`
	DateOfBirth *Date   `json:"date_of_birth"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
