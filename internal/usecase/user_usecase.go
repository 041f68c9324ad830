package usecase

import (
	"context"

	"taskapi/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	Name        string `json:"name" validate:"required,min=2,max=100,personname,nohtml"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
	Address     string `json:"address" validate:"omitempty,max=255,nohtml"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput carries the issued bearer token.
type LoginOutput struct {
	TokenType string
	Token     string
	ExpiresIn int64 // seconds
}

// UserUsecase defines the account operations exposed to the delivery layer.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
