package user

import (
	"errors"

	userRepo "bridalstudio/database/repository/user"
	"bridalstudio/models"
)

// Auth failures surfaced to the handlers.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with that email already exists")
)

// UserService handles account registration and authentication.
type UserService interface {
	Register(input RegistrationInput) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
}

// RegistrationInput is the request body for creating an account.
type RegistrationInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AuthResponse contains the account's ID, token, and profile details.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
