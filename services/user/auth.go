package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "bridalstudio/database/repository/user"
	"bridalstudio/models"
	"bridalstudio/utils"
)

// Register creates an account with a bcrypt-hashed password and signs the
// caller in immediately.
func (s *DefaultUserService) Register(input RegistrationInput) (*AuthResponse, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.Repo.GetByEmail(email)
	if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.Repo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.issueToken(account)
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	account, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		utils.GetLogger().Error("Authenticate: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(account)
}

// GetUserByID returns the account for the given id.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	account, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", id, err)
	}
	return account, nil
}

// issueToken signs a JWT, persists its hash on the account record and primes
// the auth cache so the middleware can skip the database on the hot path.
func (s *DefaultUserService) issueToken(account *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(account.ID, account.Email, account.Role, utils.AuthTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateTokenHash(account.ID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}

	cacheKey := utils.AuthCachePrefix + account.ID
	if err := utils.GetAuthCacheClient().Set(context.Background(), cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("issueToken: failed to prime auth cache", zap.Error(err))
	}

	return &AuthResponse{
		ID:    account.ID,
		Token: token,
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}, nil
}

func validateRegistration(input RegistrationInput) error {
	var messages []string
	if strings.TrimSpace(input.Name) == "" {
		messages = append(messages, "Please provide a name")
	}
	if strings.TrimSpace(input.Email) == "" {
		messages = append(messages, "Please provide an email")
	}
	if len(input.Password) < 6 {
		messages = append(messages, "Password must be at least 6 characters")
	}
	if len(messages) > 0 {
		return &models.ValidationError{Messages: messages}
	}
	return nil
}
