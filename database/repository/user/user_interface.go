package userRepo

import (
	"bridalstudio/models"
)

// UserRepository defines data access for account records.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByIDs(ids []string) ([]models.User, error)
	UpdateTokenHash(id, tokenHash string) error
}
