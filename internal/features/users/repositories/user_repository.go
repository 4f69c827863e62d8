package users_repositories

import (
	"errors"
	"time"

	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository never opens its own connection: every method works on the
// handle (usually a transaction) given by the caller.
type UserRepository struct{}

func (r *UserRepository) CreateUser(tx *gorm.DB, user *users_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return tx.Create(user).Error
}

func (r *UserRepository) GetUserByEmail(tx *gorm.DB, email string) (*users_models.User, error) {
	var user users_models.User

	if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(tx *gorm.DB, userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetActiveUsers(tx *gorm.DB) ([]*users_models.User, error) {
	users := make([]*users_models.User, 0)

	err := tx.
		Where("is_active = ?", true).
		Order("email ASC").
		Find(&users).Error

	return users, err
}

func (r *UserRepository) UpdateUserPassword(tx *gorm.DB, userID uuid.UUID, hashedPassword string) error {
	return tx.Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("hashed_password", hashedPassword).Error
}

func (r *UserRepository) UpdateUserActivity(tx *gorm.DB, userID uuid.UUID, isActive bool) error {
	return tx.Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("is_active", isActive).Error
}
