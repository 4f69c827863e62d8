package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	users_models "taskboard/internal/features/users/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const secretKeyRowID = 1

type SecretKeyRepository struct{}

// GetSecretKey returns the token signing secret, creating it on first call.
// Concurrent first calls converge on the same row.
func (r *SecretKeyRepository) GetSecretKey(tx *gorm.DB) (string, error) {
	var secretKey users_models.SecretKey

	err := tx.Where("id = ?", secretKeyRowID).First(&secretKey).Error
	if err == nil {
		return secretKey.Secret, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	newSecretKey := &users_models.SecretKey{
		ID:        secretKeyRowID,
		Secret:    hex.EncodeToString(randomBytes),
		CreatedAt: time.Now().UTC(),
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(newSecretKey).Error; err != nil {
		return "", err
	}

	if err := tx.Where("id = ?", secretKeyRowID).First(&secretKey).Error; err != nil {
		return "", err
	}

	return secretKey.Secret, nil
}
