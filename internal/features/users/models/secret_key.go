package users_models

import "time"

// SecretKey is the HMAC secret used to sign access tokens. There is at most
// one row; it is generated on first use.
type SecretKey struct {
	ID        int       `gorm:"column:id;primaryKey"`
	Secret    string    `gorm:"column:secret;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (SecretKey) TableName() string {
	return "secret_keys"
}
