package users_models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	Email          string    `json:"email"     gorm:"column:email;uniqueIndex;not null"`
	HashedPassword string    `json:"-"         gorm:"column:hashed_password;not null"`
	IsActive       bool      `json:"isActive"  gorm:"column:is_active;not null"`
	CreatedAt      time.Time `json:"createdAt" gorm:"column:created_at;not null"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != ""
}
