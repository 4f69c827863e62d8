package projects_models

import (
	"time"

	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

type Project struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `json:"name"      gorm:"column:name;not null"`
	OwnerID   uuid.UUID `json:"ownerId"   gorm:"column:owner_id;type:uuid;not null;index"`
	IsActive  bool      `json:"isActive"  gorm:"column:is_active;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`

	Owner *users_models.User `json:"-" gorm:"foreignKey:OwnerID"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}
