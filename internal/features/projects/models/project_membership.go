package projects_models

import (
	"time"

	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

// ProjectMembership grants a user member standing in a project. The owner
// never has a row.
type ProjectMembership struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_project_memberships_project_user"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_project_memberships_project_user;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`

	Project *Project           `json:"-" gorm:"foreignKey:ProjectID"`
	User    *users_models.User `json:"-" gorm:"foreignKey:UserID"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
