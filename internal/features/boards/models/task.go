package boards_models

import (
	"time"

	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

const DefaultTaskPriority = 2

type Task struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	Title       string    `json:"title"       gorm:"column:title;not null"`
	Description *string   `json:"description" gorm:"column:description"`
	Priority    int       `json:"priority"    gorm:"column:priority;not null"`
	ColumnID    uuid.UUID `json:"columnId"    gorm:"column:column_id;type:uuid;not null;index"`
	AuthorID    uuid.UUID `json:"authorId"    gorm:"column:author_id;type:uuid;not null;index"`
	IsActive    bool      `json:"isActive"    gorm:"column:is_active;not null"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at;not null"`

	Column *Column            `json:"-" gorm:"foreignKey:ColumnID"`
	Author *users_models.User `json:"-" gorm:"foreignKey:AuthorID"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) IsAuthoredBy(userID uuid.UUID) bool {
	return t.AuthorID == userID
}
