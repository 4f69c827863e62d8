package task_logs

import (
	"time"

	boards_models "taskboard/internal/features/boards/models"
	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

// TaskLog is written once per state change of a task and never updated.
type TaskLog struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	TaskID    uuid.UUID `json:"taskId"    gorm:"column:task_id;type:uuid;not null;index"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id;type:uuid;not null;index"`
	Message   string    `json:"message"   gorm:"column:message;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`

	Task *boards_models.Task `json:"-" gorm:"foreignKey:TaskID"`
	User *users_models.User  `json:"-" gorm:"foreignKey:UserID"`
}

func (TaskLog) TableName() string {
	return "task_logs"
}
