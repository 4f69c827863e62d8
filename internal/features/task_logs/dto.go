package task_logs

import (
	"time"

	"github.com/google/uuid"
)

type GetTaskLogsRequest struct {
	Limit  int `form:"limit"  json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

type GetTaskLogsResponse struct {
	TaskLogs []*TaskLogDTO `json:"taskLogs"`
	Total    int64         `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

type TaskLogDTO struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	TaskID    uuid.UUID `json:"taskId"    gorm:"column:task_id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	Message   string    `json:"message"   gorm:"column:message"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UserEmail *string   `json:"userEmail" gorm:"column:user_email"`
}
