package task_logs

import (
	boards_models "taskboard/internal/features/boards/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskLogRepository struct{}

func (r *TaskLogRepository) Create(tx *gorm.DB, taskLog *TaskLog) error {
	if taskLog.ID == uuid.Nil {
		taskLog.ID = uuid.New()
	}

	return tx.Create(taskLog).Error
}

func (r *TaskLogRepository) GetByTask(
	tx *gorm.DB,
	taskID uuid.UUID,
	limit, offset int,
) ([]*TaskLogDTO, error) {
	var taskLogs = make([]*TaskLogDTO, 0)

	sql := `
		SELECT
			tl.id,
			tl.task_id,
			tl.user_id,
			tl.message,
			tl.created_at,
			u.email as user_email
		FROM task_logs tl
		LEFT JOIN users u ON tl.user_id = u.id
		WHERE tl.task_id = ?
		ORDER BY tl.created_at DESC, tl.id DESC
		LIMIT ? OFFSET ?`

	err := tx.Raw(sql, taskID, limit, offset).Scan(&taskLogs).Error

	return taskLogs, err
}

func (r *TaskLogRepository) CountByTask(tx *gorm.DB, taskID uuid.UUID) (int64, error) {
	var count int64

	err := tx.Model(&TaskLog{}).Where("task_id = ?", taskID).Count(&count).Error

	return count, err
}

// DeleteByProject removes the logs of every task currently placed in a
// column of the project. Only a project hard delete calls it.
func (r *TaskLogRepository) DeleteByProject(tx *gorm.DB, projectID uuid.UUID) error {
	projectTaskIDs := tx.
		Model(&boards_models.Task{}).
		Select("tasks.id").
		Joins("JOIN board_columns ON board_columns.id = tasks.column_id").
		Where("board_columns.project_id = ?", projectID)

	return tx.Where("task_id IN (?)", projectTaskIDs).Delete(&TaskLog{}).Error
}
