package boards_repositories

import (
	"errors"
	"time"

	boards_models "taskboard/internal/features/boards/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(tx *gorm.DB, task *boards_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	return tx.Create(task).Error
}

// GetTaskByID returns the task regardless of its activity flag, or nil when
// there is no such row.
func (r *TaskRepository) GetTaskByID(tx *gorm.DB, taskID uuid.UUID) (*boards_models.Task, error) {
	var task boards_models.Task

	if err := tx.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) GetActiveTasksByColumn(
	tx *gorm.DB,
	columnID uuid.UUID,
	priority *int,
) ([]*boards_models.Task, error) {
	tasks := make([]*boards_models.Task, 0)

	query := tx.Where("column_id = ? AND is_active = ?", columnID, true)
	if priority != nil {
		query = query.Where("priority = ?", *priority)
	}

	err := query.
		Order("created_at ASC").
		Order("id ASC").
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) UpdateTask(
	tx *gorm.DB,
	taskID uuid.UUID,
	title string,
	description *string,
	priority int,
) error {
	return tx.Model(&boards_models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"title":       title,
			"description": description,
			"priority":    priority,
		}).Error
}

func (r *TaskRepository) MoveTask(tx *gorm.DB, taskID uuid.UUID, columnID uuid.UUID) error {
	return tx.Model(&boards_models.Task{}).
		Where("id = ?", taskID).
		Update("column_id", columnID).Error
}

func (r *TaskRepository) SetTaskActivity(tx *gorm.DB, taskID uuid.UUID, isActive bool) error {
	return tx.Model(&boards_models.Task{}).
		Where("id = ?", taskID).
		Update("is_active", isActive).Error
}

// DeleteTasksByProject removes every task whose column belongs to the
// project, whatever the activity flags.
func (r *TaskRepository) DeleteTasksByProject(tx *gorm.DB, projectID uuid.UUID) error {
	projectColumnIDs := tx.
		Model(&boards_models.Column{}).
		Select("id").
		Where("project_id = ?", projectID)

	return tx.Where("column_id IN (?)", projectColumnIDs).Delete(&boards_models.Task{}).Error
}
