package task_logs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskboard/internal/features/access"
	boards_repositories "taskboard/internal/features/boards/repositories"
	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/util/app_errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskLogService struct {
	db                *gorm.DB
	taskLogRepository *TaskLogRepository
	taskRepository    *boards_repositories.TaskRepository
	accessService     *access.AccessService
	logger            *slog.Logger
}

// WriteTaskLog appends a log row within the caller's transaction, so the
// row is committed together with the change it describes.
func (s *TaskLogService) WriteTaskLog(
	tx *gorm.DB,
	taskID uuid.UUID,
	userID uuid.UUID,
	message string,
) error {
	taskLog := &TaskLog{
		TaskID:    taskID,
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.taskLogRepository.Create(tx, taskLog); err != nil {
		return fmt.Errorf("failed to create task log: %w", err)
	}

	return nil
}

func (s *TaskLogService) DeleteProjectTaskLogs(tx *gorm.DB, projectID uuid.UUID) error {
	if err := s.taskLogRepository.DeleteByProject(tx, projectID); err != nil {
		return fmt.Errorf("failed to delete task logs: %w", err)
	}

	s.logger.Debug("task logs of project deleted", "projectId", projectID)

	return nil
}

// GetTaskLogs returns the log of a task, newest first. Soft deleted tasks
// keep a readable log as long as their project is active.
func (s *TaskLogService) GetTaskLogs(
	ctx context.Context,
	taskID uuid.UUID,
	user *users_models.User,
	request *GetTaskLogsRequest,
) (*GetTaskLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := max(request.Offset, 0)

	var response *GetTaskLogsResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := s.taskRepository.GetTaskByID(tx, taskID)
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		if task == nil {
			return app_errors.NotFound("task not found")
		}

		project, err := s.accessService.ProjectOfTask(tx, task)
		if err != nil {
			return err
		}

		if project == nil || !project.IsActive {
			return app_errors.NotFound("task not found")
		}

		canAccess, err := s.accessService.CanAccessProject(tx, project, user.ID)
		if err != nil {
			return err
		}

		if !canAccess {
			return app_errors.Forbidden("insufficient permissions to view task logs")
		}

		taskLogs, err := s.taskLogRepository.GetByTask(tx, taskID, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to get task logs: %w", err)
		}

		total, err := s.taskLogRepository.CountByTask(tx, taskID)
		if err != nil {
			return fmt.Errorf("failed to count task logs: %w", err)
		}

		response = &GetTaskLogsResponse{
			TaskLogs: taskLogs,
			Total:    total,
			Limit:    limit,
			Offset:   offset,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}
