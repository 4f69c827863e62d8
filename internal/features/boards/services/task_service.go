package boards_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskboard/internal/features/access"
	boards_dto "taskboard/internal/features/boards/dto"
	boards_models "taskboard/internal/features/boards/models"
	boards_repositories "taskboard/internal/features/boards/repositories"
	projects_models "taskboard/internal/features/projects/models"
	"taskboard/internal/features/task_logs"
	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/util/app_errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	taskUpdatedMessage  = "Task updated"
	taskDeletedMessage  = "Task deleted"
	taskRestoredMessage = "Task restored"
)

type TaskService struct {
	db               *gorm.DB
	taskRepository   *boards_repositories.TaskRepository
	columnRepository *boards_repositories.ColumnRepository
	accessService    *access.AccessService
	taskLogService   *task_logs.TaskLogService
	logger           *slog.Logger
}

func (s *TaskService) CreateTask(
	ctx context.Context,
	columnID uuid.UUID,
	request *boards_dto.CreateTaskRequestDTO,
	author *users_models.User,
) (*boards_models.Task, error) {
	title := strings.TrimSpace(request.Title)
	if title == "" {
		return nil, app_errors.Validation("task title is required")
	}

	priority := boards_models.DefaultTaskPriority
	if request.Priority != nil {
		priority = *request.Priority
	}

	task := &boards_models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: request.Description,
		Priority:    priority,
		ColumnID:    columnID,
		AuthorID:    author.ID,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.getAccessibleColumn(tx, columnID, author); err != nil {
			return err
		}

		if err := s.taskRepository.CreateTask(tx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// GetTasks lists active tasks of an active column, optionally only those
// with the given priority.
func (s *TaskService) GetTasks(
	ctx context.Context,
	columnID uuid.UUID,
	priority *int,
	user *users_models.User,
) (*boards_dto.ListTasksResponseDTO, error) {
	var tasks []*boards_models.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.getAccessibleColumn(tx, columnID, user); err != nil {
			return err
		}

		var err error
		tasks, err = s.taskRepository.GetActiveTasksByColumn(tx, columnID, priority)
		if err != nil {
			return fmt.Errorf("failed to get tasks: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &boards_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

func (s *TaskService) GetTask(
	ctx context.Context,
	taskID uuid.UUID,
	user *users_models.User,
) (*boards_models.Task, error) {
	var task *boards_models.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		visibleTask, project, err := s.getActiveTask(tx, taskID)
		if err != nil {
			return err
		}

		task = visibleTask

		canAccess, err := s.accessService.CanAccessProject(tx, project, user.ID)
		if err != nil {
			return err
		}

		if !canAccess {
			return app_errors.Forbidden("insufficient permissions to view task")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask replaces title, description and priority. Only the author may
// edit a task.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	taskID uuid.UUID,
	request *boards_dto.UpdateTaskRequestDTO,
	user *users_models.User,
) (*boards_models.Task, error) {
	title := strings.TrimSpace(request.Title)
	if title == "" {
		return nil, app_errors.Validation("task title is required")
	}

	priority := boards_models.DefaultTaskPriority
	if request.Priority != nil {
		priority = *request.Priority
	}

	var updatedTask *boards_models.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, _, err := s.getActiveTask(tx, taskID)
		if err != nil {
			return err
		}

		if !s.accessService.CanEditTask(task, user.ID) {
			return app_errors.Forbidden("only task author can edit the task")
		}

		if err := s.taskRepository.UpdateTask(tx, taskID, title, request.Description, priority); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		if err := s.taskLogService.WriteTaskLog(tx, taskID, user.ID, taskUpdatedMessage); err != nil {
			return err
		}

		task.Title = title
		task.Description = request.Description
		task.Priority = priority
		updatedTask = task

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updatedTask, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID uuid.UUID, user *users_models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, _, err := s.getActiveTask(tx, taskID)
		if err != nil {
			return err
		}

		if err := s.checkCanDeleteTask(tx, task, user); err != nil {
			return err
		}

		if err := s.taskRepository.SetTaskActivity(tx, taskID, false); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		return s.taskLogService.WriteTaskLog(tx, taskID, user.ID, taskDeletedMessage)
	})
}

// RestoreTask reactivates the task only. An inactive column or project
// keeps hiding it. Restoring an active task changes nothing and is not
// logged.
func (s *TaskService) RestoreTask(
	ctx context.Context,
	taskID uuid.UUID,
	user *users_models.User,
) (*boards_models.Task, error) {
	var restoredTask *boards_models.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := s.taskRepository.GetTaskByID(tx, taskID)
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		if task == nil {
			return app_errors.NotFound("task not found")
		}

		if err := s.checkCanDeleteTask(tx, task, user); err != nil {
			return err
		}

		restoredTask = task

		if task.IsActive {
			return nil
		}

		if err := s.taskRepository.SetTaskActivity(tx, taskID, true); err != nil {
			return fmt.Errorf("failed to restore task: %w", err)
		}

		if err := s.taskLogService.WriteTaskLog(tx, taskID, user.ID, taskRestoredMessage); err != nil {
			return err
		}

		task.IsActive = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	return restoredTask, nil
}

// MoveTask reassigns the task to another column and records the move in
// the same transaction. Permission is judged on the source project; the
// destination only has to be an active column of an active project.
func (s *TaskService) MoveTask(
	ctx context.Context,
	taskID uuid.UUID,
	request *boards_dto.MoveTaskRequestDTO,
	user *users_models.User,
) (*boards_models.Task, error) {
	if request.ColumnID == uuid.Nil {
		return nil, app_errors.Validation("destination column is required")
	}

	var movedTask *boards_models.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, _, err := s.getActiveTask(tx, taskID)
		if err != nil {
			return err
		}

		destination, err := s.columnRepository.GetColumnByID(tx, request.ColumnID)
		if err != nil {
			return fmt.Errorf("failed to get column: %w", err)
		}

		if destination == nil || !destination.IsActive {
			return app_errors.NotFound("column not found")
		}

		destinationProject, err := s.accessService.ProjectOfColumn(tx, destination)
		if err != nil {
			return err
		}

		if destinationProject == nil || !destinationProject.IsActive {
			return app_errors.NotFound("column not found")
		}

		canMove, err := s.accessService.CanMoveTask(tx, task, user.ID)
		if err != nil {
			return err
		}

		if !canMove {
			return app_errors.Forbidden("insufficient permissions to move task")
		}

		if err := s.taskRepository.MoveTask(tx, taskID, destination.ID); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		message := "Task moved to column: " + destination.Name
		if err := s.taskLogService.WriteTaskLog(tx, taskID, user.ID, message); err != nil {
			return err
		}

		task.ColumnID = destination.ID
		movedTask = task

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task moved", "taskId", taskID, "columnId", request.ColumnID, "userId", user.ID)

	return movedTask, nil
}

// getAccessibleColumn resolves an active column of an active project the
// user owns or is a member of.
func (s *TaskService) getAccessibleColumn(
	tx *gorm.DB,
	columnID uuid.UUID,
	user *users_models.User,
) (*boards_models.Column, error) {
	column, err := s.columnRepository.GetColumnByID(tx, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}

	if column == nil || !column.IsActive {
		return nil, app_errors.NotFound("column not found")
	}

	project, err := s.accessService.ProjectOfColumn(tx, column)
	if err != nil {
		return nil, err
	}

	if project == nil || !project.IsActive {
		return nil, app_errors.NotFound("column not found")
	}

	canAccess, err := s.accessService.CanAccessProject(tx, project, user.ID)
	if err != nil {
		return nil, err
	}

	if !canAccess {
		return nil, app_errors.Forbidden("insufficient permissions to access column")
	}

	return column, nil
}

// getActiveTask resolves a task that is visible on the board: the task, its
// column and the column's project must all be active.
func (s *TaskService) getActiveTask(
	tx *gorm.DB,
	taskID uuid.UUID,
) (*boards_models.Task, *projects_models.Project, error) {
	task, err := s.taskRepository.GetTaskByID(tx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil || !task.IsActive {
		return nil, nil, app_errors.NotFound("task not found")
	}

	column, err := s.columnRepository.GetColumnByID(tx, task.ColumnID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get column: %w", err)
	}

	if column == nil || !column.IsActive {
		return nil, nil, app_errors.NotFound("task not found")
	}

	project, err := s.accessService.ProjectOfColumn(tx, column)
	if err != nil {
		return nil, nil, err
	}

	if project == nil || !project.IsActive {
		return nil, nil, app_errors.NotFound("task not found")
	}

	return task, project, nil
}

func (s *TaskService) checkCanDeleteTask(tx *gorm.DB, task *boards_models.Task, user *users_models.User) error {
	canDelete, err := s.accessService.CanDeleteTask(tx, task, user.ID)
	if err != nil {
		return err
	}

	if !canDelete {
		return app_errors.Forbidden("only task author or project owner can delete the task")
	}

	return nil
}
