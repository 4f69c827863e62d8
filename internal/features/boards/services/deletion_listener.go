package boards_services

import (
	"fmt"

	boards_repositories "taskboard/internal/features/boards/repositories"
	"taskboard/internal/features/task_logs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectBoardDeletionListener removes the board of a project before the
// project row itself is hard deleted. Logs go first, then tasks, then
// columns, so no foreign key is left dangling.
type ProjectBoardDeletionListener struct {
	taskRepository   *boards_repositories.TaskRepository
	columnRepository *boards_repositories.ColumnRepository
	taskLogService   *task_logs.TaskLogService
}

func (l *ProjectBoardDeletionListener) OnBeforeProjectDeletion(tx *gorm.DB, projectID uuid.UUID) error {
	if err := l.taskLogService.DeleteProjectTaskLogs(tx, projectID); err != nil {
		return err
	}

	if err := l.taskRepository.DeleteTasksByProject(tx, projectID); err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}

	if err := l.columnRepository.DeleteColumnsByProject(tx, projectID); err != nil {
		return fmt.Errorf("failed to delete project columns: %w", err)
	}

	return nil
}
