package boards_services

import (
	"sync"

	"taskboard/internal/features/access"
	boards_repositories "taskboard/internal/features/boards/repositories"
	projects_repositories "taskboard/internal/features/projects/repositories"
	projects_services "taskboard/internal/features/projects/services"
	"taskboard/internal/features/task_logs"
	"taskboard/internal/storage"
	"taskboard/internal/util/logger"
)

var columnRepository = &boards_repositories.ColumnRepository{}
var taskRepository = &boards_repositories.TaskRepository{}

var columnService = &ColumnService{
	storage.GetDb(),
	columnRepository,
	&projects_repositories.ProjectRepository{},
	access.GetAccessService(),
	logger.GetLogger(),
}

var taskService = &TaskService{
	storage.GetDb(),
	taskRepository,
	columnRepository,
	access.GetAccessService(),
	task_logs.GetTaskLogService(),
	logger.GetLogger(),
}

var projectBoardDeletionListener = &ProjectBoardDeletionListener{
	taskRepository,
	columnRepository,
	task_logs.GetTaskLogService(),
}

var setupOnce sync.Once

func GetColumnService() *ColumnService {
	return columnService
}

func GetTaskService() *TaskService {
	return taskService
}

// SetupDependencies registers the board cleanup with the project service.
// Safe to call more than once.
func SetupDependencies() {
	setupOnce.Do(func() {
		projects_services.GetProjectService().AddProjectDeletionListener(projectBoardDeletionListener)
	})
}
