package task_logs

import (
	"taskboard/internal/features/access"
	boards_repositories "taskboard/internal/features/boards/repositories"
	"taskboard/internal/storage"
	"taskboard/internal/util/logger"
)

var taskLogRepository = &TaskLogRepository{}
var taskLogService = &TaskLogService{
	db:                storage.GetDb(),
	taskLogRepository: taskLogRepository,
	taskRepository:    &boards_repositories.TaskRepository{},
	accessService:     access.GetAccessService(),
	logger:            logger.GetLogger(),
}
var taskLogController = &TaskLogController{
	taskLogService: taskLogService,
}

func GetTaskLogService() *TaskLogService {
	return taskLogService
}

func GetTaskLogController() *TaskLogController {
	return taskLogController
}
