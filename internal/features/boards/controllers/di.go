package boards_controllers

import (
	boards_services "taskboard/internal/features/boards/services"
)

var columnController = &ColumnController{
	boards_services.GetColumnService(),
}

var taskController = &TaskController{
	boards_services.GetTaskService(),
}

func GetColumnController() *ColumnController {
	return columnController
}

func GetTaskController() *TaskController {
	return taskController
}
