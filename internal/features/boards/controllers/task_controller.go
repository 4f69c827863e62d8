package boards_controllers

import (
	"net/http"

	boards_dto "taskboard/internal/features/boards/dto"
	boards_services "taskboard/internal/features/boards/services"
	users_middleware "taskboard/internal/features/users/middleware"
	"taskboard/internal/util/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *boards_services.TaskService
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/columns/:id/tasks", c.CreateTask)
	router.GET("/columns/:id/tasks", c.GetTasks)

	taskRoutes := router.Group("/tasks")

	taskRoutes.GET("/:id", c.GetTask)
	taskRoutes.PUT("/:id", c.UpdateTask)
	taskRoutes.DELETE("/:id", c.DeleteTask)
	taskRoutes.POST("/:id/restore", c.RestoreTask)
	taskRoutes.POST("/:id/move", c.MoveTask)
}

// CreateTask
// @Summary Create a task
// @Description Add a task to an active column. Priority defaults to 2
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID"
// @Param request body boards_dto.CreateTaskRequestDTO true "Task data"
// @Success 200 {object} boards_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /columns/{id}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	columnID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid column ID")
		return
	}

	var request boards_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid request format")
		return
	}

	task, err := c.taskService.CreateTask(ctx.Request.Context(), columnID, &request, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// GetTasks
// @Summary List column tasks
// @Description Get active tasks of a column, optionally filtered by priority
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID"
// @Param priority query int false "Only tasks with this priority"
// @Success 200 {object} boards_dto.ListTasksResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /columns/{id}/tasks [get]
func (c *TaskController) GetTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	columnID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid column ID")
		return
	}

	var request boards_dto.GetTasksRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid query parameters")
		return
	}

	response, err := c.taskService.GetTasks(ctx.Request.Context(), columnID, request.Priority, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTask
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} boards_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid task ID")
		return
	}

	task, err := c.taskService.GetTask(ctx.Request.Context(), taskID, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// UpdateTask
// @Summary Update a task
// @Description Replace title, description and priority of a task (author only)
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body boards_dto.UpdateTaskRequestDTO true "Task data"
// @Success 200 {object} boards_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid task ID")
		return
	}

	var request boards_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid request format")
		return
	}

	task, err := c.taskService.UpdateTask(ctx.Request.Context(), taskID, &request, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// DeleteTask
// @Summary Delete a task
// @Description Soft delete a task (author or project owner)
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid task ID")
		return
	}

	if err := c.taskService.DeleteTask(ctx.Request.Context(), taskID, user); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// RestoreTask
// @Summary Restore a task
// @Description Restore a soft deleted task (author or project owner)
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} boards_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/restore [post]
func (c *TaskController) RestoreTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid task ID")
		return
	}

	task, err := c.taskService.RestoreTask(ctx.Request.Context(), taskID, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// MoveTask
// @Summary Move a task
// @Description Move a task to another active column and record the move in the task log
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body boards_dto.MoveTaskRequestDTO true "Destination column"
// @Success 200 {object} boards_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/move [post]
func (c *TaskController) MoveTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid task ID")
		return
	}

	var request boards_dto.MoveTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid request format")
		return
	}

	task, err := c.taskService.MoveTask(ctx.Request.Context(), taskID, &request, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}
