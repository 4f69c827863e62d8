package task_logs

import (
	"net/http"

	users_middleware "taskboard/internal/features/users/middleware"
	"taskboard/internal/util/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskLogController struct {
	taskLogService *TaskLogService
}

func (c *TaskLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tasks/:id/logs", c.GetTaskLogs)
}

// GetTaskLogs
// @Summary Get task logs
// @Description Retrieve the movement and change log of a task, newest first
// @Tags task-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} GetTaskLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/logs [get]
func (c *TaskLogController) GetTaskLogs(ctx *gin.Context) {
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

	request := &GetTaskLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid query parameters")
		return
	}

	response, err := c.taskLogService.GetTaskLogs(ctx.Request.Context(), taskID, user, request)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
