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

type ColumnController struct {
	columnService *boards_services.ColumnService
}

func (c *ColumnController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/projects/:id/columns", c.CreateColumn)
	router.GET("/projects/:id/columns", c.GetColumns)

	columnRoutes := router.Group("/columns")

	columnRoutes.PUT("/:id", c.UpdateColumn)
	columnRoutes.DELETE("/:id", c.DeleteColumn)
	columnRoutes.POST("/:id/restore", c.RestoreColumn)
}

// CreateColumn
// @Summary Create a column
// @Description Add a column to an active project (owner only)
// @Tags columns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body boards_dto.CreateColumnRequestDTO true "Column data"
// @Success 200 {object} boards_models.Column
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/columns [post]
func (c *ColumnController) CreateColumn(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid project ID")
		return
	}

	var request boards_dto.CreateColumnRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid request format")
		return
	}

	column, err := c.columnService.CreateColumn(ctx.Request.Context(), projectID, &request, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, column)
}

// GetColumns
// @Summary List project columns
// @Description Get active columns of a project ordered by display order
// @Tags columns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} boards_dto.ListColumnsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/columns [get]
func (c *ColumnController) GetColumns(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid project ID")
		return
	}

	response, err := c.columnService.GetColumns(ctx.Request.Context(), projectID, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateColumn
// @Summary Update a column
// @Description Rename or reorder a column (owner only)
// @Tags columns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID"
// @Param request body boards_dto.UpdateColumnRequestDTO true "Column data"
// @Success 200 {object} boards_models.Column
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /columns/{id} [put]
func (c *ColumnController) UpdateColumn(ctx *gin.Context) {
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

	var request boards_dto.UpdateColumnRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid request format")
		return
	}

	column, err := c.columnService.UpdateColumn(ctx.Request.Context(), columnID, &request, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, column)
}

// DeleteColumn
// @Summary Delete a column
// @Description Soft delete a column (owner only)
// @Tags columns
// @Security BearerAuth
// @Param id path string true "Column ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /columns/{id} [delete]
func (c *ColumnController) DeleteColumn(ctx *gin.Context) {
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

	if err := c.columnService.DeleteColumn(ctx.Request.Context(), columnID, user); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}

// RestoreColumn
// @Summary Restore a column
// @Description Restore a soft deleted column (owner only). Its tasks are not restored
// @Tags columns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID"
// @Success 200 {object} boards_models.Column
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /columns/{id}/restore [post]
func (c *ColumnController) RestoreColumn(ctx *gin.Context) {
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

	column, err := c.columnService.RestoreColumn(ctx.Request.Context(), columnID, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, column)
}
