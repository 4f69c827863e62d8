package projects_controllers

import (
	"net/http"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_services "taskboard/internal/features/projects/services"
	users_middleware "taskboard/internal/features/users/middleware"
	"taskboard/internal/util/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *projects_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects/memberships/:id")

	projectRoutes.GET("/members", c.ListMembers)
	projectRoutes.POST("/members", c.AddMember)
	projectRoutes.DELETE("/members/:userId", c.RemoveMember)
}

// ListMembers
// @Summary List project members
// @Description Get list of all project members, the owner excluded
// @Tags project-membership
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/memberships/{id}/members [get]
func (c *MembershipController) ListMembers(ctx *gin.Context) {
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

	response, err := c.membershipService.GetMembers(ctx.Request.Context(), projectID, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add member to project
// @Description Add an existing user to the project by email (owner only)
// @Tags project-membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AddMemberRequestDTO true "Member data"
// @Success 200 {object} projects_dto.ProjectMemberResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/memberships/{id}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
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

	var request projects_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid request format")
		return
	}

	response, err := c.membershipService.AddMember(ctx.Request.Context(), projectID, &request, user)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RemoveMember
// @Summary Remove member from project
// @Description Remove a member from the project (owner only)
// @Tags project-membership
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/memberships/{id}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
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

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid user ID")
		return
	}

	if err := c.membershipService.RemoveMember(ctx.Request.Context(), projectID, memberUserID, user); err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
