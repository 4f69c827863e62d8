package access

import (
	"fmt"

	boards_models "taskboard/internal/features/boards/models"
	boards_repositories "taskboard/internal/features/boards/repositories"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessService answers who may do what with a project and its columns and
// tasks. It only reads; callers turn a negative answer into a Forbidden
// error.
type AccessService struct {
	projectRepository    *projects_repositories.ProjectRepository
	membershipRepository *projects_repositories.MembershipRepository
	columnRepository     *boards_repositories.ColumnRepository
}

// RoleOf returns the standing of the user in the project. The owner is
// never reported as a member.
func (s *AccessService) RoleOf(
	tx *gorm.DB,
	project *projects_models.Project,
	userID uuid.UUID,
) (users_enums.ProjectRole, error) {
	if project.IsOwnedBy(userID) {
		return users_enums.ProjectRoleOwner, nil
	}

	membership, err := s.membershipRepository.GetMembershipByUserAndProject(tx, userID, project.ID)
	if err != nil {
		return users_enums.ProjectRoleNone, fmt.Errorf("failed to get membership: %w", err)
	}

	if membership != nil {
		return users_enums.ProjectRoleMember, nil
	}

	return users_enums.ProjectRoleNone, nil
}

// CanManageProject gates project update, delete and restore, column
// management and member management.
func (s *AccessService) CanManageProject(project *projects_models.Project, userID uuid.UUID) bool {
	return project.IsOwnedBy(userID)
}

func (s *AccessService) CanAccessProject(
	tx *gorm.DB,
	project *projects_models.Project,
	userID uuid.UUID,
) (bool, error) {
	role, err := s.RoleOf(tx, project, userID)
	if err != nil {
		return false, err
	}

	return role.HasAccess(), nil
}

// CanMoveTask is checked against the project of the task's current column.
// Standing in the destination project does not matter.
func (s *AccessService) CanMoveTask(tx *gorm.DB, task *boards_models.Task, userID uuid.UUID) (bool, error) {
	if task.IsAuthoredBy(userID) {
		return true, nil
	}

	project, err := s.ProjectOfTask(tx, task)
	if err != nil {
		return false, err
	}

	if project == nil {
		return false, nil
	}

	return s.CanAccessProject(tx, project, userID)
}

func (s *AccessService) CanEditTask(task *boards_models.Task, userID uuid.UUID) bool {
	return task.IsAuthoredBy(userID)
}

// CanDeleteTask covers soft delete and restore: the author or the owner of
// the task's project.
func (s *AccessService) CanDeleteTask(tx *gorm.DB, task *boards_models.Task, userID uuid.UUID) (bool, error) {
	if task.IsAuthoredBy(userID) {
		return true, nil
	}

	project, err := s.ProjectOfTask(tx, task)
	if err != nil || project == nil {
		return false, err
	}

	return s.CanManageProject(project, userID), nil
}

// ProjectOfTask resolves the project of the task's current column, active
// or not.
func (s *AccessService) ProjectOfTask(
	tx *gorm.DB,
	task *boards_models.Task,
) (*projects_models.Project, error) {
	column, err := s.columnRepository.GetColumnByID(tx, task.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}

	if column == nil {
		return nil, nil
	}

	return s.ProjectOfColumn(tx, column)
}

func (s *AccessService) ProjectOfColumn(
	tx *gorm.DB,
	column *boards_models.Column,
) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(tx, column.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}
