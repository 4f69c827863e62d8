package projects_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskboard/internal/features/access"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_interfaces "taskboard/internal/features/projects/interfaces"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_enums "taskboard/internal/features/users/enums"
	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/util/app_errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	db                       *gorm.DB
	projectRepository        *projects_repositories.ProjectRepository
	membershipRepository     *projects_repositories.MembershipRepository
	accessService            *access.AccessService
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener
	logger                   *slog.Logger
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

func (s *ProjectService) CreateProject(
	ctx context.Context,
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, app_errors.Validation("project name is required")
	}

	project := &projects_models.Project{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   creator.ID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepository.CreateProject(tx, project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created", "projectId", project.ID, "ownerId", creator.ID)

	return toProjectResponse(project, users_enums.ProjectRoleOwner), nil
}

// GetUserProjects lists active projects the user owns or is a member of.
func (s *ProjectService) GetUserProjects(
	ctx context.Context,
	user *users_models.User,
) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.projectRepository.GetActiveProjectsForUser(s.db.WithContext(ctx), user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	response := &projects_dto.ListProjectsResponseDTO{
		Projects: make([]projects_dto.ProjectResponseDTO, 0, len(projects)),
	}

	for _, project := range projects {
		role := users_enums.ProjectRoleMember
		if project.IsOwnedBy(user.ID) {
			role = users_enums.ProjectRoleOwner
		}

		response.Projects = append(response.Projects, *toProjectResponse(project, role))
	}

	return response, nil
}

func (s *ProjectService) GetProjectDetails(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ProjectDetailsResponseDTO, error) {
	var details *projects_dto.ProjectDetailsResponseDTO

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.getAccessibleProject(tx, projectID, user)
		if err != nil {
			return err
		}

		taskCount, err := s.projectRepository.CountActiveTasks(tx, projectID)
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}

		members, err := s.membershipRepository.GetProjectMembers(tx, projectID)
		if err != nil {
			return fmt.Errorf("failed to get project members: %w", err)
		}

		details = &projects_dto.ProjectDetailsResponseDTO{
			ID:        project.ID,
			Name:      project.Name,
			OwnerID:   project.OwnerID,
			TaskCount: taskCount,
			Members:   members,
			CreatedAt: project.CreatedAt,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return details, nil
}

// GetTaskCount counts active tasks in active columns of the project.
func (s *ProjectService) GetTaskCount(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.TaskCountResponseDTO, error) {
	var taskCount int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.getAccessibleProject(tx, projectID, user); err != nil {
			return err
		}

		count, err := s.projectRepository.CountActiveTasks(tx, projectID)
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}

		taskCount = count

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &projects_dto.TaskCountResponseDTO{
		ProjectID: projectID,
		TaskCount: taskCount,
	}, nil
}

func (s *ProjectService) UpdateProject(
	ctx context.Context,
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, app_errors.Validation("project name is required")
	}

	var updatedProject *projects_models.Project

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.getManageableProject(tx, projectID, user, true)
		if err != nil {
			return err
		}

		if err := s.projectRepository.UpdateProjectName(tx, projectID, name); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		project.Name = name
		updatedProject = project

		return nil
	})
	if err != nil {
		return nil, err
	}

	return toProjectResponse(updatedProject, users_enums.ProjectRoleOwner), nil
}

// DeleteProject soft deletes the project. Its columns and tasks keep their
// own flags.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID uuid.UUID, user *users_models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.getManageableProject(tx, projectID, user, true); err != nil {
			return err
		}

		if err := s.projectRepository.SetProjectActivity(tx, projectID, false); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", "projectId", projectID, "userId", user.ID)

	return nil
}

// RestoreProject flips the project back to active. Columns and tasks that
// were deleted on their own stay deleted.
func (s *ProjectService) RestoreProject(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	var restoredProject *projects_models.Project

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.getManageableProject(tx, projectID, user, false)
		if err != nil {
			return err
		}

		if err := s.projectRepository.SetProjectActivity(tx, projectID, true); err != nil {
			return fmt.Errorf("failed to restore project: %w", err)
		}

		project.IsActive = true
		restoredProject = project

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project restored", "projectId", projectID, "userId", user.ID)

	return toProjectResponse(restoredProject, users_enums.ProjectRoleOwner), nil
}

// HardDeleteProject removes the project and everything under it in one
// transaction: task logs, tasks and columns through the deletion listeners,
// then memberships and the project row.
func (s *ProjectService) HardDeleteProject(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.getManageableProject(tx, projectID, user, false); err != nil {
			return err
		}

		for _, listener := range s.projectDeletionListeners {
			if err := listener.OnBeforeProjectDeletion(tx, projectID); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}
		}

		if err := s.membershipRepository.DeleteProjectMemberships(tx, projectID); err != nil {
			return fmt.Errorf("failed to delete project memberships: %w", err)
		}

		if err := s.projectRepository.DeleteProject(tx, projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("project permanently deleted", "projectId", projectID, "userId", user.ID)

	return nil
}

func (s *ProjectService) getAccessibleProject(
	tx *gorm.DB,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetActiveProjectByID(tx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, app_errors.NotFound("project not found")
	}

	canAccess, err := s.accessService.CanAccessProject(tx, project, user.ID)
	if err != nil {
		return nil, err
	}

	if !canAccess {
		return nil, app_errors.Forbidden("insufficient permissions to view project")
	}

	return project, nil
}

func (s *ProjectService) getManageableProject(
	tx *gorm.DB,
	projectID uuid.UUID,
	user *users_models.User,
	isActiveOnly bool,
) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(tx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil || (isActiveOnly && !project.IsActive) {
		return nil, app_errors.NotFound("project not found")
	}

	if !s.accessService.CanManageProject(project, user.ID) {
		return nil, app_errors.Forbidden("only project owner can manage project")
	}

	return project, nil
}

func toProjectResponse(
	project *projects_models.Project,
	role users_enums.ProjectRole,
) *projects_dto.ProjectResponseDTO {
	return &projects_dto.ProjectResponseDTO{
		ID:        project.ID,
		Name:      project.Name,
		OwnerID:   project.OwnerID,
		IsActive:  project.IsActive,
		CreatedAt: project.CreatedAt,
		UserRole:  &role,
	}
}
