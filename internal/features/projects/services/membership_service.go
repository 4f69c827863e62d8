package projects_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskboard/internal/features/access"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_models "taskboard/internal/features/users/models"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/app_errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipService struct {
	db                   *gorm.DB
	membershipRepository *projects_repositories.MembershipRepository
	projectRepository    *projects_repositories.ProjectRepository
	userService          *users_services.UserService
	accessService        *access.AccessService
	logger               *slog.Logger
}

func (s *MembershipService) GetMembers(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	var members []projects_dto.ProjectMemberResponseDTO

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.getActiveProject(tx, projectID)
		if err != nil {
			return err
		}

		canAccess, err := s.accessService.CanAccessProject(tx, project, user.ID)
		if err != nil {
			return err
		}

		if !canAccess {
			return app_errors.Forbidden("insufficient permissions to view project members")
		}

		members, err = s.membershipRepository.GetProjectMembers(tx, projectID)
		if err != nil {
			return fmt.Errorf("failed to get project members: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &projects_dto.GetMembersResponseDTO{
		Members: members,
	}, nil
}

func (s *MembershipService) AddMember(
	ctx context.Context,
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*projects_dto.ProjectMemberResponseDTO, error) {
	var membership *projects_models.ProjectMembership
	var targetUser *users_models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.getActiveProject(tx, projectID)
		if err != nil {
			return err
		}

		if !s.accessService.CanManageProject(project, addedBy.ID) {
			return app_errors.Forbidden("insufficient permissions to add members")
		}

		targetUser, err = s.userService.GetUserByEmail(tx, request.Email)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		if targetUser == nil || !targetUser.IsActive {
			return app_errors.NotFound("user not found")
		}

		if project.IsOwnedBy(targetUser.ID) {
			return app_errors.Conflict("user is the owner of this project")
		}

		existingMembership, err := s.membershipRepository.GetMembershipByUserAndProject(tx, targetUser.ID, projectID)
		if err != nil {
			return fmt.Errorf("failed to get membership: %w", err)
		}

		if existingMembership != nil {
			return app_errors.Conflict("user is already a member of this project")
		}

		membership = &projects_models.ProjectMembership{
			UserID:    targetUser.ID,
			ProjectID: projectID,
			CreatedAt: time.Now().UTC(),
		}

		if err := s.membershipRepository.CreateMembership(tx, membership); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return app_errors.Conflict("user is already a member of this project")
			}

			return fmt.Errorf("failed to add member: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member added", "projectId", projectID, "userId", targetUser.ID, "addedBy", addedBy.ID)

	return &projects_dto.ProjectMemberResponseDTO{
		ID:        membership.ID,
		UserID:    targetUser.ID,
		Email:     targetUser.Email,
		CreatedAt: membership.CreatedAt,
	}, nil
}

func (s *MembershipService) RemoveMember(
	ctx context.Context,
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.getActiveProject(tx, projectID)
		if err != nil {
			return err
		}

		if !s.accessService.CanManageProject(project, removedBy.ID) {
			return app_errors.Forbidden("insufficient permissions to remove members")
		}

		removedCount, err := s.membershipRepository.RemoveMember(tx, memberUserID, projectID)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		if removedCount == 0 {
			return app_errors.NotFound("user is not a member of this project")
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("member removed", "projectId", projectID, "userId", memberUserID, "removedBy", removedBy.ID)

	return nil
}

func (s *MembershipService) getActiveProject(tx *gorm.DB, projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetActiveProjectByID(tx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, app_errors.NotFound("project not found")
	}

	return project, nil
}
