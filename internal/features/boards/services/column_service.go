package boards_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskboard/internal/features/access"
	boards_dto "taskboard/internal/features/boards/dto"
	boards_models "taskboard/internal/features/boards/models"
	boards_repositories "taskboard/internal/features/boards/repositories"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/util/app_errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnService struct {
	db                *gorm.DB
	columnRepository  *boards_repositories.ColumnRepository
	projectRepository *projects_repositories.ProjectRepository
	accessService     *access.AccessService
	logger            *slog.Logger
}

func (s *ColumnService) CreateColumn(
	ctx context.Context,
	projectID uuid.UUID,
	request *boards_dto.CreateColumnRequestDTO,
	user *users_models.User,
) (*boards_models.Column, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, app_errors.Validation("column name is required")
	}

	column := &boards_models.Column{
		ID:        uuid.New(),
		Name:      name,
		Order:     request.Order,
		ProjectID: projectID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.getActiveProject(tx, projectID)
		if err != nil {
			return err
		}

		if !s.accessService.CanManageProject(project, user.ID) {
			return app_errors.Forbidden("only project owner can manage columns")
		}

		if err := s.columnRepository.CreateColumn(tx, column); err != nil {
			return fmt.Errorf("failed to create column: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("column created", "columnId", column.ID, "projectId", projectID, "userId", user.ID)

	return column, nil
}

// GetColumns lists active columns of an active project by display order.
func (s *ColumnService) GetColumns(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*boards_dto.ListColumnsResponseDTO, error) {
	var columns []*boards_models.Column

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
			return app_errors.Forbidden("insufficient permissions to view columns")
		}

		columns, err = s.columnRepository.GetActiveColumnsByProject(tx, projectID)
		if err != nil {
			return fmt.Errorf("failed to get columns: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &boards_dto.ListColumnsResponseDTO{Columns: columns}, nil
}

func (s *ColumnService) UpdateColumn(
	ctx context.Context,
	columnID uuid.UUID,
	request *boards_dto.UpdateColumnRequestDTO,
	user *users_models.User,
) (*boards_models.Column, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, app_errors.Validation("column name is required")
	}

	var updatedColumn *boards_models.Column

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		column, err := s.getManageableColumn(tx, columnID, user, true)
		if err != nil {
			return err
		}

		if err := s.columnRepository.UpdateColumn(tx, columnID, name, request.Order); err != nil {
			return fmt.Errorf("failed to update column: %w", err)
		}

		column.Name = name
		column.Order = request.Order
		updatedColumn = column

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updatedColumn, nil
}

// DeleteColumn soft deletes the column. Its tasks keep their own flags and
// drop out of the project task count while the column is inactive.
func (s *ColumnService) DeleteColumn(ctx context.Context, columnID uuid.UUID, user *users_models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.getManageableColumn(tx, columnID, user, true); err != nil {
			return err
		}

		if err := s.columnRepository.SetColumnActivity(tx, columnID, false); err != nil {
			return fmt.Errorf("failed to delete column: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("column deleted", "columnId", columnID, "userId", user.ID)

	return nil
}

func (s *ColumnService) RestoreColumn(
	ctx context.Context,
	columnID uuid.UUID,
	user *users_models.User,
) (*boards_models.Column, error) {
	var restoredColumn *boards_models.Column

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		column, err := s.getManageableColumn(tx, columnID, user, false)
		if err != nil {
			return err
		}

		if err := s.columnRepository.SetColumnActivity(tx, columnID, true); err != nil {
			return fmt.Errorf("failed to restore column: %w", err)
		}

		column.IsActive = true
		restoredColumn = column

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("column restored", "columnId", columnID, "userId", user.ID)

	return restoredColumn, nil
}

func (s *ColumnService) getActiveProject(tx *gorm.DB, projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetActiveProjectByID(tx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, app_errors.NotFound("project not found")
	}

	return project, nil
}

// getManageableColumn resolves the column and checks the user owns its
// project. With isActiveOnly an inactive column, or one in an inactive
// project, is reported as not found.
func (s *ColumnService) getManageableColumn(
	tx *gorm.DB,
	columnID uuid.UUID,
	user *users_models.User,
	isActiveOnly bool,
) (*boards_models.Column, error) {
	column, err := s.columnRepository.GetColumnByID(tx, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}

	if column == nil || (isActiveOnly && !column.IsActive) {
		return nil, app_errors.NotFound("column not found")
	}

	project, err := s.accessService.ProjectOfColumn(tx, column)
	if err != nil {
		return nil, err
	}

	if project == nil || (isActiveOnly && !project.IsActive) {
		return nil, app_errors.NotFound("column not found")
	}

	if !s.accessService.CanManageProject(project, user.ID) {
		return nil, app_errors.Forbidden("only project owner can manage columns")
	}

	return column, nil
}
