package projects_repositories

import (
	"errors"
	"time"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_models "taskboard/internal/features/projects/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(tx *gorm.DB, membership *projects_models.ProjectMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return tx.Create(membership).Error
}

func (r *MembershipRepository) GetMembershipByUserAndProject(
	tx *gorm.DB,
	userID, projectID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	var membership projects_models.ProjectMembership

	err := tx.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetProjectMembers(
	tx *gorm.DB,
	projectID uuid.UUID,
) ([]projects_dto.ProjectMemberResponseDTO, error) {
	members := make([]projects_dto.ProjectMemberResponseDTO, 0)

	err := tx.
		Table("project_memberships pm").
		Select("pm.id, pm.user_id, u.email, pm.created_at").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", projectID).
		Order("pm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) RemoveMember(tx *gorm.DB, userID, projectID uuid.UUID) (int64, error) {
	result := tx.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&projects_models.ProjectMembership{})

	return result.RowsAffected, result.Error
}

func (r *MembershipRepository) DeleteProjectMemberships(tx *gorm.DB, projectID uuid.UUID) error {
	return tx.
		Where("project_id = ?", projectID).
		Delete(&projects_models.ProjectMembership{}).Error
}
