package projects_repositories

import (
	"errors"
	"time"

	projects_models "taskboard/internal/features/projects/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(tx *gorm.DB, project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return tx.Create(project).Error
}

// GetProjectByID returns the project regardless of its activity flag, or
// nil when there is no such row.
func (r *ProjectRepository) GetProjectByID(tx *gorm.DB, projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := tx.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetActiveProjectByID(
	tx *gorm.DB,
	projectID uuid.UUID,
) (*projects_models.Project, error) {
	project, err := r.GetProjectByID(tx, projectID)
	if err != nil || project == nil || !project.IsActive {
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepository) UpdateProjectName(tx *gorm.DB, projectID uuid.UUID, name string) error {
	return tx.Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Update("name", name).Error
}

func (r *ProjectRepository) SetProjectActivity(tx *gorm.DB, projectID uuid.UUID, isActive bool) error {
	return tx.Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Update("is_active", isActive).Error
}

func (r *ProjectRepository) DeleteProject(tx *gorm.DB, projectID uuid.UUID) error {
	return tx.Where("id = ?", projectID).Delete(&projects_models.Project{}).Error
}

// GetActiveProjectsForUser returns active projects the user owns or is a
// member of. Each project appears once.
func (r *ProjectRepository) GetActiveProjectsForUser(
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*projects_models.Project, error) {
	projects := make([]*projects_models.Project, 0)

	memberProjectIDs := tx.
		Model(&projects_models.ProjectMembership{}).
		Select("project_id").
		Where("user_id = ?", userID)

	err := tx.
		Where("is_active = ?", true).
		Where(tx.Where("owner_id = ?", userID).Or("id IN (?)", memberProjectIDs)).
		Order("name ASC").
		Order("created_at ASC").
		Find(&projects).Error

	return projects, err
}

// CountActiveTasks counts active tasks placed in active columns of the
// project.
func (r *ProjectRepository) CountActiveTasks(tx *gorm.DB, projectID uuid.UUID) (int64, error) {
	var count int64

	err := tx.
		Table("tasks t").
		Joins("JOIN board_columns c ON c.id = t.column_id").
		Where("c.project_id = ?", projectID).
		Where("c.is_active = ?", true).
		Where("t.is_active = ?", true).
		Count(&count).Error

	return count, err
}
