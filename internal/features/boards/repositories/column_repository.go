package boards_repositories

import (
	"errors"
	"time"

	boards_models "taskboard/internal/features/boards/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct{}

func (r *ColumnRepository) CreateColumn(tx *gorm.DB, column *boards_models.Column) error {
	if column.ID == uuid.Nil {
		column.ID = uuid.New()
	}
	if column.CreatedAt.IsZero() {
		column.CreatedAt = time.Now().UTC()
	}

	return tx.Create(column).Error
}

// GetColumnByID returns the column regardless of its activity flag, or nil
// when there is no such row.
func (r *ColumnRepository) GetColumnByID(tx *gorm.DB, columnID uuid.UUID) (*boards_models.Column, error) {
	var column boards_models.Column

	if err := tx.Where("id = ?", columnID).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &column, nil
}

func (r *ColumnRepository) GetActiveColumnsByProject(
	tx *gorm.DB,
	projectID uuid.UUID,
) ([]*boards_models.Column, error) {
	columns := make([]*boards_models.Column, 0)

	err := tx.
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&columns).Error

	return columns, err
}

func (r *ColumnRepository) UpdateColumn(tx *gorm.DB, columnID uuid.UUID, name string, order int) error {
	return tx.Model(&boards_models.Column{}).
		Where("id = ?", columnID).
		Updates(map[string]any{
			"name":       name,
			"sort_order": order,
		}).Error
}

func (r *ColumnRepository) SetColumnActivity(tx *gorm.DB, columnID uuid.UUID, isActive bool) error {
	return tx.Model(&boards_models.Column{}).
		Where("id = ?", columnID).
		Update("is_active", isActive).Error
}

func (r *ColumnRepository) DeleteColumnsByProject(tx *gorm.DB, projectID uuid.UUID) error {
	return tx.Where("project_id = ?", projectID).Delete(&boards_models.Column{}).Error
}
