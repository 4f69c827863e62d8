package boards_models

import (
	"time"

	projects_models "taskboard/internal/features/projects/models"

	"github.com/google/uuid"
)

// Column belongs to one project. "order" is a reserved word in SQL, so the
// display position is stored as sort_order.
type Column struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `json:"name"      gorm:"column:name;not null"`
	Order     int       `json:"order"     gorm:"column:sort_order;not null"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id;type:uuid;not null;index"`
	IsActive  bool      `json:"isActive"  gorm:"column:is_active;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`

	Project *projects_models.Project `json:"-" gorm:"foreignKey:ProjectID"`
}

func (Column) TableName() string {
	return "board_columns"
}
