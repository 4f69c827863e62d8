package projects_interfaces

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectDeletionListener removes rows that reference a project before the
// project itself is hard deleted. It runs inside the deleting transaction.
type ProjectDeletionListener interface {
	OnBeforeProjectDeletion(tx *gorm.DB, projectID uuid.UUID) error
}
