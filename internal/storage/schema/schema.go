package schema

import (
	"fmt"
	"sync"

	boards_models "taskboard/internal/features/boards/models"
	projects_models "taskboard/internal/features/projects/models"
	"taskboard/internal/features/task_logs"
	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/storage"

	"gorm.io/gorm"
)

var (
	testSchemaOnce sync.Once
	testSchemaErr  error
)

// Migrate creates or updates every table of the service.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&users_models.User{},
		&users_models.SecretKey{},
		&projects_models.Project{},
		&projects_models.ProjectMembership{},
		&boards_models.Column{},
		&boards_models.Task{},
		&task_logs.TaskLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// EnsureTestSchema migrates the shared test database once per test binary.
func EnsureTestSchema() {
	testSchemaOnce.Do(func() {
		testSchemaErr = Migrate(storage.GetDb())
	})

	if testSchemaErr != nil {
		panic(testSchemaErr)
	}
}
