package boards_dto

import (
	boards_models "taskboard/internal/features/boards/models"

	"github.com/google/uuid"
)

// Column DTOs
type CreateColumnRequestDTO struct {
	Name  string `json:"name"  binding:"required,min=1,max=255"`
	Order int    `json:"order"`
}

type UpdateColumnRequestDTO struct {
	Name  string `json:"name"  binding:"required,min=1,max=255"`
	Order int    `json:"order"`
}

type ListColumnsResponseDTO struct {
	Columns []*boards_models.Column `json:"columns"`
}

// Task DTOs
type CreateTaskRequestDTO struct {
	Title       string  `json:"title"       binding:"required,min=1,max=255"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"    binding:"omitempty,min=0"`
}

// UpdateTaskRequestDTO replaces all three fields: an omitted description is
// cleared and an omitted priority falls back to the default.
type UpdateTaskRequestDTO struct {
	Title       string  `json:"title"       binding:"required,min=1,max=255"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"    binding:"omitempty,min=0"`
}

type MoveTaskRequestDTO struct {
	ColumnID uuid.UUID `json:"columnId" binding:"required"`
}

type GetTasksRequestDTO struct {
	Priority *int `form:"priority"`
}

type ListTasksResponseDTO struct {
	Tasks []*boards_models.Task `json:"tasks"`
}
