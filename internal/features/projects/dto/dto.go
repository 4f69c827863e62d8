package projects_dto

import (
	"time"

	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type UpdateProjectRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type ProjectResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"ownerId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	// User's role in this project (populated when fetching for specific user)
	UserRole *users_enums.ProjectRole `json:"userRole,omitempty"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

type ProjectDetailsResponseDTO struct {
	ID        uuid.UUID                  `json:"id"`
	Name      string                     `json:"name"`
	OwnerID   uuid.UUID                  `json:"ownerId"`
	TaskCount int64                      `json:"taskCount"`
	Members   []ProjectMemberResponseDTO `json:"members"`
	CreatedAt time.Time                  `json:"createdAt"`
}

type TaskCountResponseDTO struct {
	ProjectID uuid.UUID `json:"projectId"`
	TaskCount int64     `json:"taskCount"`
}

// Membership DTOs
type AddMemberRequestDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type ProjectMemberResponseDTO struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	Email     string    `json:"email"     gorm:"column:email"` // Populated from user join
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}
