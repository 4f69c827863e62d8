package access

import (
	boards_repositories "taskboard/internal/features/boards/repositories"
	projects_repositories "taskboard/internal/features/projects/repositories"
)

var accessService = &AccessService{
	projectRepository:    &projects_repositories.ProjectRepository{},
	membershipRepository: &projects_repositories.MembershipRepository{},
	columnRepository:     &boards_repositories.ColumnRepository{},
}

func GetAccessService() *AccessService {
	return accessService
}
