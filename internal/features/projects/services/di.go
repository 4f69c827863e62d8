package projects_services

import (
	"taskboard/internal/features/access"
	projects_interfaces "taskboard/internal/features/projects/interfaces"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/storage"
	"taskboard/internal/util/logger"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}

var projectService = &ProjectService{
	storage.GetDb(),
	projectRepository,
	membershipRepository,
	access.GetAccessService(),
	[]projects_interfaces.ProjectDeletionListener{},
	logger.GetLogger(),
}

var membershipService = &MembershipService{
	storage.GetDb(),
	membershipRepository,
	projectRepository,
	users_services.GetUserService(),
	access.GetAccessService(),
	logger.GetLogger(),
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
