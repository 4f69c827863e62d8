package projects_controllers

import (
	"fmt"
	"net/http"
	"testing"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_testing "taskboard/internal/features/projects/testing"
	users_enums "taskboard/internal/features/users/enums"
	users_testing "taskboard/internal/features/users/testing"
	test_utils "taskboard/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ProjectLifecycleE2E_CompletesSuccessfully(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	// 1. Owner creates a project
	var project projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		users_testing.AuthHeader(owner),
		projects_dto.CreateProjectRequestDTO{Name: "Lifecycle project"},
		http.StatusOK,
		&project,
	)

	// 2. Owner adds a member
	projects_testing.AddMemberToProject(project.ID, member, owner.Token, router)

	// 3. Member sees the project with member role
	var memberProjects projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		users_testing.AuthHeader(member),
		http.StatusOK,
		&memberProjects,
	)
	require.Len(t, memberProjects.Projects, 1)
	assert.Equal(t, users_enums.ProjectRoleMember, *memberProjects.Projects[0].UserRole)

	// 4. Owner renames the project
	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		users_testing.AuthHeader(owner),
		projects_dto.UpdateProjectRequestDTO{Name: "Renamed project"},
		http.StatusOK,
	)

	// 5. Owner soft deletes, member loses the project from the listing
	projects_testing.DeleteProject(project.ID, owner.Token, router)
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		users_testing.AuthHeader(member),
		http.StatusOK,
		&memberProjects,
	)
	assert.Empty(t, memberProjects.Projects)

	// 6. Owner restores, membership survived
	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/projects/%s/restore", project.ID.String()),
		users_testing.AuthHeader(owner),
		nil,
		http.StatusOK,
	)

	var details projects_dto.ProjectDetailsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		users_testing.AuthHeader(member),
		http.StatusOK,
		&details,
	)
	assert.Equal(t, "Renamed project", details.Name)
	assert.Len(t, details.Members, 1)

	// 7. Owner deletes permanently
	test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/projects/%s/permanent", project.ID.String()),
		users_testing.AuthHeader(owner),
		http.StatusOK,
	)
	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		users_testing.AuthHeader(owner),
		http.StatusNotFound,
	)
}
