package boards_controllers

import (
	"fmt"
	"net/http"
	"testing"

	boards_dto "taskboard/internal/features/boards/dto"
	boards_models "taskboard/internal/features/boards/models"
	boards_testing "taskboard/internal/features/boards/testing"
	projects_controllers "taskboard/internal/features/projects/controllers"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_testing "taskboard/internal/features/projects/testing"
	"taskboard/internal/features/task_logs"
	users_testing "taskboard/internal/features/users/testing"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateColumn_WhenUserIsOwner_ColumnCreated(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Columns project", owner, router)

	var column boards_models.Column
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		columnsURL(project.ID),
		users_testing.AuthHeader(owner),
		boards_dto.CreateColumnRequestDTO{Name: "Todo", Order: 1},
		http.StatusOK,
		&column,
	)

	assert.NotEqual(t, uuid.Nil, column.ID)
	assert.Equal(t, "Todo", column.Name)
	assert.Equal(t, 1, column.Order)
	assert.Equal(t, project.ID, column.ProjectID)
	assert.True(t, column.IsActive)
}

func Test_CreateColumn_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Columns project", owner, router)
	projects_testing.AddMemberToProject(project.ID, member, owner.Token, router)

	test_utils.MakePostRequest(
		t,
		router,
		columnsURL(project.ID),
		users_testing.AuthHeader(member),
		boards_dto.CreateColumnRequestDTO{Name: "Todo"},
		http.StatusForbidden,
	)
}

func Test_CreateColumn_WhenProjectSoftDeleted_ReturnsNotFound(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Deleted project", owner, router)
	projects_testing.DeleteProject(project.ID, owner.Token, router)

	test_utils.MakePostRequest(
		t,
		router,
		columnsURL(project.ID),
		users_testing.AuthHeader(owner),
		boards_dto.CreateColumnRequestDTO{Name: "Todo"},
		http.StatusNotFound,
	)
}

func Test_CreateColumn_WithMissingName_ReturnsBadRequest(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Columns project", owner, router)

	test_utils.MakePostRequest(
		t,
		router,
		columnsURL(project.ID),
		users_testing.AuthHeader(owner),
		boards_dto.CreateColumnRequestDTO{Order: 1},
		http.StatusBadRequest,
	)
}

func Test_GetColumns_WhenUserIsMember_ReturnsActiveColumnsInOrder(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Ordered project", owner, router)
	projects_testing.AddMemberToProject(project.ID, member, owner.Token, router)

	done := boards_testing.CreateTestColumn(project.ID, "Done", 3, owner, router)
	boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	boards_testing.CreateTestColumn(project.ID, "In progress", 2, owner, router)
	removed := boards_testing.CreateTestColumn(project.ID, "Removed", 0, owner, router)

	test_utils.MakeDeleteRequest(t, router, columnURL(removed.ID), users_testing.AuthHeader(owner), http.StatusOK)

	var response boards_dto.ListColumnsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		columnsURL(project.ID),
		users_testing.AuthHeader(member),
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Columns, 3)
	assert.Equal(t, "Todo", response.Columns[0].Name)
	assert.Equal(t, "In progress", response.Columns[1].Name)
	assert.Equal(t, done.ID, response.Columns[2].ID)
}

func Test_GetColumns_WhenUserIsStranger_ReturnsForbidden(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Private project", owner, router)

	test_utils.MakeGetRequest(t, router, columnsURL(project.ID), users_testing.AuthHeader(stranger), http.StatusForbidden)
}

func Test_UpdateColumn_WhenUserIsOwner_NameAndOrderReplaced(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Columns project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)

	var updated boards_models.Column
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		columnURL(column.ID),
		users_testing.AuthHeader(owner),
		boards_dto.UpdateColumnRequestDTO{Name: "Backlog", Order: 5},
		http.StatusOK,
		&updated,
	)

	assert.Equal(t, column.ID, updated.ID)
	assert.Equal(t, "Backlog", updated.Name)
	assert.Equal(t, 5, updated.Order)
}

func Test_UpdateColumn_WhenColumnSoftDeleted_ReturnsNotFound(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Columns project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)

	test_utils.MakeDeleteRequest(t, router, columnURL(column.ID), users_testing.AuthHeader(owner), http.StatusOK)

	test_utils.MakePutRequest(
		t,
		router,
		columnURL(column.ID),
		users_testing.AuthHeader(owner),
		boards_dto.UpdateColumnRequestDTO{Name: "Backlog"},
		http.StatusNotFound,
	)
}

func Test_DeleteColumn_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Columns project", owner, router)
	projects_testing.AddMemberToProject(project.ID, member, owner.Token, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)

	test_utils.MakeDeleteRequest(t, router, columnURL(column.ID), users_testing.AuthHeader(member), http.StatusForbidden)
}

func Test_DeleteColumn_WhenColumnHasTasks_TasksLeaveProjectCount(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Counted project", owner, router)
	todo := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	done := boards_testing.CreateTestColumn(project.ID, "Done", 2, owner, router)

	boards_testing.CreateTestTask(todo.ID, "First", owner, router)
	boards_testing.CreateTestTask(todo.ID, "Second", owner, router)
	boards_testing.CreateTestTask(done.ID, "Third", owner, router)

	assert.Equal(t, int64(3), getTaskCount(t, router, project.ID, owner.Token))

	test_utils.MakeDeleteRequest(t, router, columnURL(todo.ID), users_testing.AuthHeader(owner), http.StatusOK)

	assert.Equal(t, int64(1), getTaskCount(t, router, project.ID, owner.Token))
}

func Test_RestoreColumn_AfterSoftDelete_ColumnAndTasksVisibleAgain(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Restored project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	boards_testing.CreateTestTask(column.ID, "Survivor", owner, router)

	test_utils.MakeDeleteRequest(t, router, columnURL(column.ID), users_testing.AuthHeader(owner), http.StatusOK)
	test_utils.MakeGetRequest(t, router, tasksURL(column.ID), users_testing.AuthHeader(owner), http.StatusNotFound)

	var restored boards_models.Column
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		columnURL(column.ID)+"/restore",
		users_testing.AuthHeader(owner),
		nil,
		http.StatusOK,
		&restored,
	)
	assert.True(t, restored.IsActive)

	var tasks boards_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		tasksURL(column.ID),
		users_testing.AuthHeader(owner),
		http.StatusOK,
		&tasks,
	)
	require.Len(t, tasks.Tasks, 1)
	assert.Equal(t, "Survivor", tasks.Tasks[0].Title)
	assert.Equal(t, int64(1), getTaskCount(t, router, project.ID, owner.Token))
}

func createBoardTestRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		GetColumnController(),
		GetTaskController(),
		task_logs.GetTaskLogController(),
	)
}

func getTaskCount(t *testing.T, router *gin.Engine, projectID uuid.UUID, token string) int64 {
	t.Helper()

	var response projects_dto.TaskCountResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/projects/%s/task-count", projectID.String()),
		"Bearer "+token,
		http.StatusOK,
		&response,
	)

	return response.TaskCount
}

func columnsURL(projectID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/projects/%s/columns", projectID.String())
}

func columnURL(columnID uuid.UUID) string {
	return "/api/v1/columns/" + columnID.String()
}

func tasksURL(columnID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/columns/%s/tasks", columnID.String())
}

func taskURL(taskID uuid.UUID) string {
	return "/api/v1/tasks/" + taskID.String()
}
