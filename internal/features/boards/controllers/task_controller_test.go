package boards_controllers

import (
	"net/http"
	"testing"

	boards_dto "taskboard/internal/features/boards/dto"
	boards_models "taskboard/internal/features/boards/models"
	boards_testing "taskboard/internal/features/boards/testing"
	projects_testing "taskboard/internal/features/projects/testing"
	"taskboard/internal/features/task_logs"
	users_testing "taskboard/internal/features/users/testing"
	test_utils "taskboard/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateTask_WithoutPriority_DefaultPriorityApplied(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	projects_testing.AddMemberToProject(project.ID, member, owner.Token, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)

	description := "Steps to reproduce"

	var task boards_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		tasksURL(column.ID),
		users_testing.AuthHeader(member),
		boards_dto.CreateTaskRequestDTO{Title: "Fix bug", Description: &description},
		http.StatusOK,
		&task,
	)

	assert.Equal(t, "Fix bug", task.Title)
	require.NotNil(t, task.Description)
	assert.Equal(t, description, *task.Description)
	assert.Equal(t, boards_models.DefaultTaskPriority, task.Priority)
	assert.Equal(t, column.ID, task.ColumnID)
	assert.Equal(t, member.UserID, task.AuthorID)
	assert.True(t, task.IsActive)
}

func Test_CreateTask_WhenUserIsStranger_ReturnsForbidden(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)

	test_utils.MakePostRequest(
		t,
		router,
		tasksURL(column.ID),
		users_testing.AuthHeader(stranger),
		boards_dto.CreateTaskRequestDTO{Title: "Sneaky"},
		http.StatusForbidden,
	)
}

func Test_CreateTask_UnderInactiveColumnOrProject_ReturnsNotFound(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()

	t.Run("inactive column", func(t *testing.T) {
		project := projects_testing.CreateTestProject("Tasks project", owner, router)
		column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
		test_utils.MakeDeleteRequest(t, router, columnURL(column.ID), users_testing.AuthHeader(owner), http.StatusOK)

		test_utils.MakePostRequest(
			t,
			router,
			tasksURL(column.ID),
			users_testing.AuthHeader(owner),
			boards_dto.CreateTaskRequestDTO{Title: "Lost"},
			http.StatusNotFound,
		)
	})

	t.Run("inactive project", func(t *testing.T) {
		project := projects_testing.CreateTestProject("Tasks project", owner, router)
		column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
		projects_testing.DeleteProject(project.ID, owner.Token, router)

		test_utils.MakePostRequest(
			t,
			router,
			tasksURL(column.ID),
			users_testing.AuthHeader(owner),
			boards_dto.CreateTaskRequestDTO{Title: "Lost"},
			http.StatusNotFound,
		)
	})
}

func Test_GetTasks_WithPriorityFilter_ReturnsOnlyMatchingTasks(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Priority project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)

	urgent := 5
	test_utils.MakePostRequest(
		t,
		router,
		tasksURL(column.ID),
		users_testing.AuthHeader(owner),
		boards_dto.CreateTaskRequestDTO{Title: "Urgent", Priority: &urgent},
		http.StatusOK,
	)
	boards_testing.CreateTestTask(column.ID, "Regular", owner, router)

	var filtered boards_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		tasksURL(column.ID)+"?priority=5",
		users_testing.AuthHeader(owner),
		http.StatusOK,
		&filtered,
	)
	require.Len(t, filtered.Tasks, 1)
	assert.Equal(t, "Urgent", filtered.Tasks[0].Title)

	var all boards_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		tasksURL(column.ID),
		users_testing.AuthHeader(owner),
		http.StatusOK,
		&all,
	)
	assert.Len(t, all.Tasks, 2)

	test_utils.MakeGetRequest(
		t,
		router,
		tasksURL(column.ID)+"?priority=high",
		users_testing.AuthHeader(owner),
		http.StatusBadRequest,
	)
}

func Test_UpdateTask_WhenUserIsAuthor_FieldsReplacedAndLogged(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	task := boards_testing.CreateTestTask(column.ID, "Draft", owner, router)

	priority := 4

	var updated boards_models.Task
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		taskURL(task.ID),
		users_testing.AuthHeader(owner),
		boards_dto.UpdateTaskRequestDTO{Title: "Final", Priority: &priority},
		http.StatusOK,
		&updated,
	)

	assert.Equal(t, "Final", updated.Title)
	assert.Nil(t, updated.Description)
	assert.Equal(t, 4, updated.Priority)
	assert.Equal(t, int64(1), boards_testing.CountTaskLogs(task.ID))
}

func Test_UpdateTask_WhenUserIsNotAuthor_ReturnsForbidden(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	projects_testing.AddMemberToProject(project.ID, member, owner.Token, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	task := boards_testing.CreateTestTask(column.ID, "Member task", member, router)

	// even the project owner cannot edit someone else's task
	test_utils.MakePutRequest(
		t,
		router,
		taskURL(task.ID),
		users_testing.AuthHeader(owner),
		boards_dto.UpdateTaskRequestDTO{Title: "Hijacked"},
		http.StatusForbidden,
	)

	var unchanged boards_models.Task
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		taskURL(task.ID),
		users_testing.AuthHeader(member),
		http.StatusOK,
		&unchanged,
	)
	assert.Equal(t, "Member task", unchanged.Title)
	assert.Equal(t, int64(0), boards_testing.CountTaskLogs(task.ID))
}

func Test_DeleteTask_WhenUserIsProjectOwner_TaskHiddenAndLogged(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	projects_testing.AddMemberToProject(project.ID, member, owner.Token, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	task := boards_testing.CreateTestTask(column.ID, "Member task", member, router)

	test_utils.MakeDeleteRequest(t, router, taskURL(task.ID), users_testing.AuthHeader(owner), http.StatusOK)

	test_utils.MakeGetRequest(t, router, taskURL(task.ID), users_testing.AuthHeader(member), http.StatusNotFound)
	assert.Equal(t, int64(0), getTaskCount(t, router, project.ID, owner.Token))

	// the log stays readable after the soft delete
	var logs task_logs.GetTaskLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		taskURL(task.ID)+"/logs",
		users_testing.AuthHeader(member),
		http.StatusOK,
		&logs,
	)
	require.Len(t, logs.TaskLogs, 1)
	assert.Equal(t, "Task deleted", logs.TaskLogs[0].Message)
	assert.Equal(t, owner.UserID, logs.TaskLogs[0].UserID)
}

func Test_DeleteTask_WhenUserIsOtherMember_ReturnsForbidden(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	author := users_testing.CreateTestUser()
	otherMember := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	projects_testing.AddMemberToProject(project.ID, author, owner.Token, router)
	projects_testing.AddMemberToProject(project.ID, otherMember, owner.Token, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	task := boards_testing.CreateTestTask(column.ID, "Author task", author, router)

	test_utils.MakeDeleteRequest(t, router, taskURL(task.ID), users_testing.AuthHeader(otherMember), http.StatusForbidden)
}

func Test_RestoreTask_AfterSoftDelete_TaskVisibleAgain(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	task := boards_testing.CreateTestTask(column.ID, "Comeback", owner, router)

	test_utils.MakeDeleteRequest(t, router, taskURL(task.ID), users_testing.AuthHeader(owner), http.StatusOK)

	var restored boards_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		taskURL(task.ID)+"/restore",
		users_testing.AuthHeader(owner),
		nil,
		http.StatusOK,
		&restored,
	)

	assert.True(t, restored.IsActive)
	assert.Equal(t, int64(1), getTaskCount(t, router, project.ID, owner.Token))
	assert.Equal(t, int64(2), boards_testing.CountTaskLogs(task.ID))
}

func Test_GetTaskLogs_WhenUserIsStranger_ReturnsForbidden(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	task := boards_testing.CreateTestTask(column.ID, "Secret", owner, router)

	test_utils.MakeGetRequest(t, router, taskURL(task.ID)+"/logs", users_testing.AuthHeader(stranger), http.StatusForbidden)
}

func Test_RestoreTask_WhenTaskAlreadyActive_NothingLogged(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Tasks project", owner, router)
	column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
	task := boards_testing.CreateTestTask(column.ID, "Still here", owner, router)

	var restored boards_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		taskURL(task.ID)+"/restore",
		users_testing.AuthHeader(owner),
		nil,
		http.StatusOK,
		&restored,
	)

	assert.True(t, restored.IsActive)
	assert.Equal(t, task.ID, restored.ID)
	assert.Equal(t, int64(0), boards_testing.CountTaskLogs(task.ID))
}

func Test_TaskOperations_WhenParentSoftDeleted_ReturnNotFound(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	otherProject := projects_testing.CreateTestProject("Other project", owner, router)
	destination := boards_testing.CreateTestColumn(otherProject.ID, "Inbox", 1, owner, router)

	testCases := []struct {
		name         string
		hideParent   func(t *testing.T, projectID, columnID uuid.UUID)
		isLogVisible bool
	}{
		{
			name: "soft-deleted project",
			hideParent: func(_ *testing.T, projectID, _ uuid.UUID) {
				projects_testing.DeleteProject(projectID, owner.Token, router)
			},
			isLogVisible: false,
		},
		{
			name: "soft-deleted column",
			hideParent: func(t *testing.T, _, columnID uuid.UUID) {
				test_utils.MakeDeleteRequest(t, router, columnURL(columnID), users_testing.AuthHeader(owner), http.StatusOK)
			},
			isLogVisible: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			project := projects_testing.CreateTestProject("Hidden project", owner, router)
			column := boards_testing.CreateTestColumn(project.ID, "Todo", 1, owner, router)
			task := boards_testing.CreateTestTask(column.ID, "Hidden task", owner, router)

			tc.hideParent(t, project.ID, column.ID)

			authHeader := users_testing.AuthHeader(owner)

			test_utils.MakeGetRequest(t, router, taskURL(task.ID), authHeader, http.StatusNotFound)
			test_utils.MakePutRequest(
				t,
				router,
				taskURL(task.ID),
				authHeader,
				boards_dto.UpdateTaskRequestDTO{Title: "Edited"},
				http.StatusNotFound,
			)
			test_utils.MakePostRequest(
				t,
				router,
				moveURL(task.ID),
				authHeader,
				boards_dto.MoveTaskRequestDTO{ColumnID: destination.ID},
				http.StatusNotFound,
			)
			test_utils.MakeDeleteRequest(t, router, taskURL(task.ID), authHeader, http.StatusNotFound)

			expectedLogStatus := http.StatusNotFound
			if tc.isLogVisible {
				expectedLogStatus = http.StatusOK
			}
			test_utils.MakeGetRequest(t, router, taskURL(task.ID)+"/logs", authHeader, expectedLogStatus)

			assert.Equal(t, int64(0), boards_testing.CountTaskLogs(task.ID))
		})
	}
}
