package boards_testing

import (
	"encoding/json"
	"fmt"
	"net/http"

	boards_dto "taskboard/internal/features/boards/dto"
	boards_models "taskboard/internal/features/boards/models"
	projects_testing "taskboard/internal/features/projects/testing"
	users_dto "taskboard/internal/features/users/dto"
	"taskboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateTestColumn(
	projectID uuid.UUID,
	name string,
	order int,
	owner *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *boards_models.Column {
	request := boards_dto.CreateColumnRequestDTO{Name: name, Order: order}

	w := projects_testing.MakeAPIRequest(
		router,
		"POST",
		fmt.Sprintf("/api/v1/projects/%s/columns", projectID.String()),
		"Bearer "+owner.Token,
		request,
	)

	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to create column. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var column boards_models.Column
	if err := json.Unmarshal(w.Body.Bytes(), &column); err != nil {
		panic(err)
	}

	return &column
}

func CreateTestTask(
	columnID uuid.UUID,
	title string,
	author *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *boards_models.Task {
	request := boards_dto.CreateTaskRequestDTO{Title: title}

	w := projects_testing.MakeAPIRequest(
		router,
		"POST",
		fmt.Sprintf("/api/v1/columns/%s/tasks", columnID.String()),
		"Bearer "+author.Token,
		request,
	)

	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to create task. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var task boards_models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		panic(err)
	}

	return &task
}

// CountProjectRows counts stored columns, tasks and task logs of a project
// straight from the database, whatever their activity flags.
func CountProjectRows(projectID uuid.UUID) (columns int64, tasks int64, taskLogs int64) {
	db := storage.GetDb()

	if err := db.Table("board_columns").Where("project_id = ?", projectID).Count(&columns).Error; err != nil {
		panic(err)
	}

	projectColumnIDs := db.Table("board_columns").Select("id").Where("project_id = ?", projectID)

	if err := db.Table("tasks").Where("column_id IN (?)", projectColumnIDs).Count(&tasks).Error; err != nil {
		panic(err)
	}

	projectTaskIDs := db.Table("tasks").Select("id").Where("column_id IN (?)", projectColumnIDs)

	if err := db.Table("task_logs").Where("task_id IN (?)", projectTaskIDs).Count(&taskLogs).Error; err != nil {
		panic(err)
	}

	return columns, tasks, taskLogs
}

func CountTaskLogs(taskID uuid.UUID) int64 {
	var count int64
	if err := storage.GetDb().Table("task_logs").Where("task_id = ?", taskID).Count(&count).Error; err != nil {
		panic(err)
	}

	return count
}
