package projects_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	boards_services "taskboard/internal/features/boards/services"
	projects_dto "taskboard/internal/features/projects/dto"
	users_dto "taskboard/internal/features/users/dto"
	users_middleware "taskboard/internal/features/users/middleware"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/storage/schema"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	schema.EnsureTestSchema()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	boards_services.SetupDependencies()

	return router
}

func CreateTestProject(
	name string,
	owner *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *projects_dto.ProjectResponseDTO {
	request := projects_dto.CreateProjectRequestDTO{Name: name}
	w := MakeAPIRequest(router, "POST", "/api/v1/projects", "Bearer "+owner.Token, request)

	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to create project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response projects_dto.ProjectResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func AddMemberToProject(
	projectID uuid.UUID,
	member *users_dto.SignInResponseDTO,
	ownerToken string,
	router *gin.Engine,
) *projects_dto.ProjectMemberResponseDTO {
	request := projects_dto.AddMemberRequestDTO{Email: member.Email}

	w := MakeAPIRequest(
		router,
		"POST",
		fmt.Sprintf("/api/v1/projects/memberships/%s/members", projectID.String()),
		"Bearer "+ownerToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to add member to project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response projects_dto.ProjectMemberResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func DeleteProject(projectID uuid.UUID, ownerToken string, router *gin.Engine) {
	w := MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/projects/"+projectID.String(),
		"Bearer "+ownerToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to delete project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
