package users_controllers

import (
	"context"
	"net/http"
	"testing"

	users_dto "taskboard/internal/features/users/dto"
	users_middleware "taskboard/internal/features/users/middleware"
	users_services "taskboard/internal/features/users/services"
	users_testing "taskboard/internal/features/users/testing"
	"taskboard/internal/storage/schema"
	"taskboard/internal/util/app_errors"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func Test_SignUpUser_WithValidData_UserCreated(t *testing.T) {
	router := createUserTestRouter()

	request := users_dto.SignUpRequestDTO{
		Email:    "test" + uuid.New().String() + "@example.com",
		Password: "testpassword123",
	}

	var response users_dto.UserProfileResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, router, "/api/v1/users/signup", "", request, http.StatusOK, &response)

	assert.Equal(t, request.Email, response.Email)
	assert.True(t, response.IsActive)
	assert.NotEqual(t, uuid.Nil, response.ID)
}

func Test_SignUpUser_WithInvalidJSON_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/api/v1/users/signup",
		Body:           "invalid json",
		ExpectedStatus: http.StatusBadRequest,
	})

	assert.Contains(t, string(resp.Body), "Invalid request format")
	assert.Contains(t, string(resp.Body), "VALIDATION")
}

func Test_SignUpUser_WithDuplicateEmail_ReturnsConflict(t *testing.T) {
	router := createUserTestRouter()
	email := "duplicate" + uuid.New().String() + "@example.com"

	request := users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "testpassword123",
	}

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", request, http.StatusOK)

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", request, http.StatusConflict)
	assert.Contains(t, string(resp.Body), "already exists")

	adminToken := users_testing.AuthHeader(users_testing.CreateTestUser())

	var listResponse users_dto.ListUsersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users", adminToken, http.StatusOK, &listResponse)

	matches := 0
	for _, user := range listResponse.Users {
		if user.Email == email {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}

func Test_SignUpUser_WithValidationErrors_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	testCases := []struct {
		name    string
		request users_dto.SignUpRequestDTO
	}{
		{
			name: "missing email",
			request: users_dto.SignUpRequestDTO{
				Password: "testpassword123",
			},
		},
		{
			name: "missing password",
			request: users_dto.SignUpRequestDTO{
				Email: "test@example.com",
			},
		},
		{
			name: "short password",
			request: users_dto.SignUpRequestDTO{
				Email:    "test@example.com",
				Password: "short",
			},
		},
		{
			name: "malformed email",
			request: users_dto.SignUpRequestDTO{
				Email:    "not-an-email",
				Password: "testpassword123",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", tc.request, http.StatusBadRequest)
		})
	}
}

func Test_SignInUser_WithValidCredentials_ReturnsToken(t *testing.T) {
	router := createUserTestRouter()
	email := "signin" + uuid.New().String() + "@example.com"
	password := "testpassword123"

	signupRequest := users_dto.SignUpRequestDTO{
		Email:    email,
		Password: password,
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", signupRequest, http.StatusOK)

	signinRequest := users_dto.SignInRequestDTO{
		Email:    email,
		Password: password,
	}

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		signinRequest,
		http.StatusOK,
		&response,
	)

	assert.NotEmpty(t, response.Token)
	assert.NotEqual(t, uuid.Nil, response.UserID)
	assert.Equal(t, email, response.Email)
	assert.False(t, response.ExpiresAt.IsZero())
}

func Test_SignInUser_WithWrongPasswordOrUnknownEmail_ReturnsSameUnauthorized(t *testing.T) {
	router := createUserTestRouter()
	email := "signin2" + uuid.New().String() + "@example.com"

	signupRequest := users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "testpassword123",
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", signupRequest, http.StatusOK)

	wrongPasswordResp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "wrongpassword"},
		http.StatusUnauthorized,
	)

	unknownEmailResp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "nobody" + email, Password: "testpassword123"},
		http.StatusUnauthorized,
	)

	assert.Equal(t, string(wrongPasswordResp.Body), string(unknownEmailResp.Body))
	assert.Contains(t, string(wrongPasswordResp.Body), "invalid email or password")
}

func Test_SignInUser_WhenUserDeactivated_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()
	users_testing.DeactivateTestUser(user.UserID)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: user.Email, Password: users_testing.TestUserPassword},
		http.StatusUnauthorized,
	)
}

func Test_SignInUser_WhenRateLimitExceeded_ReturnsTooManyRequests(t *testing.T) {
	router := createUserTestRouter()
	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(0), 1))
	defer GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(100), 100))

	request := users_dto.SignInRequestDTO{Email: "limited@example.com", Password: "testpassword123"}

	test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", request, http.StatusUnauthorized)
	test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", request, http.StatusTooManyRequests)
}

func Test_GetCurrentUser_WithValidToken_ReturnsProfile(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		users_testing.AuthHeader(user),
		http.StatusOK,
		&profile,
	)

	assert.Equal(t, user.UserID, profile.ID)
	assert.Equal(t, user.Email, profile.Email)
	assert.True(t, profile.IsActive)
}

func Test_GetCurrentUser_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "", http.StatusUnauthorized)
}

func Test_GetCurrentUser_WithInvalidToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "Bearer not-a-token", http.StatusUnauthorized)
	assert.Contains(t, string(resp.Body), "invalid token")
}

func Test_GetCurrentUser_WhenUserDeactivatedAfterSignIn_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()
	users_testing.DeactivateTestUser(user.UserID)

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", users_testing.AuthHeader(user), http.StatusUnauthorized)
}

func Test_GetCurrentUser_WhenUserDeactivatedAfterProfileLoaded_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", users_testing.AuthHeader(user), http.StatusOK)

	err := users_services.GetUserService().ChangeUserActivityByEmail(context.Background(), user.Email, false)
	require.NoError(t, err)

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", users_testing.AuthHeader(user), http.StatusUnauthorized)

	err = users_services.GetUserService().ChangeUserActivityByEmail(context.Background(), user.Email, true)
	require.NoError(t, err)

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", users_testing.AuthHeader(user), http.StatusOK)
}

func Test_ChangeUserActivity_WithUnknownEmail_ReturnsNotFound(t *testing.T) {
	createUserTestRouter()

	err := users_services.GetUserService().ChangeUserActivityByEmail(
		context.Background(),
		"nobody"+uuid.New().String()+"@example.com",
		false,
	)

	assert.True(t, app_errors.Is(err, app_errors.KindNotFound))
}

func Test_GetUsers_WithDeactivatedUser_ExcludesIt(t *testing.T) {
	router := createUserTestRouter()
	activeUser := users_testing.CreateTestUser()
	inactiveUser := users_testing.CreateTestUser()
	users_testing.DeactivateTestUser(inactiveUser.UserID)

	var response users_dto.ListUsersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users",
		users_testing.AuthHeader(activeUser),
		http.StatusOK,
		&response,
	)

	var emails []string
	for _, user := range response.Users {
		emails = append(emails, user.Email)
	}

	assert.Contains(t, emails, activeUser.Email)
	assert.NotContains(t, emails, inactiveUser.Email)
}

func createUserTestRouter() *gin.Engine {
	schema.EnsureTestSchema()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	GetUserController().RegisterRoutes(v1)

	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetUserController().RegisterProtectedRoutes(protected.(*gin.RouterGroup))
	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(100), 100))

	return router
}
