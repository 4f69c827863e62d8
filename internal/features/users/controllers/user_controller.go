package users_controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	users_dto "taskboard/internal/features/users/dto"
	users_middleware "taskboard/internal/features/users/middleware"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/app_errors"
	"taskboard/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	accountSignInRps   = 1
	accountSignInBurst = 5
)

// UserController throttles sign in twice: globally in process and per email
// through the shared cache when one is configured.
type UserController struct {
	userService    *users_services.UserService
	signinLimiter  *rate.Limiter
	accountLimiter *rate_limit.RateLimiter
	logger         *slog.Logger
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users/signup", c.SignUp)
	router.POST("/users/signin", c.SignIn)
}

func (c *UserController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/users/me", c.GetCurrentUser)
	router.GET("/users", c.GetUsers)
}

func (c *UserController) SetSignInLimiter(limiter *rate.Limiter) {
	c.signinLimiter = limiter
}

// SignUp
// @Summary Register a new user
// @Description Register a new user with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignUpRequestDTO true "User signup data"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 400
// @Failure 409
// @Router /users/signup [post]
func (c *UserController) SignUp(ctx *gin.Context) {
	var request users_dto.SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid request format")
		return
	}

	user, err := c.userService.SignUp(ctx.Request.Context(), &request)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, c.userService.GetCurrentUserProfile(user))
}

// SignIn
// @Summary Authenticate a user
// @Description Authenticate a user with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignInRequestDTO true "User signin data"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400
// @Failure 401
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /users/signin [post]
func (c *UserController) SignIn(ctx *gin.Context) {
	// We use rate limiter to prevent brute force attacks
	if !c.signinLimiter.Allow() {
		ctx.JSON(
			http.StatusTooManyRequests,
			gin.H{"error": "Rate limit exceeded. Please try again later."},
		)
		return
	}

	var request users_dto.SignInRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		app_errors.RespondWithValidationError(ctx, "Invalid request format")
		return
	}

	limit, err := c.accountLimiter.CheckRateLimit(
		ctx.Request.Context(),
		strings.ToLower(strings.TrimSpace(request.Email)),
		accountSignInRps,
		accountSignInBurst,
	)
	if err != nil {
		c.logger.Warn("account rate limit check failed", "error", err)
	} else if !limit.Allowed {
		ctx.Header("Retry-After", strconv.Itoa(limit.RetryAfterSec))
		ctx.JSON(
			http.StatusTooManyRequests,
			gin.H{"error": "Too many sign in attempts for this account. Please try again later."},
		)
		return
	}

	response, err := c.userService.SignIn(ctx.Request.Context(), &request)
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetCurrentUser
// @Summary Get current user profile
// @Description Get the profile information of the currently authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile := c.userService.GetCurrentUserProfile(user)
	ctx.JSON(http.StatusOK, profile)
}

// GetUsers
// @Summary List users
// @Description List active users, used to pick project members
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	if _, ok := users_middleware.GetUserFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.userService.GetUsers(ctx.Request.Context())
	if err != nil {
		app_errors.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
