package users_controllers

import (
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/logger"
	"taskboard/internal/util/rate_limit"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	userService:    users_services.GetUserService(),
	signinLimiter:  rate.NewLimiter(rate.Limit(10), 20), // 10 RPS with burst of 20
	accountLimiter: rate_limit.NewRateLimiter("rate_limit:signin:"),
	logger:         logger.GetLogger(),
}

func GetUserController() *UserController {
	return userController
}
