package users_services

import (
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	users_models "taskboard/internal/features/users/models"
	users_repositories "taskboard/internal/features/users/repositories"
	"taskboard/internal/storage"
	cache_utils "taskboard/internal/util/cache"
	"taskboard/internal/util/logger"

	"golang.org/x/crypto/bcrypt"
)

var secretKeyRepository = &users_repositories.SecretKeyRepository{}
var userRepository = &users_repositories.UserRepository{}

var userService = &UserService{
	db:                  storage.GetDb(),
	userRepository:      userRepository,
	secretKeyRepository: secretKeyRepository,
	passwordHasher:      &BcryptPasswordHasher{Cost: bcrypt.DefaultCost},
	tokenIssuer: NewJwtTokenIssuer(func() (string, error) {
		return secretKeyRepository.GetSecretKey(storage.GetDb())
	}),
	accessTokenTtl: time.Duration(config.GetEnv().AccessTokenTtlMinutes) * time.Minute,
	userCache:      cache_utils.NewCacheUtil[users_models.User](cache.GetCache(), "users:"),
	logger:         logger.GetLogger(),
}

func GetUserService() *UserService {
	return userService
}
