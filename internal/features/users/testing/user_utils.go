package users_testing

import (
	"context"
	"fmt"
	"time"

	users_dto "taskboard/internal/features/users/dto"
	users_models "taskboard/internal/features/users/models"
	users_repositories "taskboard/internal/features/users/repositories"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/storage"
	"taskboard/internal/storage/schema"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const TestUserPassword = "testpassword123"

// CreateTestUser stores an active user with TestUserPassword and returns a
// fresh access token for it.
func CreateTestUser() *users_dto.SignInResponseDTO {
	schema.EnsureTestSchema()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@test.com", userID.String()[:8])

	hasher := &users_services.BcryptPasswordHasher{Cost: bcrypt.MinCost}
	hashedPassword, err := hasher.Hash(TestUserPassword)
	if err != nil {
		panic(err)
	}

	user := &users_models.User{
		ID:             userID,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(storage.GetDb().WithContext(context.Background()), user); err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func DeactivateTestUser(userID uuid.UUID) {
	userRepository := &users_repositories.UserRepository{}
	user, err := userRepository.GetUserByID(storage.GetDb(), userID)
	if err != nil {
		panic(err)
	}

	if user == nil {
		panic(fmt.Sprintf("user %s not found", userID))
	}

	err = users_services.GetUserService().ChangeUserActivityByEmail(context.Background(), user.Email, false)
	if err != nil {
		panic(err)
	}
}

func AuthHeader(user *users_dto.SignInResponseDTO) string {
	return "Bearer " + user.Token
}
