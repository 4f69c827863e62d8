package users_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	users_dto "taskboard/internal/features/users/dto"
	users_models "taskboard/internal/features/users/models"
	users_repositories "taskboard/internal/features/users/repositories"
	"taskboard/internal/util/app_errors"
	cache_utils "taskboard/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid email or password"

type UserService struct {
	db                  *gorm.DB
	userRepository      *users_repositories.UserRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
	passwordHasher      PasswordHasher
	tokenIssuer         TokenIssuer
	accessTokenTtl      time.Duration

	userCache       *cache_utils.CacheUtil[users_models.User]
	userLookupGroup singleflight.Group

	logger *slog.Logger
}

func (s *UserService) SignUp(
	ctx context.Context,
	request *users_dto.SignUpRequestDTO,
) (*users_models.User, error) {
	email := strings.TrimSpace(request.Email)
	if email == "" {
		return nil, app_errors.Validation("email is required")
	}

	hashedPassword, err := s.passwordHasher.Hash(request.Password)
	if err != nil {
		return nil, err
	}

	user := &users_models.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existingUser, err := s.userRepository.GetUserByEmail(tx, email)
		if err != nil {
			return fmt.Errorf("failed to check existing user: %w", err)
		}

		if existingUser != nil {
			return app_errors.Conflict("user with this email already exists")
		}

		if err := s.userRepository.CreateUser(tx, user); err != nil {
			// lost a race with a concurrent sign up
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return app_errors.Conflict("user with this email already exists")
			}

			return fmt.Errorf("failed to create user: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "userId", user.ID)

	return user, nil
}

// Authenticate never tells the caller whether the email or the password
// was wrong.
func (s *UserService) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByEmail(s.db.WithContext(ctx), email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil || !user.IsActive {
		return nil, app_errors.Unauthenticated(invalidCredentialsMessage)
	}

	if !s.passwordHasher.Verify(password, user.HashedPassword) {
		return nil, app_errors.Unauthenticated(invalidCredentialsMessage)
	}

	return user, nil
}

func (s *UserService) SignIn(
	ctx context.Context,
	request *users_dto.SignInRequestDTO,
) (*users_dto.SignInResponseDTO, error) {
	user, err := s.Authenticate(ctx, request.Email, request.Password)
	if err != nil {
		return nil, err
	}

	return s.GenerateAccessToken(user)
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	token, expiresAt, err := s.tokenIssuer.Issue(user.Email, s.accessTokenTtl)
	if err != nil {
		return nil, err
	}

	return &users_dto.SignInResponseDTO{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUserFromToken resolves the active user a token was issued to.
// Concurrent lookups of the same email share one database query.
func (s *UserService) GetUserFromToken(ctx context.Context, token string) (*users_models.User, error) {
	email, err := s.tokenIssuer.Verify(token)
	if err != nil {
		return nil, err
	}

	if cachedUser := s.userCache.Get(email); cachedUser != nil {
		if !cachedUser.IsActive {
			return nil, app_errors.Unauthenticated("user account is deactivated")
		}

		return cachedUser, nil
	}

	result, err, _ := s.userLookupGroup.Do(email, func() (any, error) {
		return s.userRepository.GetUserByEmail(s.db.WithContext(ctx), email)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user, _ := result.(*users_models.User)
	if user == nil {
		return nil, app_errors.Unauthenticated("invalid token")
	}

	s.userCache.Set(email, user)

	if !user.IsActive {
		return nil, app_errors.Unauthenticated("user account is deactivated")
	}

	return user, nil
}

func (s *UserService) GetUserByID(tx *gorm.DB, userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(tx, userID)
}

func (s *UserService) GetUserByEmail(tx *gorm.DB, email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(tx, email)
}

func (s *UserService) GetUsers(ctx context.Context) (*users_dto.ListUsersResponseDTO, error) {
	users, err := s.userRepository.GetActiveUsers(s.db.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	profiles := make([]users_dto.UserProfileResponseDTO, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, *s.GetCurrentUserProfile(user))
	}

	return &users_dto.ListUsersResponseDTO{Users: profiles}, nil
}

func (s *UserService) ChangeUserPasswordByEmail(
	ctx context.Context,
	email string,
	newPassword string,
) error {
	if len(newPassword) < 8 {
		return app_errors.Validation("password must be at least 8 characters long")
	}

	hashedPassword, err := s.passwordHasher.Hash(newPassword)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepository.GetUserByEmail(tx, email)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		if user == nil {
			return app_errors.NotFound("user not found")
		}

		if err := s.userRepository.UpdateUserPassword(tx, user.ID, hashedPassword); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.userCache.Invalidate(email)

	return nil
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// ChangeUserActivityByEmail activates or deactivates a user. The cached
// token lookup is dropped so a deactivated user loses access at once.
func (s *UserService) ChangeUserActivityByEmail(
	ctx context.Context,
	email string,
	isActive bool,
) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepository.GetUserByEmail(tx, email)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		if user == nil {
			return app_errors.NotFound("user not found")
		}

		if err := s.userRepository.UpdateUserActivity(tx, user.ID, isActive); err != nil {
			return fmt.Errorf("failed to update user activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.userCache.Invalidate(email)

	s.logger.Info("user activity changed", "email", email, "isActive", isActive)

	return nil
}
