package downdetect

import (
	"context"
	"fmt"

	"taskboard/internal/config"
	cache_utils "taskboard/internal/util/cache"

	"gorm.io/gorm"
)

type DowndetectService struct {
	db *gorm.DB
}

// IsAvailable fails when the database, or the cache if one is configured,
// cannot serve requests.
func (s *DowndetectService) IsAvailable(ctx context.Context) error {
	if err := s.CheckDatabase(ctx); err != nil {
		return err
	}

	if config.GetEnv().IsCacheEnabled() {
		if err := s.CheckCache(); err != nil {
			return err
		}
	}

	return nil
}

func (s *DowndetectService) CheckDatabase(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	return nil
}

func (s *DowndetectService) CheckCache() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	if err := cache_utils.TestCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}
