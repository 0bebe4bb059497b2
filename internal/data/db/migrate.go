package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureIndexes(db)
}

// EnsureIndexes adds the indexes gorm tags cannot express.
func EnsureIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_job_application_user_date
		ON job_application (user_id, application_date DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_job_application_user_date: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_user_token_expires_at
		ON user_token (expires_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_user_token_expires_at: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Running migrations")
	return AutoMigrateAll(s.db)
}
