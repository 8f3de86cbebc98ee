package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/quizreel-backend/internal/domain/runs"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&runs.RunRecord{},
	)
}
