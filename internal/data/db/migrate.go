package db

import (
	"gorm.io/gorm"

	types "github.com/Zartof23/mytops-sub000/internal/domain"
)

// AutoMigrateAll migrates every domain table. Order matters only for
// readability; FK constraints are disabled during migration.
func (s *Service) AutoMigrateAll() error {
	return AutoMigrate(s.db)
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.UserToken{},

		&types.Topic{},
		&types.Item{},

		&types.Rating{},
		&types.WatchLaterEntry{},
		&types.AIRequestLog{},
	)
}
