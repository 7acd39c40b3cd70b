package db

import (
	"fmt"

	"github.com/trend-ops/trendradar-console/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the console schema.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.User{},
		&models.Configuration{},
		&models.Platform{},
		&models.Keyword{},
		&models.Webhook{},
		&models.Setting{},
		&models.Worker{},
		&models.GitHubTarget{},
	)
}
