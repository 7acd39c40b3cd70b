package models

import "time"

// Configuration is one named crawl configuration owned by a user.
//
// At most one configuration per user carries Active=true; activation is an
// exclusive switch performed inside a single transaction.
type Configuration struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`     // Owning user ID.
	User   *User  `gorm:"foreignKey:UserID"`  // Associated user record.

	Name        string `gorm:"type:text;not null"` // Display name.
	Description string `gorm:"type:text"`          // Free-form description.

	Active bool `gorm:"not null;default:false"` // Whether this is the configuration in effect.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
