package models

import "time"

// Platform is one news source the crawler polls for a configuration.
type Platform struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	ConfigurationID uint64         `gorm:"not null;index;uniqueIndex:idx_platform_config_key"` // Owning configuration ID.
	Configuration   *Configuration `gorm:"foreignKey:ConfigurationID"`                         // Associated configuration record.

	PlatformKey string `gorm:"type:text;not null;uniqueIndex:idx_platform_config_key"` // External site key, unique within a configuration.
	Name        string `gorm:"type:text;not null"`                                     // Display name shown in the console and exported config.

	Enabled   bool `gorm:"not null;default:true"` // Whether the crawler should poll this source.
	SortOrder int  `gorm:"not null;default:0"`    // Position in the exported platform list.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
