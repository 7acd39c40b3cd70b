package models

import "time"

// Setting stores one key/value configuration entry for a configuration.
//
// Values are stored as raw strings; defaulting and type coercion happen in
// the export layer, not here.
type Setting struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	ConfigurationID uint64         `gorm:"not null;index;uniqueIndex:idx_setting_config_key"` // Owning configuration ID.
	Configuration   *Configuration `gorm:"foreignKey:ConfigurationID"`                        // Associated configuration record.

	Key   string `gorm:"type:varchar(255);not null;uniqueIndex:idx_setting_config_key"` // Configuration key.
	Value string `gorm:"type:text;not null"`                                            // Raw string value.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
