package models

import "time"

// GitHubTarget is the repository a user's exports sync to, one per user.
//
// Exports land as the Actions repository variables CONFIG_YAML and
// FREQUENCY_WORDS.
type GitHubTarget struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;uniqueIndex"` // Owning user ID, one target per user.
	User   *User  `gorm:"foreignKey:UserID"`    // Associated user record.

	Owner string `gorm:"type:text;not null"` // Repository owner or organization.
	Repo  string `gorm:"type:text;not null"` // Repository name.
	Token string `gorm:"type:text;not null"` // Fine-grained or classic token with actions:variables scope.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
