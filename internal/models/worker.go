package models

import "time"

// Worker is a remote host the crawler can be deployed to over SSH.
type Worker struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`    // Owning user ID.
	User   *User  `gorm:"foreignKey:UserID"` // Associated user record.

	Name string `gorm:"type:text;not null"` // Display name.

	Host    string `gorm:"type:text;not null"`     // SSH host or IP.
	Port    int    `gorm:"not null;default:22"`    // SSH port.
	SSHUser string `gorm:"type:text;not null"`     // SSH login user.

	Password   string `gorm:"type:text"` // SSH password; empty when key auth is used.
	PrivateKey string `gorm:"type:text"` // PEM-encoded private key; empty when password auth is used.

	DataDir       string `gorm:"type:text;not null;default:'/opt/trendradar'"`      // Remote directory holding config files and output.
	ContainerName string `gorm:"type:text;not null;default:'trendradar'"`           // Docker container name.
	Image         string `gorm:"type:text;not null;default:'trendradar/trendradar:latest'"` // Docker image reference.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
