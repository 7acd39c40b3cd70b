package models

import (
	"time"

	"gorm.io/datatypes"
)

// Webhook channel types supported by the crawler's notification sender.
const (
	WebhookTypeWework   = "wework"
	WebhookTypeFeishu   = "feishu"
	WebhookTypeDingtalk = "dingtalk"
	WebhookTypeTelegram = "telegram"
	WebhookTypeEmail    = "email"
	WebhookTypeNtfy     = "ntfy"
	WebhookTypeBark     = "bark"
	WebhookTypeSlack    = "slack"
)

// Webhook is one outbound notification channel of a configuration.
//
// There is at most one row per (configuration, type); saves upsert.
type Webhook struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	ConfigurationID uint64         `gorm:"not null;index;uniqueIndex:idx_webhook_config_type"` // Owning configuration ID.
	Configuration   *Configuration `gorm:"foreignKey:ConfigurationID"`                         // Associated configuration record.

	Type string `gorm:"type:text;not null;uniqueIndex:idx_webhook_config_type"` // One of the WebhookType constants.

	Value  string         `gorm:"type:text;not null"`            // Primary URL or token for the channel.
	Extras datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"` // Channel-specific extra fields as JSON.

	Enabled bool `gorm:"not null;default:true"` // Whether this channel contributes to exports.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
