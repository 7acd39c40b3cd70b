package models

import "time"

// Keyword rule types understood by the crawler.
const (
	// KeywordTypeNormal is a plain monitored term.
	KeywordTypeNormal = "normal"
	// KeywordTypeRequired marks a term that must co-occur within its group.
	KeywordTypeRequired = "required"
	// KeywordTypeFilter marks a term that excludes matching headlines.
	KeywordTypeFilter = "filter"
	// KeywordTypeLimit caps the number of results for its group.
	KeywordTypeLimit = "limit"
)

// Keyword is one rule line of a configuration's keyword rules.
//
// Keyword rows are wholesale-replaced on every save of the keyword editor;
// they are never updated in place.
type Keyword struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	ConfigurationID uint64         `gorm:"not null;index"`             // Owning configuration ID.
	Configuration   *Configuration `gorm:"foreignKey:ConfigurationID"` // Associated configuration record.

	Word string `gorm:"type:text;not null"`                  // Keyword text; empty only for limit rows.
	Type string `gorm:"type:text;not null;default:'normal'"` // One of the KeywordType constants.

	GroupNumber int `gorm:"not null;default:0"` // Blank-line separated group, assigned in first-seen order.
	SortOrder   int `gorm:"not null;default:0"` // Position within the group.
	LimitValue  int `gorm:"not null;default:0"` // Result cap; meaningful only when Type is limit.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}
