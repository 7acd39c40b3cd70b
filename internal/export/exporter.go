package export

import (
	"context"
	"errors"

	"github.com/trend-ops/trendradar-console/internal/keyword"
	"github.com/trend-ops/trendradar-console/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound indicates the referenced configuration does not exist.
var ErrNotFound = errors.New("export: configuration not found")

// Fixed crawler constants encoded into every exported document.
const (
	appName             = "TrendRadar"
	requestIntervalMS   = 1000
	messageBatchSize    = 4000
	batchSendIntervalMS = 1000
)

// Exporter assembles stored configuration rows into export artifacts.
//
// It is the sole place that encodes the crawler's external config schema.
type Exporter struct {
	db *gorm.DB
}

// NewExporter constructs an Exporter over the given database.
func NewExporter(db *gorm.DB) *Exporter {
	return &Exporter{db: db}
}

// ExportDocument loads a configuration and produces the nested document
// rendered as config.yaml. It returns ErrNotFound when no configuration
// exists for the id; any other error is a storage failure passed through
// unchanged.
func (e *Exporter) ExportDocument(ctx context.Context, configID uint64) (Document, error) {
	var cfg models.Configuration
	if errFind := e.db.WithContext(ctx).First(&cfg, configID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return Document{}, ErrNotFound
		}
		return Document{}, errFind
	}

	settings, errSettings := e.loadSettings(ctx, configID)
	if errSettings != nil {
		return Document{}, errSettings
	}

	var platforms []models.Platform
	if errFind := e.db.WithContext(ctx).
		Where("configuration_id = ? AND enabled = ?", configID, true).
		Order("sort_order ASC, id ASC").
		Find(&platforms).Error; errFind != nil {
		return Document{}, errFind
	}

	var hooks []models.Webhook
	if errFind := e.db.WithContext(ctx).
		Where("configuration_id = ? AND enabled = ?", configID, true).
		Order("type ASC").
		Find(&hooks).Error; errFind != nil {
		return Document{}, errFind
	}

	return buildDocument(settings, platforms, hooks), nil
}

// ExportKeywordText renders a configuration's keywords as frequency_words.txt.
// An empty keyword set yields the empty string, not an error.
func (e *Exporter) ExportKeywordText(ctx context.Context, configID uint64) (string, error) {
	var rows []models.Keyword
	if errFind := e.db.WithContext(ctx).
		Where("configuration_id = ?", configID).
		Order("group_number ASC, sort_order ASC").
		Find(&rows).Error; errFind != nil {
		return "", errFind
	}

	rules := make([]keyword.Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, keyword.Rule{
			Word:       row.Word,
			Type:       row.Type,
			Group:      row.GroupNumber,
			SortOrder:  row.SortOrder,
			LimitValue: row.LimitValue,
		})
	}
	return keyword.Format(rules), nil
}

// loadSettings reads a configuration's settings rows as a raw string map.
func (e *Exporter) loadSettings(ctx context.Context, configID uint64) (map[string]string, error) {
	var rows []models.Setting
	if errFind := e.db.WithContext(ctx).
		Where("configuration_id = ?", configID).
		Find(&rows).Error; errFind != nil {
		return nil, errFind
	}
	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

// buildDocument assembles the crawler's config document from loaded rows.
// Section and field order is significant: it must match what the crawler's
// parser expects.
func buildDocument(settings map[string]string, platforms []models.Platform, hooks []models.Webhook) Document {
	platformItems := make([]Document, 0, len(platforms))
	for _, platform := range platforms {
		platformItems = append(platformItems, Map(
			F("id", Str(platform.PlatformKey)),
			F("name", Str(platform.Name)),
		))
	}

	projected := ProjectWebhooks(hooks)
	webhookFields := make([]Field, 0, len(webhookKeys))
	for _, key := range webhookKeys {
		webhookFields = append(webhookFields, F(key, Str(projected[key])))
	}

	return Map(
		F("app", Map(
			F("name", Str(appName)),
		)),
		F("crawler", Map(
			F("request_interval", Int(requestIntervalMS)),
			F("enable_crawler", Bool(settingBool(settings, SettingEnableCrawler))),
		)),
		F("report", Map(
			F("mode", Str(settingString(settings, SettingReportMode))),
			F("rank_threshold", Int(settingInt(settings, SettingRankThreshold))),
			F("sort_by_popularity", Bool(settingBool(settings, SettingSortByPopularity))),
			F("max_news_per_keyword", Int(settingInt(settings, SettingMaxNewsPerKeyword))),
		)),
		F("notification", Map(
			F("enable_notification", Bool(settingBool(settings, SettingEnableNotification))),
			F("message_batch_size", Int(messageBatchSize)),
			F("batch_send_interval", Int(batchSendIntervalMS)),
			F("push_window", Map(
				F("enabled", Bool(settingBool(settings, SettingPushWindowEnabled))),
				F("start", Str(settingString(settings, SettingPushWindowStart))),
				F("end", Str(settingString(settings, SettingPushWindowEnd))),
			)),
			F("webhooks", Map(webhookFields...)),
		)),
		F("weight", Map(
			F("rank_weight", Float(settingFloat(settings, SettingRankWeight))),
			F("frequency_weight", Float(settingFloat(settings, SettingFrequencyWeight))),
			F("hotness_weight", Float(settingFloat(settings, SettingHotnessWeight))),
		)),
		F("platforms", List(platformItems...)),
	)
}
