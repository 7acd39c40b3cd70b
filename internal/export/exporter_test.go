package export

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/trend-ops/trendradar-console/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func openExportTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(
		&models.User{},
		&models.Configuration{},
		&models.Platform{},
		&models.Keyword{},
		&models.Webhook{},
		&models.Setting{},
	); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func TestExportDocumentNotFound(t *testing.T) {
	exporter := NewExporter(openExportTestDB(t))

	_, errExport := exporter.ExportDocument(context.Background(), 999)
	if !errors.Is(errExport, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", errExport)
	}
}

func TestExportDocumentEndToEnd(t *testing.T) {
	conn := openExportTestDB(t)
	cfg := models.Configuration{UserID: 1, Name: "default", Active: true}
	if errCreate := conn.Create(&cfg).Error; errCreate != nil {
		t.Fatalf("create configuration: %v", errCreate)
	}

	rows := []any{
		&models.Platform{ConfigurationID: cfg.ID, PlatformKey: "baidu", Name: "百度热搜", Enabled: true, SortOrder: 0},
		&models.Platform{ConfigurationID: cfg.ID, PlatformKey: "weibo", Name: "微博热搜", Enabled: false, SortOrder: 1},
		&models.Setting{ConfigurationID: cfg.ID, Key: SettingReportMode, Value: "incremental"},
		&models.Setting{ConfigurationID: cfg.ID, Key: SettingRankWeight, Value: "0.6"},
		&models.Setting{ConfigurationID: cfg.ID, Key: SettingFrequencyWeight, Value: "0.3"},
		&models.Setting{ConfigurationID: cfg.ID, Key: SettingHotnessWeight, Value: "0.1"},
		&models.Webhook{
			ConfigurationID: cfg.ID,
			Type:            models.WebhookTypeTelegram,
			Value:           "T",
			Extras:          datatypes.JSON([]byte(`{"chat_id":"C"}`)),
			Enabled:         true,
		},
	}
	for _, row := range rows {
		if errCreate := conn.Create(row).Error; errCreate != nil {
			t.Fatalf("create row: %v", errCreate)
		}
	}

	doc, errExport := NewExporter(conn).ExportDocument(context.Background(), cfg.ID)
	if errExport != nil {
		t.Fatalf("export: %v", errExport)
	}

	platforms, _ := doc.Get("platforms")
	if len(platforms.Items) != 1 {
		t.Fatalf("expected 1 enabled platform, got %d", len(platforms.Items))
	}
	id, _ := platforms.Items[0].Get("id")
	if id.Scalar != "baidu" {
		t.Fatalf("platform id: %v", id.Scalar)
	}

	weight, _ := doc.Get("weight")
	rank, _ := weight.Get("rank_weight")
	if rank.Scalar != 0.6 {
		t.Fatalf("rank_weight: %v", rank.Scalar)
	}

	notification, _ := doc.Get("notification")
	hooks, _ := notification.Get("webhooks")
	token, _ := hooks.Get("telegram_bot_token")
	chat, _ := hooks.Get("telegram_chat_id")
	if token.Scalar != "T" || chat.Scalar != "C" {
		t.Fatalf("telegram keys: %v %v", token.Scalar, chat.Scalar)
	}

	report, _ := doc.Get("report")
	mode, _ := report.Get("mode")
	if mode.Scalar != "incremental" {
		t.Fatalf("report mode: %v", mode.Scalar)
	}
	threshold, _ := report.Get("rank_threshold")
	if threshold.Scalar != 5 {
		t.Fatalf("rank_threshold default: %v", threshold.Scalar)
	}
}

func TestExportDocumentAppliesDefaults(t *testing.T) {
	conn := openExportTestDB(t)
	cfg := models.Configuration{UserID: 1, Name: "empty"}
	if errCreate := conn.Create(&cfg).Error; errCreate != nil {
		t.Fatalf("create configuration: %v", errCreate)
	}

	doc, errExport := NewExporter(conn).ExportDocument(context.Background(), cfg.ID)
	if errExport != nil {
		t.Fatalf("export: %v", errExport)
	}

	crawler, _ := doc.Get("crawler")
	enabled, _ := crawler.Get("enable_crawler")
	if enabled.Scalar != true {
		t.Fatalf("enable_crawler default: %v", enabled.Scalar)
	}

	notification, _ := doc.Get("notification")
	window, _ := notification.Get("push_window")
	windowEnabled, _ := window.Get("enabled")
	if windowEnabled.Scalar != false {
		t.Fatalf("push window default: %v", windowEnabled.Scalar)
	}

	platforms, _ := doc.Get("platforms")
	if len(platforms.Items) != 0 {
		t.Fatalf("expected no platforms, got %d", len(platforms.Items))
	}
}

func TestExportKeywordText(t *testing.T) {
	conn := openExportTestDB(t)
	cfg := models.Configuration{UserID: 1, Name: "kw"}
	if errCreate := conn.Create(&cfg).Error; errCreate != nil {
		t.Fatalf("create configuration: %v", errCreate)
	}

	rows := []models.Keyword{
		{ConfigurationID: cfg.ID, Word: "AI", Type: models.KeywordTypeNormal, GroupNumber: 0, SortOrder: 0},
		{ConfigurationID: cfg.ID, Word: "招聘", Type: models.KeywordTypeFilter, GroupNumber: 0, SortOrder: 1},
		{ConfigurationID: cfg.ID, Type: models.KeywordTypeLimit, GroupNumber: 1, SortOrder: 0, LimitValue: 7},
	}
	for i := range rows {
		if errCreate := conn.Create(&rows[i]).Error; errCreate != nil {
			t.Fatalf("create keyword: %v", errCreate)
		}
	}

	text, errExport := NewExporter(conn).ExportKeywordText(context.Background(), cfg.ID)
	if errExport != nil {
		t.Fatalf("export keywords: %v", errExport)
	}
	if text != "AI\n!招聘\n\n@7" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExportKeywordTextEmpty(t *testing.T) {
	conn := openExportTestDB(t)
	cfg := models.Configuration{UserID: 1, Name: "none"}
	if errCreate := conn.Create(&cfg).Error; errCreate != nil {
		t.Fatalf("create configuration: %v", errCreate)
	}

	text, errExport := NewExporter(conn).ExportKeywordText(context.Background(), cfg.ID)
	if errExport != nil {
		t.Fatalf("export keywords: %v", errExport)
	}
	if text != "" {
		t.Fatalf("expected empty string, got %q", text)
	}
}
