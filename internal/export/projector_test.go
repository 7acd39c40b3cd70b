package export

import (
	"testing"

	"github.com/trend-ops/trendradar-console/internal/models"
	"gorm.io/datatypes"
)

func TestProjectWebhooksDefaultsWhenEmpty(t *testing.T) {
	out := ProjectWebhooks(nil)
	if len(out) != len(webhookKeys) {
		t.Fatalf("expected %d keys, got %d", len(webhookKeys), len(out))
	}
	if out["feishu_url"] != "" {
		t.Fatalf("feishu_url default: %q", out["feishu_url"])
	}
	if out["ntfy_server_url"] != "https://ntfy.sh" {
		t.Fatalf("ntfy_server_url default: %q", out["ntfy_server_url"])
	}
	if out["wework_msg_type"] != "markdown" {
		t.Fatalf("wework_msg_type default: %q", out["wework_msg_type"])
	}
	if out["email_smtp_port"] != "465" {
		t.Fatalf("email_smtp_port default: %q", out["email_smtp_port"])
	}
}

func TestProjectWebhooksSingleEnabledRow(t *testing.T) {
	out := ProjectWebhooks([]models.Webhook{
		{Type: models.WebhookTypeFeishu, Value: "https://x", Enabled: true},
	})
	if out["feishu_url"] != "https://x" {
		t.Fatalf("feishu_url: %q", out["feishu_url"])
	}
	for _, key := range webhookKeys {
		if key == "feishu_url" {
			continue
		}
		if out[key] != webhookDefaults[key] {
			t.Fatalf("key %s expected default %q, got %q", key, webhookDefaults[key], out[key])
		}
	}
}

func TestProjectWebhooksExtras(t *testing.T) {
	out := ProjectWebhooks([]models.Webhook{
		{
			Type:    models.WebhookTypeTelegram,
			Value:   "T",
			Extras:  datatypes.JSON([]byte(`{"chat_id":"C"}`)),
			Enabled: true,
		},
		{
			Type:    models.WebhookTypeEmail,
			Value:   "radar@example.com",
			Extras:  datatypes.JSON([]byte(`{"to":"team@example.com","smtp_port":587}`)),
			Enabled: true,
		},
	})
	if out["telegram_bot_token"] != "T" || out["telegram_chat_id"] != "C" {
		t.Fatalf("telegram keys: %q %q", out["telegram_bot_token"], out["telegram_chat_id"])
	}
	if out["email_from"] != "radar@example.com" {
		t.Fatalf("email_from: %q", out["email_from"])
	}
	if out["email_to"] != "team@example.com" {
		t.Fatalf("email_to: %q", out["email_to"])
	}
	if out["email_smtp_port"] != "587" {
		t.Fatalf("email_smtp_port: %q", out["email_smtp_port"])
	}
}

func TestProjectWebhooksIgnoresDisabledAndUnknown(t *testing.T) {
	out := ProjectWebhooks([]models.Webhook{
		{Type: models.WebhookTypeBark, Value: "https://bark", Enabled: false},
		{Type: "pager", Value: "ignored", Enabled: true},
		{Type: models.WebhookTypeSlack, Value: "not json extras", Extras: datatypes.JSON([]byte(`{`)), Enabled: true},
	})
	if out["bark_url"] != "" {
		t.Fatalf("disabled row leaked: %q", out["bark_url"])
	}
	if out["slack_webhook_url"] != "not json extras" {
		t.Fatalf("slack primary should survive malformed extras: %q", out["slack_webhook_url"])
	}
}
