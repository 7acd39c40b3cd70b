package export

import (
	"encoding/json"
	"strconv"

	"github.com/trend-ops/trendradar-console/internal/models"
)

// channelSpec maps one webhook channel onto its flat output keys.
type channelSpec struct {
	primaryKey string            // Output key fed by the row's primary value.
	extras     map[string]string // Extra field name -> output key.
}

// channelSpecs is the fixed per-type projection table.
var channelSpecs = map[string]channelSpec{
	models.WebhookTypeWework: {
		primaryKey: "wework_url",
		extras:     map[string]string{"msg_type": "wework_msg_type"},
	},
	models.WebhookTypeFeishu: {
		primaryKey: "feishu_url",
	},
	models.WebhookTypeDingtalk: {
		primaryKey: "dingtalk_url",
	},
	models.WebhookTypeTelegram: {
		primaryKey: "telegram_bot_token",
		extras:     map[string]string{"chat_id": "telegram_chat_id"},
	},
	models.WebhookTypeEmail: {
		primaryKey: "email_from",
		extras: map[string]string{
			"password":    "email_password",
			"to":          "email_to",
			"smtp_server": "email_smtp_server",
			"smtp_port":   "email_smtp_port",
		},
	},
	models.WebhookTypeNtfy: {
		primaryKey: "ntfy_topic",
		extras: map[string]string{
			"server_url": "ntfy_server_url",
			"token":      "ntfy_token",
		},
	},
	models.WebhookTypeBark: {
		primaryKey: "bark_url",
	},
	models.WebhookTypeSlack: {
		primaryKey: "slack_webhook_url",
	},
}

// webhookKeys is the output key order expected by the crawler's config.
var webhookKeys = []string{
	"feishu_url",
	"dingtalk_url",
	"wework_url",
	"wework_msg_type",
	"telegram_bot_token",
	"telegram_chat_id",
	"email_from",
	"email_password",
	"email_to",
	"email_smtp_server",
	"email_smtp_port",
	"ntfy_topic",
	"ntfy_server_url",
	"ntfy_token",
	"bark_url",
	"slack_webhook_url",
}

// webhookDefaults holds the non-empty channel defaults; every key absent
// here defaults to the empty string.
var webhookDefaults = map[string]string{
	"wework_msg_type": "markdown",
	"email_smtp_port": "465",
	"ntfy_server_url": "https://ntfy.sh",
}

// ProjectWebhooks flattens webhook rows into the crawler's flat key map.
//
// Every known key is pre-populated with its default; only enabled rows
// overwrite values. Disabled rows, unrecognized types and malformed extras
// are ignored, so projection never fails.
func ProjectWebhooks(hooks []models.Webhook) map[string]string {
	out := make(map[string]string, len(webhookKeys))
	for _, key := range webhookKeys {
		out[key] = webhookDefaults[key]
	}

	for _, hook := range hooks {
		if !hook.Enabled {
			continue
		}
		spec, ok := channelSpecs[hook.Type]
		if !ok {
			continue
		}
		out[spec.primaryKey] = hook.Value

		if len(spec.extras) == 0 || len(hook.Extras) == 0 {
			continue
		}
		var extras map[string]any
		if errDecode := json.Unmarshal(hook.Extras, &extras); errDecode != nil {
			continue
		}
		for name, outKey := range spec.extras {
			raw, exists := extras[name]
			if !exists {
				continue
			}
			if value := stringify(raw); value != "" {
				out[outKey] = value
			}
		}
	}

	return out
}

// stringify coerces a decoded JSON value to its string form.
func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	default:
		return ""
	}
}
