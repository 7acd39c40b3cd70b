package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/models"
	"github.com/trend-ops/trendradar-console/internal/util"
)

// knownWebhookTypes is the set of channel types accepted by the editor.
var knownWebhookTypes = map[string]struct{}{
	models.WebhookTypeWework:   {},
	models.WebhookTypeFeishu:   {},
	models.WebhookTypeDingtalk: {},
	models.WebhookTypeTelegram: {},
	models.WebhookTypeEmail:    {},
	models.WebhookTypeNtfy:     {},
	models.WebhookTypeBark:     {},
	models.WebhookTypeSlack:    {},
}

// WebhookHandler handles webhook rows of a configuration.
type WebhookHandler struct {
	db *gorm.DB
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(db *gorm.DB) *WebhookHandler {
	return &WebhookHandler{db: db}
}

// webhookView is the display form of a webhook row; the primary value is
// masked because it usually carries a token.
type webhookView struct {
	ID      uint64         `json:"id"`
	Type    string         `json:"type"`
	Value   string         `json:"value"`
	Extras  map[string]any `json:"extras"`
	Enabled bool           `json:"enabled"`
}

// List returns a configuration's webhooks with masked secrets.
func (h *WebhookHandler) List(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	var hooks []models.Webhook
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("configuration_id = ?", configID).
		Order("type ASC").
		Find(&hooks).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	views := make([]webhookView, 0, len(hooks))
	for _, hook := range hooks {
		var extras map[string]any
		_ = json.Unmarshal(hook.Extras, &extras)
		views = append(views, webhookView{
			ID:      hook.ID,
			Type:    hook.Type,
			Value:   util.MaskSecret(hook.Value),
			Extras:  extras,
			Enabled: hook.Enabled,
		})
	}
	c.JSON(http.StatusOK, gin.H{"webhooks": views})
}

// webhookRequest defines the request body for webhook upserts.
type webhookRequest struct {
	Value   string         `json:"value"`
	Extras  map[string]any `json:"extras"`
	Enabled *bool          `json:"enabled"`
}

// Put creates or updates the webhook row for one channel type.
func (h *WebhookHandler) Put(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	hookType := strings.TrimSpace(c.Param("type"))
	if _, known := knownWebhookTypes[hookType]; !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown webhook type"})
		return
	}

	var body webhookRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	value := strings.TrimSpace(body.Value)
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing value"})
		return
	}

	extras := body.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	rawExtras, errEncode := json.Marshal(extras)
	if errEncode != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid extras"})
		return
	}
	enabled := true
	if body.Enabled != nil {
		enabled = *body.Enabled
	}

	var hook models.Webhook
	errFind := h.db.WithContext(c.Request.Context()).
		Where("configuration_id = ? AND type = ?", configID, hookType).
		First(&hook).Error
	switch {
	case errFind == nil:
		if errUpdate := h.db.WithContext(c.Request.Context()).Model(&hook).Updates(map[string]any{
			"value":      value,
			"extras":     datatypes.JSON(rawExtras),
			"enabled":    enabled,
			"updated_at": time.Now().UTC(),
		}).Error; errUpdate != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update webhook failed"})
			return
		}
	case errors.Is(errFind, gorm.ErrRecordNotFound):
		hook = models.Webhook{
			ConfigurationID: configID,
			Type:            hookType,
			Value:           value,
			Extras:          datatypes.JSON(rawExtras),
			Enabled:         enabled,
		}
		if errCreate := h.db.WithContext(c.Request.Context()).Create(&hook).Error; errCreate != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create webhook failed"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	if errTouch := touchConfiguration(h.db.WithContext(c.Request.Context()), configID); errTouch != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": hook.ID})
}

// Delete removes the webhook row for one channel type.
func (h *WebhookHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("configuration_id = ? AND type = ?", configID, strings.TrimSpace(c.Param("type"))).
		Delete(&models.Webhook{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "webhook not found"})
		return
	}
	if errTouch := touchConfiguration(h.db.WithContext(c.Request.Context()), configID); errTouch != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
