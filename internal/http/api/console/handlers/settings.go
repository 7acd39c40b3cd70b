package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trend-ops/trendradar-console/internal/export"
	"github.com/trend-ops/trendradar-console/internal/models"
)

// SettingHandler handles the settings page endpoints.
type SettingHandler struct {
	db *gorm.DB
}

// NewSettingHandler constructs a SettingHandler.
func NewSettingHandler(db *gorm.DB) *SettingHandler {
	return &SettingHandler{db: db}
}

// Get returns a configuration's settings with defaults merged in.
func (h *SettingHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	var rows []models.Setting
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("configuration_id = ?", configID).
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	raw := make(map[string]string, len(rows))
	for _, row := range rows {
		raw[row.Key] = row.Value
	}
	c.JSON(http.StatusOK, gin.H{"settings": export.MergedSettings(raw)})
}

// settingSaveRequest defines the request body for bulk setting upserts.
type settingSaveRequest struct {
	Settings map[string]string `json:"settings"`
}

// Put upserts settings by (configuration, key) in one transaction.
func (h *SettingHandler) Put(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	var body settingSaveRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(body.Settings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing settings"})
		return
	}

	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for key, value := range body.Settings {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			row := models.Setting{ConfigurationID: configID, Key: key, Value: value}
			if errUpsert := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "configuration_id"}, {Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row).Error; errUpsert != nil {
				return errUpsert
			}
		}
		return touchConfiguration(tx, configID)
	})
	if errTx != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save settings failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
