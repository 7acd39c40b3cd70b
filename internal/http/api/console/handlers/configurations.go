package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/export"
	"github.com/trend-ops/trendradar-console/internal/models"
)

// ConfigurationHandler handles configuration CRUD and activation.
type ConfigurationHandler struct {
	db *gorm.DB
}

// NewConfigurationHandler constructs a ConfigurationHandler.
func NewConfigurationHandler(db *gorm.DB) *ConfigurationHandler {
	return &ConfigurationHandler{db: db}
}

// defaultPlatform is one seeded platform row for new configurations.
type defaultPlatform struct {
	key  string
	name string
}

// defaultPlatforms lists the sources seeded into every new configuration.
var defaultPlatforms = []defaultPlatform{
	{"baidu", "百度热搜"},
	{"weibo", "微博热搜"},
	{"zhihu", "知乎热榜"},
	{"douyin", "抖音热点"},
	{"toutiao", "今日头条"},
	{"bilibili", "B站热门"},
	{"36kr", "36氪快讯"},
	{"ithome", "IT之家"},
}

// List returns the caller's configurations, active first.
func (h *ConfigurationHandler) List(c *gin.Context) {
	userID := getUserID(c)
	var configs []models.Configuration
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("active DESC, id ASC").
		Find(&configs).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"configurations": configs})
}

// configurationRequest defines the request body for create and update.
type configurationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create creates a configuration seeded with default platforms and
// settings. The first configuration of a user becomes active immediately.
func (h *ConfigurationHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	var body configurationRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name"})
		return
	}

	var existing int64
	if errCount := h.db.WithContext(c.Request.Context()).Model(&models.Configuration{}).
		Where("user_id = ?", userID).
		Count(&existing).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	cfg := models.Configuration{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(body.Description),
		Active:      existing == 0,
	}
	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if errCreate := tx.Create(&cfg).Error; errCreate != nil {
			return errCreate
		}
		for i, platform := range defaultPlatforms {
			row := models.Platform{
				ConfigurationID: cfg.ID,
				PlatformKey:     platform.key,
				Name:            platform.name,
				Enabled:         true,
				SortOrder:       i,
			}
			if errCreate := tx.Create(&row).Error; errCreate != nil {
				return errCreate
			}
		}
		for key, value := range export.DefaultSettings() {
			row := models.Setting{ConfigurationID: cfg.ID, Key: key, Value: value}
			if errCreate := tx.Create(&row).Error; errCreate != nil {
				return errCreate
			}
		}
		return nil
	})
	if errTx != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create configuration failed"})
		return
	}

	log.Infof("configuration %d created for user %d", cfg.ID, userID)
	c.JSON(http.StatusCreated, cfg)
}

// Get returns one configuration.
func (h *ConfigurationHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cfg, ok := loadOwnedConfiguration(c, h.db, configID, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Update renames a configuration.
func (h *ConfigurationHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cfg, ok := loadOwnedConfiguration(c, h.db, configID, userID)
	if !ok {
		return
	}

	var body configurationRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&cfg).Updates(map[string]any{
		"name":        name,
		"description": strings.TrimSpace(body.Description),
		"updated_at":  time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes a configuration and all of its dependent rows.
func (h *ConfigurationHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cfg, ok := loadOwnedConfiguration(c, h.db, configID, userID)
	if !ok {
		return
	}

	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Platform{}, &models.Keyword{}, &models.Webhook{}, &models.Setting{},
		} {
			if errDelete := tx.Where("configuration_id = ?", cfg.ID).Delete(model).Error; errDelete != nil {
				return errDelete
			}
		}
		return tx.Delete(&cfg).Error
	})
	if errTx != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Activate makes one configuration active, deactivating every other
// configuration of the same user inside one transaction.
func (h *ConfigurationHandler) Activate(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cfg, ok := loadOwnedConfiguration(c, h.db, configID, userID)
	if !ok {
		return
	}

	now := time.Now().UTC()
	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if errClear := tx.Model(&models.Configuration{}).
			Where("user_id = ? AND active = ?", userID, true).
			Updates(map[string]any{"active": false, "updated_at": now}).Error; errClear != nil {
			return errClear
		}
		return tx.Model(&models.Configuration{}).
			Where("id = ?", cfg.ID).
			Updates(map[string]any{"active": true, "updated_at": now}).Error
	})
	if errTx != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "activate failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
