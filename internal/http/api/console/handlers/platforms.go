package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/models"
)

// PlatformHandler handles platform rows of a configuration.
type PlatformHandler struct {
	db *gorm.DB
}

// NewPlatformHandler constructs a PlatformHandler.
func NewPlatformHandler(db *gorm.DB) *PlatformHandler {
	return &PlatformHandler{db: db}
}

// List returns a configuration's platforms in sort order.
func (h *PlatformHandler) List(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	var platforms []models.Platform
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("configuration_id = ?", configID).
		Order("sort_order ASC, id ASC").
		Find(&platforms).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"platforms": platforms})
}

// platformRequest defines the request body for adding a platform.
type platformRequest struct {
	PlatformKey string `json:"platform_key"`
	Name        string `json:"name"`
	Enabled     *bool  `json:"enabled"`
	SortOrder   *int   `json:"sort_order"`
}

// Create adds one platform to a configuration.
func (h *PlatformHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	var body platformRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	key := strings.TrimSpace(body.PlatformKey)
	name := strings.TrimSpace(body.Name)
	if key == "" || name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing platform_key or name"})
		return
	}

	var exists models.Platform
	if errCheck := h.db.WithContext(c.Request.Context()).
		Where("configuration_id = ? AND platform_key = ?", configID, key).
		First(&exists).Error; errCheck == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "platform already exists"})
		return
	}

	var maxOrder int
	h.db.WithContext(c.Request.Context()).Model(&models.Platform{}).
		Where("configuration_id = ?", configID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxOrder)

	platform := models.Platform{
		ConfigurationID: configID,
		PlatformKey:     key,
		Name:            name,
		Enabled:         true,
		SortOrder:       maxOrder + 1,
	}
	if body.Enabled != nil {
		platform.Enabled = *body.Enabled
	}
	if body.SortOrder != nil {
		platform.SortOrder = *body.SortOrder
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&platform).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create platform failed"})
		return
	}
	if errTouch := touchConfiguration(h.db.WithContext(c.Request.Context()), configID); errTouch != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create platform failed"})
		return
	}
	c.JSON(http.StatusCreated, platform)
}

// platformUpdate is one entry of a bulk platform update.
type platformUpdate struct {
	ID        uint64 `json:"id"`
	Enabled   *bool  `json:"enabled"`
	SortOrder *int   `json:"sort_order"`
	Name      string `json:"name"`
}

// Update applies enabled/sort/name changes to a configuration's platforms
// in one transaction.
func (h *PlatformHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	var body struct {
		Platforms []platformUpdate `json:"platforms"`
	}
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for _, update := range body.Platforms {
			changes := map[string]any{}
			if update.Enabled != nil {
				changes["enabled"] = *update.Enabled
			}
			if update.SortOrder != nil {
				changes["sort_order"] = *update.SortOrder
			}
			if name := strings.TrimSpace(update.Name); name != "" {
				changes["name"] = name
			}
			if len(changes) == 0 {
				continue
			}
			if errUpdate := tx.Model(&models.Platform{}).
				Where("id = ? AND configuration_id = ?", update.ID, configID).
				Updates(changes).Error; errUpdate != nil {
				return errUpdate
			}
		}
		return touchConfiguration(tx, configID)
	})
	if errTx != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update platforms failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes one platform row.
func (h *PlatformHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	platformID, ok := pathID(c, "pid")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND configuration_id = ?", platformID, configID).
		Delete(&models.Platform{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "platform not found"})
		return
	}
	if errTouch := touchConfiguration(h.db.WithContext(c.Request.Context()), configID); errTouch != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
