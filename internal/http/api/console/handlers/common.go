package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/models"
)

// getUserID extracts the authenticated user ID from gin context.
func getUserID(c *gin.Context) uint64 {
	val, exists := c.Get("userID")
	if !exists {
		return 0
	}
	switch v := val.(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case int:
		return uint64(v)
	default:
		return 0
	}
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, errParse := strconv.ParseUint(c.Param(name), 10, 64)
	if errParse != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// loadOwnedConfiguration fetches a configuration and verifies ownership.
// It writes the error response itself and reports success via the bool.
func loadOwnedConfiguration(c *gin.Context, db *gorm.DB, configID, userID uint64) (models.Configuration, bool) {
	var cfg models.Configuration
	errFind := db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", configID, userID).
		First(&cfg).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "configuration not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		}
		return models.Configuration{}, false
	}
	return cfg, true
}

// touchConfiguration bumps a configuration's updated_at so cached export
// artifacts keyed on the old revision stop matching.
func touchConfiguration(tx *gorm.DB, configID uint64) error {
	return tx.Model(&models.Configuration{}).
		Where("id = ?", configID).
		Update("updated_at", time.Now().UTC()).Error
}

// loadOwnedWorker fetches a worker and verifies ownership.
func loadOwnedWorker(c *gin.Context, db *gorm.DB, workerID, userID uint64) (models.Worker, bool) {
	var worker models.Worker
	errFind := db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", workerID, userID).
		First(&worker).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		}
		return models.Worker{}, false
	}
	return worker, true
}
