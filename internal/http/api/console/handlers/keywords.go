package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/keyword"
	"github.com/trend-ops/trendradar-console/internal/models"
)

// KeywordHandler handles the keyword editor endpoints.
type KeywordHandler struct {
	db *gorm.DB
}

// NewKeywordHandler constructs a KeywordHandler.
func NewKeywordHandler(db *gorm.DB) *KeywordHandler {
	return &KeywordHandler{db: db}
}

// Get returns a configuration's keyword rows and their rendered text form.
func (h *KeywordHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	var rows []models.Keyword
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("configuration_id = ?", configID).
		Order("group_number ASC, sort_order ASC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
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
	c.JSON(http.StatusOK, gin.H{
		"keywords": rows,
		"text":     keyword.Format(rules),
	})
}

// keywordSaveRequest defines the request body of the keyword editor.
type keywordSaveRequest struct {
	Text string `json:"text"`
}

// Put replaces a configuration's keywords from submitted rule text. The
// save is wholesale: all existing rows are deleted and the parsed rows
// inserted in one transaction.
func (h *KeywordHandler) Put(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}

	var body keywordSaveRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	rules, groupCount := keyword.Parse(body.Text)
	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if errDelete := tx.Where("configuration_id = ?", configID).Delete(&models.Keyword{}).Error; errDelete != nil {
			return errDelete
		}
		for _, rule := range rules {
			row := models.Keyword{
				ConfigurationID: configID,
				Word:            rule.Word,
				Type:            rule.Type,
				GroupNumber:     rule.Group,
				SortOrder:       rule.SortOrder,
				LimitValue:      rule.LimitValue,
			}
			if errCreate := tx.Create(&row).Error; errCreate != nil {
				return errCreate
			}
		}
		return touchConfiguration(tx, configID)
	})
	if errTx != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save keywords failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(rules),
		"groups": groupCount,
	})
}
