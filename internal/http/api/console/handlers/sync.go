package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trend-ops/trendradar-console/internal/export"
	"github.com/trend-ops/trendradar-console/internal/github"
	"github.com/trend-ops/trendradar-console/internal/models"
	"github.com/trend-ops/trendradar-console/internal/util"
)

// variableSetter is the slice of the GitHub client the sync path needs.
type variableSetter interface {
	SetVariable(ctx context.Context, name, value string) error
}

// GitHubHandler manages the per-user GitHub sync target and pushes
// rendered artifacts to it as Actions repository variables.
type GitHubHandler struct {
	db       *gorm.DB
	exporter *export.Exporter

	// newClient builds the variable client for a stored target. Tests
	// swap it for a fake.
	newClient func(target models.GitHubTarget) variableSetter
}

// NewGitHubHandler creates a GitHub sync handler.
func NewGitHubHandler(db *gorm.DB) *GitHubHandler {
	return &GitHubHandler{
		db:       db,
		exporter: export.NewExporter(db),
		newClient: func(target models.GitHubTarget) variableSetter {
			return github.NewClient(target.Owner, target.Repo, target.Token)
		},
	}
}

type githubTargetRequest struct {
	Owner string `json:"owner" binding:"required"`
	Repo  string `json:"repo" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// GetTarget returns the caller's sync target with the token masked.
func (h *GitHubHandler) GetTarget(c *gin.Context) {
	userID := getUserID(c)

	var target models.GitHubTarget
	errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		First(&target).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"configured": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"configured": true,
		"owner":      target.Owner,
		"repo":       target.Repo,
		"token":      util.MaskSecret(target.Token),
		"updated_at": target.UpdatedAt,
	})
}

// PutTarget creates or replaces the caller's sync target.
func (h *GitHubHandler) PutTarget(c *gin.Context) {
	userID := getUserID(c)

	var req githubTargetRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner, repo and token are required"})
		return
	}

	target := models.GitHubTarget{
		UserID: userID,
		Owner:  req.Owner,
		Repo:   req.Repo,
		Token:  req.Token,
	}
	errSave := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"owner", "repo", "token", "updated_at"}),
		}).
		Create(&target).Error
	if errSave != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteTarget removes the caller's sync target.
func (h *GitHubHandler) DeleteTarget(c *gin.Context) {
	userID := getUserID(c)

	errDelete := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Delete(&models.GitHubTarget{}).Error
	if errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Sync renders a configuration's artifacts and pushes them to the
// caller's GitHub target as repository variables.
func (h *GitHubHandler) Sync(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedConfiguration(c, h.db, configID, userID); !ok {
		return
	}
	ctx := c.Request.Context()

	var target models.GitHubTarget
	errFind := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&target).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no github target configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	doc, errExport := h.exporter.ExportDocument(ctx, configID)
	if errExport != nil {
		respondExportError(c, errExport)
		return
	}
	keywordText, errText := h.exporter.ExportKeywordText(ctx, configID)
	if errText != nil {
		respondExportError(c, errText)
		return
	}

	client := h.newClient(target)
	if errSet := client.SetVariable(ctx, github.VariableConfigYAML, export.RenderYAML(doc)); errSet != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "github sync failed"})
		return
	}
	if errSet := client.SetVariable(ctx, github.VariableFrequencyWords, keywordText); errSet != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "github sync failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"variables": []string{github.VariableConfigYAML, github.VariableFrequencyWords},
	})
}
