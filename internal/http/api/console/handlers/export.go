package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/cache"
	"github.com/trend-ops/trendradar-console/internal/export"
)

const (
	artifactConfigYAML     = "config.yaml"
	artifactFrequencyWords = "frequency_words.txt"
)

// ExportHandler serves the rendered crawler artifacts for a configuration.
type ExportHandler struct {
	db       *gorm.DB
	exporter *export.Exporter
	cache    *cache.ExportCache
}

// NewExportHandler creates an export handler.
func NewExportHandler(db *gorm.DB, exportCache *cache.ExportCache) *ExportHandler {
	return &ExportHandler{db: db, exporter: export.NewExporter(db), cache: exportCache}
}

// ConfigYAML renders the configuration as config.yaml text.
func (h *ExportHandler) ConfigYAML(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cfg, ok := loadOwnedConfiguration(c, h.db, configID, userID)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if cached, hit := h.cache.Get(ctx, artifactConfigYAML, cfg.ID, cfg.UpdatedAt); hit {
		c.Data(http.StatusOK, "text/yaml; charset=utf-8", []byte(cached))
		return
	}
	doc, errExport := h.exporter.ExportDocument(ctx, cfg.ID)
	if errExport != nil {
		respondExportError(c, errExport)
		return
	}
	rendered := export.RenderYAML(doc)
	h.cache.Set(ctx, artifactConfigYAML, cfg.ID, cfg.UpdatedAt, rendered)
	c.Data(http.StatusOK, "text/yaml; charset=utf-8", []byte(rendered))
}

// FrequencyWords renders the configuration's keyword rules as
// frequency_words.txt text.
func (h *ExportHandler) FrequencyWords(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cfg, ok := loadOwnedConfiguration(c, h.db, configID, userID)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if cached, hit := h.cache.Get(ctx, artifactFrequencyWords, cfg.ID, cfg.UpdatedAt); hit {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(cached))
		return
	}
	text, errExport := h.exporter.ExportKeywordText(ctx, cfg.ID)
	if errExport != nil {
		respondExportError(c, errExport)
		return
	}
	h.cache.Set(ctx, artifactFrequencyWords, cfg.ID, cfg.UpdatedAt, text)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// Preview returns the export document as JSON for the console UI.
func (h *ExportHandler) Preview(c *gin.Context) {
	userID := getUserID(c)
	configID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cfg, ok := loadOwnedConfiguration(c, h.db, configID, userID)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	doc, errExport := h.exporter.ExportDocument(ctx, cfg.ID)
	if errExport != nil {
		respondExportError(c, errExport)
		return
	}
	text, errText := h.exporter.ExportKeywordText(ctx, cfg.ID)
	if errText != nil {
		respondExportError(c, errText)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"config":          doc.Plain(),
		"frequency_words": text,
	})
}

// respondExportError maps exporter failures to HTTP responses.
func respondExportError(c *gin.Context, err error) {
	if errors.Is(err, export.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "configuration not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
}
