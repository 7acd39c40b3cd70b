package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/deploy"
	"github.com/trend-ops/trendradar-console/internal/export"
	"github.com/trend-ops/trendradar-console/internal/models"
	"github.com/trend-ops/trendradar-console/internal/util"
)

// WorkerHandler manages deploy targets and drives deployments onto them.
type WorkerHandler struct {
	db       *gorm.DB
	exporter *export.Exporter
	deployer *deploy.Deployer
}

// NewWorkerHandler creates a worker handler.
func NewWorkerHandler(db *gorm.DB, deployer *deploy.Deployer) *WorkerHandler {
	return &WorkerHandler{db: db, exporter: export.NewExporter(db), deployer: deployer}
}

type workerRequest struct {
	Name          string `json:"name" binding:"required"`
	Host          string `json:"host" binding:"required"`
	Port          int    `json:"port"`
	SSHUser       string `json:"ssh_user" binding:"required"`
	Password      string `json:"password"`
	PrivateKey    string `json:"private_key"`
	DataDir       string `json:"data_dir"`
	ContainerName string `json:"container_name"`
	Image         string `json:"image"`
}

// workerView is the read shape of a worker with secrets masked.
func workerView(w models.Worker) gin.H {
	return gin.H{
		"id":             w.ID,
		"name":           w.Name,
		"host":           w.Host,
		"port":           w.Port,
		"ssh_user":       w.SSHUser,
		"password":       util.MaskSecret(w.Password),
		"has_key":        w.PrivateKey != "",
		"data_dir":       w.DataDir,
		"container_name": w.ContainerName,
		"image":          w.Image,
		"created_at":     w.CreatedAt,
		"updated_at":     w.UpdatedAt,
	}
}

// List returns the caller's workers.
func (h *WorkerHandler) List(c *gin.Context) {
	userID := getUserID(c)

	var workers []models.Worker
	errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&workers).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	views := make([]gin.H, 0, len(workers))
	for _, w := range workers {
		views = append(views, workerView(w))
	}
	c.JSON(http.StatusOK, gin.H{"workers": views})
}

// Create registers a new worker.
func (h *WorkerHandler) Create(c *gin.Context) {
	userID := getUserID(c)

	var req workerRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, host and ssh_user are required"})
		return
	}
	if req.Password == "" && req.PrivateKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password or private_key is required"})
		return
	}

	worker := models.Worker{
		UserID:        userID,
		Name:          req.Name,
		Host:          req.Host,
		Port:          req.Port,
		SSHUser:       req.SSHUser,
		Password:      req.Password,
		PrivateKey:    req.PrivateKey,
		DataDir:       req.DataDir,
		ContainerName: req.ContainerName,
		Image:         req.Image,
	}
	if worker.Port == 0 {
		worker.Port = 22
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&worker).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, workerView(worker))
}

// Update modifies a worker. Empty password and private_key fields keep
// the stored secrets.
func (h *WorkerHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	worker, ok := loadOwnedWorker(c, h.db, workerID, userID)
	if !ok {
		return
	}

	var req workerRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, host and ssh_user are required"})
		return
	}

	worker.Name = req.Name
	worker.Host = req.Host
	worker.SSHUser = req.SSHUser
	if req.Port != 0 {
		worker.Port = req.Port
	}
	if req.Password != "" {
		worker.Password = req.Password
	}
	if req.PrivateKey != "" {
		worker.PrivateKey = req.PrivateKey
	}
	if req.DataDir != "" {
		worker.DataDir = req.DataDir
	}
	if req.ContainerName != "" {
		worker.ContainerName = req.ContainerName
	}
	if req.Image != "" {
		worker.Image = req.Image
	}
	if errSave := h.db.WithContext(c.Request.Context()).Save(&worker).Error; errSave != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, workerView(worker))
}

// Delete removes a worker.
func (h *WorkerHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", workerID, userID).
		Delete(&models.Worker{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Deploy renders the caller's active configuration and ships it to the
// worker, replacing any running container.
func (h *WorkerHandler) Deploy(c *gin.Context) {
	userID := getUserID(c)
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	worker, ok := loadOwnedWorker(c, h.db, workerID, userID)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var cfg models.Configuration
	errFind := h.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		First(&cfg).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no active configuration"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	doc, errExport := h.exporter.ExportDocument(ctx, cfg.ID)
	if errExport != nil {
		respondExportError(c, errExport)
		return
	}
	keywordText, errText := h.exporter.ExportKeywordText(ctx, cfg.ID)
	if errText != nil {
		respondExportError(c, errText)
		return
	}

	opID, errDeploy := h.deployer.Deploy(worker, export.RenderYAML(doc), keywordText)
	if errDeploy != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "deploy failed: " + errDeploy.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"operation_id":     opID,
		"configuration_id": cfg.ID,
	})
}

// Stop stops the crawler container on the worker.
func (h *WorkerHandler) Stop(c *gin.Context) {
	userID := getUserID(c)
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	worker, ok := loadOwnedWorker(c, h.db, workerID, userID)
	if !ok {
		return
	}
	if errStop := h.deployer.Stop(worker); errStop != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "stop failed: " + errStop.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Status reports the container state on the worker.
func (h *WorkerHandler) Status(c *gin.Context) {
	userID := getUserID(c)
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	worker, ok := loadOwnedWorker(c, h.db, workerID, userID)
	if !ok {
		return
	}
	status, errStatus := h.deployer.Status(worker)
	if errStatus != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "status failed: " + errStatus.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Logs tails the container logs on the worker.
func (h *WorkerHandler) Logs(c *gin.Context) {
	userID := getUserID(c)
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	worker, ok := loadOwnedWorker(c, h.db, workerID, userID)
	if !ok {
		return
	}
	lines := 200
	if raw := c.Query("lines"); raw != "" {
		parsed, errParse := strconv.Atoi(raw)
		if errParse != nil || parsed <= 0 || parsed > 5000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lines"})
			return
		}
		lines = parsed
	}
	logs, errLogs := h.deployer.Logs(worker, lines)
	if errLogs != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "logs failed: " + errLogs.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
