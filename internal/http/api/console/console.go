// Package console wires the TrendRadar console HTTP API.
package console

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/cache"
	"github.com/trend-ops/trendradar-console/internal/config"
	"github.com/trend-ops/trendradar-console/internal/deploy"
	"github.com/trend-ops/trendradar-console/internal/http/api/console/handlers"
	"github.com/trend-ops/trendradar-console/internal/models"
	"github.com/trend-ops/trendradar-console/internal/security"
)

// RegisterConsoleRoutes registers public and authenticated console routes.
func RegisterConsoleRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, exportCache *cache.ExportCache) {
	if r == nil || db == nil {
		return
	}

	console := r.Group("/v0/console")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	console.POST("/register", authHandler.Register)
	console.POST("/login", authHandler.Login)
	console.POST("/login/totp", authHandler.LoginTOTP)

	authed := console.Group("")
	authed.Use(userAuthMiddleware(db, jwtCfg))

	profileHandler := handlers.NewProfileHandler(db)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile/password", profileHandler.ChangePassword)

	mfaHandler := handlers.NewMFAHandler(db)
	authed.GET("/mfa/status", mfaHandler.Status)
	authed.POST("/mfa/totp/prepare", mfaHandler.PrepareTOTP)
	authed.POST("/mfa/totp/confirm", mfaHandler.ConfirmTOTP)
	authed.POST("/mfa/totp/disable", mfaHandler.DisableTOTP)

	configurationHandler := handlers.NewConfigurationHandler(db)
	authed.GET("/configurations", configurationHandler.List)
	authed.POST("/configurations", configurationHandler.Create)
	authed.GET("/configurations/:id", configurationHandler.Get)
	authed.PUT("/configurations/:id", configurationHandler.Update)
	authed.DELETE("/configurations/:id", configurationHandler.Delete)
	authed.POST("/configurations/:id/activate", configurationHandler.Activate)

	platformHandler := handlers.NewPlatformHandler(db)
	authed.GET("/configurations/:id/platforms", platformHandler.List)
	authed.POST("/configurations/:id/platforms", platformHandler.Create)
	authed.PUT("/configurations/:id/platforms", platformHandler.Update)
	authed.DELETE("/configurations/:id/platforms/:pid", platformHandler.Delete)

	keywordHandler := handlers.NewKeywordHandler(db)
	authed.GET("/configurations/:id/keywords", keywordHandler.Get)
	authed.PUT("/configurations/:id/keywords", keywordHandler.Put)

	webhookHandler := handlers.NewWebhookHandler(db)
	authed.GET("/configurations/:id/webhooks", webhookHandler.List)
	authed.PUT("/configurations/:id/webhooks/:type", webhookHandler.Put)
	authed.DELETE("/configurations/:id/webhooks/:type", webhookHandler.Delete)

	settingHandler := handlers.NewSettingHandler(db)
	authed.GET("/configurations/:id/settings", settingHandler.Get)
	authed.PUT("/configurations/:id/settings", settingHandler.Put)

	exportHandler := handlers.NewExportHandler(db, exportCache)
	authed.GET("/configurations/:id/export/config.yaml", exportHandler.ConfigYAML)
	authed.GET("/configurations/:id/export/frequency-words.txt", exportHandler.FrequencyWords)
	authed.GET("/configurations/:id/export/preview", exportHandler.Preview)

	githubHandler := handlers.NewGitHubHandler(db)
	authed.GET("/github-target", githubHandler.GetTarget)
	authed.PUT("/github-target", githubHandler.PutTarget)
	authed.DELETE("/github-target", githubHandler.DeleteTarget)
	authed.POST("/configurations/:id/sync", githubHandler.Sync)

	workerHandler := handlers.NewWorkerHandler(db, deploy.NewDeployer())
	authed.GET("/workers", workerHandler.List)
	authed.POST("/workers", workerHandler.Create)
	authed.PUT("/workers/:id", workerHandler.Update)
	authed.DELETE("/workers/:id", workerHandler.Delete)
	authed.POST("/workers/:id/deploy", workerHandler.Deploy)
	authed.POST("/workers/:id/stop", workerHandler.Stop)
	authed.GET("/workers/:id/status", workerHandler.Status)
	authed.GET("/workers/:id/logs", workerHandler.Logs)
}

// userAuthMiddleware validates user JWTs and loads the user into context.
func userAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if errFind := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user disabled"})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
