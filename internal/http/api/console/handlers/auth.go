package handlers

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"

	"github.com/trend-ops/trendradar-console/internal/config"
	"github.com/trend-ops/trendradar-console/internal/models"
	"github.com/trend-ops/trendradar-console/internal/security"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	db     *gorm.DB
	jwtCfg config.JWTConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{db: db, jwtCfg: jwtCfg}
}

// ticketEntry is one pending MFA login awaiting a TOTP code.
type ticketEntry struct {
	userID  uint64
	expires time.Time
}

// ticketStore keeps pending MFA login tickets in memory.
type ticketStore struct {
	mu    sync.Mutex
	items map[string]ticketEntry
}

// newTicketStore creates an empty ticket store.
func newTicketStore() *ticketStore {
	return &ticketStore{items: make(map[string]ticketEntry)}
}

// Issue creates a short-lived ticket for a user.
func (s *ticketStore) Issue(userID uint64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket := uuid.NewString()
	s.items[ticket] = ticketEntry{userID: userID, expires: time.Now().Add(5 * time.Minute)}
	return ticket
}

// Consume redeems a ticket, removing it on success.
func (s *ticketStore) Consume(ticket string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[ticket]
	if !ok {
		return 0, false
	}
	delete(s.items, ticket)
	if time.Now().After(entry.expires) {
		return 0, false
	}
	return entry.userID, true
}

// mfaLoginTickets stores in-flight MFA logins.
var mfaLoginTickets = newTicketStore()

// registerRequest defines the request body for registration.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new console account.
func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username"})
		return
	}
	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing password"})
		return
	}

	var exists models.User
	if errCheck := h.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&exists).Error; errCheck == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		return
	} else if !errors.Is(errCheck, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash password failed"})
		return
	}

	user := models.User{
		Username: username,
		Email:    strings.TrimSpace(body.Email),
		Password: hash,
		Active:   true,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&user).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// loginRequest defines the request body for login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user. When TOTP is enabled it returns an MFA ticket
// instead of a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username or password"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&user).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if !user.Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "user disabled"})
		return
	}
	if !security.CheckPassword(user.Password, password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if strings.TrimSpace(user.TOTPSecret) != "" {
		c.JSON(http.StatusOK, gin.H{
			"mfa_required": true,
			"ticket":       mfaLoginTickets.Issue(user.ID),
		})
		return
	}

	h.respondWithToken(c, user)
}

// totpLoginRequest defines the request body for the TOTP login step.
type totpLoginRequest struct {
	Ticket string `json:"ticket"`
	Code   string `json:"code"`
}

// LoginTOTP completes an MFA login with a TOTP code.
func (h *AuthHandler) LoginTOTP(c *gin.Context) {
	var body totpLoginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ticket := strings.TrimSpace(body.Ticket)
	code := strings.TrimSpace(body.Code)
	if ticket == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing ticket or code"})
		return
	}

	userID, ok := mfaLoginTickets.Consume(ticket)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login expired"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; errFind != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !totp.Validate(code, user.TOTPSecret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid code"})
		return
	}

	h.respondWithToken(c, user)
}

// respondWithToken issues the session JWT for an authenticated user.
func (h *AuthHandler) respondWithToken(c *gin.Context, user models.User) {
	token, errToken := security.GenerateToken(h.jwtCfg.Secret, user.ID, user.Username, h.jwtCfg.Expiry())
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"id":       user.ID,
		"username": user.Username,
	})
}
