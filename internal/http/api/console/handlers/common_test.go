package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbpkg "github.com/trend-ops/trendradar-console/internal/db"
	"github.com/trend-ops/trendradar-console/internal/models"
)

// openHandlerTestDB opens a migrated in-memory database for handler tests.
func openHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, errOpen := dbpkg.Open(":memory:")
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := dbpkg.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

// createTestUser inserts a user and returns it.
func createTestUser(t *testing.T, conn *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "hashed", Active: true}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}
	return user
}

// createTestConfiguration inserts a configuration for a user.
func createTestConfiguration(t *testing.T, conn *gorm.DB, userID uint64, name string, active bool) models.Configuration {
	t.Helper()
	cfg := models.Configuration{UserID: userID, Name: name, Active: active}
	if errCreate := conn.Create(&cfg).Error; errCreate != nil {
		t.Fatalf("create configuration: %v", errCreate)
	}
	return cfg
}

// testContext builds a gin test context authenticated as a user.
func testContext(t *testing.T, method, target, body string, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Set("userID", userID)
	return c, w
}

// withPathID sets the :id path parameter on a test context.
func withPathID(c *gin.Context, id uint64) {
	c.Params = append(c.Params, gin.Param{Key: "id", Value: strconv.FormatUint(id, 10)})
}
