package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/trend-ops/trendradar-console/internal/models"
)

func TestExportConfigYAMLServesRenderedDocument(t *testing.T) {
	conn := openHandlerTestDB(t)
	user := createTestUser(t, conn, "exp-user")
	cfg := createTestConfiguration(t, conn, user.ID, "exp", true)

	platform := models.Platform{ConfigurationID: cfg.ID, PlatformKey: "baidu", Name: "百度热搜", Enabled: true}
	if errCreate := conn.Create(&platform).Error; errCreate != nil {
		t.Fatalf("seed platform: %v", errCreate)
	}

	h := NewExportHandler(conn, nil)
	c, w := testContext(t, http.MethodGet, "/v0/console/configurations/export/config.yaml", "", user.ID)
	withPathID(c, cfg.ID)
	h.ConfigYAML(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/yaml") {
		t.Fatalf("expected text/yaml content type, got %q", got)
	}
	body := w.Body.String()
	if !strings.Contains(body, "app:") || !strings.Contains(body, "- id: baidu") {
		t.Fatalf("unexpected yaml body:\n%s", body)
	}
}

func TestExportFrequencyWordsServesRuleText(t *testing.T) {
	conn := openHandlerTestDB(t)
	user := createTestUser(t, conn, "exp-kw")
	cfg := createTestConfiguration(t, conn, user.ID, "exp-kw", true)

	rows := []models.Keyword{
		{ConfigurationID: cfg.ID, Word: "AI", Type: models.KeywordTypeNormal, GroupNumber: 0, SortOrder: 0},
		{ConfigurationID: cfg.ID, Word: "芯片", Type: models.KeywordTypeNormal, GroupNumber: 1, SortOrder: 0},
	}
	for i := range rows {
		if errCreate := conn.Create(&rows[i]).Error; errCreate != nil {
			t.Fatalf("seed keyword: %v", errCreate)
		}
	}

	h := NewExportHandler(conn, nil)
	c, w := testContext(t, http.MethodGet, "/v0/console/configurations/export/frequency-words.txt", "", user.ID)
	withPathID(c, cfg.ID)
	h.FrequencyWords(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", got)
	}
	if w.Body.String() != "AI\n\n芯片" {
		t.Fatalf("unexpected rule text %q", w.Body.String())
	}
}

func TestExportRejectsForeignConfiguration(t *testing.T) {
	conn := openHandlerTestDB(t)
	owner := createTestUser(t, conn, "exp-owner")
	intruder := createTestUser(t, conn, "exp-intruder")
	cfg := createTestConfiguration(t, conn, owner.ID, "exp-private", true)

	h := NewExportHandler(conn, nil)
	c, w := testContext(t, http.MethodGet, "/v0/console/configurations/export/config.yaml", "", intruder.ID)
	withPathID(c, cfg.ID)
	h.ConfigYAML(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d body=%s", w.Code, w.Body.String())
	}
}
