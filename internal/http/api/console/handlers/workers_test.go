package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trend-ops/trendradar-console/internal/deploy"
	"github.com/trend-ops/trendradar-console/internal/models"
)

func TestWorkerCreateDefaultsAndMasking(t *testing.T) {
	conn := openHandlerTestDB(t)
	user := createTestUser(t, conn, "wk-user")
	h := NewWorkerHandler(conn, deploy.NewDeployer())

	c, w := testContext(t, http.MethodPost, "/v0/console/workers",
		`{"name":"crawler-1","host":"10.0.0.5","ssh_user":"root","password":"hunter2secret"}`, user.ID)
	h.Create(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		ID       uint64 `json:"id"`
		Port     int    `json:"port"`
		Password string `json:"password"`
		DataDir  string `json:"data_dir"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Port != 22 {
		t.Fatalf("expected default port 22, got %d", resp.Port)
	}
	if resp.Password == "hunter2secret" {
		t.Fatalf("expected masked password in response")
	}

	var stored models.Worker
	if errFind := conn.First(&stored, resp.ID).Error; errFind != nil {
		t.Fatalf("load worker: %v", errFind)
	}
	if stored.Password != "hunter2secret" {
		t.Fatalf("expected raw password stored, got %q", stored.Password)
	}
	if stored.DataDir != "/opt/trendradar" || stored.ContainerName != "trendradar" {
		t.Fatalf("expected defaults, got dir=%q container=%q", stored.DataDir, stored.ContainerName)
	}
}

func TestWorkerCreateRequiresCredentials(t *testing.T) {
	conn := openHandlerTestDB(t)
	user := createTestUser(t, conn, "wk-nocred")
	h := NewWorkerHandler(conn, deploy.NewDeployer())

	c, w := testContext(t, http.MethodPost, "/v0/console/workers",
		`{"name":"crawler-1","host":"10.0.0.5","ssh_user":"root"}`, user.ID)
	h.Create(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestWorkerUpdateKeepsSecretsWhenOmitted(t *testing.T) {
	conn := openHandlerTestDB(t)
	user := createTestUser(t, conn, "wk-update")
	worker := models.Worker{
		UserID: user.ID, Name: "crawler-1", Host: "10.0.0.5", Port: 22,
		SSHUser: "root", Password: "keepme",
	}
	if errCreate := conn.Create(&worker).Error; errCreate != nil {
		t.Fatalf("seed worker: %v", errCreate)
	}

	h := NewWorkerHandler(conn, deploy.NewDeployer())
	c, w := testContext(t, http.MethodPut, "/v0/console/workers",
		`{"name":"crawler-renamed","host":"10.0.0.6","ssh_user":"deploy"}`, user.ID)
	withPathID(c, worker.ID)
	h.Update(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}

	var stored models.Worker
	if errFind := conn.First(&stored, worker.ID).Error; errFind != nil {
		t.Fatalf("load worker: %v", errFind)
	}
	if stored.Name != "crawler-renamed" || stored.Host != "10.0.0.6" || stored.SSHUser != "deploy" {
		t.Fatalf("unexpected worker after update: %+v", stored)
	}
	if stored.Password != "keepme" {
		t.Fatalf("expected password to survive update, got %q", stored.Password)
	}
}

func TestWorkerDeployWithoutActiveConfiguration(t *testing.T) {
	conn := openHandlerTestDB(t)
	user := createTestUser(t, conn, "wk-deploy")
	worker := models.Worker{
		UserID: user.ID, Name: "crawler-1", Host: "10.0.0.5", Port: 22,
		SSHUser: "root", Password: "pw",
	}
	if errCreate := conn.Create(&worker).Error; errCreate != nil {
		t.Fatalf("seed worker: %v", errCreate)
	}
	createTestConfiguration(t, conn, user.ID, "inactive", false)

	h := NewWorkerHandler(conn, deploy.NewDeployer())
	c, w := testContext(t, http.MethodPost, "/v0/console/workers/deploy", "", user.ID)
	withPathID(c, worker.ID)
	h.Deploy(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", w.Code, w.Body.String())
	}
}
