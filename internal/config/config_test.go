package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if errWrite := os.WriteFile(path, []byte(content), 0o644); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: s3cret\n")

	cfg, errLoad := Load(path)
	if errLoad != nil {
		t.Fatalf("load: %v", errLoad)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("server addr default: %q", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "file:data/console.db" {
		t.Fatalf("dsn default: %q", cfg.Database.DSN)
	}
	if cfg.JWT.Expiry().Hours() != 72 {
		t.Fatalf("jwt expiry default: %v", cfg.JWT.Expiry())
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, "server:\n  addr: \":9090\"\n")

	_, errLoad := Load(path)
	if errLoad == nil || !strings.Contains(errLoad.Error(), "jwt.secret") {
		t.Fatalf("expected jwt secret error, got %v", errLoad)
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := ResolveConfigPath("explicit.yaml"); got != "explicit.yaml" {
		t.Fatalf("explicit path: %q", got)
	}
	t.Setenv(configPathEnv, "/etc/trendradar/config.yaml")
	if got := ResolveConfigPath(""); got != "/etc/trendradar/config.yaml" {
		t.Fatalf("env path: %q", got)
	}
	t.Setenv(configPathEnv, "")
	if got := ResolveConfigPath(""); got != defaultConfigPath {
		t.Fatalf("default path: %q", got)
	}
}
