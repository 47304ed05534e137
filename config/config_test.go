package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %s, want 8080", cfg.ServerPort)
	}
	if cfg.MongoDatabase != "dept-portal" {
		t.Errorf("MongoDatabase = %s", cfg.MongoDatabase)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want 10m", cfg.CacheTTL)
	}
	if cfg.PresignedURLTTL != 15*time.Minute {
		t.Errorf("PresignedURLTTL = %v, want 15m", cfg.PresignedURLTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CACHE_TTL_MINUTES", "3")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()
	if cfg.ServerPort != "9999" {
		t.Errorf("ServerPort = %s, want 9999", cfg.ServerPort)
	}
	if cfg.CacheTTL != 3*time.Minute {
		t.Errorf("CacheTTL = %v, want 3m", cfg.CacheTTL)
	}
	if !cfg.MinIOUseSSL {
		t.Errorf("MinIOUseSSL not overridden")
	}
}
