package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SHIFT_REVIEW_SCOPE", "routed")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("MINIO_PUBLIC_URL", "https://files.example.com/")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8000" || cfg.MongoDB != "flux" || cfg.EmailDomain != "@varnion.net.id" {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.JWTTTL != 24*time.Hour || cfg.Redis.UnreadTTL != 30*time.Second {
		t.Fatalf("durations: %v %v", cfg.JWTTTL, cfg.Redis.UnreadTTL)
	}
	if cfg.ShiftReviewScope != "routed" || cfg.Redis.DB != 2 || cfg.MinIO.PublicURL != "https://files.example.com" {
		t.Fatalf("overrides: %+v", cfg)
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}
