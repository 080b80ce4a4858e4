package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "ENV", "GEMINI_API_KEY", "LLM_ENABLED", "LLM_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "MAX_UPLOAD_BYTES", "GEMINI_MODEL", "OBJECT_STORE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.Env != "dev" || cfg.ObjectStoreType != "local" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LLMEnabled {
		t.Fatalf("expected LLM disabled without a key")
	}
	if cfg.LLMTimeout != 20*time.Second || cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("unexpected llm defaults: %v %q", cfg.LLMTimeout, cfg.GeminiModel)
	}
	if cfg.RateLimitRPS != 1 || cfg.RateLimitBurst != 5 || cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("LLM_ENABLED", "")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()
	if cfg.Env != "production" || cfg.ObjectStoreType != "s3" {
		t.Fatalf("unexpected normalized values: %q %q", cfg.Env, cfg.ObjectStoreType)
	}
	if !cfg.LLMEnabled || cfg.LLMTimeout != 5*time.Second {
		t.Fatalf("expected llm enabled with 5s timeout, got %v %v", cfg.LLMEnabled, cfg.LLMTimeout)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	if cfg := Load(); cfg.Port != "9090" {
		t.Fatalf("expected port from .env, got %q", cfg.Port)
	}
}
