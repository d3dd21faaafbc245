package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.DatabaseURL != "./blogful.db" {
			t.Errorf("expected default database URL, got %s", cfg.DatabaseURL)
		}
	})

	t.Run("ProductionValidation", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("APP_ENV", "prod")
		_, err := Load()
		if err == nil {
			t.Error("expected error when SESSION_SECRET is missing in production")
		}
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PORT", "9000")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "9000" {
			t.Errorf("expected port 9000, got %s", cfg.Port)
		}
	})

	t.Run("RateLimitDefaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
			t.Errorf("expected rate limit defaults 5/10, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
		}
	})

	t.Run("RateLimitOverrides", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("RATE_LIMIT_RPS", "2.5")
		os.Setenv("RATE_LIMIT_BURST", "4")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
			t.Errorf("expected overridden rate limits, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
		}
	})

	t.Run("RateLimitRejectsNonPositive", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("RATE_LIMIT_BURST", "0")
		if _, err := Load(); err == nil {
			t.Error("expected error for zero burst")
		}
	})

	t.Run("DevSecretFallback", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.SessionSecret == "" {
			t.Error("expected a dev fallback session secret")
		}
	})
}

func TestGetSQLiteConfig(t *testing.T) {
	t.Run("EnvOverrides", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("SQLITE_CACHE_SIZE", "-4096")
		os.Setenv("SQLITE_SYNC_LEVEL", "full")
		cfg := GetSQLiteConfig()
		if cfg.CacheSizeKB != -4096 {
			t.Errorf("expected cache size -4096, got %d", cfg.CacheSizeKB)
		}
		if cfg.SyncLevel != "FULL" {
			t.Errorf("expected sync level FULL, got %s", cfg.SyncLevel)
		}
	})

	t.Run("UnknownSyncLevelIgnored", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("SQLITE_SYNC_LEVEL", "sometimes")
		cfg := GetSQLiteConfig()
		if cfg.SyncLevel != "NORMAL" {
			t.Errorf("expected NORMAL for unknown level, got %s", cfg.SyncLevel)
		}
	})

	t.Run("CacheSizeClamped", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("SYSTEM_RAM_MB", "100")
		if cfg := GetSQLiteConfig(); cfg.CacheSizeKB != -8*1024 {
			t.Errorf("expected 8MB floor, got %d", cfg.CacheSizeKB)
		}
		os.Setenv("SYSTEM_RAM_MB", "1000000")
		if cfg := GetSQLiteConfig(); cfg.CacheSizeKB != -256*1024 {
			t.Errorf("expected 256MB ceiling, got %d", cfg.CacheSizeKB)
		}
	})
}
