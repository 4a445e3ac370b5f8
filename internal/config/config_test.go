package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_DSN", "DB_MAX_CONNS", "STORE_DRIVER", "SHUTDOWN_TIMEOUT_SECONDS",
		"MENU_CACHE_TTL_SECONDS", "TTS_UPSTREAM_URL", "CORS_ORIGINS", "API_BASE_URL", "DEFAULT_COMBO"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("DBMaxConns = %d", cfg.DBMaxConns)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Fatalf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.ShutdownTimeout != 10*time.Second || cfg.MenuCacheTTL != 30*time.Second {
		t.Fatalf("durations = %s %s", cfg.ShutdownTimeout, cfg.MenuCacheTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.DefaultCombo != "abula" || cfg.TTSUpstreamURL != "" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("MENU_CACHE_TTL_SECONDS", "0")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "nope")
	t.Setenv("CORS_ORIGINS", "https://iyan.ng, ,https://admin.iyan.ng")
	t.Setenv("TTS_UPSTREAM_URL", "http://tts.local/speak")
	t.Setenv("DB_MAX_CONNS", "-4")

	cfg := FromEnv()
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.MenuCacheTTL != 0 {
		t.Fatalf("MenuCacheTTL = %s", cfg.MenuCacheTTL)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("invalid duration should fall back, got %s", cfg.ShutdownTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.iyan.ng" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("non-positive pool size should fall back, got %d", cfg.DBMaxConns)
	}
	if cfg.TTSUpstreamURL != "http://tts.local/speak" {
		t.Fatalf("TTSUpstreamURL = %q", cfg.TTSUpstreamURL)
	}
}
