package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("TOKEN_ENCRYPTION_KEY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("CORS_MAX_AGE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.Timezone != "Asia/Seoul" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.RefundWindow != 24*time.Hour || cfg.OutboundTimeout != 10*time.Second {
		t.Fatalf("durations: refund=%s outbound=%s", cfg.RefundWindow, cfg.OutboundTimeout)
	}
	if cfg.AllowedOrigins != nil {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.CORSMaxAge != 12*time.Hour {
		t.Fatalf("cors max age = %s", cfg.CORSMaxAge)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REFUND_WINDOW", "48h")
	t.Setenv("OUTBOUND_TIMEOUT", "garbage")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("TOKEN_ENCRYPTION_KEY", strings.Repeat("ab", 32))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "9090" || cfg.LogLevel != slog.LevelDebug || cfg.DBMaxOpenConns != 25 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.RefundWindow != 48*time.Hour {
		t.Fatalf("refund window = %s", cfg.RefundWindow)
	}
	if cfg.OutboundTimeout != 10*time.Second {
		t.Fatalf("invalid duration should fall back, got %s", cfg.OutboundTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.TokenEncryptionKey[0] != 0xab || cfg.TokenEncryptionKey[31] != 0xab {
		t.Fatal("encryption key not decoded")
	}
}

func TestLoadRejectsBadKey(t *testing.T) {
	t.Setenv("TOKEN_ENCRYPTION_KEY", "abcd")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_ENCRYPTION_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without encryption key")
	}

	t.Setenv("TOKEN_ENCRYPTION_KEY", strings.Repeat("01", 32))
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error with default jwt secret")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil || !cfg.IsProduction() {
		t.Fatalf("cfg=%v err=%v", cfg, err)
	}
}
