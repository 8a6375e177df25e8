package configs

import (
	"strings"
	"testing"
)

// clearEnv blanks every variable LoadConfig reads, so ambient shell
// state never leaks into a test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "SESSION_SECRET",
		"DATABASE_URL", "S3_BUCKET_NAME", "S3_ENDPOINT",
		"S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "ASSET_BASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.SessionSecret == "" {
		t.Error("SessionSecret is empty in development")
	}
	if cfg.DatabaseDSN == "" {
		t.Error("DatabaseDSN is empty in development")
	}
	if cfg.StorageConfigured() {
		t.Error("StorageConfigured() = true with no S3 settings")
	}
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Fatalf("err = %v, want missing SESSION_SECRET error", err)
	}

	t.Setenv("SESSION_SECRET", "a_real_secret")
	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("err = %v, want missing DATABASE_URL error", err)
	}

	t.Setenv("DATABASE_URL", "postgres://app:app@db:5432/roomhub")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SessionSecret != "a_real_secret" {
		t.Errorf("SessionSecret = %q", cfg.SessionSecret)
	}
}

func TestLoadConfigRejectsBadPorts(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"not a number", "eighty"},
		{"privileged", "80"},
		{"out of range", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", tt.port)

			if _, err := LoadConfig(); err == nil {
				t.Fatalf("PORT=%q was accepted", tt.port)
			}
		})
	}
}

func TestLoadConfigParsesAllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://roomhub.example.com, https://www.roomhub.example.com ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := []string{"https://roomhub.example.com", "https://www.roomhub.example.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}

func TestLoadConfigTrimsAssetBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("ASSET_BASE_URL", "https://assets.example.com/")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.AssetBaseURL != "https://assets.example.com" {
		t.Fatalf("AssetBaseURL = %q, want trailing slash removed", cfg.AssetBaseURL)
	}
}

func TestStorageConfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv("S3_BUCKET_NAME", "roomhub-avatars")
	t.Setenv("S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.StorageConfigured() {
		t.Fatal("StorageConfigured() = false with all S3 settings present")
	}
}
