package config

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	fallback := 15 * time.Minute
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"30d", 30 * 24 * time.Hour},
		{"90m", 90 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{" 2d ", 48 * time.Hour},
		{"", fallback},
		{"xd", fallback},
		{"0d", fallback},
		{"-5m", fallback},
		{"soon", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDuration(tt.in, fallback); got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "")
	t.Setenv("JWT_REFRESH_EXPIRE", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("DATABASE_URL", "")

	cfg := Load()
	if cfg.JWTAccessExpiry != 7*24*time.Hour {
		t.Errorf("JWTAccessExpiry = %v, want 7 days", cfg.JWTAccessExpiry)
	}
	if cfg.JWTRefreshExpiry != 30*24*time.Hour {
		t.Errorf("JWTRefreshExpiry = %v, want 30 days", cfg.JWTRefreshExpiry)
	}
	if cfg.UploadMaxBytes != 5*1024*1024 {
		t.Errorf("UploadMaxBytes = %d, want 5 MiB", cfg.UploadMaxBytes)
	}
}

func TestAuthRateLimit(t *testing.T) {
	tests := []struct {
		env  string
		want int
	}{
		{"", 10},
		{"25", 25},
		{"0", 0},
		{"-1", 10},
		{"lots", 10},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("AUTH_RATE_LIMIT", tt.env)
			if got := Load().AuthRateLimit; got != tt.want {
				t.Errorf("AuthRateLimit = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@db:5432/portfolio", DBHost: "ignored"}
	if got := cfg.DSN(); got != cfg.DatabaseURL {
		t.Errorf("DSN() = %q, want DATABASE_URL", got)
	}

	cfg.DatabaseURL = ""
	cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode = "u", "p", "n", "5432", "disable"
	want := "host=ignored user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
