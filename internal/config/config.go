package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port       string
	AppEnv     string
	CORSOrigin string
	LogLevel   string

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Tokens
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	BcryptCost       int

	// Remote asset store
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Uploads
	UploadDir        string
	UploadStagingDir string
	UploadMaxBytes   int64
	UploadMaxFiles   int

	// Login and refresh requests per minute per IP; 0 disables the limiter.
	AuthRateLimit int

	// Logs
	LogRetentionDays int

	// Error tracking
	SentryDSN string
}

// Load reads the process environment, after merging an optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "5000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "portfolio"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  ParseDuration(getEnv("JWT_EXPIRE", "7d"), 7*24*time.Hour),
		JWTRefreshExpiry: ParseDuration(getEnv("JWT_REFRESH_EXPIRE", "30d"), 30*24*time.Hour),
		BcryptCost:       getEnvInt("BCRYPT_COST", 12),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		UploadStagingDir: getEnv("UPLOAD_STAGING_DIR", os.TempDir()),
		UploadMaxBytes:   int64(getEnvInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		UploadMaxFiles:   getEnvInt("UPLOAD_MAX_FILES", 10),

		AuthRateLimit:    getEnvIntMin("AUTH_RATE_LIMIT", 10, 0),
		LogRetentionDays: getEnvInt("LOG_RETENTION_DAYS", 30),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// CloudinaryEnabled reports whether all remote store credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// ParseDuration accepts Go duration syntax plus a whole-day suffix ("7d").
// Unparseable or non-positive values yield fallback.
func ParseDuration(s string, fallback time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return fallback
		}
		return time.Duration(n) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	return getEnvIntMin(key, fallback, 1)
}

// getEnvIntMin returns fallback when key is unset, malformed or below floor.
func getEnvIntMin(key string, fallback, floor int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < floor {
		return fallback
	}
	return n
}
