package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Rates      RatesConfig
	Extraction ExtractionConfig
	Email      EmailConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds the bucket that keeps uploaded invoice files. An empty
// bucket disables storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RatesConfig selects and tunes the GST rate lookups.
//
// Mode is a comma-separated, ordered list of lookups tried by the fallback
// chain: "table", "command" and "http".
type RatesConfig struct {
	Mode              string        `mapstructure:"mode"`
	Command           string        `mapstructure:"command"`
	Args              []string      `mapstructure:"args"`
	MaxProcs          int           `mapstructure:"max_procs"`
	HTTPURL           string        `mapstructure:"http_url"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
	DefaultRate       float64       `mapstructure:"default_rate"`
	KeywordsFile      string        `mapstructure:"keywords_file"`
	RefreshSchedule   string        `mapstructure:"refresh_schedule"`
	CircuitCooldown   time.Duration `mapstructure:"circuit_cooldown"`
}

// Lookups returns the configured lookup names in order.
func (r *RatesConfig) Lookups() []string {
	return splitList(r.Mode)
}

// ExtractionConfig holds upload and text extraction settings.
type ExtractionConfig struct {
	OCRCommand    string        `mapstructure:"ocr_command"`
	OCRArgs       []string      `mapstructure:"ocr_args"`
	OCRTimeout    time.Duration `mapstructure:"ocr_timeout"`
	OCRMaxProcs   int           `mapstructure:"ocr_max_procs"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
}

// EmailConfig holds mismatch alert delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// RateLimitConfig throttles API requests per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load reads configuration from environment variables with the GSTRECON_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTRECON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstrecon")
	v.SetDefault("db.password", "gstrecon_secret")
	v.SetDefault("db.name", "gstrecon_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "1h")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "gstrecon")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Rates defaults
	v.SetDefault("rates.mode", "table")
	v.SetDefault("rates.command", "python3")
	v.SetDefault("rates.args", "scripts/gst_rate_fetcher.py")
	v.SetDefault("rates.max_procs", 4)
	v.SetDefault("rates.http_url", "")
	v.SetDefault("rates.requests_per_second", 5)
	v.SetDefault("rates.burst", 2)
	v.SetDefault("rates.timeout", "5s")
	v.SetDefault("rates.default_rate", 18)
	v.SetDefault("rates.keywords_file", "")
	v.SetDefault("rates.refresh_schedule", "@every 6h")
	v.SetDefault("rates.circuit_cooldown", "1m")

	// Extraction defaults
	v.SetDefault("extraction.ocr_command", "")
	v.SetDefault("extraction.ocr_args", "")
	v.SetDefault("extraction.ocr_timeout", "60s")
	v.SetDefault("extraction.ocr_max_procs", 2)
	v.SetDefault("extraction.max_file_size_mb", 10)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "alerts@gstrecon.local")
	v.SetDefault("email.from_name", "GST Reconciliation")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Rate limit defaults
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "GSTRECON_SERVER_PORT",
		"server.read_timeout":            "GSTRECON_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "GSTRECON_SERVER_WRITE_TIMEOUT",
		"server.environment":             "GSTRECON_SERVER_ENVIRONMENT",
		"db.host":                        "GSTRECON_DB_HOST",
		"db.port":                        "GSTRECON_DB_PORT",
		"db.user":                        "GSTRECON_DB_USER",
		"db.password":                    "GSTRECON_DB_PASSWORD",
		"db.name":                        "GSTRECON_DB_NAME",
		"db.sslmode":                     "GSTRECON_DB_SSLMODE",
		"db.max_open":                    "GSTRECON_DB_MAX_OPEN",
		"db.max_idle":                    "GSTRECON_DB_MAX_IDLE",
		"jwt.secret":                     "GSTRECON_JWT_SECRET",
		"jwt.access_expiry":              "GSTRECON_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "GSTRECON_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "GSTRECON_JWT_ISSUER",
		"s3.region":                      "GSTRECON_S3_REGION",
		"s3.bucket":                      "GSTRECON_S3_BUCKET",
		"s3.endpoint":                    "GSTRECON_S3_ENDPOINT",
		"s3.access_key":                  "GSTRECON_S3_ACCESS_KEY",
		"s3.secret_key":                  "GSTRECON_S3_SECRET_KEY",
		"s3.presign_expiry":              "GSTRECON_S3_PRESIGN_EXPIRY",
		"log.level":                      "GSTRECON_LOG_LEVEL",
		"log.format":                     "GSTRECON_LOG_FORMAT",
		"cors.allowed_origins":           "GSTRECON_CORS_ALLOWED_ORIGINS",
		"rates.mode":                     "GSTRECON_RATES_MODE",
		"rates.command":                  "GSTRECON_RATES_COMMAND",
		"rates.args":                     "GSTRECON_RATES_ARGS",
		"rates.max_procs":                "GSTRECON_RATES_MAX_PROCS",
		"rates.http_url":                 "GSTRECON_RATES_HTTP_URL",
		"rates.requests_per_second":      "GSTRECON_RATES_REQUESTS_PER_SECOND",
		"rates.burst":                    "GSTRECON_RATES_BURST",
		"rates.timeout":                  "GSTRECON_RATES_TIMEOUT",
		"rates.default_rate":             "GSTRECON_RATES_DEFAULT_RATE",
		"rates.keywords_file":            "GSTRECON_RATES_KEYWORDS_FILE",
		"rates.refresh_schedule":         "GSTRECON_RATES_REFRESH_SCHEDULE",
		"rates.circuit_cooldown":         "GSTRECON_RATES_CIRCUIT_COOLDOWN",
		"extraction.ocr_command":         "GSTRECON_EXTRACTION_OCR_COMMAND",
		"extraction.ocr_args":            "GSTRECON_EXTRACTION_OCR_ARGS",
		"extraction.ocr_timeout":         "GSTRECON_EXTRACTION_OCR_TIMEOUT",
		"extraction.ocr_max_procs":       "GSTRECON_EXTRACTION_OCR_MAX_PROCS",
		"extraction.max_file_size_mb":    "GSTRECON_EXTRACTION_MAX_FILE_SIZE_MB",
		"email.provider":                 "GSTRECON_EMAIL_PROVIDER",
		"email.region":                   "GSTRECON_EMAIL_REGION",
		"email.from_address":             "GSTRECON_EMAIL_FROM_ADDRESS",
		"email.from_name":                "GSTRECON_EMAIL_FROM_NAME",
		"email.frontend_url":             "GSTRECON_EMAIL_FRONTEND_URL",
		"rate_limit.requests_per_second": "GSTRECON_RATE_LIMIT_REQUESTS_PER_SECOND",
		"rate_limit.burst":               "GSTRECON_RATE_LIMIT_BURST",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTRECON_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTRECON_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	cfg.Rates = RatesConfig{
		Mode:              v.GetString("rates.mode"),
		Command:           v.GetString("rates.command"),
		Args:              strings.Fields(v.GetString("rates.args")),
		MaxProcs:          v.GetInt("rates.max_procs"),
		HTTPURL:           v.GetString("rates.http_url"),
		RequestsPerSecond: v.GetFloat64("rates.requests_per_second"),
		Burst:             v.GetInt("rates.burst"),
		Timeout:           v.GetDuration("rates.timeout"),
		DefaultRate:       v.GetFloat64("rates.default_rate"),
		KeywordsFile:      v.GetString("rates.keywords_file"),
		RefreshSchedule:   v.GetString("rates.refresh_schedule"),
		CircuitCooldown:   v.GetDuration("rates.circuit_cooldown"),
	}
	if cfg.Rates.DefaultRate <= 0 {
		return nil, fmt.Errorf("rates.default_rate must be positive, got %v", cfg.Rates.DefaultRate)
	}
	for _, name := range cfg.Rates.Lookups() {
		if name != "table" && name != "command" && name != "http" {
			return nil, fmt.Errorf("rates.mode: unknown lookup %q", name)
		}
	}

	cfg.Extraction = ExtractionConfig{
		OCRCommand:    v.GetString("extraction.ocr_command"),
		OCRArgs:       strings.Fields(v.GetString("extraction.ocr_args")),
		OCRTimeout:    v.GetDuration("extraction.ocr_timeout"),
		OCRMaxProcs:   v.GetInt("extraction.ocr_max_procs"),
		MaxFileSizeMB: v.GetInt64("extraction.max_file_size_mb"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: v.GetFloat64("rate_limit.requests_per_second"),
		Burst:             v.GetInt("rate_limit.burst"),
	}

	return cfg, nil
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
