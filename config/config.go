package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port           string
	DatabaseDSN    string
	JWTSecret      string
	AdminAPIKey    string
	ServerURL      string // Public base URL prefixed to uploaded image paths
	UploadDir      string
	CommissionRate decimal.Decimal
	CartIdleTTL    time.Duration
	Telr           TelrConfig
	SMTP           SMTPConfig
}

type TelrConfig struct {
	StoreID       int
	AuthKey       string
	APIURL        string
	Mode          string // "sandbox"/"dev" send test transactions
	WebhookSecret string
	Currency      string
	SuccessURL    string
	FailureURL    string
	CancelURL     string
	Timeout       time.Duration
}

// TestMode reports whether transactions are flagged as tests.
func (t TelrConfig) TestMode() bool {
	mode := strings.ToLower(t.Mode)
	return mode == "sandbox" || mode == "dev"
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: databaseDSN(),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
		ServerURL:   strings.TrimRight(getEnv("SERVER_URL", "http://localhost:8080"), "/"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		Telr: TelrConfig{
			AuthKey:       os.Getenv("TELR_AUTH_KEY"),
			APIURL:        getEnv("TELR_API_URL", "https://secure.telr.com/gateway/order.json"),
			Mode:          os.Getenv("TELR_MODE"),
			WebhookSecret: os.Getenv("TELR_WEBHOOK_SECRET"),
			Currency:      getEnv("TELR_CURRENCY", "NGN"),
			SuccessURL:    os.Getenv("TELR_SUCCESS_URL"),
			FailureURL:    os.Getenv("TELR_FAILURE_URL"),
			CancelURL:     os.Getenv("TELR_CANCEL_URL"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Username: os.Getenv("EMAIL"),
			Password: os.Getenv("PASSWORD"),
			From:     getEnv("SMTP_FROM", os.Getenv("EMAIL")),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	var err error
	if cfg.Telr.StoreID, err = getInt("TELR_STORE_ID", 0); err != nil {
		return nil, err
	}
	if cfg.SMTP.Port, err = getInt("SMTP_PORT", 465); err != nil {
		return nil, err
	}
	if cfg.Telr.Timeout, err = getDuration("TELR_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CartIdleTTL, err = getDuration("CART_IDLE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	rate := getEnv("COMMISSION_RATE", "0.05")
	if cfg.CommissionRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_RATE %q: %w", rate, err)
	}
	if cfg.CommissionRate.IsNegative() || cfg.CommissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("COMMISSION_RATE must be between 0 and 1, got %s", rate)
	}

	return cfg, nil
}

// databaseDSN prefers DATABASE_URL and falls back to the discrete DB_* variables.
func databaseDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), getEnv("DB_PORT", "5432"),
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, v)
	}
	return d, nil
}
