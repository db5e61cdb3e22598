package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken     string
	AllowEmptySecrets bool

	CatalogPath string
	Location    string

	SheetWebhookURL     string
	SheetWebhookKey     string
	SheetWebhookTimeout time.Duration
	SheetWebURL         string

	// PendingTTL 0 bo'lsa pending yozuvlar muddatsiz saqlanadi
	PendingTTL time.Duration

	// PostgresDSN bo'sh bo'lsa ledger xotirada turadi
	PostgresDSN string

	// LogLevel zap darajasi (LOG_LEVEL), bo'sh bo'lsa info
	LogLevel string
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:     strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		AllowEmptySecrets: getEnvBool("ALLOW_EMPTY_SECRETS", false),
		CatalogPath:       strings.TrimSpace(os.Getenv("CATALOG_PATH")),
		Location:          getEnvString("AUCTION_LOCATION", constants.DefaultLocation),
		SheetWebhookURL:   strings.TrimSpace(os.Getenv("SHEET_WEBHOOK_URL")),
		SheetWebhookKey:   strings.TrimSpace(os.Getenv("SHEET_WEBHOOK_KEY")),
		SheetWebURL:       strings.TrimSpace(os.Getenv("SHEET_WEB_URL")),
		LogLevel:          strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
	}

	timeoutSec, err := getEnvInt("SHEET_WEBHOOK_TIMEOUT_SECONDS", int(constants.DefaultMirrorTimeout/time.Second))
	if err != nil {
		return nil, err
	}
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("SHEET_WEBHOOK_TIMEOUT_SECONDS musbat bo'lishi kerak: %d", timeoutSec)
	}
	config.SheetWebhookTimeout = time.Duration(timeoutSec) * time.Second

	ttlMin, err := getEnvInt("PENDING_TTL_MINUTES", 0)
	if err != nil {
		return nil, err
	}
	if ttlMin < 0 {
		return nil, fmt.Errorf("PENDING_TTL_MINUTES manfiy bo'lmasligi kerak: %d", ttlMin)
	}
	config.PendingTTL = time.Duration(ttlMin) * time.Minute

	if config.SheetWebhookURL != "" {
		if u, err := url.Parse(config.SheetWebhookURL); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("SHEET_WEBHOOK_URL noto'g'ri: %q", config.SheetWebhookURL)
		}
	}

	config.PostgresDSN = postgresDSNFromEnv()

	// Validatsiya
	if !config.AllowEmptySecrets && config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}

	return config, nil
}

// postgresDSNFromEnv POSTGRES_DSN yoki POSTGRES_* qismlaridan DSN yig'adi.
// Host ham DB ham berilmagan bo'lsa bo'sh qaytadi.
func postgresDSNFromEnv() string {
	if dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); dsn != "" {
		return dsn
	}
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	if host == "" && db == "" {
		return ""
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   getEnvString("POSTGRES_HOST", "localhost") + ":" + getEnvString("POSTGRES_PORT", "5432"),
		Path:   "/" + getEnvString("POSTGRES_DB", "chassis_prices"),
	}
	user := getEnvString("POSTGRES_USER", "postgres")
	if pass := os.Getenv("POSTGRES_PASSWORD"); pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	q := url.Values{}
	q.Set("sslmode", getEnvString("POSTGRES_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnvString(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s noto'g'ri formatda: %v", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}
