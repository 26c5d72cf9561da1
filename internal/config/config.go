package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendMemory = "memory"
	BackendMySQL  = "mysql"
	BackendRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Redis    RedisConfig
	Store    StoreConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Staff    StaffConfig
	Chef     ChefConfig
	Notify   NotifyConfig
	Cron     CronConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addrs      []string
	Password   string
	UseCluster bool
}

// StoreConfig selects and tunes the key-value backend
type StoreConfig struct {
	Backend     string
	Namespace   string
	MaxRetries  int
	LookupDelay time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// StaffConfig holds the shared staff passphrase
type StaffConfig struct {
	Passphrase string
}

// ChefConfig holds text generation settings
type ChefConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty uses the SDK endpoint
}

// NotifyConfig holds LINE Notify settings
type NotifyConfig struct {
	LineNotifyToken string
}

// CronConfig holds scheduled job settings
type CronConfig struct {
	DigestSpec string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	store := loadStoreConfig()
	switch store.Backend {
	case BackendMemory, BackendMySQL, BackendRedis:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND: '%s' (must be memory, mysql or redis)", store.Backend)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Redis:    loadRedisConfig(appMode),
		Store:    store,
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Staff:    StaffConfig{Passphrase: getEnv("STAFF_PASSPHRASE", "opor45796")},
		Chef:     loadChefConfig(),
		Notify:   NotifyConfig{LineNotifyToken: getEnv("LINE_NOTIFY_TOKEN", "")},
		Cron:     CronConfig{DigestSpec: getEnv("CRON_DIGEST_SPEC", "30 8 * * *")},
	}

	if config.IsProd() && config.JWT.Secret == "default_secret" {
		return nil, fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORE: %s]", appMode, store.Backend)
	return config, nil
}

// modePrefix returns the env prefix for mode-specific settings
func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "opor_loyalty"),
	}
}

// loadRedisConfig loads Redis config based on mode
func loadRedisConfig(mode string) RedisConfig {
	prefix := modePrefix(mode)

	useCluster, _ := strconv.ParseBool(getEnv("REDIS_CLUSTER", "false"))

	return RedisConfig{
		Addrs:      splitList(getEnv(prefix+"REDIS_ADDRS", "localhost:6379")),
		Password:   getEnv(prefix+"REDIS_PASS", ""),
		UseCluster: useCluster,
	}
}

// loadStoreConfig loads key-value store settings
func loadStoreConfig() StoreConfig {
	retries, _ := strconv.Atoi(getEnv("STORE_CAS_RETRIES", "5"))
	delayMs, _ := strconv.Atoi(getEnv("LOOKUP_DELAY_MS", "500"))

	return StoreConfig{
		Backend:     strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", BackendMemory))),
		Namespace:   getEnv("STORE_NAMESPACE", "zaab"),
		MaxRetries:  retries,
		LookupDelay: time.Duration(delayMs) * time.Millisecond,
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "720"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := modePrefix(mode)

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadChefConfig loads text generation settings
func loadChefConfig() ChefConfig {
	return ChefConfig{
		APIKey:  getEnv("GEMINI_API_KEY", ""),
		Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		BaseURL: getEnv("GEMINI_BASE_URL", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma separated value, dropping blanks
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://member.oporpochana.com"
	}
	return origins
}
