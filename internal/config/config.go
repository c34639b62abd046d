package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Finance  FinanceConfig
	Cache    CacheConfig
	Audit    AuditConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// FinanceConfig holds the currency pair and costing behavior.
type FinanceConfig struct {
	BaseCurrency      string
	SecondaryCurrency string
	CostingPolicy     domain.CostingPolicy
}

// CacheConfig holds report cache settings.
type CacheConfig struct {
	TTL         time.Duration
	JanitorCron string
}

// AuditConfig holds the external audit collaborator settings. An empty URL
// disables auditing.
type AuditConfig struct {
	BaseURL string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cacheTTL, err := time.ParseDuration(getenvWithDefault("CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "agrifarm_finance"),
		},
		Finance: FinanceConfig{
			BaseCurrency:      getenvWithDefault("BASE_CURRENCY", "USD"),
			SecondaryCurrency: getenvWithDefault("SECONDARY_CURRENCY", "SYP"),
			CostingPolicy:     domain.CostingPolicy(getenvWithDefault("COSTING_POLICY", string(domain.DefaultCostingPolicy))),
		},
		Cache: CacheConfig{
			TTL:         cacheTTL,
			JanitorCron: getenvWithDefault("CACHE_JANITOR_CRON", "*/10 * * * *"),
		},
		Audit: AuditConfig{
			BaseURL: os.Getenv("AUDIT_BASE_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if len(c.Finance.BaseCurrency) != 3 {
		return fmt.Errorf("BASE_CURRENCY must be a 3-letter code, got %q", c.Finance.BaseCurrency)
	}
	if len(c.Finance.SecondaryCurrency) != 3 {
		return fmt.Errorf("SECONDARY_CURRENCY must be a 3-letter code, got %q", c.Finance.SecondaryCurrency)
	}
	if c.Finance.BaseCurrency == c.Finance.SecondaryCurrency {
		return errors.New("BASE_CURRENCY and SECONDARY_CURRENCY must differ")
	}
	if !c.Finance.CostingPolicy.IsValid() {
		return fmt.Errorf("COSTING_POLICY must be LAST_PURCHASE or MOVING_AVERAGE, got %q", c.Finance.CostingPolicy)
	}

	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	if c.Cache.JanitorCron == "" {
		return errors.New("CACHE_JANITOR_CRON must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
