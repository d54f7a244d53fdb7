package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	AES           AESConfig           `mapstructure:"aes"`
	Log           LogConfig           `mapstructure:"log"`
	Confirmations ConfirmationsConfig `mapstructure:"confirmations"`
	Callback      CallbackConfig      `mapstructure:"callback"`
	Invoice       InvoiceConfig       `mapstructure:"invoice"`
	Sweeper       SweeperConfig       `mapstructure:"sweeper"`
	Provider      ProviderConfig      `mapstructure:"provider"`
	Blockchain    BlockchainConfig    `mapstructure:"blockchain"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AESConfig holds the key protecting merchant callback signing
// secrets at rest.
type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// ConfirmationsConfig holds N_confirm per chain (spec.md §4.1
// "Confirmation rule", §6 "confirmations.<chain>").
type ConfirmationsConfig struct {
	Required map[string]int64 `mapstructure:"required"`
}

// CallbackConfig holds the dispatcher's delivery timeout and retry
// policy (spec.md §4.3 "Backoff").
type CallbackConfig struct {
	TimeoutMs   int64                 `mapstructure:"timeout_ms"`
	MaxAttempts int                   `mapstructure:"max_attempts"`
	Backoff     CallbackBackoffConfig `mapstructure:"backoff"`
}

type CallbackBackoffConfig struct {
	BaseMs int64 `mapstructure:"base_ms"`
	CapMs  int64 `mapstructure:"cap_ms"`
}

// InvoiceConfig holds invoice-creation defaults (spec.md §6
// "invoice.defaultExpirySeconds").
type InvoiceConfig struct {
	DefaultExpirySeconds int64 `mapstructure:"default_expiry_seconds"`
}

// SweeperConfig holds the expiry sweeper's batching and lease
// parameters (spec.md §4.4, §6 "sweeper.batchSize").
type SweeperConfig struct {
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	LeaseTTL     time.Duration `mapstructure:"lease_ttl"`
}

// ProviderConfig holds the shared-secret check at the webhook
// transport boundary (spec.md §4.2 "out of scope here", §6
// "provider.webhookSecret").
type ProviderConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// BlockchainConfig holds the per-chain RPC endpoints the confirmation
// service reads current block height from.
type BlockchainConfig struct {
	Endpoints map[string]string `mapstructure:"endpoints"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: GATE_.
// Nested keys use underscore: GATE_DATABASE_HOST, GATE_AES_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "stablegate")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("confirmations.required", map[string]int64{"arbitrum": 12, "ethereum": 12, "polygon": 128})
	v.SetDefault("callback.timeout_ms", 20000)
	v.SetDefault("callback.max_attempts", 12)
	v.SetDefault("callback.backoff.base_ms", 5000)
	v.SetDefault("callback.backoff.cap_ms", 3600000)
	v.SetDefault("invoice.default_expiry_seconds", 1800)
	v.SetDefault("sweeper.batch_size", 200)
	v.SetDefault("sweeper.poll_interval", "30s")
	v.SetDefault("sweeper.lease_ttl", "60s")
	v.SetDefault("provider.webhook_secret", "")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: GATE_DATABASE_HOST -> database.host
	v.SetEnvPrefix("GATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
