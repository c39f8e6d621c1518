package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Payout   PayoutConfig   `mapstructure:"payout"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Log      LogConfig      `mapstructure:"log"`
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

// GatewayConfig configures the external payment provider client.
type GatewayConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	SecretKey string        `mapstructure:"secret_key"` // also signs webhooks
	Currency  string        `mapstructure:"currency"`
	Timeout   time.Duration `mapstructure:"timeout"` // bound on every gateway call
}

// PayoutConfig configures the retry workflow and scheduler sweep.
type PayoutConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval"` // cadence of the retry sweep
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`  // base backoff, doubled per retry
	MaxBackoff    time.Duration `mapstructure:"max_backoff"`
	SweepLimit    int           `mapstructure:"sweep_limit"`      // max payouts per sweep
	TransferRate  float64       `mapstructure:"transfer_rate"`    // gateway transfer calls per second
	TransferBurst int           `mapstructure:"transfer_burst"`
}

// KafkaConfig configures the settlement notification sink.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ESC_.
// Nested keys use underscore: ESC_DATABASE_HOST, ESC_GATEWAY_SECRET_KEY, etc.
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
	v.SetDefault("database.dbname", "escrow")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("gateway.base_url", "https://api.paystack.co")
	v.SetDefault("gateway.secret_key", "")
	v.SetDefault("gateway.currency", "NGN")
	v.SetDefault("gateway.timeout", "15s")
	v.SetDefault("payout.sweep_interval", "30m")
	v.SetDefault("payout.retry_backoff", "15m")
	v.SetDefault("payout.max_backoff", "6h")
	v.SetDefault("payout.sweep_limit", 100)
	v.SetDefault("payout.transfer_rate", 1.0)
	v.SetDefault("payout.transfer_burst", 1)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "settlement-events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: ESC_DATABASE_HOST -> database.host
	v.SetEnvPrefix("ESC")
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
