package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Log      LogConfig
	Storage  StorageConfig
	Pricing  PricingConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Metrics  MetricsConfig
	Features FeaturesConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=text"`
}

// StorageConfig controls where the ephemeral order directories are created.
// An empty OutputDir means the OS temporary directory.
type StorageConfig struct {
	OutputDir string `env:"ORDER_OUTPUT_DIR"`
	DirPrefix string `env:"ORDER_DIR_PREFIX,default=burger_orders_"`
}

type PricingConfig struct {
	TablePath string `env:"PRICE_TABLE_PATH"`
}

type RedisConfig struct {
	Host     string        `env:"REDIS_HOST"`
	Port     int           `env:"REDIS_PORT,default=6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,default=0"`
	TTL      time.Duration `env:"REDIS_TTL,default=1h"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Brokers     string `env:"KAFKA_BROKERS"`
	OrdersTopic string `env:"KAFKA_ORDERS_TOPIC,default=burger-orders"`
}

// BrokerList splits the comma-separated broker setting.
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type MetricsConfig struct {
	TextfilePath string `env:"METRICS_TEXTFILE"`
}

type FeaturesConfig struct {
	EnableOrderCaching bool `env:"ENABLE_ORDER_CACHING,default=false"`
	EnableOrderEvents  bool `env:"ENABLE_ORDER_EVENTS,default=false"`
	// EnablePipedEcho writes a newline after each prompt when stdin is not a
	// terminal. Off, stdout carries the prompts byte for byte.
	EnablePipedEcho bool `env:"ENABLE_PIPED_ECHO,default=false"`
}

// Load reads envFile (if it exists) into the environment and decodes the
// configuration. Variables already present in the environment take precedence.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that enabled features have a backend to talk to.
func (c *Config) Validate() error {
	if c.Features.EnableOrderCaching && c.Redis.Host == "" {
		return errors.New("invalid config: ENABLE_ORDER_CACHING requires REDIS_HOST")
	}
	if c.Features.EnableOrderEvents && len(c.Kafka.BrokerList()) == 0 {
		return errors.New("invalid config: ENABLE_ORDER_EVENTS requires KAFKA_BROKERS")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid config: unknown LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}
