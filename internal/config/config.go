// Package config loads the pdv service configuration from a YAML file, with
// PDV_* environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
	// Migrate applies pending migrations on startup.
	Migrate bool `yaml:"migrate"`
}

type RedisConfig struct {
	// Addr empty keeps carts in process memory.
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db"`
	CartTTL  time.Duration `yaml:"cart_ttl"`
}

type KafkaConfig struct {
	// Brokers empty disables order confirmations.
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type PrinterConfig struct {
	// Output is "stdout", a file path, or empty to disable receipts.
	Output    string `yaml:"output"`
	StoreName string `yaml:"store_name"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  string         `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Printer  PrinterConfig  `yaml:"printer"`
	Log      LogConfig      `yaml:"log"`

	Timezone string `yaml:"timezone"`
	Currency string `yaml:"currency"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StoragePostgres,
		Database: DatabaseConfig{
			MaxConns: 10,
			Migrate:  true,
		},
		Redis: RedisConfig{
			CartTTL: 12 * time.Hour,
		},
		Kafka: KafkaConfig{
			Topic: "order-confirmations",
		},
		Log: LogConfig{
			Level: "info",
		},
		Timezone: "America/Sao_Paulo",
		Currency: "BRL",
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = getEnv("PDV_HTTP_ADDR", c.HTTP.Addr)
	c.Storage = getEnv("PDV_STORAGE", c.Storage)
	c.Database.URL = getEnv("PDV_DATABASE_URL", c.Database.URL)
	c.Redis.Addr = getEnv("PDV_REDIS_ADDR", c.Redis.Addr)
	c.Printer.Output = getEnv("PDV_PRINTER_OUTPUT", c.Printer.Output)
	c.Log.Level = getEnv("PDV_LOG_LEVEL", c.Log.Level)
	c.Timezone = getEnv("PDV_TIMEZONE", c.Timezone)
	c.Currency = getEnv("PDV_CURRENCY", c.Currency)

	if brokers, ok := os.LookupEnv("PDV_KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = nil
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.Kafka.Brokers = append(c.Kafka.Brokers, b)
			}
		}
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StoragePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url is required for postgres storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is empty"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.CurrencyUnit(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency %q: %w", c.Currency, err)
	}
	return unit, nil
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}
