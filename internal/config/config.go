package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultEnvironment    = "development"
	defaultMigrationsPath = "migrations"
	defaultLessonPrice    = "5"
	defaultCurrency       = "GBP"
	defaultReportInterval = 24 * time.Hour
)

type Config struct {
	DBDSN          string          `mapstructure:"DB_DSN"`
	Environment    string          `mapstructure:"ENV"`
	LogLevel       string          `mapstructure:"LOG_LEVEL"`
	MigrationsPath string          `mapstructure:"MIGRATIONS_PATH"`
	LessonPrice    decimal.Decimal `mapstructure:"LESSON_PRICE"`
	Currency       string          `mapstructure:"CURRENCY"`
	ReportInterval time.Duration   `mapstructure:"REPORT_INTERVAL"`
}

// Load читает конфигурацию из envFile (если он есть) и переменных окружения
func Load(envFile string) (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    getEnv("ENV", defaultEnvironment),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", defaultMigrationsPath),
		Currency:       strings.ToUpper(getEnv("CURRENCY", defaultCurrency)),
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	price, err := decimal.NewFromString(getEnv("LESSON_PRICE", defaultLessonPrice))
	if err != nil {
		return nil, fmt.Errorf("parse LESSON_PRICE: %w", err)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("LESSON_PRICE must be positive, got %s", price)
	}
	cfg.LessonPrice = price

	cfg.ReportInterval = defaultReportInterval
	if raw := os.Getenv("REPORT_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse REPORT_INTERVAL: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("REPORT_INTERVAL must be positive, got %s", interval)
		}
		cfg.ReportInterval = interval
	}

	log.Printf("Config loaded (env=%s)\n", cfg.Environment)

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
