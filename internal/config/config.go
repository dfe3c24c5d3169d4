package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port             int
	MaxPrincipal     float64
	MaxMonths        int
	MaxRate          float64
	MaxTaxRate       float64
	MaxProcessingFee float64
	StatementDay     int
	GraceDays        int
	OTELEndpoint     string
	OTELServiceName  string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvInt("PORT", 8000),
		MaxPrincipal:     getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxMonths:        getEnvInt("MAX_MONTHS", 600),
		MaxRate:          getEnvFloat("MAX_RATE", 200),
		MaxTaxRate:       getEnvFloat("MAX_TAX_RATE", 100),
		MaxProcessingFee: getEnvFloat("MAX_PROCESSING_FEE", 1e8),
		StatementDay:     getEnvInt("STATEMENT_DAY", 20),
		GraceDays:        getEnvInt("GRACE_DAYS", 20),
		OTELEndpoint:     getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:  getEnvString("OTEL_SERVICE_NAME", "mcp-emi-server"),
		LogLevel:         getEnvString("LOG_LEVEL", "INFO"),
		LogFormat:        getEnvString("LOG_FORMAT", "text"),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.MaxPrincipal <= 0 || c.MaxRate <= 0 || c.MaxTaxRate < 0 || c.MaxProcessingFee < 0 {
		return fmt.Errorf("limits must be positive")
	}
	if c.MaxMonths < 1 {
		return fmt.Errorf("invalid MAX_MONTHS %d: must be at least 1", c.MaxMonths)
	}
	if c.StatementDay < 1 || c.StatementDay > 28 {
		return fmt.Errorf("invalid STATEMENT_DAY %d: must be between 1 and 28", c.StatementDay)
	}
	if c.GraceDays < 0 {
		return fmt.Errorf("invalid GRACE_DAYS %d: must not be negative", c.GraceDays)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %s", c.ShutdownTimeout)
	}
	return nil
}

// Addr возвращает адрес для HTTP сервера
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
