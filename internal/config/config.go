package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	MigrationsPath string        `env:"MIGRATIONS_PATH"`
	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`

	// Источники фронтенда, которым разрешены запросы с cookie
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Токены сессии
	JWTSecret    string        `env:"JWT_SECRET,required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN"`
	CookieName   string        `env:"COOKIE_NAME"`

	// Максимальный размер загружаемого резюме
	MaxResumeBytes int64 `env:"MAX_RESUME_BYTES"`

	// Настройки для MinIO
	MinioEndpoint        string `env:"MINIO_ENDPOINT,required"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID,required"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY,required"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME,required"`
	MinioRegion          string `env:"MINIO_REGION,required"`
	MinioPublicURL       string `env:"MINIO_PUBLIC_URL"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"resume_cleanup_queue"`
	}

	// Удаление осиротевших резюме через очередь. По умолчанию выключено:
	// файл остается в хранилище, если отклик не был сохранен.
	ResumeCleanupEnabled bool `env:"RESUME_CLEANUP_ENABLED"`

	Redis struct {
		Addr     string        `env:"REDIS_ADDR"`
		Password string        `env:"REDIS_PASSWORD"`
		DB       int           `env:"REDIS_DB"`
		JobsTTL  time.Duration `env:"REDIS_JOBS_TTL" envDefault:"60s"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	cfg.applyDefaults()

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.ResumeCleanupEnabled && cfg.RabbitMQ.RabbitMQURL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required when RESUME_CLEANUP_ENABLED is set")
	}

	return &cfg, nil
}

// applyDefaults вручную выставляет значения по умолчанию для пустых полей
func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.MigrationsPath == "" {
		c.MigrationsPath = "file://internal/database/migrations"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = []string{"http://localhost:5173"}
	}
	if c.JWTExpiresIn <= 0 {
		c.JWTExpiresIn = 24 * time.Hour
	}
	if c.CookieName == "" {
		c.CookieName = "token"
	}
	if c.MaxResumeBytes <= 0 {
		c.MaxResumeBytes = 5 << 20
	}
	if c.MinioPublicURL == "" {
		scheme := "http"
		if c.MinioUseSSL {
			scheme = "https"
		}
		c.MinioPublicURL = fmt.Sprintf("%s://%s", scheme, c.MinioEndpoint)
	}
}
