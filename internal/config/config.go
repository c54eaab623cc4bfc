package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	RabbitMQ     RabbitMQConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Assistant    AssistantConfig
	Verification VerificationConfig
	Backup       BackupConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"SERVER_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// StorageConfig selects the device medium. Driver is one of memory, badger,
// sqlite, redis or postgres.
type StorageConfig struct {
	Driver    string `env:"STORAGE_DRIVER" envDefault:"badger"`
	Path      string `env:"STORAGE_PATH" envDefault:"./data/raksham"`
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:""`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"storefront"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"10"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// RabbitMQConfig: an empty URL disables the queue and notifications are
// delivered in-process.
type RabbitMQConfig struct {
	URL string `env:"RABBITMQ_URL" envDefault:""`
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET" envDefault:"super-secret-key"`
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL" envDefault:"admin@raksham"`
	Password string `env:"ADMIN_PASSWORD" envDefault:"ratna@ghar"`
}

type AssistantConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY" envDefault:""`
	Model   string        `env:"ASSISTANT_MODEL" envDefault:"gemini-2.5-flash"`
	Timeout time.Duration `env:"ASSISTANT_TIMEOUT" envDefault:"15s"`
}

type VerificationConfig struct {
	CodeTTL time.Duration `env:"VERIFICATION_CODE_TTL" envDefault:"10m"`
	FlagTTL time.Duration `env:"VERIFICATION_FLAG_TTL" envDefault:"30m"`
}

// BackupConfig points at an S3-compatible bucket. An empty Bucket disables
// backups.
type BackupConfig struct {
	Bucket          string `env:"BACKUP_BUCKET" envDefault:""`
	Endpoint        string `env:"BACKUP_ENDPOINT" envDefault:""`
	Region          string `env:"BACKUP_REGION" envDefault:"auto"`
	AccessKeyID     string `env:"BACKUP_ACCESS_KEY_ID" envDefault:""`
	SecretAccessKey string `env:"BACKUP_SECRET_ACCESS_KEY" envDefault:""`
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
