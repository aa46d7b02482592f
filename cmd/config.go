package cmd

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config carries all runtime settings, populated from environment variables.
// Defaults match the local docker-compose setup; production overrides them.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"sales"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RabbitMQHost string `env:"RABBITMQ_HOST" envDefault:"localhost"`
	RabbitMQPort int    `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUser string `env:"RABBITMQ_USER" envDefault:"guest"`
	RabbitMQPass string `env:"RABBITMQ_PASS" envDefault:"guest"`

	JWTSigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-signing-key"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	OutboxBatchSize int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	PublishTimeout  time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"5s"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return config, nil
}

// PostgresDSN builds the connection string for the order store.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
