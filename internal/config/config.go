package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds every setting the server and the seeder read from the environment.
type Config struct {
	Env         string `env:"ENV" env-default:"development"`
	Port        string `env:"PORT" env-default:"3000"`
	CORSOrigins string `env:"CORS_ORIGINS" env-default:"http://localhost:5173"`

	DB       Database
	Redis    Redis
	Auth     Auth
	Transfer Transfer
	Kafka    Kafka
}

type Database struct {
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            string        `env:"DB_PORT" env-default:"5432"`
	User            string        `env:"DB_USER" env-default:"postgres"`
	Password        string        `env:"DB_PASSWORD" env-default:"postgres"`
	Name            string        `env:"DB_NAME" env-default:"wasit"`
	SSLMode         string        `env:"DB_SSLMODE" env-default:"disable"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" env-default:"30m"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH"`
}

// DSN builds the libpq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// URL builds the postgres:// form golang-migrate expects.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type Redis struct {
	Host            string        `env:"REDIS_HOST" env-default:"localhost"`
	Port            string        `env:"REDIS_PORT" env-default:"6379"`
	Password        string        `env:"REDIS_PASSWORD"`
	DB              int           `env:"REDIS_DB" env-default:"0"`
	MethodsCacheTTL time.Duration `env:"METHODS_CACHE_TTL" env-default:"10m"`
}

type Auth struct {
	JWTSecret     string        `env:"JWT_SECRET" env-default:"wasit"`
	RefreshSecret string        `env:"REFRESH_SECRET" env-default:"wasit-refresh"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL" env-default:"15m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" env-default:"168h"`
}

type Transfer struct {
	BrokerPhone   string `env:"BROKER_PHONE" env-default:"201000000000"`
	RequireReview bool   `env:"TRANSFER_REQUIRE_REVIEW" env-default:"false"`
	Currency      string `env:"TRANSFER_CURRENCY" env-default:"EGP"`
}

type Kafka struct {
	Brokers string `env:"KAFKA_BROKERS"`
	Topic   string `env:"KAFKA_TOPIC" env-default:"transfer-orders"`
}

// BrokerList splits the comma separated KAFKA_BROKERS value.
func (k Kafka) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the .env file (if any) and then the process environment into a Config.
func Load() (*Config, error) {
	LoadEnv()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("unable to process config: %w", err)
	}
	return &cfg, nil
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
