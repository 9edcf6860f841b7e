package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is loaded once at startup and treated as immutable afterwards.
// Rotating the JWT secret means restarting the process.
type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// PublicBaseURL is the externally reachable origin used when building
	// verification and reset links.
	PublicBaseURL string `env:"PUBLIC_BASE_URL, default=http://localhost:8080"`

	SessionTTL      time.Duration `env:"SESSION_TTL,      default=168h"`
	VerificationTTL time.Duration `env:"VERIFICATION_TTL, default=30m"`
	ResetTokenTTL   time.Duration `env:"RESET_TOKEN_TTL,  default=1h"`
	ResendWindow    time.Duration `env:"RESEND_WINDOW,    default=60s"`
	NotifyWorkers   int           `env:"NOTIFY_WORKERS,   default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	WhatsApp WhatsAppConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=weddingpage"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port     string `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	FromName string `env:"SMTP_FROM_NAME, default=My Wedding Page"`
}

type WhatsAppConfig struct {
	PhoneID     string `env:"WHATSAPP_PHONE_ID"`
	AccessToken string `env:"WHATSAPP_ACCESS_TOKEN"`
}

// IsProduction reports whether the process runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
