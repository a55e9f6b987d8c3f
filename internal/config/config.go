// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional values and blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before anything
	// below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the STARTER_ prefix. The prefix is stripped, the key
	is lowercased and a double underscore marks nesting:

	  STARTER_SERVER__PORT          -> server.port          -> Config.Server.Port
	  STARTER_EMAIL__SMTP__HOST     -> email.smtp.host      -> Config.Email.SMTP.Host
	  STARTER_AUTH__SECRET_KEY      -> auth.secret_key      -> Config.Auth.SecretKey
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "STARTER_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Email         EmailConfig          `koanf:"email"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout"`
	WriteTimeout       int      `koanf:"write_timeout"`
	IdleTimeout        int      `koanf:"idle_timeout"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// AuthRateLimit is the sustained requests per second allowed per client
	// IP on the sign-in routes.
	AuthRateLimit float64 `koanf:"auth_rate_limit" validate:"gte=0"`
}

// DatabaseConfig contains the MongoDB connection settings.
type DatabaseConfig struct {
	// URI is the full connection string, e.g. mongodb://localhost:27017/?replicaSet=rs0.
	// Transactions require a replica set or sharded cluster.
	URI string `koanf:"uri" validate:"required"`

	// Name is the database holding the users and auditlogs collections.
	Name string `koanf:"name" validate:"required"`

	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	MaxPoolSize    uint64        `koanf:"max_pool_size"`
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores session settings and secrets.
type AuthConfig struct {
	// Provider selects the session resolver: "jwt" (tokens signed with
	// SecretKey) or "clerk" (SecretKey is the Clerk secret key).
	Provider string `koanf:"provider" validate:"omitempty,oneof=jwt clerk"`

	SecretKey string `koanf:"secret_key" validate:"required"`

	// SessionMaxAge bounds how long an issued session token stays valid.
	SessionMaxAge time.Duration `koanf:"session_max_age"`

	// LinkMaxAge bounds how long an e-mailed sign-in link stays valid.
	LinkMaxAge time.Duration `koanf:"link_max_age"`

	// BaseURL is the public origin used to build sign-in links.
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`

	// SignInPath is where clients are redirected on AUTH_REQUIRED.
	SignInPath string `koanf:"sign_in_path"`
}

// EmailConfig selects and configures the outgoing mail transport.
type EmailConfig struct {
	Provider     string     `koanf:"provider" validate:"omitempty,oneof=smtp resend"`
	From         string     `koanf:"from"`
	SMTP         SMTPConfig `koanf:"smtp"`
	ResendAPIKey string     `koanf:"resend_api_key"`
}

// SMTPConfig is the mail relay used by the e-mail sign-in provider.
// User and Password are optional; both must be set to enable SMTP AUTH.
type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
}

// UsesSMTPAuth reports whether credentials were provided for the relay.
func (c SMTPConfig) UsesSMTPAuth() bool {
	return c.User != "" && c.Password != ""
}

// IsProduction reports whether the application runs with primary.env=production.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates it.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional values that were left unset.
func (c *Config) applyDefaults() {
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.AuthRateLimit == 0 {
		c.Server.AuthRateLimit = 5
	}

	if c.Database.ConnectTimeout == 0 {
		c.Database.ConnectTimeout = 10 * time.Second
	}

	if c.Auth.Provider == "" {
		c.Auth.Provider = "jwt"
	}
	if c.Auth.SessionMaxAge == 0 {
		c.Auth.SessionMaxAge = 30 * 24 * time.Hour
	}
	if c.Auth.LinkMaxAge == 0 {
		c.Auth.LinkMaxAge = 24 * time.Hour
	}
	if c.Auth.BaseURL == "" {
		c.Auth.BaseURL = "http://localhost:" + c.Server.Port
	}
	if c.Auth.SignInPath == "" {
		c.Auth.SignInPath = "/login"
	}

	if c.Email.Provider == "" {
		c.Email.Provider = "smtp"
	}
	if c.Email.SMTP.Host == "" {
		c.Email.SMTP.Host = "localhost"
	}
	if c.Email.SMTP.Port == 0 {
		c.Email.SMTP.Port = 1025
	}
	if c.Email.From == "" {
		c.Email.From = "Starter <no-reply@localhost>"
	}

	// Observability is optional; service name and environment always follow
	// the primary config so telemetry is labelled consistently.
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = "mongo-starter"
	c.Observability.Environment = c.Primary.Env
}
