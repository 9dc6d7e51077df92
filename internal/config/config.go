package config

import (
	"errors"
	"time"
)

// Default configuration values.
const (
	defaultServiceName     = "tubewarden"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8080
	defaultConcurrency     = 10
	defaultMaxComments     = 100
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultRedisAddr       = "localhost:6379"
	defaultSessionTTL      = 24 * time.Hour
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "tubewarden"
	defaultDBSSLMode       = "disable"
	defaultAnthropicModel  = "claude-3-5-haiku-latest"
	defaultPlatformRPS     = 10
	defaultPlatformBurst   = 20
	defaultVerdictTokens   = 100
	defaultReplyTokens     = 150
)

// Config holds all configuration for the tubewarden service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Logging   LoggingConfig   `yaml:"logging"`
	Google    GoogleConfig    `yaml:"google"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Port        int    `env:"TUBEWARDEN_PORT"        yaml:"port"`
	Debug       bool   `env:"APP_DEBUG"              yaml:"debug"`
	Concurrency int    `env:"TUBEWARDEN_CONCURRENCY" yaml:"concurrency"`
	// MaxComments caps how many comment threads one ingestion pass requests.
	MaxComments int64 `yaml:"max_comments"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// GoogleConfig holds OAuth and YouTube API configuration.
type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"     yaml:"client_id"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET" yaml:"client_secret"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL"  yaml:"redirect_url"`
	// RequestsPerSecond and Burst bound YouTube Data API calls per session.
	RequestsPerSecond int `yaml:"requests_per_second"`
	Burst             int `yaml:"burst"`
}

// AnthropicConfig holds language-model provider configuration.
type AnthropicConfig struct {
	APIKey        string `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Model         string `env:"ANTHROPIC_MODEL"   yaml:"model"`
	VerdictTokens int    `yaml:"verdict_tokens"`
	ReplyTokens   int    `yaml:"reply_tokens"`
}

// RedisConfig holds session store configuration.
type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR"     yaml:"addr"`
	Password   string        `env:"REDIS_PASSWORD" yaml:"password"`
	Database   int           `yaml:"database"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// DatabaseConfig holds the optional moderation-history database configuration.
type DatabaseConfig struct {
	Enabled  bool   `env:"POSTGRES_ENABLED"  yaml:"enabled"`
	Host     string `env:"POSTGRES_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_USER"     yaml:"user"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
}

// SetDefaults applies default values to unset fields.
func (c *Config) SetDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}
	if c.Service.Concurrency == 0 {
		c.Service.Concurrency = defaultConcurrency
	}
	if c.Service.MaxComments == 0 {
		c.Service.MaxComments = defaultMaxComments
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Google.RequestsPerSecond == 0 {
		c.Google.RequestsPerSecond = defaultPlatformRPS
	}
	if c.Google.Burst == 0 {
		c.Google.Burst = defaultPlatformBurst
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = defaultAnthropicModel
	}
	if c.Anthropic.VerdictTokens == 0 {
		c.Anthropic.VerdictTokens = defaultVerdictTokens
	}
	if c.Anthropic.ReplyTokens == 0 {
		c.Anthropic.ReplyTokens = defaultReplyTokens
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Redis.SessionTTL == 0 {
		c.Redis.SessionTTL = defaultSessionTTL
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Database == "" {
		c.Database.Database = defaultDBName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = defaultDBSSLMode
	}
}

// Validate checks settings the service cannot run without.
func (c *Config) Validate() error {
	if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
		return errors.New("google client_id and client_secret are required")
	}
	if c.Google.RedirectURL == "" {
		return errors.New("google redirect_url is required")
	}
	if c.Anthropic.APIKey == "" {
		return errors.New("anthropic api_key is required")
	}
	return nil
}
