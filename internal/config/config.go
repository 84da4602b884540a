package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

const (
	// DefaultSheetID is the spreadsheet holding the restaurant listings.
	DefaultSheetID = "19O0ge4LPff4dkPomR3tWJvH6C7zCufwQDmRa7djrkUI"
	// DefaultSheetName is the tab exported from the spreadsheet.
	DefaultSheetName = "シート1"
	// DefaultSpinDelay is how long the front ends show the spinning state before revealing a draw.
	DefaultSpinDelay = 1500 * time.Millisecond
)

type Config struct {
	SheetID               string `mapstructure:"sheet_id"`
	SheetName             string `mapstructure:"sheet_name"`
	SheetURL              string `mapstructure:"sheet_url"` // overrides SheetID/SheetName when set
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string `mapstructure:"user_agent"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Web struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"web"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	LogLevel string `mapstructure:"log_level"`
	Cache    struct {
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`     // Maximum number of entries in the LRU cache
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Gacha struct {
		SpinDelay string `mapstructure:"spin_delay"`
	} `mapstructure:"gacha"`
	RefreshInterval string `mapstructure:"refresh_interval"` // "0" disables periodic reloads
	Sentry          struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	v.SetDefault("sheet_id", DefaultSheetID)
	v.SetDefault("sheet_name", DefaultSheetName)
	v.SetDefault("sheet_url", "")
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("client_timeout", "30s")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("web.port", 3000)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 16)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.redis.address", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("gacha.spin_delay", DefaultSpinDelay.String())
	v.SetDefault("refresh_interval", "0")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

// SheetCSVURL returns the CSV export endpoint of the configured sheet.
func (c *Config) SheetCSVURL() string {
	if c.SheetURL != "" {
		return c.SheetURL
	}
	id := c.SheetID
	if id == "" {
		id = DefaultSheetID
	}
	name := c.SheetName
	if name == "" {
		name = DefaultSheetName
	}
	return "https://docs.google.com/spreadsheets/d/" + url.PathEscape(id) +
		"/gviz/tq?tqx=out:csv&sheet=" + url.QueryEscape(name)
}

// SpinDelay returns the configured spin duration, falling back to DefaultSpinDelay.
func (c *Config) SpinDelay() time.Duration {
	return parseDuration(c.Gacha.SpinDelay, DefaultSpinDelay, "gacha.spin_delay")
}

// ClientTimeoutDuration returns the HTTP client timeout, falling back to 30s.
func (c *Config) ClientTimeoutDuration() time.Duration {
	return parseDuration(c.ClientTimeout, 30*time.Second, "client_timeout")
}

// CacheTTL returns the sheet document cache TTL, falling back to 10 minutes.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, 10*time.Minute, "cache.ttl")
}

// RefreshIntervalDuration returns the periodic reload interval. Zero disables reloading.
func (c *Config) RefreshIntervalDuration() time.Duration {
	return parseDuration(c.RefreshInterval, 0, "refresh_interval")
}

func parseDuration(raw string, fallback time.Duration, key string) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		logger.Warn().Err(err).Str("key", key).Str("value", raw).Dur("fallback", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
