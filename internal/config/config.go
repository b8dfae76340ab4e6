// Package config loads application configuration from file and environment
// and owns global logger setup.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Naver      NaverConfig      `yaml:"naver" mapstructure:"naver"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Competitor CompetitorConfig `yaml:"competitor" mapstructure:"competitor"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Path        string `yaml:"path" mapstructure:"path"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// NaverConfig configures the listing platform client and its pacing.
type NaverConfig struct {
	GraphQLURL    string `yaml:"graphql_url" mapstructure:"graphql_url"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
	PlaceBaseURL  string `yaml:"place_base_url" mapstructure:"place_base_url"`
	UserAgent     string `yaml:"user_agent" mapstructure:"user_agent"`
	SearchDelayMs int    `yaml:"search_delay_ms" mapstructure:"search_delay_ms"`
	FetchDelayMs  int    `yaml:"fetch_delay_ms" mapstructure:"fetch_delay_ms"`
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// MinInterval returns the global minimum interval between outbound
// requests: the larger of the two configured delays, since one pacer is
// shared across search and fetch paths.
func (c NaverConfig) MinInterval() time.Duration {
	ms := c.SearchDelayMs
	if c.FetchDelayMs > ms {
		ms = c.FetchDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}

// AnthropicConfig holds Anthropic API settings for the keyword recommender.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// CompetitorConfig configures competitor discovery.
type CompetitorConfig struct {
	RadiusKm float64 `yaml:"radius_km" mapstructure:"radius_km"`
	Workers  int     `yaml:"workers" mapstructure:"workers"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PLACEAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys without a meaningful default still get a zero-value
	// entry: AutomaticEnv only surfaces keys viper already knows about, so
	// an unregistered key could not be set from the environment at all.
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "place-audit.db")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.max_conns", 0)
	v.SetDefault("store.min_conns", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("naver.graphql_url", "https://pcmap-api.place.naver.com/place/graphql")
	v.SetDefault("naver.search_base_url", "https://m.search.naver.com")
	v.SetDefault("naver.place_base_url", "https://m.place.naver.com")
	v.SetDefault("naver.user_agent", "")
	v.SetDefault("naver.search_delay_ms", 1000)
	v.SetDefault("naver.fetch_delay_ms", 2000)
	v.SetDefault("naver.timeout_secs", 30)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("competitor.radius_km", 1.0)
	v.SetDefault("competitor.workers", 1)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
