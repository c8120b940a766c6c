package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Engine   EngineConfig
	Shopify  ShopifyConfig
	S3       S3Config
	Snapshot SnapshotConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EngineConfig holds the catalog engine knobs. Token tables and the
// match threshold are explicit configuration, not globals: naming
// conventions vary by data source.
type EngineConfig struct {
	ColorTokens      []string `mapstructure:"color_tokens"`
	ViewTokens       []string `mapstructure:"view_tokens"`
	ImageExtensions  []string `mapstructure:"image_extensions"`
	MaxDisplayImages int      `mapstructure:"max_display_images"`
	MatchThreshold   float64  `mapstructure:"match_threshold"`
	ConnectorWords   []string `mapstructure:"connector_words"`
	RulesPath        string   `mapstructure:"rules_path"`
	DebugLogging     bool     `mapstructure:"debug_logging"`
}

// ShopifyConfig holds the upstream catalog credentials. Optional: the
// reconcile path falls back to the local snapshot when unset.
type ShopifyConfig struct {
	StoreDomain string `mapstructure:"store_domain"`
	AccessToken string `mapstructure:"access_token"`
	APIVersion  string `mapstructure:"api_version"`
}

// S3Config holds object-storage settings for the bucket-backed asset
// source. Optional: an empty endpoint disables it.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Prefix    string `mapstructure:"prefix"`
}

// SnapshotConfig holds catalog snapshot retention settings
type SnapshotConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/armory/")

	v.SetEnvPrefix("ARMORY")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Engine defaults
	v.SetDefault("engine.color_tokens", []string{
		"blue", "grey", "gray", "black", "white", "red",
		"green", "yellow", "navy", "brown", "purple",
	})
	v.SetDefault("engine.view_tokens", []string{"back", "front", "side"})
	v.SetDefault("engine.image_extensions", []string{"jpg", "jpeg", "png"})
	v.SetDefault("engine.max_display_images", 7)
	v.SetDefault("engine.match_threshold", 0.5)
	v.SetDefault("engine.connector_words", []string{"og", "the", "rebel", "tee"})

	// Shopify defaults
	v.SetDefault("shopify.api_version", "2024-01")

	// S3 defaults
	v.SetDefault("s3.use_ssl", true)

	// Snapshot defaults
	v.SetDefault("snapshot.ttl", "24h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Engine.MaxDisplayImages <= 0 {
		return fmt.Errorf("engine.max_display_images must be positive, got: %d", config.Engine.MaxDisplayImages)
	}

	if config.Engine.MatchThreshold <= 0 || config.Engine.MatchThreshold > 1 {
		return fmt.Errorf("engine.match_threshold must be in (0, 1], got: %v", config.Engine.MatchThreshold)
	}

	if config.S3.Endpoint != "" && config.S3.Bucket == "" {
		return fmt.Errorf("S3 bucket is required when an endpoint is set (set ARMORY_S3_BUCKET)")
	}

	if config.Shopify.StoreDomain != "" && config.Shopify.AccessToken == "" {
		return fmt.Errorf("Shopify access token is required when a store domain is set (set ARMORY_SHOPIFY_ACCESS_TOKEN)")
	}

	return nil
}
