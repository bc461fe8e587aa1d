package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/vendabot/vbot"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Agent     AgentConfig     `mapstructure:"agent"`
	Store     StoreConfig     `mapstructure:"store"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Trace     TraceConfig     `mapstructure:"trace"`
}

// AgentConfig stores the default agent persona and behavior.
type AgentConfig struct {
	Name           string  `mapstructure:"name"`
	CompanyName    string  `mapstructure:"company_name"`
	DeliveryPrice  float64 `mapstructure:"delivery_price"`
	WelcomeMessage string  `mapstructure:"welcome_message"`
	Active         bool    `mapstructure:"active"`
	PersonaFile    string  `mapstructure:"persona_file"` // optional hot-reloaded persona template
}

// StoreConfig stores database connection details.
type StoreConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// CatalogConfig stores product catalog lookup settings.
type CatalogConfig struct {
	CacheEnabled    bool `mapstructure:"cache_enabled"`
	CacheCapacity   int  `mapstructure:"cache_capacity"`
	CacheTTLSeconds int  `mapstructure:"cache_ttl_seconds"`
	Limit           int  `mapstructure:"limit"`
}

// GeneratorConfig stores the chat-completion backend settings.
type GeneratorConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// TraceConfig stores observability settings.
type TraceConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("agent.name", "Max")
	viper.SetDefault("agent.company_name", "")
	viper.SetDefault("agent.delivery_price", 0.0)
	viper.SetDefault("agent.welcome_message", "")
	viper.SetDefault("agent.active", true)
	viper.SetDefault("agent.persona_file", "")

	viper.SetDefault("store.database_path", internal.DefaultDatabasePath)

	viper.SetDefault("catalog.cache_enabled", true)
	viper.SetDefault("catalog.cache_capacity", 100)
	viper.SetDefault("catalog.cache_ttl_seconds", 60)
	viper.SetDefault("catalog.limit", internal.DefaultCatalogSize)

	viper.SetDefault("generator.api_key", "")
	viper.SetDefault("generator.base_url", "")
	viper.SetDefault("generator.model", "gpt-4o-mini")
	viper.SetDefault("generator.max_tokens", 150)
	viper.SetDefault("generator.temperature", 0.5)

	viper.SetDefault("trace.enabled", true)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults will be used.
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
