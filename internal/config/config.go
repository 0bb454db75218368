package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and passed into constructors; nothing
// reads viper after Load returns.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Covid  CovidConfig  `mapstructure:"covid"`
	Groq   GroqConfig   `mapstructure:"groq"`
	GHG    GHGConfig    `mapstructure:"ghg"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StoreConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
}

// CovidConfig configures the live statistics source. LiveEnabled switches
// the live tier of the resolver; the ETL fetch uses the same client either
// way.
type CovidConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	LiveEnabled bool          `mapstructure:"live_enabled"`
}

// GroqConfig configures the completion service used for questions outside
// the two structured domains. An empty key disables the handoff.
type GroqConfig struct {
	Key     string `mapstructure:"key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type GHGConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// Load reads the config file at path (optional) with ENVIROBOT_* env
// overrides on top of defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("store.database_url", "postgres://localhost:5432/envirobot?sslmode=disable")
	v.SetDefault("covid.base_url", "https://api.covid19tracker.ca")
	v.SetDefault("covid.timeout", 10*time.Second)
	v.SetDefault("covid.live_enabled", true)
	v.SetDefault("groq.key", "")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.model", "llama3-70b-8192")
	v.SetDefault("ghg.csv_path", "gas_emissions_canada.csv")

	v.SetEnvPrefix("ENVIROBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Store.DatabaseURL == "" {
		return nil, fmt.Errorf("store.database_url is required")
	}

	return &cfg, nil
}
