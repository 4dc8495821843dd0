package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Search      SearchConfig      `mapstructure:"search"`
	Tournament  TournamentConfig  `mapstructure:"tournament"`
	Development DevelopmentConfig `mapstructure:"development"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type SearchConfig struct {
	Depth   int `mapstructure:"depth"`
	Workers int `mapstructure:"workers"` // 0 = one per CPU
}

type TournamentConfig struct {
	DataDir     string         `mapstructure:"data_dir"`
	Concurrency int            `mapstructure:"concurrency"`
	MoveCap     int            `mapstructure:"move_cap"`
	Seed        int64          `mapstructure:"seed"`
	Engines     []EngineConfig `mapstructure:"engines"`
}

// EngineConfig is one tournament contestant as declared in config. The
// weight components scale the evaluator's material, positional and
// mobility terms.
type EngineConfig struct {
	ID       string  `mapstructure:"id"`
	Material float64 `mapstructure:"material"`
	Position float64 `mapstructure:"position"`
	Mobility float64 `mapstructure:"mobility"`
	Depth    int     `mapstructure:"depth"`
	Workers  int     `mapstructure:"workers"`
}

type DevelopmentConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variables
	viper.SetEnvPrefix("THUNDERDOME")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("search.depth", 3)
	viper.SetDefault("search.workers", 0)
	viper.SetDefault("tournament.data_dir", "./data/thunderdome")
	viper.SetDefault("tournament.concurrency", 2)
	viper.SetDefault("tournament.move_cap", 300)
	viper.SetDefault("tournament.seed", 0)
	viper.SetDefault("development.debug", false)
	viper.SetDefault("development.log_level", "info")

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults
			return loadDefaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(cfg.Tournament.Engines) == 0 {
		cfg.Tournament.Engines = defaultEngines()
	}

	return &cfg, nil
}

func loadDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Search: SearchConfig{
			Depth: 3,
		},
		Tournament: TournamentConfig{
			DataDir:     "./data/thunderdome",
			Concurrency: 2,
			MoveCap:     300,
			Engines:     defaultEngines(),
		},
		Development: DevelopmentConfig{
			LogLevel: "info",
		},
	}
}

// defaultEngines is a small roster with distinct personalities so a fresh
// deployment has something to fight about.
func defaultEngines() []EngineConfig {
	return []EngineConfig{
		{ID: "balanced", Material: 1.0, Position: 1.0, Mobility: 0.5, Depth: 3},
		{ID: "materialist", Material: 1.5, Position: 0.3, Mobility: 0.2, Depth: 3},
		{ID: "positional", Material: 1.0, Position: 1.5, Mobility: 1.0, Depth: 3},
	}
}
