// Package config loads application configuration from defaults, an
// optional YAML file and PT_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game   GameConfig   `mapstructure:"game"`
	Server ServerConfig `mapstructure:"server"`
}

// GameConfig holds the default preferences for new games
type GameConfig struct {
	BoardSize            int  `mapstructure:"board_size"`
	TurnCount            int  `mapstructure:"turn_count"`
	Deathmatch           bool `mapstructure:"deathmatch"`
	AgainstBot           bool `mapstructure:"against_bot"`
	DoubleBase           bool `mapstructure:"double_base"`
	RandomBases          bool `mapstructure:"random_bases"`
	FogOfWar             bool `mapstructure:"fog_of_war"`
	TrenchDensityPercent int  `mapstructure:"trench_density_percent"`
}

// ServerConfig holds game server configuration
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	MaxGames  int    `mapstructure:"max_games"`
	// IdleGameMinutes is how long a game may sit without activity before
	// the manager removes it.
	IdleGameMinutes int `mapstructure:"idle_game_minutes"`
	// GracefulShutdownSeconds is how long in-flight connections get to
	// drain on shutdown.
	GracefulShutdownSeconds int `mapstructure:"graceful_shutdown_seconds"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.board_size", 10)
	v.SetDefault("game.turn_count", 3)
	v.SetDefault("game.deathmatch", false)
	v.SetDefault("game.against_bot", false)
	v.SetDefault("game.double_base", false)
	v.SetDefault("game.random_bases", false)
	v.SetDefault("game.fog_of_war", false)
	v.SetDefault("game.trench_density_percent", 12)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")
	v.SetDefault("server.max_games", 100)
	v.SetDefault("server.idle_game_minutes", 60)
	v.SetDefault("server.graceful_shutdown_seconds", 5)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/papertactics")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("PT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file; a missing file just means defaults
	if err := v.ReadInConfig(); err != nil {
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// WatchConfig enables hot-reloading of the config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.BoardSize < 2 {
		return fmt.Errorf("game.board_size must be at least 2")
	}
	if c.Game.TurnCount <= 0 {
		return fmt.Errorf("game.turn_count must be positive")
	}
	if c.Game.TrenchDensityPercent < 0 || c.Game.TrenchDensityPercent > 100 {
		return fmt.Errorf("game.trench_density_percent must be between 0 and 100")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.MaxGames <= 0 {
		return fmt.Errorf("server.max_games must be positive")
	}
	if c.Server.IdleGameMinutes <= 0 {
		return fmt.Errorf("server.idle_game_minutes must be positive")
	}
	if c.Server.GracefulShutdownSeconds < 0 {
		return fmt.Errorf("server.graceful_shutdown_seconds must be non-negative")
	}
	return nil
}
