/*
Package config loads application configuration via Viper.

PURPOSE:
  Environment variables first, with an optional .env file for local
  development. Names: TIMBER_ENV, TIMBER_HTTP_HOST, TIMBER_HTTP_PORT,
  TIMBER_DB_PATH, TIMBER_LOG_LEVEL, TIMBER_FOLD_BY_DATE.
*/
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config groups the application configuration.
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	DB     DBConfig
	Log    LogConfig
	Engine EngineConfig
}

// AppConfig is general application configuration.
type AppConfig struct {
	Env string // development, production
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configures the SQLite store.
type DBConfig struct {
	// Path to the database file; ":memory:" runs ephemeral.
	Path string
}

// LogConfig configures logging.
type LogConfig struct {
	Level string // trace, debug, info, warn, error
}

// EngineConfig configures derivation behavior.
type EngineConfig struct {
	// FoldByDate sorts the journal by invoice date before projection instead
	// of folding in stored order.
	FoldByDate bool
}

// Load reads configuration from environment variables and, if present, a
// local .env file. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	v.SetEnvPrefix("TIMBER")
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("DB_PATH", "timber.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FOLD_BY_DATE", false)

	cfg := &Config{
		App: AppConfig{Env: v.GetString("ENV")},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB:  DBConfig{Path: v.GetString("DB_PATH")},
		Log: LogConfig{Level: v.GetString("LOG_LEVEL")},
		Engine: EngineConfig{
			FoldByDate: v.GetBool("FOLD_BY_DATE"),
		},
	}
	return cfg, nil
}
