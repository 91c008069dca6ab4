// Package config loads the CLI configuration from a YAML file and
// QUERYDSL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables, e.g. QUERYDSL_MONGO_URI.
const EnvPrefix = "QUERYDSL"

// Config is the CLI configuration.
type Config struct {
	// Target is the default backend, e.g. "postgres" or "mongodb".
	Target string `mapstructure:"target"`
	// DSN is the data source name of SQL targets.
	DSN   string `mapstructure:"dsn"`
	Mongo Mongo  `mapstructure:"mongo"`
	Log   Log    `mapstructure:"log"`
}

// Mongo configures the MongoDB connection.
type Mongo struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// Log configures logging.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]any{
	"target":         "postgres",
	"dsn":            "",
	"mongo.uri":      "mongodb://localhost:27017",
	"mongo.database": "test",
	"log.level":      "info",
	"log.format":     "text",
}

// Load reads the configuration. If file is empty, querydsl.yaml is looked up
// in the working directory and may be absent. Environment variables
// override the file.
func Load(file string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("querydsl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
