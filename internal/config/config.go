// internal/config/config.go
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
// The mapstructure tags are used by Viper to unmarshal the data.
type Config struct {
	MongoURI       string        `mapstructure:"mongo_uri"`
	MongoDatabase  string        `mapstructure:"mongo_database"`
	MongoTimeout   time.Duration `mapstructure:"mongo_timeout"`
	HttpListenAddr string        `mapstructure:"http_listen_addr"`

	// Retention is how long a listing stays live; 0 disables expiry.
	// RequiredFields is the field set Create insists on — both vary
	// across deployments, so they are tunables rather than constants.
	Retention      time.Duration `mapstructure:"retention"`
	RequiredFields []string      `mapstructure:"required_fields"`
	SweepSchedule  string        `mapstructure:"sweep_schedule"`
}

// ErrMongoURIMissing is returned when no store connection string is
// configured. The process must not serve traffic without a store.
var ErrMongoURIMissing = errors.New("mongo_uri is required")

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	// Set default values
	viper.SetDefault("mongo_database", "jobboard")
	viper.SetDefault("mongo_timeout", "5s")
	viper.SetDefault("http_listen_addr", ":8000")
	viper.SetDefault("retention", "720h")
	viper.SetDefault("required_fields", []string{"jobRole", "city", "phone", "email"})
	viper.SetDefault("sweep_schedule", "@every 10m")

	// Set config file details
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Read environment variables. mongo_uri has no default, so it must be
	// bound explicitly for MONGO_URI to be picked up.
	viper.AutomaticEnv()
	_ = viper.BindEnv("mongo_uri")

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file; defaults and env vars are enough.
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.MongoURI == "" {
		return nil, ErrMongoURIMissing
	}

	return &cfg, nil
}
