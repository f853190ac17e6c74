package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config carries defaults shared by all commands. Flags override config
// file values, which override environment variables (PROVESQL_*).
type Config struct {
	Format   string `mapstructure:"format"`   // default output format
	Schema   string `mapstructure:"schema"`   // default schema catalog directory
	Database string `mapstructure:"database"` // default SQLite database path
}

// LoadConfig reads the configuration. An explicit path must exist; with
// no path, a provesql.yaml in the working directory is used when present
// and built-in defaults otherwise.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("format", "text")
	v.SetEnvPrefix("PROVESQL")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("provesql")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
