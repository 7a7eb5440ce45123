package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Library LibraryConfig `mapstructure:"library"`
	Output  OutputConfig  `mapstructure:"output"`
	Log     LogConfig     `mapstructure:"log"`
}

// LibraryConfig holds catalog site configuration
type LibraryConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxAttempts bounds retries of transient failures. 0 keeps retrying
	// until the request succeeds.
	MaxAttempts  uint          `mapstructure:"max_attempts"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// OutputConfig holds filesystem output configuration
type OutputConfig struct {
	BooksDir  string `mapstructure:"books_dir"`
	ImagesDir string `mapstructure:"images_dir"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from a YAML file with environment variable
// overrides. A missing config file is fine: the defaults describe a full
// working setup.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("library.base_url", "https://tululu.org")
	viper.SetDefault("library.timeout", "10s")
	viper.SetDefault("library.max_attempts", 5)
	viper.SetDefault("library.retry_backoff", "5s")

	viper.SetDefault("output.books_dir", "books")
	viper.SetDefault("output.images_dir", "images")

	viper.SetDefault("log.level", "info")
}
