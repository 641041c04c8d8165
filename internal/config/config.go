package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration options for the application.
type Config struct {
	// LLM collaborator configuration
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base_url"`
	APITimeout int    `mapstructure:"api_timeout"` // in seconds

	// Project configuration
	CWD string `mapstructure:"cwd"`

	// Don't truncate command/diff output in the terminal
	FullStdout bool `mapstructure:"full_stdout"`

	// GitAdd stages changed paths with go-git after a successful apply
	GitAdd bool `mapstructure:"git_add"`

	// Logging configuration
	Debug   bool   `mapstructure:"debug"`    // Enable debug logging
	LogFile string `mapstructure:"log_file"` // Path to log file
}

const (
	// Default configuration values
	DefaultModel      = "gpt-4o"
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultAPITimeout = 60 // seconds
	DefaultConfigDir  = ".partial-edit"
)

// Load loads configuration from the config file and environment variables.
// Command-line flags are not read here.
func Load() (*Config, error) {
	config := &Config{
		Model:      DefaultModel,
		BaseURL:    DefaultBaseURL,
		APITimeout: DefaultAPITimeout,
		CWD:        getWorkingDirectory(),
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := getConfigDir()
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("PARTIALEDIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv only reaches keys viper already knows, so bind each key
	// explicitly for Unmarshal to see PARTIALEDIT_* values.
	for _, key := range []string{"api_key", "model", "base_url", "api_timeout", "cwd", "full_stdout", "git_add", "debug", "log_file"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env var for %s: %w", key, err)
		}
	}

	// OPENAI_API_KEY is honored directly alongside the PARTIALEDIT_ prefix,
	// since it is the credential the LLM collaborator already expects.
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.APIKey = apiKey
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return config, nil
}

// getConfigDir returns the path to the config directory, creating it if it
// does not already exist.
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		os.MkdirAll(configDir, 0755)
	}

	return configDir
}

// getWorkingDirectory returns the current working directory.
func getWorkingDirectory() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
