// Package config loads the sitegrouper YAML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Content Content                  `yaml:"content"`
	Grouper map[string]*GroupingSpec `yaml:"grouper,omitempty"`
	Logging LoggingConfig            `yaml:"logging,omitempty"`
}

// Content describes where the site content tree comes from.
type Content struct {
	// Dir is a local content directory. Used directly when URL is empty.
	Dir string `yaml:"dir,omitempty"`
	// URL is an optional git repository holding the content tree.
	URL    string `yaml:"url,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	// Path is the docs path inside the repository, defaults to "."
	Path string `yaml:"path,omitempty"`
}

// LoggingConfig controls the slog default handler.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text, json
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env if present; missing files are fine.
	_ = godotenv.Load(".env", ".env.local")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Content.Dir == "" && config.Content.URL == "" {
		config.Content.Dir = "./content"
	}
	if config.Content.URL != "" && config.Content.Branch == "" {
		config.Content.Branch = "main"
	}
	if config.Content.Path == "" {
		config.Content.Path = "."
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Content: Content{Dir: "./content"},
		Grouper: map[string]*GroupingSpec{
			"topics": {
				Description: "Articles grouped by topic",
				Sorter:      "created",
				Groups: []*GroupingSpec{
					{Name: "announcements", Description: "Release announcements"},
					{Name: "tutorials", Description: "Step by step guides"},
				},
			},
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
