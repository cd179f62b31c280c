package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the data directory root.
const FileName = "ybudget.yaml"

// Config represents the top-level ybudget.yaml configuration.
type Config struct {
	Organization OrganizationConfig `yaml:"organization"`
	Books        BooksConfig        `yaml:"books"`
	Git          GitConfig          `yaml:"git"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// OrganizationConfig identifies the tenant all records are scoped to.
type OrganizationConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// BooksConfig locates the CSV books inside the data directory.
type BooksConfig struct {
	Dir string `yaml:"dir"`
}

// GitConfig controls git versioning of the books.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OrganizationID parses the configured tenant id.
func (c *Config) OrganizationID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Organization.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid organization id %q: %w", c.Organization.ID, err)
	}
	return id, nil
}

// Load reads a ybudget.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new organization.
func Default(orgName string) *Config {
	return &Config{
		Organization: OrganizationConfig{
			ID:   uuid.NewString(),
			Name: orgName,
		},
		Books: BooksConfig{
			Dir: "books",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "YBudget",
			AuthorEmail: "books@ybudget.local",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
