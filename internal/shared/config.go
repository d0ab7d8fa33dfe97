package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Portfolio PortfolioConfig `toml:"portfolio"`
	Server    ServerConfig    `toml:"server"`
	Prefetch  PrefetchConfig  `toml:"prefetch"`
}

// PortfolioConfig contains content discovery and navigation settings.
type PortfolioConfig struct {
	// RootURL is the base URL of the served portfolio assets, the
	// target of listing-scan discovery and image prefetching.
	RootURL string `toml:"root_url"`
	// AssetDir is the local directory the asset server exposes.
	AssetDir string `toml:"asset_dir"`
	// SourceMode selects the discovery strategy: "listing" or "manifest".
	SourceMode string `toml:"source_mode"`
	// RoutingMode selects the URL grammar: "path" or "hash".
	RoutingMode string `toml:"routing_mode"`
	// ManifestPath points at a manifest.json; empty uses the embedded default.
	ManifestPath string `toml:"manifest_path"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// PrefetchConfig contains image warm-up settings.
type PrefetchConfig struct {
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
}

// Addr returns the host:port address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
