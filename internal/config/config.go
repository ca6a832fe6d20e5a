package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for teamcap.
type Config struct {
	// ClientID identifies this install. It names the cache database file and
	// tags every log line.
	ClientID string `toml:"client_id"`

	// APIKey is the remote provider credential. It is passed through as-is;
	// rotating or scoping it happens on the provider side.
	APIKey string `toml:"api_key"`

	// Domain is the company subdomain on the remote provider.
	Domain string `toml:"domain"`

	BaseDir string `toml:"base_dir"`
	LogDir  string `toml:"log_dir"`

	Provider ProviderConfig `toml:"provider"`
	Database DatabaseConfig `toml:"database"`
}

// ProviderConfig holds the remote provider settings.
type ProviderConfig struct {
	// BaseURL overrides the gateway URL derived from Domain. Leave empty in
	// normal use; set it to point at a stub server in tests.
	BaseURL string `toml:"base_url,omitempty"`

	// TimeoutSeconds bounds each provider request. Defaults to 10.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// ElevatedAccess states that the API key may read time-off requests for
	// all employees. Without it, availability queries fall back to the
	// who's-out feed plus the local cache.
	ElevatedAccess bool `toml:"elevated_access"`
}

// DatabaseConfig represents configuration for the employee cache database.
// The Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// NewConfig creates a new Config with the provided values and default paths.
func NewConfig(clientID, baseDir string) *Config {
	return &Config{
		ClientID: clientID,
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		Provider: ProviderConfig{
			TimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided
// Config. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
