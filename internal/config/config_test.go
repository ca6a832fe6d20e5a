package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		ClientID: "test-client-abc",
		APIKey:   "secret-key",
		Domain:   "acme",
		BaseDir:  "/home/user/.local/share/teamcap",
		LogDir:   "/home/user/.local/share/teamcap/log",
		Provider: ProviderConfig{
			TimeoutSeconds: 30,
			ElevatedAccess: true,
		},
		Database: DatabaseConfig{Type: "sqlite", DataDir: "/home/user/.local/share/teamcap/db"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.ClientID != original.ClientID {
		t.Errorf("ClientID = %q, want %q", got.ClientID, original.ClientID)
	}
	if got.APIKey != original.APIKey {
		t.Errorf("APIKey = %q, want %q", got.APIKey, original.APIKey)
	}
	if got.Domain != original.Domain {
		t.Errorf("Domain = %q, want %q", got.Domain, original.Domain)
	}
	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Provider.TimeoutSeconds != 30 {
		t.Errorf("Provider.TimeoutSeconds = %d, want %d", got.Provider.TimeoutSeconds, 30)
	}
	if !got.Provider.ElevatedAccess {
		t.Error("Provider.ElevatedAccess = false, want true")
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", got.Database.Type, "sqlite")
	}
	if got.Database.DataDir != original.Database.DataDir {
		t.Errorf("Database.DataDir = %q, want %q", got.Database.DataDir, original.Database.DataDir)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("client-1", "/data/teamcap")

	if cfg.ClientID != "client-1" {
		t.Errorf("ClientID = %q, want %q", cfg.ClientID, "client-1")
	}
	if cfg.BaseDir != "/data/teamcap" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/teamcap")
	}
	if cfg.LogDir != "/data/teamcap/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/teamcap/log")
	}
	if cfg.Provider.TimeoutSeconds != 10 {
		t.Errorf("Provider.TimeoutSeconds = %d, want %d", cfg.Provider.TimeoutSeconds, 10)
	}
	if cfg.Provider.ElevatedAccess {
		t.Error("Provider.ElevatedAccess = true, want false by default")
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", cfg.Database.Type, "sqlite")
	}
	if cfg.Database.DataDir != "/data/teamcap/db" {
		t.Errorf("Database.DataDir = %q, want %q", cfg.Database.DataDir, "/data/teamcap/db")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "teamcap.toml")
		cfg := NewConfig("c1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "teamcap.toml")
		cfg := NewConfig("c1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "teamcap.toml")
		cfg := NewConfig("read-test", dir)
		cfg.Domain = "acme"
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.ClientID != "read-test" {
			t.Errorf("ClientID = %q, want %q", got.ClientID, "read-test")
		}
		if got.Domain != "acme" {
			t.Errorf("Domain = %q, want %q", got.Domain, "acme")
		}
		if got.Database.Type != "memory" {
			t.Errorf("Database.Type = %q, want %q", got.Database.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/teamcap.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
