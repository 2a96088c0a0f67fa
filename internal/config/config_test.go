package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test export defaults
	if cfg.Export.ScaleFactor != 100 {
		t.Errorf("expected scale factor 100, got %v", cfg.Export.ScaleFactor)
	}
	if cfg.Export.Format != FormatFBX {
		t.Errorf("expected format fbx, got %s", cfg.Export.Format)
	}
	if cfg.Export.Creator != "scenexport" {
		t.Errorf("expected creator 'scenexport', got %s", cfg.Export.Creator)
	}
	if cfg.Export.IncludeDescendants {
		t.Error("expected include_descendants to be false by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
export:
  scale_factor: 1
  format: yaml
  creator: "level editor"
  include_descendants: true

logging:
  level: "debug"
  log_file: "export.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Export.ScaleFactor != 1 {
		t.Errorf("expected scale factor 1, got %v", cfg.Export.ScaleFactor)
	}
	if cfg.Export.Format != FormatYAML {
		t.Errorf("expected format yaml, got %s", cfg.Export.Format)
	}
	if cfg.Export.Creator != "level editor" {
		t.Errorf("expected creator 'level editor', got %s", cfg.Export.Creator)
	}
	if !cfg.Export.IncludeDescendants {
		t.Error("expected include_descendants to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "export.log" {
		t.Errorf("expected log file 'export.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("export:\n  format: yaml\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Unset keys keep their defaults
	if cfg.Export.ScaleFactor != 100 {
		t.Errorf("expected default scale factor, got %v", cfg.Export.ScaleFactor)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
export:
  scale_factor: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/scenexport.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"yaml format", func(c *Config) { c.Export.Format = FormatYAML }, true},
		{"zero scale", func(c *Config) { c.Export.ScaleFactor = 0 }, false},
		{"negative scale", func(c *Config) { c.Export.ScaleFactor = -1 }, false},
		{"unknown format", func(c *Config) { c.Export.Format = "obj" }, false},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the user's real config dir out of the search
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create scenexport.yaml in current directory
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("export:\n  format: yaml\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find scenexport.yaml in current directory")
	}
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		verify    func(*testing.T, *Config)
	}{
		{
			name:      "none",
			overrides: Overrides{},
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name:      "level",
			overrides: Overrides{Level: "debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:      "scale and format",
			overrides: Overrides{ScaleFactor: 2.54, Format: FormatYAML},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.ScaleFactor != 2.54 {
					t.Errorf("expected scale factor 2.54, got %v", cfg.Export.ScaleFactor)
				}
				if cfg.Export.Format != FormatYAML {
					t.Errorf("expected format yaml, got %s", cfg.Export.Format)
				}
			},
		},
		{
			name:      "descendants",
			overrides: Overrides{IncludeDescendants: true},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Export.IncludeDescendants {
					t.Error("expected include_descendants to be enabled")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.overrides.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
export:
  scale_factor: 1
  format: yaml
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config with a flag override
	cfg, err := Load(configPath, Overrides{ScaleFactor: 10})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Scale should be from flag (10), not file (1)
	if cfg.Export.ScaleFactor != 10 {
		t.Errorf("expected scale factor 10 from flag, got %v", cfg.Export.ScaleFactor)
	}

	// Format should be from file since no flag override
	if cfg.Export.Format != FormatYAML {
		t.Errorf("expected format yaml from file, got %s", cfg.Export.Format)
	}

	// Creator should be the default
	if cfg.Export.Creator != "scenexport" {
		t.Errorf("expected default creator, got %s", cfg.Export.Creator)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("export:\n  format: obj\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath, Overrides{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Overrides{}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Export.Format = FormatYAML
	cfg.Logging.LogFile = "out.log"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v after round trip, got %+v", cfg, loaded)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if filepath.Base(path) != FileName {
		t.Errorf("expected %s, got %s", FileName, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved config missing: %v", err)
	}
}
