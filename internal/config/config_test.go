package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// Default Config Tests
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify DataDir is set
	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}

	// Verify Server defaults
	if cfg.Server.Port != 8787 {
		t.Errorf("Server.Port = %d, want 8787", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "localhost")
	}

	// Verify Gemini defaults
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q, want %q", cfg.Gemini.Model, "gemini-2.5-flash")
	}

	// Verify Auth defaults
	if cfg.Auth.Username != "synk28h" {
		t.Errorf("Auth.Username = %q, want %q", cfg.Auth.Username, "synk28h")
	}
	if cfg.Auth.Password != "lima2025" {
		t.Errorf("Auth.Password = %q, want %q", cfg.Auth.Password, "lima2025")
	}

	// Verify Feature defaults
	if cfg.Features.DebugMode {
		t.Error("Features.DebugMode should be false by default")
	}
}

func TestDefault_DataDirContainsSynk(t *testing.T) {
	cfg := Default()

	if !filepath.IsAbs(cfg.DataDir) {
		t.Error("DataDir should be an absolute path")
	}

	if filepath.Base(cfg.DataDir) != ".synk" {
		t.Errorf("DataDir should end with .synk, got %q", filepath.Base(cfg.DataDir))
	}
}

func TestDefault_GeminiAPIKeyFromEnv(t *testing.T) {
	testKey := "test-api-key-12345"
	os.Setenv("GEMINI_API_KEY", testKey)
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg := Default()

	if cfg.Gemini.APIKey != testKey {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Gemini.APIKey, testKey)
	}
}

// =============================================================================
// Load Config Tests
// =============================================================================

func TestLoad_NonExistentFile(t *testing.T) {
	// Load from non-existent file should return defaults
	cfg, err := Load("/non/existent/path/config.json")

	if err != nil {
		t.Fatalf("Load() error = %v, want nil for non-existent file", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.Server.Port != 8787 {
		t.Errorf("Server.Port = %d, want 8787 (default)", cfg.Server.Port)
	}
}

func TestLoad_ValidConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := Config{
		DataDir: tmpDir,
		Server: ServerConfig{
			Port: 9090,
			Host: "0.0.0.0",
		},
		Gemini: GeminiConfig{
			APIKey: "file-api-key",
			Model:  "gemini-2.0-flash",
		},
		Auth: AuthConfig{
			Username: "alt-user",
			Password: "alt-pass",
		},
		Features: FeatureConfig{
			DebugMode: true,
		},
	}

	data, err := json.Marshal(testConfig)
	if err != nil {
		t.Fatalf("failed to marshal test config: %v", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Clear env var to test file-based API key
	os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("Gemini.Model = %q, want %q", cfg.Gemini.Model, "gemini-2.0-flash")
	}
	if cfg.Auth.Username != "alt-user" {
		t.Errorf("Auth.Username = %q, want %q", cfg.Auth.Username, "alt-user")
	}
	if !cfg.Features.DebugMode {
		t.Error("Features.DebugMode should be true")
	}
}

func TestLoad_EnvOverridesFileAPIKey(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := map[string]interface{}{
		"gemini": map[string]string{
			"api_key": "file-key",
			"model":   "gemini-2.5-flash",
		},
	}

	data, _ := json.Marshal(testConfig)
	os.WriteFile(configPath, data, 0644)

	// Set env var - should override file
	envKey := "env-api-key-override"
	os.Setenv("GEMINI_API_KEY", envKey)
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gemini.APIKey != envKey {
		t.Errorf("Gemini.APIKey = %q, want %q (env override)", cfg.Gemini.APIKey, envKey)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	os.WriteFile(configPath, []byte("{ invalid json }"), 0644)

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() should return error for invalid JSON")
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Only override server port; everything else keeps defaults
	partialConfig := map[string]interface{}{
		"server": map[string]interface{}{
			"port": 3000,
		},
	}

	data, _ := json.Marshal(partialConfig)
	os.WriteFile(configPath, data, 0644)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Auth.Username != "synk28h" {
		t.Errorf("Auth.Username = %q, want default synk28h", cfg.Auth.Username)
	}
}

// =============================================================================
// Save Config Tests
// =============================================================================

func TestSave_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.json")

	cfg := Default()
	cfg.DataDir = tmpDir
	cfg.Server.Port = 9999

	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to unmarshal saved config: %v", err)
	}

	if loaded.Server.Port != 9999 {
		t.Errorf("saved Server.Port = %d, want 9999", loaded.Server.Port)
	}
}

func TestSave_DoesNotSaveAPIKey(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	cfg := Default()
	cfg.Gemini.APIKey = "super-secret-key"

	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, _ := os.ReadFile(configPath)

	if strings.Contains(string(data), "super-secret-key") {
		t.Error("API key should not be saved to file")
	}

	var loaded Config
	json.Unmarshal(data, &loaded)
	if loaded.Gemini.APIKey != "" {
		t.Errorf("saved Gemini.APIKey = %q, want empty string", loaded.Gemini.APIKey)
	}
}

func TestSave_OriginalConfigUnchanged(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	cfg := Default()
	cfg.Gemini.APIKey = "my-secret-key"

	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if cfg.Gemini.APIKey != "my-secret-key" {
		t.Errorf("original config API key was modified: got %q", cfg.Gemini.APIKey)
	}
}

func TestSave_FilePermissions(t *testing.T) {
	if os.Getenv("OS") == "Windows_NT" {
		t.Skip("Skipping permission test on Windows")
	}

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	cfg := Default()
	cfg.Save(configPath)

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("failed to stat config file: %v", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}

// =============================================================================
// Integration Tests
// =============================================================================

func TestLoadAndSave_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	original := Default()
	original.DataDir = tmpDir
	original.Server.Port = 5000
	original.Features.DebugMode = true

	if err := original.Save(configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Server.Port != original.Server.Port {
		t.Errorf("loaded Server.Port = %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if loaded.Features.DebugMode != original.Features.DebugMode {
		t.Errorf("loaded Features.DebugMode = %v, want %v", loaded.Features.DebugMode, original.Features.DebugMode)
	}
}
