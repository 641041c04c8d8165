package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	tmpHome, err := os.MkdirTemp("", "partial-edit-test-home")
	if err != nil {
		t.Fatalf("Failed to create temp home directory: %v", err)
	}
	defer os.RemoveAll(tmpHome)

	origHome := os.Getenv("HOME")
	t.Cleanup(func() {
		os.Setenv("HOME", origHome)
	})
	os.Setenv("HOME", tmpHome)

	configDir := filepath.Join(tmpHome, DefaultConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Model != DefaultModel {
		t.Errorf("Expected Model=%s, got %s", DefaultModel, cfg.Model)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("Expected BaseURL=%s, got %s", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.APITimeout != DefaultAPITimeout {
		t.Errorf("Expected APITimeout=%d, got %d", DefaultAPITimeout, cfg.APITimeout)
	}
	if cfg.GitAdd {
		t.Errorf("Expected GitAdd=false by default")
	}
}

func TestLoadWithAPIKey(t *testing.T) {
	tmpHome, err := os.MkdirTemp("", "partial-edit-test-home")
	if err != nil {
		t.Fatalf("Failed to create temp home directory: %v", err)
	}
	defer os.RemoveAll(tmpHome)

	origHome := os.Getenv("HOME")
	origAPIKey := os.Getenv("OPENAI_API_KEY")
	t.Cleanup(func() {
		os.Setenv("HOME", origHome)
		os.Setenv("OPENAI_API_KEY", origAPIKey)
	})
	os.Setenv("HOME", tmpHome)

	testAPIKey := "test-api-key"
	os.Setenv("OPENAI_API_KEY", testAPIKey)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIKey != testAPIKey {
		t.Errorf("Expected APIKey=%s, got %s", testAPIKey, cfg.APIKey)
	}
}

func TestLoadWithGitAddEnvVar(t *testing.T) {
	tmpHome, err := os.MkdirTemp("", "partial-edit-test-home")
	if err != nil {
		t.Fatalf("Failed to create temp home directory: %v", err)
	}
	defer os.RemoveAll(tmpHome)

	origHome := os.Getenv("HOME")
	origGitAdd := os.Getenv("PARTIALEDIT_GIT_ADD")
	t.Cleanup(func() {
		os.Setenv("HOME", origHome)
		os.Setenv("PARTIALEDIT_GIT_ADD", origGitAdd)
	})
	os.Setenv("HOME", tmpHome)
	os.Setenv("PARTIALEDIT_GIT_ADD", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.GitAdd {
		t.Errorf("Expected GitAdd=true from PARTIALEDIT_GIT_ADD")
	}
}
