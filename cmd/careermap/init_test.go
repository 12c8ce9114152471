package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nao1215/careermap/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	if cmd.Use != "init" {
		t.Errorf("expected use 'init', got %q", cmd.Use)
	}

	output := cmd.Flags().Lookup("output")
	if output == nil {
		t.Fatal("expected output flag")
	}
	if output.Shorthand != "o" || output.DefValue != ".careermap" {
		t.Errorf("unexpected output flag %q/%q", output.Shorthand, output.DefValue)
	}

	force := cmd.Flags().Lookup("force")
	if force == nil {
		t.Fatal("expected force flag")
	}
	if force.Shorthand != "f" || force.DefValue != "false" {
		t.Errorf("unexpected force flag %q/%q", force.Shorthand, force.DefValue)
	}
}

func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewInitCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates config file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ".careermap")
		out, err := runInit(t, "-o", outputPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, outputPath) {
			t.Errorf("expected output to name the file, got %q", out)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		for _, section := range []string{"site:", "crawl:", "api:"} {
			if !strings.Contains(string(content), section) {
				t.Errorf("expected config to contain %q", section)
			}
		}
	})

	t.Run("fails if file exists without force", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ".careermap")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := runInit(t, "-o", outputPath)
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected 'already exists' error, got %v", err)
		}
	})

	t.Run("overwrites file with force flag", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ".careermap")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		if _, err := runInit(t, "-o", outputPath, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(content) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "subdir", "nested", ".careermap")
		if _, err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			t.Error("expected config file to be created in nested directory")
		}
	})

	t.Run("file has correct permissions", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("skipping permission test on Windows")
		}

		outputPath := filepath.Join(t.TempDir(), ".careermap")
		if _, err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}

// TestConfigTemplate tests that the embedded template loads and matches the defaults.
func TestConfigTemplate(t *testing.T) {
	t.Parallel()

	content, err := configTemplate.ReadFile("templates/careermap.yaml")
	if err != nil {
		t.Fatalf("failed to read template: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".careermap")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatal(err)
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}

	cfg := config.NewConfig()
	if err := cf.Apply(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := config.NewConfig()
	if cfg.RootURL != defaults.RootURL || cfg.BaseOrigin != defaults.BaseOrigin {
		t.Errorf("expected template site to match defaults, got %q and %q", cfg.RootURL, cfg.BaseOrigin)
	}
	if cfg.OutputDir != defaults.OutputDir || cfg.Delay != defaults.Delay {
		t.Errorf("expected template crawl settings to match defaults, got %q and %v", cfg.OutputDir, cfg.Delay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected template config to validate: %v", err)
	}
}
