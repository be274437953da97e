package config

import (
	"EnvKit/internal/paths"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "envkit", "envkit.toml")
	paths.ConfigFileOverride = path
	paths.StateHomeOverride = filepath.Join(dir, "state", "envkit")
	t.Cleanup(func() {
		paths.ConfigFileOverride = ""
		paths.StateHomeOverride = ""
	})
	return path
}

func TestLoadWritesDefaults(t *testing.T) {
	path := useTempConfig(t)

	conf, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}
	if conf.Env.File != ".env" || conf.Env.QuoteMode != "always" || !conf.Env.Interpolate {
		t.Errorf("unexpected defaults: %+v", conf.Env)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults were not saved: %v", err)
	}
	if !strings.HasSuffix(conf.LogFile, filepath.Join("state", "envkit", "envkit.log")) {
		t.Errorf("LogFile = %q", conf.LogFile)
	}
}

func TestSaveAndLoad(t *testing.T) {
	useTempConfig(t)

	conf := Default()
	conf.Env.File = "config/.env.local"
	conf.Env.QuoteMode = "auto"
	conf.Env.Export = true
	conf.Output.Format = "json"

	if err := SaveAppConfig(conf); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}
	if loaded.Env.File != "config/.env.local" {
		t.Errorf("Expected File 'config/.env.local', got '%s'", loaded.Env.File)
	}
	if loaded.Env.QuoteMode != "auto" || !loaded.Env.Export {
		t.Errorf("unexpected env config: %+v", loaded.Env)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("Expected Format 'json', got '%s'", loaded.Output.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"quote mode", "[env]\nfile = '.env'\nquote_mode = 'sometimes'\n"},
		{"format", "[output]\nformat = 'xml'\n"},
		{"level", "[log]\nlevel = 'loud'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := useTempConfig(t)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tt.toml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadAppConfig(); err == nil {
				t.Errorf("LoadAppConfig() accepted %q", tt.toml)
			}
		})
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("ENVKIT_TEST_DIR", "/tmp/envkit")
	if got := ExpandVariables("${ENVKIT_TEST_DIR}/x.log"); got != "/tmp/envkit/x.log" {
		t.Errorf("ExpandVariables() = %q", got)
	}
}
