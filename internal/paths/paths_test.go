package paths

import (
	"path/filepath"
	"testing"
)

func TestOverrides(t *testing.T) {
	dir := t.TempDir()

	StateHomeOverride = dir
	ConfigFileOverride = filepath.Join(dir, "custom.toml")
	defer func() {
		StateHomeOverride = ""
		ConfigFileOverride = ""
	}()

	if got := GetLogFilePath(); got != filepath.Join(dir, "envkit.log") {
		t.Errorf("GetLogFilePath() = %q", got)
	}
	if got := GetConfigDir(); got != dir {
		t.Errorf("GetConfigDir() = %q, want %q", got, dir)
	}
}

func TestConfigEnvVariable(t *testing.T) {
	want := filepath.Join(t.TempDir(), "from-env.toml")
	t.Setenv("ENVKIT_CONFIG", want)
	if got := GetConfigFilePath(); got != want {
		t.Errorf("GetConfigFilePath() = %q, want %q", got, want)
	}
}
