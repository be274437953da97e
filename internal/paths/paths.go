package paths

import (
	"EnvKit/internal/constants"
	"EnvKit/internal/version"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

var (
	// ConfigFileOverride allows overriding the config file location for tests.
	ConfigFileOverride string
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
)

// GetConfigFilePath returns the absolute path to the envkit.toml file.
// It places it in a subdirectory named after the application (e.g., ~/.config/envkit/envkit.toml).
// The ENVKIT_CONFIG variable takes precedence over the default location.
func GetConfigFilePath() string {
	if ConfigFileOverride != "" {
		return ConfigFileOverride
	}
	if p := os.Getenv("ENVKIT_CONFIG"); p != "" {
		return p
	}
	appName := strings.ToLower(version.ApplicationName)
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName, constants.AppTOMLFileName)
	}
	return filepath.Join(xdg.ConfigHome, appName, constants.AppTOMLFileName)
}

// GetConfigDir returns the absolute path to the envkit configuration directory.
func GetConfigDir() string {
	return filepath.Dir(GetConfigFilePath())
}

// GetStateDir returns the absolute path to the envkit state directory.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return StateHomeOverride
	}
	appName := strings.ToLower(version.ApplicationName)
	return filepath.Join(xdg.StateHome, appName)
}

// GetLogFilePath returns the default location of the application log.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}
