package config

import (
	"EnvKit/internal/constants"
	"EnvKit/internal/paths"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Env    EnvConfig    `toml:"env"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`

	// These are helper fields for runtime use, not saved to TOML
	LogFile string `toml:"-"`
	Path    string `toml:"-"`
}

// EnvConfig holds the defaults used when reading and writing env files.
type EnvConfig struct {
	File        string `toml:"file" validate:"required"`
	QuoteMode   string `toml:"quote_mode" validate:"oneof=always auto never"`
	Export      bool   `toml:"export"`
	Interpolate bool   `toml:"interpolate"`
	Override    bool   `toml:"override"`
	Encoding    string `toml:"encoding"`
}

// OutputConfig holds settings for printed values.
type OutputConfig struct {
	Format string `toml:"format" validate:"oneof=simple json shell export yaml"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"oneof=trace debug info notice warn error"`
}

// Default returns the configuration used when no config file exists.
func Default() AppConfig {
	return AppConfig{
		Env: EnvConfig{
			File:        constants.EnvFileName,
			QuoteMode:   "always",
			Interpolate: true,
			Override:    true,
			Encoding:    "utf-8",
		},
		Output: OutputConfig{
			Format: constants.FormatSimple,
		},
		Log: LogConfig{
			File:  "${XDG_STATE_HOME}/envkit/" + constants.LogFileName,
			Level: "notice",
		},
	}
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome (or the state override)
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
//
// Any other name is looked up in the process environment.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_STATE_HOME":
			if paths.StateHomeOverride != "" {
				return filepath.Dir(paths.StateHomeOverride)
			}
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// Validate checks the config values against their allowed sets.
func (c AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config value %q for %s (allowed: %s)", fe.Value(), strings.ToLower(fe.Namespace()), fe.Param())
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// LoadAppConfig reads the configuration file and returns the configuration.
// When no file exists the defaults are written to the default location.
func LoadAppConfig() (AppConfig, error) {
	conf := Default()
	path := paths.GetConfigFilePath()
	conf.Path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &conf); err != nil {
			return conf, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Saving is best effort, a read-only config dir is not fatal
		_ = SaveAppConfig(conf)
	default:
		return conf, err
	}

	conf.Env.QuoteMode = strings.ToLower(conf.Env.QuoteMode)
	conf.Output.Format = strings.ToLower(conf.Output.Format)
	conf.Log.Level = strings.ToLower(conf.Log.Level)
	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("%s: %w", path, err)
	}

	conf.LogFile = ExpandVariables(conf.Log.File)
	return conf, nil
}

// SaveAppConfig writes the configuration to envkit.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// String renders the configuration as TOML.
func (c AppConfig) String() string {
	data, err := toml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
