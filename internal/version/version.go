package version

import (
	"os"
	"path/filepath"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "EnvKit"

// CommandName is the name of the executable command (e.g., "envkit").
// It is initialized dynamically from the executable filename.
var CommandName = "envkit"

// Version is the current version of the application.
// This is intended to be overwritten at build time using:
// -ldflags "-X EnvKit/internal/version.Version=v1.YYYYMMDD.N"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	exePath := os.Args[0]
	baseName := filepath.Base(exePath)
	ext := filepath.Ext(baseName)
	CommandName = strings.TrimSuffix(baseName, ext)

	// Fallback for dev runs and test binaries
	if strings.EqualFold(CommandName, ApplicationName) || strings.EqualFold(CommandName, "main") || strings.HasSuffix(baseName, ".test") {
		CommandName = "envkit"
	}
}
