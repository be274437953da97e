package constants

// File Names
const (
	EnvFileName     = ".env"
	AppTOMLFileName = "envkit.toml"
	LogFileName     = "envkit.log"
)

// Output formats accepted by --list
const (
	FormatSimple = "simple"
	FormatJSON   = "json"
	FormatShell  = "shell"
	FormatExport = "export"
	FormatYAML   = "yaml"
)

// Formats lists every output format in help order.
var Formats = []string{FormatSimple, FormatJSON, FormatShell, FormatExport, FormatYAML}
