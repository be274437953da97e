package console

import "strings"

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Modifiers
	CodeBold      = "\033[1m"
	CodeDim       = "\033[2m"
	CodeUnderline = "\033[4m"
	CodeBlink     = "\033[5m"
	CodeReverse   = "\033[7m"

	CodeBoldOff      = "\033[22m"
	CodeUnderlineOff = "\033[24m"
	CodeBlinkOff     = "\033[25m"
	CodeReverseOff   = "\033[27m"

	// Foreground
	CodeBlack   = "\033[30m"
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	// Background
	CodeBlackBg   = "\033[40m"
	CodeRedBg     = "\033[41m"
	CodeGreenBg   = "\033[42m"
	CodeYellowBg  = "\033[43m"
	CodeBlueBg    = "\033[44m"
	CodeMagentaBg = "\033[45m"
	CodeCyanBg    = "\033[46m"
	CodeWhiteBg   = "\033[47m"
)

var (
	// semanticMap stores semantic tag -> direct style mappings (e.g., "file" -> "{{|cyan::B|}}")
	semanticMap map[string]string

	// ansiMap stores color/modifier names -> ANSI code mappings
	ansiMap map[string]string
)

// ensureMaps ensures color maps are built if they were missed by init
func ensureMaps() {
	if len(ansiMap) == 0 {
		BuildColorMap()
	}
}

// BuildColorMap initializes the ANSI code mappings and the default semantic tags.
func BuildColorMap() {
	ansiMap = map[string]string{
		"-":         CodeReset,
		"reset":     CodeReset,
		"black":     CodeBlack,
		"red":       CodeRed,
		"green":     CodeGreen,
		"yellow":    CodeYellow,
		"blue":      CodeBlue,
		"magenta":   CodeMagenta,
		"cyan":      CodeCyan,
		"white":     CodeWhite,
		"blackbg":   CodeBlackBg,
		"redbg":     CodeRedBg,
		"greenbg":   CodeGreenBg,
		"yellowbg":  CodeYellowBg,
		"bluebg":    CodeBlueBg,
		"magentabg": CodeMagentaBg,
		"cyanbg":    CodeCyanBg,
		"whitebg":   CodeWhiteBg,

		// Flag characters
		"b": CodeBoldOff,
		"B": CodeBold,
		"D": CodeDim,
		"u": CodeUnderlineOff,
		"U": CodeUnderline,
		"l": CodeBlinkOff,
		"L": CodeBlink,
		"r": CodeReverseOff,
		"R": CodeReverse,
	}

	semanticMap = map[string]string{
		"trace":                  "{{|blue|}}",
		"debug":                  "{{|blue|}}",
		"info":                   "{{|blue|}}",
		"notice":                 "{{|green|}}",
		"warn":                   "{{|yellow|}}",
		"error":                  "{{|red|}}",
		"fatal":                  "{{|white:red|}}",
		"fatalfooter":            "{{|-|}}",
		"traceheader":            "{{|red|}}",
		"tracefooter":            "{{|red|}}",
		"traceframenumber":       "{{|red|}}",
		"traceframelines":        "{{|red|}}",
		"tracesourcefile":        "{{|cyan::B|}}",
		"tracelinenumber":        "{{|yellow::B|}}",
		"tracefunction":          "{{|green::B|}}",
		"applicationname":        "{{|cyan::B|}}",
		"version":                "{{|cyan|}}",
		"file":                   "{{|cyan::B|}}",
		"folder":                 "{{|cyan::B|}}",
		"var":                    "{{|magenta|}}",
		"value":                  "{{|green|}}",
		"runningcommand":         "{{|green::B|}}",
		"failingcommand":         "{{|red|}}",
		"usercommand":            "{{|yellow::B|}}",
		"usercommanderror":       "{{|red::U|}}",
		"usercommanderrormarker": "{{|red|}}",
		"usagecommand":           "{{|yellow::B|}}",
		"usageoption":            "{{|yellow|}}",
		"usagefile":              "{{|cyan::B|}}",
		"usagevar":               "{{|magenta|}}",
		"diffinsert":             "{{|green|}}",
		"diffdelete":             "{{|red|}}",
	}
}

// RegisterSemanticTag registers a semantic tag with its direct style value
func RegisterSemanticTag(name, style string) {
	ensureMaps()
	semanticMap[strings.ToLower(name)] = style
}
