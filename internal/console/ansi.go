package console

import (
	"strings"
)

// parseStyleCodeToANSI parses fg:bg:flags format and returns ANSI codes
func parseStyleCodeToANSI(content string) string {
	ensureMaps()
	if content == "-" {
		return CodeReset
	}

	parts := strings.Split(content, ":")
	var codes strings.Builder

	// Part 0: Foreground color
	if len(parts) > 0 && parts[0] != "" && parts[0] != "-" {
		codes.WriteString(colorCode(parts[0], false))
	}

	// Part 1: Background color
	if len(parts) > 1 && parts[1] != "" && parts[1] != "-" {
		codes.WriteString(colorCode(parts[1], true))
	}

	// Part 2: Flags, one character each
	if len(parts) > 2 {
		for _, flag := range parts[2] {
			if code, ok := ansiMap[string(flag)]; ok {
				codes.WriteString(code)
			}
		}
	}

	return codes.String()
}

// colorCode resolves a named or hex color for the foreground or background.
func colorCode(name string, background bool) string {
	if strings.HasPrefix(name, "#") {
		return wrapSequence(preferredProfile.Color(name).Sequence(background))
	}
	key := strings.ToLower(name)
	if background {
		key += "bg"
	}
	return ansiMap[key]
}

// wrapSequence ensures a color sequence part is wrapped in CSI delimiters
func wrapSequence(seq string) string {
	if seq == "" {
		return ""
	}
	if strings.HasPrefix(seq, "\x1b[") {
		return seq
	}
	return "\033[" + seq + "m"
}
