package console

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// semanticRegex matches {{_content_}} format for semantic tags
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}`)

	// directRegex matches {{|content|}} format for direct style codes
	directRegex = regexp.MustCompile(`\{\{\|([A-Za-z0-9_:\-#]+)\|\}\}`)

	// ansiRegex matches CSI escape sequences
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
)

// ExpandTags converts semantic tags to their {{|style|}} definitions.
// Unknown semantic tags are dropped.
func ExpandTags(text string) string {
	ensureMaps()
	return semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		content := strings.ToLower(match[3 : len(match)-3])
		if tag, ok := semanticMap[content]; ok {
			return tag
		}
		return ""
	})
}

// ToANSI converts semantic and direct tags to ANSI escape sequences
// - {{_Tag_}} : Semantic lookup -> ANSI
// - {{|code|}} : Direct fg:bg:flags style -> ANSI
//
// When output is not a terminal all tags are stripped instead.
func ToANSI(text string) string {
	if !isTTYGlobal {
		return Strip(text)
	}
	text = ExpandTags(text)
	return directRegex.ReplaceAllStringFunc(text, func(match string) string {
		return parseStyleCodeToANSI(match[3 : len(match)-3])
	})
}

// Strip removes all semantic and direct tags from text, as well as ANSI escape sequences
func Strip(text string) string {
	text = semanticRegex.ReplaceAllString(text, "")
	text = directRegex.ReplaceAllString(text, "")
	return StripANSI(text)
}

// StripANSI removes ANSI escape sequences from text.
func StripANSI(text string) string {
	return ansiRegex.ReplaceAllString(text, "")
}

// Parse is a convenience alias for ToANSI
func Parse(text string) string {
	return ToANSI(text)
}

// Sprintf formats according to a format specifier and returns the string with ANSI codes
func Sprintf(format string, a ...any) string {
	return ToANSI(fmt.Sprintf(format, a...))
}

// Println prints a line with ANSI color codes parsed
func Println(a ...any) {
	fmt.Println(ToANSI(fmt.Sprint(a...)))
}
