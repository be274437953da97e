// Package envdiff renders line diffs between two versions of an env file.
package envdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Lines returns a line-oriented diff of before and after.
//
// Every output line starts with "+ " for inserted lines, "- " for deleted
// lines or "  " for unchanged ones, and carries console tags for coloring.
// Identical inputs give an empty string.
func Lines(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix, tag := "  ", ""
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, tag = "+ ", "{{_DiffInsert_}}"
		case diffmatchpatch.DiffDelete:
			prefix, tag = "- ", "{{_DiffDelete_}}"
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(tag)
			sb.WriteString(prefix)
			sb.WriteString(line)
			if tag != "" {
				sb.WriteString("{{|-|}}")
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}
