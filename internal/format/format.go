package format

import (
	"EnvKit/internal/constants"
	"EnvKit/internal/dotenv"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// unsafeShellChars matches anything that needs quoting in a POSIX shell word.
var unsafeShellChars = regexp.MustCompile(`[^\w@%+=:,./-]`)

// IsValid reports whether name is a known output format.
func IsValid(name string) bool {
	return slices.Contains(constants.Formats, name)
}

// ShellQuote returns s quoted for a POSIX shell.
// Safe words are returned as is; anything else is wrapped in single quotes.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !unsafeShellChars.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// Write renders vals to w in the named format.
// Keys keep their order of first definition.
func Write(w io.Writer, name string, vals *dotenv.Values) error {
	switch name {
	case "", constants.FormatSimple:
		return writeLines(w, vals, func(k, v string) string { return k + "=" + v })
	case constants.FormatShell:
		return writeLines(w, vals, func(k, v string) string { return k + "=" + ShellQuote(v) })
	case constants.FormatExport:
		return writeLines(w, vals, func(k, v string) string { return "export " + k + "=" + ShellQuote(v) })
	case constants.FormatJSON:
		return writeJSON(w, vals)
	case constants.FormatYAML:
		return writeYAML(w, vals)
	}
	return fmt.Errorf("unknown output format %q", name)
}

// String renders vals in the named format and returns the result.
func String(name string, vals *dotenv.Values) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, name, vals); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeLines(w io.Writer, vals *dotenv.Values, line func(k, v string) string) error {
	for k, v := range vals.All() {
		value := ""
		if v != nil {
			value = *v
		}
		if _, err := io.WriteString(w, line(k, value)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON writes an object whose members follow vals order.
// json.Marshal on a map would sort the keys.
func writeJSON(w io.Writer, vals *dotenv.Values) error {
	if vals.Len() == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	i := 0
	for k, v := range vals.All() {
		key, err := json.Marshal(k)
		if err != nil {
			return err
		}
		value, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		i++
		if i < vals.Len() {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeYAML(w io.Writer, vals *dotenv.Values) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for k, v := range vals.All() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if v != nil {
			valNode = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: *v}
		}
		doc.Content = append(doc.Content, keyNode, valNode)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
