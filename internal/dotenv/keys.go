package dotenv

import (
	"EnvKit/internal/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// ErrInvalidQuoteMode is returned for a quote mode other than always, auto or never.
var ErrInvalidQuoteMode = errors.New("unknown quote mode")

// QuoteMode decides how SetKey quotes values.
type QuoteMode string

const (
	// QuoteAlways wraps every value in single quotes.
	QuoteAlways QuoteMode = "always"
	// QuoteAuto quotes values that are not purely alphanumeric.
	QuoteAuto QuoteMode = "auto"
	// QuoteNever writes values as given.
	QuoteNever QuoteMode = "never"
)

// Validate returns ErrInvalidQuoteMode for unknown modes.
func (m QuoteMode) Validate() error {
	switch m {
	case QuoteAlways, QuoteAuto, QuoteNever:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidQuoteMode, string(m))
}

// ParseQuoteMode converts a name into a QuoteMode.
func ParseQuoteMode(s string) (QuoteMode, error) {
	m := QuoteMode(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// KeyResult reports the outcome of a key mutation.
type KeyResult struct {
	OK    bool
	Key   string
	Value string
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// FormatLine builds the line SetKey writes, including the trailing newline.
func FormatLine(key, value string, mode QuoteMode, export bool) string {
	quote := mode == QuoteAlways || (mode == QuoteAuto && !isAlnum(value))

	out := value
	if quote {
		out = "'" + strings.ReplaceAll(value, "'", `\'`) + "'"
	}
	if export {
		return fmt.Sprintf("export %s=%s\n", key, out)
	}
	return fmt.Sprintf("%s=%s\n", key, out)
}

// SetKey adds or updates key in the env file at path.
//
// The binding for key is replaced in place; every other line, including
// comments and malformed lines, is copied byte for byte. When key is not
// present the new line is appended, after a line break if the file does not
// end with one. A missing file is created.
func SetKey(ctx context.Context, path, key, value string, mode QuoteMode, export bool) (KeyResult, error) {
	if err := mode.Validate(); err != nil {
		return KeyResult{}, err
	}

	lineOut := FormatLine(key, value, mode, export)

	err := Rewrite(ctx, path, func(src io.Reader, dst io.Writer) error {
		s, err := NewStream(src)
		if err != nil {
			return err
		}
		replaced := false
		// Starts true so an empty file gets no leading newline.
		endsWithNewline := true
		for s.Next() {
			b := s.Binding()
			warnInvalid(ctx, b)
			out := b.Original.String
			if b.KeyIs(key) {
				out = lineOut
				replaced = true
			}
			if out != "" {
				endsWithNewline = strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\r")
			}
			if _, err := io.WriteString(dst, out); err != nil {
				return err
			}
		}
		if replaced {
			return nil
		}
		if !endsWithNewline {
			if _, err := io.WriteString(dst, "\n"); err != nil {
				return err
			}
		}
		_, err = io.WriteString(dst, lineOut)
		return err
	})
	if err != nil {
		return KeyResult{}, err
	}

	logger.Info(ctx, "Set '{{_Var_}}%s{{|-|}}' in '{{_File_}}%s{{|-|}}'.", key, path)
	return KeyResult{OK: true, Key: key, Value: value}, nil
}

// UnsetKey removes key from the env file at path.
//
// Unlike SetKey it needs an existing file. A missing file or a missing key is
// not an error: it is logged and reported through KeyResult.OK.
func UnsetKey(ctx context.Context, path, key string, mode QuoteMode) (KeyResult, error) {
	if err := mode.Validate(); err != nil {
		return KeyResult{}, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn(ctx, "Can't delete from '{{_File_}}%s{{|-|}}' - it doesn't exist.", path)
		return KeyResult{Key: key}, nil
	}

	removed := false
	err := Rewrite(ctx, path, func(src io.Reader, dst io.Writer) error {
		s, err := NewStream(src)
		if err != nil {
			return err
		}
		for s.Next() {
			b := s.Binding()
			warnInvalid(ctx, b)
			if b.KeyIs(key) {
				removed = true
				continue
			}
			if _, err := io.WriteString(dst, b.Original.String); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return KeyResult{}, err
	}

	if !removed {
		logger.Warn(ctx, "Key '{{_Var_}}%s{{|-|}}' not removed from '{{_File_}}%s{{|-|}}' - key doesn't exist.", key, path)
		return KeyResult{Key: key}, nil
	}

	logger.Info(ctx, "Removed '{{_Var_}}%s{{|-|}}' from '{{_File_}}%s{{|-|}}'.", key, path)
	return KeyResult{OK: true, Key: key}, nil
}

// GetKey returns the resolved value of key in the env file at path.
// A missing key is logged and reported as not found.
func GetKey(ctx context.Context, path, key string, opts ...Option) (*string, bool, error) {
	opts = append([]Option{WithVerbose(true)}, opts...)
	return New(path, opts...).Get(ctx, key)
}
