package dotenv

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
)

// Original is the verbatim source text of one binding.
type Original struct {
	String string
	Line   int
}

// Binding is one parsed logical line of an env file.
// Key is nil for blank lines, comments and unparsable lines.
// Value is nil when the key has no "=value" segment.
type Binding struct {
	Key      *string
	Value    *string
	Original Original
	Error    bool
}

// HasKey reports whether the binding declares a key.
func (b Binding) HasKey() bool {
	return b.Key != nil
}

// KeyIs reports whether the binding declares exactly key.
func (b Binding) KeyIs(key string) bool {
	return b.Key != nil && *b.Key == key
}

// hspace is every whitespace rune except \r and \n: the ASCII controls
// \t \v \f and \x1c-\x1f, NEL, and the Unicode separators (including NBSP).
const hspace = `\t\v\f \x{1c}-\x{1f}\x{85}\p{Z}`

var (
	reMultilineWhitespace = regexp.MustCompile(`^[\r\n` + hspace + `]*`)
	reWhitespace          = regexp.MustCompile(`^[` + hspace + `]*`)
	reExport              = regexp.MustCompile(`^(?:export[` + hspace + `]+)?`)
	reSingleQuotedKey     = regexp.MustCompile(`^'([^']+)'`)
	reUnquotedKey         = regexp.MustCompile(`^([^=#\r\n` + hspace + `]+)`)
	reEqualSign           = regexp.MustCompile(`^(=[` + hspace + `]*)`)
	reSingleQuotedValue   = regexp.MustCompile(`^'((?:\\'|[^'])*)'`)
	reDoubleQuotedValue   = regexp.MustCompile(`^"((?:\\"|[^"])*)"`)
	reUnquotedValue       = regexp.MustCompile(`^([^\r\n]*)`)
	reComment             = regexp.MustCompile(`^(?:[` + hspace + `]*#[^\r\n]*)?`)
	reEndOfLine           = regexp.MustCompile(`^[` + hspace + `]*(?:\r\n|\n|\r|$)`)
	reRestOfLine          = regexp.MustCompile(`^[^\r\n]*(?:\r\n|\r|\n)?`)
	reInlineComment       = regexp.MustCompile(`[\r\n` + hspace + `]+#.*`)
	reDoubleQuoteEscapes  = regexp.MustCompile(`\\[\\'"abfnrtv]`)
	reSingleQuoteEscapes  = regexp.MustCompile(`\\[\\']`)
)

// isSpace matches the runes in hspace plus line breaks.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

var escapeReplacements = map[string]string{
	`\\`: `\`,
	`\'`: `'`,
	`\"`: `"`,
	`\a`: "\a",
	`\b`: "\b",
	`\f`: "\f",
	`\n`: "\n",
	`\r`: "\r",
	`\t`: "\t",
	`\v`: "\v",
}

// errNoMatch aborts the current binding; the reader then skips to the end of the line.
type errNoMatch struct {
	pattern string
	line    int
}

func (e errNoMatch) Error() string {
	return fmt.Sprintf("line %d: no match for %s", e.line, e.pattern)
}

// reader walks the source text keeping a byte offset and a line counter.
type reader struct {
	text     string
	pos      int
	line     int
	markPos  int
	markLine int
}

func (r *reader) hasNext() bool {
	return r.pos < len(r.text)
}

func (r *reader) setMark() {
	r.markPos = r.pos
	r.markLine = r.line
}

func (r *reader) marked() Original {
	return Original{String: r.text[r.markPos:r.pos], Line: r.markLine}
}

func (r *reader) peek() string {
	if r.pos >= len(r.text) {
		return ""
	}
	return r.text[r.pos : r.pos+1]
}

// readRegex matches re at the current position, advances past the match and
// returns its submatches.
func (r *reader) readRegex(re *regexp.Regexp) ([]string, error) {
	m := re.FindStringSubmatch(r.text[r.pos:])
	if m == nil {
		return nil, errNoMatch{pattern: re.String(), line: r.line}
	}
	r.pos += len(m[0])
	r.line += countNewlines(m[0])
	return m[1:], nil
}

// countNewlines counts \r\n, \n and lone \r as one line break each.
func countNewlines(s string) int {
	return strings.Count(s, "\n") + strings.Count(s, "\r") - strings.Count(s, "\r\n")
}

func decodeEscapes(re *regexp.Regexp, s string) string {
	return re.ReplaceAllStringFunc(s, func(match string) string {
		if rep, ok := escapeReplacements[match]; ok {
			return rep
		}
		return match
	})
}

func (r *reader) parseKey() (*string, error) {
	switch r.peek() {
	case "#":
		return nil, nil
	case "'":
		m, err := r.readRegex(reSingleQuotedKey)
		if err != nil {
			return nil, err
		}
		return &m[0], nil
	default:
		m, err := r.readRegex(reUnquotedKey)
		if err != nil {
			return nil, err
		}
		return &m[0], nil
	}
}

func (r *reader) parseValue() (string, error) {
	switch r.peek() {
	case "'":
		m, err := r.readRegex(reSingleQuotedValue)
		if err != nil {
			return "", err
		}
		return decodeEscapes(reSingleQuoteEscapes, m[0]), nil
	case `"`:
		m, err := r.readRegex(reDoubleQuotedValue)
		if err != nil {
			return "", err
		}
		return decodeEscapes(reDoubleQuoteEscapes, m[0]), nil
	case "", "\n", "\r":
		return "", nil
	default:
		m, err := r.readRegex(reUnquotedValue)
		if err != nil {
			return "", err
		}
		v := reInlineComment.ReplaceAllString(m[0], "")
		return strings.TrimRightFunc(v, isSpace), nil
	}
}

func (r *reader) parseBinding() Binding {
	r.setMark()
	b, err := r.tryBinding()
	if err == nil {
		return b
	}
	// Cannot fail: the pattern matches the empty string.
	_, _ = r.readRegex(reRestOfLine)
	return Binding{Original: r.marked(), Error: true}
}

func (r *reader) tryBinding() (Binding, error) {
	if _, err := r.readRegex(reMultilineWhitespace); err != nil {
		return Binding{}, err
	}
	if !r.hasNext() {
		return Binding{Original: r.marked()}, nil
	}
	if _, err := r.readRegex(reExport); err != nil {
		return Binding{}, err
	}
	key, err := r.parseKey()
	if err != nil {
		return Binding{}, err
	}
	if _, err := r.readRegex(reWhitespace); err != nil {
		return Binding{}, err
	}
	var value *string
	if r.peek() == "=" {
		if _, err := r.readRegex(reEqualSign); err != nil {
			return Binding{}, err
		}
		v, err := r.parseValue()
		if err != nil {
			return Binding{}, err
		}
		value = &v
	}
	if _, err := r.readRegex(reComment); err != nil {
		return Binding{}, err
	}
	if _, err := r.readRegex(reEndOfLine); err != nil {
		return Binding{}, err
	}
	return Binding{Key: key, Value: value, Original: r.marked()}, nil
}

// Stream produces bindings one at a time, in file order.
// It is not restartable; build a new Stream to read the source again.
//
//	s := dotenv.ParseString(text)
//	for s.Next() {
//		b := s.Binding()
//		...
//	}
type Stream struct {
	r   reader
	cur Binding
}

// NewStream reads all of r and returns a Stream over its text.
func NewStream(r io.Reader) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading env source: %w", err)
	}
	return ParseString(string(data)), nil
}

// ParseString returns a Stream over text.
func ParseString(text string) *Stream {
	return &Stream{r: reader{text: text, line: 1}}
}

// Next advances to the next binding. It returns false at the end of the text.
func (s *Stream) Next() bool {
	if !s.r.hasNext() {
		return false
	}
	s.cur = s.r.parseBinding()
	return true
}

// Binding returns the binding produced by the last call to Next.
func (s *Stream) Binding() Binding {
	return s.cur
}
