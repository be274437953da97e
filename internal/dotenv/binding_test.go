package dotenv

import (
	"testing"
)

func collect(text string) []Binding {
	var out []Binding
	s := ParseString(text)
	for s.Next() {
		out = append(out, s.Binding())
	}
	return out
}

func TestParseStringSingleBinding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		value string
	}{
		{"plain", "a=b", "a", "b"},
		{"trailing newline", "a=b\n", "a", "b"},
		{"spaces around", "  a  =  b  ", "a", "b"},
		{"export", "export a=b", "a", "b"},
		{"empty value", "a=", "a", ""},
		{"no value", "a", "a", "<nil>"},
		{"inline comment", "a=b # comment", "a", "b"},
		{"hash without space", "a=b#c", "a", "b#c"},
		{"single quoted", "a='b c'", "a", "b c"},
		{"single quoted escape", `a='b\'c\\d\n'`, "a", `b'c\d\n`},
		{"double quoted escapes", `a="b\tc\nd\"e"`, "a", "b\tc\nd\"e"},
		{"double quoted multiline", "a=\"b\nc\"", "a", "b\nc"},
		{"quoted with comment", `a="b" # c`, "a", "b"},
		{"quoted key", "'a b'=c", "a b", "c"},
		{"unicode", "a=à", "a", "à"},
		{"leading nbsp", "\u00a0C=1", "C", "1"},
		{"vertical tabs", "\vA=1\v", "A", "1"},
		{"nbsp before comment", "A=1\u00a0# note", "A", "1"},
		{"ideographic space around equals", "A\u3000=\u30001", "A", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tt.input)
			if len(got) != 1 {
				t.Fatalf("got %d bindings, want 1: %+v", len(got), got)
			}
			b := got[0]
			if b.Error {
				t.Fatalf("unexpected error binding for %q", tt.input)
			}
			if deref(b.Key) != tt.key {
				t.Errorf("key = %q, want %q", deref(b.Key), tt.key)
			}
			if deref(b.Value) != tt.value {
				t.Errorf("value = %q, want %q", deref(b.Value), tt.value)
			}
			if b.Original.String != tt.input {
				t.Errorf("original = %q, want %q", b.Original.String, tt.input)
			}
			if b.Original.Line != 1 {
				t.Errorf("line = %d, want 1", b.Original.Line)
			}
		})
	}
}

func TestParseStringComments(t *testing.T) {
	for _, input := range []string{"# comment", "   # indented", "\n", "\n\n"} {
		got := collect(input)
		if len(got) != 1 {
			t.Fatalf("%q: got %d bindings, want 1", input, len(got))
		}
		if got[0].HasKey() || got[0].Error {
			t.Errorf("%q: got %+v, want a blank binding", input, got[0])
		}
		if got[0].Original.String != input {
			t.Errorf("%q: original = %q", input, got[0].Original.String)
		}
	}
}

func TestParseStringMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		original string
	}{
		{"unclosed double quote", `a="b`, `a="b`},
		{"unclosed single quote", "a='b\nc=d", "a='b\n"},
		{"space in key", "a b=c\n", "a b=c\n"},
		{"junk after quote", `a="b"c`, `a="b"c`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tt.input)
			if len(got) == 0 || !got[0].Error {
				t.Fatalf("got %+v, want an error binding first", got)
			}
			if got[0].HasKey() {
				t.Errorf("error binding has key %q", *got[0].Key)
			}
			if got[0].Original.String != tt.original {
				t.Errorf("original = %q, want %q", got[0].Original.String, tt.original)
			}
		})
	}
}

func TestParseStringRecoversAfterError(t *testing.T) {
	got := collect("a=1\nb c\nd=4\n")
	if len(got) != 3 {
		t.Fatalf("got %d bindings, want 3", len(got))
	}
	if !got[1].Error || got[1].Original.Line != 2 {
		t.Errorf("second binding = %+v, want an error on line 2", got[1])
	}
	if !got[2].KeyIs("d") || deref(got[2].Value) != "4" {
		t.Errorf("third binding = %+v, want d=4", got[2])
	}
}

func TestParseStringLineNumbers(t *testing.T) {
	text := "a=1\r\nb=\"x\ny\"\n\n# note\rc=3\n"
	var lines []int
	var keys []string
	for _, b := range collect(text) {
		if b.HasKey() {
			keys = append(keys, *b.Key)
			lines = append(lines, b.Original.Line)
		}
	}
	wantKeys := []string{"a", "b", "c"}
	wantLines := []int{1, 2, 6}
	if len(keys) != len(wantKeys) {
		t.Fatalf("keys = %v, want %v", keys, wantKeys)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] || lines[i] != wantLines[i] {
			t.Errorf("binding %d = %s@%d, want %s@%d", i, keys[i], lines[i], wantKeys[i], wantLines[i])
		}
	}
}

func TestParseStringPreservesText(t *testing.T) {
	text := "# header\nexport A='1'  # one\n\n  B = \"two\"\r\nbad line\nC\n"
	var joined string
	for _, b := range collect(text) {
		joined += b.Original.String
	}
	if joined != text {
		t.Errorf("concatenated originals = %q, want %q", joined, text)
	}
}
