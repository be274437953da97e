package dotenv

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		key    string
		value  string
		mode   QuoteMode
		export bool
		want   string
	}{
		{"KEY", "hello world", QuoteAlways, false, "KEY='hello world'\n"},
		{"A", "b", QuoteAlways, false, "A='b'\n"},
		{"A", "b", QuoteAuto, false, "A=b\n"},
		{"A", "b c", QuoteAuto, false, "A='b c'\n"},
		{"A", "", QuoteAuto, false, "A=''\n"},
		{"A", "b c", QuoteNever, false, "A=b c\n"},
		{"A", "it's", QuoteAlways, false, `A='it\'s'` + "\n"},
		{"A", "b", QuoteNever, true, "export A=b\n"},
	}
	for _, tt := range tests {
		if got := FormatLine(tt.key, tt.value, tt.mode, tt.export); got != tt.want {
			t.Errorf("FormatLine(%q, %q, %s, %v) = %q, want %q", tt.key, tt.value, tt.mode, tt.export, got, tt.want)
		}
	}
}

func TestSetKey(t *testing.T) {
	tests := []struct {
		name   string
		before string
		key    string
		value  string
		mode   QuoteMode
		want   string
	}{
		{"new file", "", "a", "b", QuoteAlways, "a='b'\n"},
		{"append", "x=1\n", "a", "b", QuoteAlways, "x=1\na='b'\n"},
		{"replace in place", "a=1\nx=2\n", "a", "b", QuoteNever, "a=b\nx=2\n"},
		{"replace every binding", "a=1\na=2\n", "a", "3", QuoteNever, "a=3\na=3\n"},
		{"no trailing newline", "x=1", "a", "b", QuoteAlways, "x=1\na='b'\n"},
		{"comment without trailing newline", "# c", "a", "b", QuoteAlways, "# c\na='b'\n"},
		{"carriage return ending", "x=1\r", "a", "b", QuoteAlways, "x=1\ra='b'\n"},
		{"replace last line without newline", "x=1\na=1", "a", "b", QuoteAlways, "x=1\na='b'\n"},
		{
			"keeps other lines",
			"# comment\n\nbad line\r\nexport x = 'y'  # keep\na=1\n",
			"a", "new value", QuoteAuto,
			"# comment\n\nbad line\r\nexport x = 'y'  # keep\na='new value'\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = captureLogs(t)
			path := writeEnv(t, ".env", tt.before)

			res, err := SetKey(context.Background(), path, tt.key, tt.value, tt.mode, false)
			if err != nil {
				t.Fatalf("SetKey() error = %v", err)
			}
			if !res.OK || res.Key != tt.key || res.Value != tt.value {
				t.Errorf("result = %+v", res)
			}
			if got := readFile(t, path); got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetKeyAfterUnterminatedLine(t *testing.T) {
	_ = captureLogs(t)
	path := writeEnv(t, ".env", "A=1")

	if _, err := SetKey(context.Background(), path, "B", "x", QuoteAlways, false); err != nil {
		t.Fatal(err)
	}
	vals, err := Read(context.Background(), path, WithBaseEnv(MapEnv{}))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"A": "1", "B": "x"}
	if got := vals.StringMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
}

func TestSetKeyRoundTrip(t *testing.T) {
	_ = captureLogs(t)
	values := []string{"hello world", "plain", "with space", "it's", `back\slash`, "#hash", "${NOT_EXPANDED}", ""}
	for _, mode := range []QuoteMode{QuoteAlways, QuoteAuto} {
		for _, value := range values {
			path := filepath.Join(t.TempDir(), ".env")
			if _, err := SetKey(context.Background(), path, "K", value, mode, false); err != nil {
				t.Fatal(err)
			}
			got, ok, err := GetKey(context.Background(), path, "K", WithInterpolate(false))
			if err != nil || !ok {
				t.Fatalf("GetKey() = %v, %v", ok, err)
			}
			if *got != value {
				t.Errorf("mode %s: wrote %q, read back %q", mode, value, *got)
			}
		}
	}
}

func TestSetKeyInvalidMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if _, err := SetKey(context.Background(), path, "a", "b", "sometimes", false); !errors.Is(err, ErrInvalidQuoteMode) {
		t.Errorf("error = %v, want ErrInvalidQuoteMode", err)
	}
	if isFile(path) {
		t.Errorf("SetKey created %s before rejecting the quote mode", path)
	}
	if _, err := UnsetKey(context.Background(), path, "a", "sometimes"); !errors.Is(err, ErrInvalidQuoteMode) {
		t.Errorf("unset error = %v, want ErrInvalidQuoteMode", err)
	}
}

func TestUnsetKey(t *testing.T) {
	_ = captureLogs(t)
	path := writeEnv(t, ".env", "# c\na=1\nnot valid\nb=2\na=3\n")

	res, err := UnsetKey(context.Background(), path, "a", QuoteAlways)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK || res.Key != "a" {
		t.Errorf("result = %+v", res)
	}
	if got := readFile(t, path); got != "# c\nnot valid\nb=2\n" {
		t.Errorf("content = %q", got)
	}
}

func TestUnsetKeyMissing(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		buf := captureLogs(t)
		path := writeEnv(t, ".env", "b=2\n")

		res, err := UnsetKey(context.Background(), path, "a", QuoteAlways)
		if err != nil {
			t.Fatal(err)
		}
		if res.OK {
			t.Errorf("result = %+v, want not OK", res)
		}
		if got := readFile(t, path); got != "b=2\n" {
			t.Errorf("content = %q", got)
		}
		if !strings.Contains(buf.String(), "key doesn't exist") {
			t.Errorf("missing warning, logs: %q", buf.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		buf := captureLogs(t)
		path := filepath.Join(t.TempDir(), ".env")

		res, err := UnsetKey(context.Background(), path, "a", QuoteAlways)
		if err != nil {
			t.Fatal(err)
		}
		if res.OK {
			t.Errorf("result = %+v, want not OK", res)
		}
		if isFile(path) {
			t.Errorf("UnsetKey created %s", path)
		}
		if !strings.Contains(buf.String(), "it doesn't exist") {
			t.Errorf("missing warning, logs: %q", buf.String())
		}
	})
}

func TestParseQuoteMode(t *testing.T) {
	for _, name := range []string{"always", "auto", "never"} {
		if m, err := ParseQuoteMode(name); err != nil || string(m) != name {
			t.Errorf("ParseQuoteMode(%q) = %q, %v", name, m, err)
		}
	}
	if _, err := ParseQuoteMode("ALWAYS"); err == nil {
		t.Error("ParseQuoteMode accepted ALWAYS")
	}
}
