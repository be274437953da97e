package format

import (
	"EnvKit/internal/dotenv"
	"EnvKit/internal/testutils"
	"testing"
)

func sampleValues() *dotenv.Values {
	vals := dotenv.NewValues()
	vals.Set("B", dotenv.Ptr("two words"))
	vals.Set("A", dotenv.Ptr("1"))
	vals.Set("EMPTY", nil)
	vals.Set("Q", dotenv.Ptr("it's"))
	return vals
}

func TestShellQuote(t *testing.T) {
	inputs := []struct{ in, want string }{
		{"", "''"},
		{"plain", "plain"},
		{"a/b.c-d", "a/b.c-d"},
		{"two words", "'two words'"},
		{"it's", `'it'"'"'s'`},
		{"$HOME", "'$HOME'"},
	}
	var cases []testutils.TestCase
	for _, in := range inputs {
		cases = append(cases, testutils.Compare(in.in, in.want, ShellQuote(in.in)))
	}
	testutils.PrintTestTable(t, cases)
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"simple", "B=two words\nA=1\nEMPTY=\nQ=it's\n"},
		{"shell", "B='two words'\nA=1\nEMPTY=''\nQ='it'\"'\"'s'\n"},
		{"export", "export B='two words'\nexport A=1\nexport EMPTY=''\nexport Q='it'\"'\"'s'\n"},
		{"json", "{\n  \"B\": \"two words\",\n  \"A\": \"1\",\n  \"EMPTY\": null,\n  \"Q\": \"it's\"\n}\n"},
		{"yaml", "B: two words\nA: \"1\"\nEMPTY: null\nQ: it's\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := String(tt.format, sampleValues())
			if err != nil {
				t.Fatalf("String(%q) error = %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("String(%q) =\n%q\nwant\n%q", tt.format, got, tt.want)
			}
		})
	}
}

func TestWriteEmptyAndUnknown(t *testing.T) {
	if got, _ := String("json", dotenv.NewValues()); got != "{}\n" {
		t.Errorf("empty json = %q", got)
	}
	if _, err := String("xml", sampleValues()); err == nil {
		t.Error("expected error for unknown format")
	}
	if IsValid("xml") || !IsValid("yaml") {
		t.Error("IsValid mismatch")
	}
}
