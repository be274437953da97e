package cmd

import (
	"EnvKit/internal/console"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []CommandGroup
	}{
		{
			name: "empty",
			args: nil,
			want: nil,
		},
		{
			name: "list with format",
			args: []string{"-l", "json"},
			want: []CommandGroup{{Command: "-l", Args: []string{"json"}}},
		},
		{
			name: "modifiers apply to next command",
			args: []string{"-f", "app.env", "-e", "--set", "KEY", "value", "-g", "KEY"},
			want: []CommandGroup{
				{Flags: []string{"-f", "app.env", "-e"}, Command: "--set", Args: []string{"KEY", "value"}},
				{Command: "-g", Args: []string{"KEY"}},
			},
		},
		{
			name: "set value may start with a dash",
			args: []string{"-s", "OFFSET", "-12"},
			want: []CommandGroup{{Command: "-s", Args: []string{"OFFSET", "-12"}}},
		},
		{
			name: "combined short flags",
			args: []string{"-vl"},
			want: []CommandGroup{{Flags: []string{"-v"}, Command: "-l"}},
		},
		{
			name: "long flag with equals",
			args: []string{"--file=.env.local", "--list=yaml"},
			want: []CommandGroup{{Flags: []string{"--file", ".env.local"}, Command: "--list", Args: []string{"yaml"}}},
		},
		{
			name: "run consumes the rest",
			args: []string{"-o", "-r", "ls", "-la", "--color"},
			want: []CommandGroup{{Flags: []string{"-o"}, Command: "-r", Args: []string{"ls", "-la", "--color"}}},
		},
		{
			name: "chain with stdin",
			args: []string{"-c", "base.env", "-", "local.env"},
			want: []CommandGroup{{Command: "-c", Args: []string{"base.env", "-", "local.env"}}},
		},
		{
			name: "watch without files",
			args: []string{"-w", "-V"},
			want: []CommandGroup{{Command: "-w"}, {Command: "-V"}},
		},
		{
			name: "help for a command",
			args: []string{"-h", "--set"},
			want: []CommandGroup{{Command: "-h", Args: []string{"--set"}}},
		},
		{
			name: "trailing modifiers",
			args: []string{"-f", "x.env", "-n"},
			want: []CommandGroup{{Flags: []string{"-f", "x.env", "-n"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.args, console.Strip(err.Error()))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantIndex int
		wantMsg   string
	}{
		{"unknown flag", []string{"--bogus"}, 0, "Invalid option"},
		{"bare word", []string{"KEY"}, 0, "Invalid option"},
		{"get without key", []string{"-g"}, 0, "requires an argument"},
		{"set without value", []string{"-s", "KEY"}, 1, "requires a key and a value"},
		{"bad quote mode", []string{"-q", "sometimes", "-s", "A", "b"}, 1, "Invalid option"},
		{"bad list format", []string{"-l", "xml"}, 1, "Invalid option"},
		{"file without value", []string{"-f", "-l"}, 0, "requires an argument"},
		{"run without command", []string{"-r"}, 0, "requires an argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.args, err)
			}
			if perr.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", perr.Index, tt.wantIndex)
			}
			if msg := console.Strip(perr.Error()); !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestParseErrorPointsAtOption(t *testing.T) {
	_, err := Parse([]string{"-l", "--nope"})
	msg := console.Strip(err.Error())
	if !strings.Contains(msg, "'envkit -l --nope'") {
		t.Errorf("command line not echoed: %q", msg)
	}
	lines := strings.Split(msg, "\n")
	var cmdLine, pointer string
	for i, l := range lines {
		if strings.Contains(l, "'envkit") {
			cmdLine, pointer = l, lines[i+1]
			break
		}
	}
	if strings.Index(pointer, "^") != strings.Index(cmdLine, "--nope") {
		t.Errorf("caret misplaced:\n%s\n%s", cmdLine, pointer)
	}
}

func TestGetUsage(t *testing.T) {
	full := console.Strip(GetUsage(""))
	for _, want := range []string{"-f --file", "-s --set", "-r --run", "-w --watch", "--find", "--config-show"} {
		if !strings.Contains(full, want) {
			t.Errorf("usage is missing %q", want)
		}
	}

	single := console.Strip(GetUsage("--unset"))
	if !strings.Contains(single, "-u --unset") || strings.Contains(single, "--set <key>") {
		t.Errorf("GetUsage(--unset) = %q", single)
	}
}
