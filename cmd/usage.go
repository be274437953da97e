package cmd

import (
	"EnvKit/internal/console"
	"EnvKit/internal/version"
	"fmt"
	"io"
	"strings"
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
// If target is specified, prints usage for that specific flag/command.
func PrintHelp(w io.Writer, target string) {
	fmt.Fprint(w, console.Parse(GetUsage(target)))
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that specific flag/command.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Flags>{{|-|}}] [{{_UsageCommand_}}<Command>{{|-|}}] ...", appCmd))
		printStr("")
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", appName, version.Version))
		printStr("Reads, writes and runs commands with '{{_UsageFile_}}.env{{|-|}}' files.")
		printStr("")
		printStr("You may include multiple commands on the command-line, and they will be executed in")
		printStr("the order given, only stopping on an error. Any flags included only apply to the")
		printStr("following command, and get reset before the next command. Flags given without a")
		printStr("command apply to '{{_UsageCommand_}}--list{{|-|}}'.")
		printStr("")
		printStr("Values may reference other variables as '{{_UsageVar_}}${VAR}{{|-|}}' or '{{_UsageVar_}}${VAR:-default}{{|-|}}'.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""

	match := func(opts ...string) bool {
		if showAll {
			return true
		}
		for _, o := range opts {
			if o == target {
				return true
			}
		}
		return false
	}

	// Flags
	if match("-f", "--file") {
		printStr("{{_UsageCommand_}}-f --file{{|-|}} {{_UsageFile_}}<file>{{|-|}}")
		printStr("	The env file to use instead of the configured one ('{{_UsageFile_}}.env{{|-|}}' by default)")
	}
	if match("-q", "--quote") {
		printStr("{{_UsageCommand_}}-q --quote{{|-|}} < {{_UsageOption_}}always{{|-|}} | {{_UsageOption_}}auto{{|-|}} | {{_UsageOption_}}never{{|-|}} >")
		printStr("	How '{{_UsageCommand_}}--set{{|-|}}' quotes values. '{{_UsageOption_}}auto{{|-|}}' only quotes values that are not alphanumeric")
	}
	if match("--encoding") {
		printStr("{{_UsageCommand_}}--encoding{{|-|}} {{_UsageOption_}}<name>{{|-|}}")
		printStr("	Read the env file in the given encoding (e.g. '{{_UsageOption_}}latin1{{|-|}}')")
	}
	if match("-e", "--export") {
		printStr("{{_UsageCommand_}}-e --export{{|-|}}")
		printStr("	Prefix lines written by '{{_UsageCommand_}}--set{{|-|}}' with '{{_UsageOption_}}export{{|-|}}'")
	}
	if match("-o", "--override", "--no-override") {
		printStr("{{_UsageCommand_}}-o --override{{|-|}}")
		printStr("{{_UsageCommand_}}--no-override{{|-|}}")
		printStr("	Whether file values win over variables already in the environment")
	}
	if match("-n", "--no-interpolate") {
		printStr("{{_UsageCommand_}}-n --no-interpolate{{|-|}}")
		printStr("	Use values exactly as written, without expanding '{{_UsageVar_}}${VAR}{{|-|}}'")
	}
	if match("-d", "--diff") {
		printStr("{{_UsageCommand_}}-d --diff{{|-|}}")
		printStr("	Show the lines changed by '{{_UsageCommand_}}--set{{|-|}}' or '{{_UsageCommand_}}--unset{{|-|}}'")
	}
	if match("-v", "--verbose") {
		printStr("{{_UsageCommand_}}-v --verbose{{|-|}}")
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr("{{_UsageCommand_}}-x --debug{{|-|}}")
		printStr("	Debug")
	}

	if showAll {
		printStr("")
		printStr("CLI Commands:")
		printStr("")
	}

	if match("-c", "--chain") {
		printStr("{{_UsageCommand_}}-c --chain{{|-|}} {{_UsageFile_}}<file>{{|-|}} [{{_UsageFile_}}<file>{{|-|}} ...]")
		printStr("	Merge the files from left to right and print the result. Later files win,")
		printStr("	and may reference variables from earlier ones. Use '{{_UsageFile_}}-{{|-|}}' for standard input")
	}
	if match("--config-show", "--show-config") {
		printStr("{{_UsageCommand_}}--config-show{{|-|}}")
		printStr("{{_UsageCommand_}}--show-config{{|-|}}")
		printStr("	Shows the current configuration options")
	}
	if match("--find") {
		printStr("{{_UsageCommand_}}--find{{|-|}} [{{_UsageFile_}}<name>{{|-|}}]")
		printStr("	Search the current directory and its parents for the env file and print its path")
	}
	if match("-g", "--get") {
		printStr("{{_UsageCommand_}}-g --get{{|-|}} {{_UsageVar_}}<key>{{|-|}} [{{_UsageVar_}}<key>{{|-|}} ...]")
		printStr("	Print the resolved value of each key")
	}
	if match("-h", "--help") {
		printStr("{{_UsageCommand_}}-h --help{{|-|}}")
		printStr("	Show this usage information")
		printStr("{{_UsageCommand_}}-h --help{{|-|}} {{_UsageOption_}}<option>{{|-|}}")
		printStr("	Show the usage of the specified option")
	}
	if match("-l", "--list") {
		printStr("{{_UsageCommand_}}-l --list{{|-|}} [ {{_UsageOption_}}simple{{|-|}} | {{_UsageOption_}}json{{|-|}} | {{_UsageOption_}}shell{{|-|}} | {{_UsageOption_}}export{{|-|}} | {{_UsageOption_}}yaml{{|-|}} ]")
		printStr("	Print all resolved values in the given format")
	}
	if match("-r", "--run") {
		printStr("{{_UsageCommand_}}-r --run{{|-|}} {{_UsageOption_}}<command>{{|-|}} [{{_UsageOption_}}<args>{{|-|}} ...]")
		printStr("	Run a command with the values added to its environment. Everything after")
		printStr("	'{{_UsageCommand_}}--run{{|-|}}' is passed to the command, and its exit code is returned")
	}
	if match("-s", "--set") {
		printStr("{{_UsageCommand_}}-s --set{{|-|}} {{_UsageVar_}}<key>{{|-|}} {{_UsageOption_}}<value>{{|-|}}")
		printStr("	Set the key to the value, creating the file if needed")
	}
	if match("-u", "--unset") {
		printStr("{{_UsageCommand_}}-u --unset{{|-|}} {{_UsageVar_}}<key>{{|-|}} [{{_UsageVar_}}<key>{{|-|}} ...]")
		printStr("	Remove the keys from the file")
	}
	if match("-V", "--version") {
		printStr("{{_UsageCommand_}}-V --version{{|-|}}")
		printStr("	Display version information")
	}
	if match("-w", "--watch") {
		printStr("{{_UsageCommand_}}-w --watch{{|-|}} [{{_UsageFile_}}<file>{{|-|}} ...]")
		printStr("	Print the values, then print them again whenever one of the files changes")
	}

	return sb.String()
}
