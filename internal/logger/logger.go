package logger

import (
	"EnvKit/internal/console"
	"EnvKit/internal/version"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Helper to resolve message from any type to string
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// Internal helper to log with a specific timestamp.
// Multi-line messages are split so every line gets its own level prefix.
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}
	msgStr = console.Parse(msgStr)

	reset := ""
	if console.IsTTY() {
		reset = console.CodeReset
	}

	for i, line := range strings.Split(msgStr, "\n") {
		// Reset every line to prevent color bleed to next timestamp
		r := slog.NewRecord(t, level, line+reset, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Custom log levels
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the log level
var LevelVar = new(slog.LevelVar)
var FileLevelVar = new(slog.LevelVar)

var (
	logFileMu sync.Mutex
	logFile   *os.File
)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	// File level should be at least Info, or lower if Debug is requested
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

// ParseLevel converts a level name such as "notice" or "trace" into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "", "notice":
		return LevelNotice, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return LevelNotice, fmt.Errorf("unknown log level %q", name)
}

func levelLabel(level slog.Level) string {
	switch level {
	case LevelTrace:
		return "[TRACE ]"
	case LevelDebug:
		return "[DEBUG ]"
	case LevelInfo:
		return "[INFO  ]"
	case LevelNotice:
		return "[NOTICE]"
	case LevelWarn:
		return "[WARN  ]"
	case LevelError:
		return "[ERROR ]"
	case LevelFatal:
		return "[FATAL ]"
	}
	return "[" + level.String() + "]"
}

func levelColor(level slog.Level) string {
	switch level {
	case LevelNotice:
		return console.CodeGreen
	case LevelWarn:
		return console.CodeYellow
	case LevelError:
		return console.CodeRed
	case LevelFatal:
		return console.CodeRedBg + console.CodeWhite
	}
	return console.CodeBlue
}

// NewLogger builds the application logger: a colored handler on stderr and,
// when logFilePath is not empty, a plain handler appending to that file.
func NewLogger(logFilePath string) *slog.Logger {
	isTTY := term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == ""

	replaceAttrConsole := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			level := a.Value.Any().(slog.Level)
			label := levelLabel(level)
			if isTTY {
				label = levelColor(level) + label + console.CodeReset
			}
			a.Value = slog.StringValue(label + "  ")
		}
		return a
	}

	consoleHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:       LevelVar,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     !isTTY,
		ReplaceAttr: replaceAttrConsole,
	})
	handlers := []slog.Handler{consoleHandler}

	if logFilePath != "" {
		if w, err := openLogFile(logFilePath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			handlers = append(handlers, newFileHandler(w))
		}
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

func newFileHandler(w io.Writer) slog.Handler {
	replaceAttrFile := func(groups []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.LevelKey:
			a.Value = slog.StringValue(levelLabel(a.Value.Any().(slog.Level)) + "  ")
		case slog.MessageKey:
			a.Value = slog.StringValue(console.StripANSI(a.Value.String()))
		}
		return a
	}
	return tint.NewHandler(w, &tint.Options{
		Level:       FileLevelVar,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     true,
		ReplaceAttr: replaceAttrFile,
	})
}

func openLogFile(path string) (*os.File, error) {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	return f, nil
}

// Close closes the log file opened by NewLogger, if any.
func Close() {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// Global helpers for custom levels that don't satisfy standard slog methods
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}

func getSystemInfo() []string {
	var info []string

	info = append(info, fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))
	info = append(info, "")

	executable, _ := os.Executable()
	info = append(info, fmt.Sprintf("Currently running as: %s (PID %d)", executable, os.Getpid()))
	info = append(info, "")

	info = append(info, fmt.Sprintf("ARCH:       %s", runtime.GOARCH))
	info = append(info, fmt.Sprintf("OS:         %s", runtime.GOOS))
	info = append(info, fmt.Sprintf("GOVERSION:  %s", runtime.Version()))
	info = append(info, "")

	if currentUser, err := user.Current(); err == nil {
		info = append(info, fmt.Sprintf("UID:        %s", currentUser.Uid))
		info = append(info, fmt.Sprintf("USER:       %s", currentUser.Username))
		info = append(info, fmt.Sprintf("HOME:       %s", currentUser.HomeDir))
	} else {
		info = append(info, fmt.Sprintf("User Info Error: %v", err))
	}

	return info
}

func stackTrace(skip int) []string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip, pc)
	frames := runtime.CallersFrames(pc[:n])

	var allFrames []runtime.Frame
	for {
		frame, more := frames.Next()
		allFrames = append(allFrames, frame)
		if !more {
			break
		}
	}

	width := len(fmt.Sprintf("%d", len(allFrames)-1))
	fmtStr := fmt.Sprintf("  {{_TraceFrameNumber_}}%%%dd{{|-|}}: %%s{{_TraceFrameLines_}}%%s{{|-|}}{{_TraceSourceFile_}}%%s{{|-|}}:{{_TraceLineNumber_}}%%d{{|-|}} ({{_TraceFunction_}}%%s{{|-|}})", width)

	wd, _ := os.Getwd()

	// Iterate in reverse: main first, the failing call last
	var lines []string
	indent := ""
	for i := len(allFrames) - 1; i >= 0; i-- {
		frame := allFrames[i]
		if wd != "" {
			if rel, err := filepath.Rel(wd, frame.File); err == nil && !strings.HasPrefix(rel, "..") {
				frame.File = "./" + filepath.ToSlash(rel)
			}
		}

		suffix := ""
		arrowIndent := indent
		if i < len(allFrames)-1 {
			suffix = "└>"
			if len(indent) >= 2 {
				arrowIndent = indent[:len(indent)-2]
			}
		}
		lines = append(lines, fmt.Sprintf(fmtStr, i, arrowIndent, suffix, frame.File, frame.Line, filepath.Base(frame.Function)))
		indent += "  "
	}
	return lines
}

func fatalWithStack(ctx context.Context, skip int, msg any, args ...any) {
	now := time.Now()

	var infoLines []string
	for _, line := range getSystemInfo() {
		if line != "" {
			line = "  " + line
		}
		infoLines = append(infoLines, line)
	}

	output := []any{
		"{{_TraceHeader_}}### BEGIN SYSTEM INFORMATION AND STACK TRACE ###",
		infoLines,
		"",
		stackTrace(skip + 1),
		"{{_TraceFooter_}}### END SYSTEM INFORMATION AND STACK TRACE ###",
		"",
		msg,
		"",
		"{{_FatalFooter_}}Please let the dev know of this error.",
	}
	logAt(ctx, now, LevelFatal, output, args...)

	panic(FatalError{})
}

// Fatal logs a message at FatalLevel with system information and a stack trace, then panics with FatalError.
func Fatal(ctx context.Context, msg any, args ...any) {
	// Skip runtime.Callers, stackTrace and fatalWithStack
	fatalWithStack(ctx, 3, msg, args...)
}

// FatalWithStackSkip is Fatal with extra caller frames dropped from the trace.
func FatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	fatalWithStack(ctx, 3+skip, msg, args...)
}

// FatalNoTrace logs a message at FatalLevel without stack trace and exits
func FatalNoTrace(ctx context.Context, msg any, args ...any) {
	output := []any{
		msg,
		"",
		"{{_FatalFooter_}}Please let the dev know of this error.",
	}
	logAt(ctx, time.Now(), LevelFatal, output, args...)
	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}

func (FatalError) Error() string {
	return "fatal error"
}
