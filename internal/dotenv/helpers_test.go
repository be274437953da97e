package dotenv

import (
	"EnvKit/internal/logger"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// captureLogs sends every log record to the returned buffer for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logger.LevelTrace})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

// writeEnv writes content to name in a fresh temporary directory and returns its path.
func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
