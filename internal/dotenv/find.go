package dotenv

import (
	"fmt"
	"os"
	"path/filepath"
)

// WalkToRoot returns path's directory (or path itself when it is a directory)
// followed by every parent up to the filesystem root.
func WalkToRoot(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("starting path not found: %w", err)
	}
	if !info.IsDir() {
		path = filepath.Dir(path)
	}

	current, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for {
		dirs = append(dirs, current)
		parent := filepath.Dir(current)
		if parent == current {
			return dirs, nil
		}
		current = parent
	}
}

// FindDotenv searches start and its parents for a file called filename.
// An empty start means the working directory and an empty filename means ".env".
// It returns ErrNotFound when no directory has the file.
func FindDotenv(start, filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}

	dirs, err := WalkToRoot(start)
	if err != nil {
		return "", err
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, filename)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, filename)
}
