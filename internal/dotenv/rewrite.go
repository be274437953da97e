package dotenv

import (
	"EnvKit/internal/logger"
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RewriteFunc reads the current content from src and writes the complete
// replacement to dst.
type RewriteFunc func(src io.Reader, dst io.Writer) error

// Rewrite runs fn as a transaction over path.
//
// A missing path is created empty first. fn writes into a temporary file in
// the same directory; when fn returns nil the temporary file is renamed over
// path, which is the commit point. If fn fails or panics, the temporary file
// is removed and path is left exactly as it was.
//
// There is no locking: two processes rewriting the same file race on the
// final rename and the last one wins.
func Rewrite(ctx context.Context, path string, fn RewriteFunc) (err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		logger.Debug(ctx, "Creating empty file '{{_File_}}%s{{|-|}}'.", path)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	} else if statErr != nil {
		return statErr
	}

	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return err
	}

	dest, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := dest.Name()

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = dest.Close()
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn(ctx, "Failed to remove temporary file '{{_File_}}%s{{|-|}}': %v", tmpName, rmErr)
		}
	}()

	w := bufio.NewWriter(dest)
	if err := fn(bufio.NewReader(source), w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := dest.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := dest.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	committed = true

	logger.Trace(ctx, "Rewrote '{{_File_}}%s{{|-|}}'.", path)
	return nil
}
