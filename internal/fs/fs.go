package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// CanonicalPath returns the canonical, absolute path by resolving symlinks.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}

// FindUpwards looks for a regular file called name in dir and then in each
// parent directory in turn. It returns the absolute path of the first match,
// or fs.ErrNotExist if the filesystem root is reached without one.
func FindUpwards(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, name)
		info, sErr := os.Stat(candidate)
		switch {
		case sErr == nil && !info.IsDir():
			return candidate, nil
		case sErr != nil && !errors.Is(sErr, fs.ErrNotExist):
			return "", sErr
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fs.ErrNotExist
		}
		dir = parent
	}
}
