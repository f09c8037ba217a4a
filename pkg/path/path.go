package path

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNotFound = errors.New("not found")

// FindRoot walks up from startDir until it finds targetName and returns the
// directory containing it.
func FindRoot(startDir, targetName string, isDir bool) (string, error) {
	dir := startDir

	for {
		info, err := os.Stat(filepath.Join(dir, targetName))
		if err == nil && info.IsDir() == isDir {
			return dir, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}

	return "", fmt.Errorf("could not find %s starting from %s: %w", targetName, startDir, ErrNotFound)
}

// UserDir returns ~/.<app>, creating it with owner-only permissions.
func UserDir(app string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, "."+app)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return dir, nil
}
