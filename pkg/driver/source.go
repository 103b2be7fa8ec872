package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ErrSourceNotFound is returned when a program file does not exist.
var ErrSourceNotFound = errors.New("source file not found")

// LoadSource reads a UTF-8 program file.
func LoadSource(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("source: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("source: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("source: %s: %w", absPath, ErrSourceNotFound)
		}
		return "", fmt.Errorf("source: read %s: %w", absPath, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("source: %s is not valid UTF-8", absPath)
	}
	return string(data), nil
}
