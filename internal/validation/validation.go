// Package validation checks user-supplied paths before documents are read.
package validation

import (
	"fmt"
	"os"
)

// MaxInputSize is the largest document accepted, in bytes.
const MaxInputSize = 50 << 20

// InputFile checks that path is a non-empty regular file no larger than
// MaxInputSize.
func InputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file %s is empty", path)
	}
	if info.Size() > MaxInputSize {
		return fmt.Errorf("file %s is too large: %d bytes (limit %d)", path, info.Size(), MaxInputSize)
	}
	return nil
}

// InputDir checks that path is an existing directory.
func InputDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}
