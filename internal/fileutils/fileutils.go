// Package fileutils provides common file operations used throughout the application.
package fileutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"

	"github.com/h2non/filetype"
)

// sniffLen is how many leading bytes content detection needs.
const sniffLen = 8192

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// ReadFile reads the entire contents of a file and returns it as a byte slice
func ReadFile(filePath string) ([]byte, error) {
	if !FileExists(filePath) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// WriteFile writes data to a file, creating the file if it doesn't exist
// and creating any parent directories if needed
func WriteFile(filePath string, data []byte, perm os.FileMode) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}

	// Write to file
	if err := os.WriteFile(filePath, data, perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(filePath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return WriteFile(filePath, append(data, '\n'), 0600)
}

// DetectFileType identifies a document from its content, falling back to the
// file extension. Content wins when it names a supported type; CSV has no
// signature and is recognised by extension only.
func DetectFileType(filePath string, data []byte) (models.FileType, error) {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		if ft, ok := models.ParseFileType(kind.Extension); ok {
			return ft, nil
		}
	}

	ft, ok := models.ParseFileType(filepath.Ext(filePath))
	if !ok {
		return "", &parsererror.UnsupportedInputError{Field: "file type", Value: filepath.Base(filePath)}
	}
	return ft, nil
}

// ListSupportedFiles returns the regular files directly inside dirPath whose
// extension is a supported FileType, sorted by name.
func ListSupportedFiles(dirPath string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, fmt.Errorf("directory does not exist: %s", dirPath)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, ok := models.ParseFileType(filepath.Ext(entry.Name())); !ok {
			continue
		}
		files = append(files, filepath.Join(dirPath, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath returns outputDir/<input base name without extension><ext>.
func OutputPath(inputFile, outputDir, ext string) string {
	base := filepath.Base(inputFile)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
}
