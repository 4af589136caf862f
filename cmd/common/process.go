// Package common contains shared functionality for command handlers
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/fin-ingest/internal/engine"
	"fjacquet/fin-ingest/internal/fileutils"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"
	"fjacquet/fin-ingest/internal/validation"
)

// ReportType parses the --report flag.
func ReportType(flag string) (models.ReportType, error) {
	if flag == "" {
		return "", fmt.Errorf("report type is required (--report)")
	}
	rt, ok := models.ParseReportType(flag)
	if !ok {
		return "", &parsererror.UnsupportedInputError{Field: "report type", Value: flag}
	}
	return rt, nil
}

// FileType resolves the file type of data: the --type flag when given,
// otherwise sniffed from content and extension.
func FileType(flag, path string, data []byte) (models.FileType, error) {
	if flag == "" {
		return fileutils.DetectFileType(path, data)
	}
	ft, ok := models.ParseFileType(flag)
	if !ok {
		return "", &parsererror.UnsupportedInputError{Field: "file type", Value: flag}
	}
	return ft, nil
}

// ReadInput reads path into an engine input.
func ReadInput(path, fileTypeFlag string, rt models.ReportType) (engine.Input, error) {
	if path == "" {
		return engine.Input{}, fmt.Errorf("input file is required (--input)")
	}
	if err := validation.InputFile(path); err != nil {
		return engine.Input{}, err
	}
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return engine.Input{}, err
	}
	ft, err := FileType(fileTypeFlag, path, data)
	if err != nil {
		return engine.Input{}, err
	}
	return engine.Input{
		Data:       data,
		FileType:   ft,
		ReportType: rt,
		Name:       filepath.Base(path),
	}, nil
}

// WriteResult prints result as indented JSON.
func WriteResult(w io.Writer, result models.ParsingResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// SaveResult writes result as JSON to path, or to w when path is empty.
func SaveResult(w io.Writer, path string, result models.ParsingResult) error {
	if path == "" {
		return WriteResult(w, result)
	}
	return fileutils.WriteJSON(path, result)
}
