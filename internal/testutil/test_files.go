// Package testutil holds file fixtures shared by the package tests.
package testutil

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestFile creates a file of the given size filled with either a
// repeating byte pattern or random data.
func CreateTestFile(dir, name string, size int64, random bool) (string, error) {
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	// Write in chunks for large files
	chunkSize := int64(64 * 1024)
	chunk := make([]byte, chunkSize)
	if !random {
		for i := range chunk {
			chunk[i] = byte(i % 251)
		}
	}

	remaining := size
	for remaining > 0 {
		n := min(remaining, chunkSize)
		if random {
			_, _ = rand.Read(chunk[:n])
		}
		w, err := f.Write(chunk[:n])
		if err != nil {
			return "", err
		}
		remaining -= int64(w)
	}

	return path, nil
}

// CreateTextFile writes lines joined by sep. When trailing is set the last
// line is terminated too.
func CreateTextFile(dir, name string, lines []string, sep string, trailing bool) (string, error) {
	path := filepath.Join(dir, name)
	content := strings.Join(lines, sep)
	if trailing && len(lines) > 0 {
		content += sep
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// NumberedLines returns n distinct lines of text.
func NumberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%05d Alice was beginning to get very tired of sitting by her sister on the bank", i)
	}
	return lines
}

// VerifyFileSize checks if a file has the expected size.
func VerifyFileSize(path string, expectedSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() != expectedSize {
		return &FileSizeMismatchError{
			Path:     path,
			Expected: expectedSize,
			Actual:   info.Size(),
		}
	}
	return nil
}

// FileSizeMismatchError indicates a file size doesn't match expected.
type FileSizeMismatchError struct {
	Path     string
	Expected int64
	Actual   int64
}

func (e *FileSizeMismatchError) Error() string {
	return fmt.Sprintf("file size mismatch: %s: expected %d, got %d", e.Path, e.Expected, e.Actual)
}

// CompareFiles checks if two files have identical content.
func CompareFiles(path1, path2 string) (bool, error) {
	data1, err := os.ReadFile(path1)
	if err != nil {
		return false, err
	}

	data2, err := os.ReadFile(path2)
	if err != nil {
		return false, err
	}

	return bytes.Equal(data1, data2), nil
}

// ReadFileChunk reads a specific byte range from a file.
func ReadFileChunk(path string, offset, length int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make([]byte, length)
	_, err = f.ReadAt(data, offset)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
