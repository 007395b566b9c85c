package jsontree

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when a required JSON file is missing, unreadable or empty.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat is returned when a file's contents are not valid JSON.
	ErrInvalidFormat = errors.New("not a valid JSON file")
)

// ReadStrict reads and parses the JSON file at path.
func ReadStrict(fs afero.Fs, path string) (*Node, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("'%s' %w: %v", path, ErrNotFound, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("'%s' %w: file is empty", path, ErrNotFound)
	}

	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("'%s' is %w", path, err)
	}
	return n, nil
}

// ReadLenient reads the JSON file at path, reporting false instead of an
// error when the file is missing, empty or malformed.
func ReadLenient(fs afero.Fs, path string) (*Node, bool) {
	n, err := ReadStrict(fs, path)
	if err != nil {
		return nil, false
	}
	return n, true
}
