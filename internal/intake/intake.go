// Package intake selects the input document for a search invocation.
package intake

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoInput indicates the input directory contains no PDF files.
var ErrNoInput = errors.New("no pdf files found in input directory")

// Document identifies the selected input file.
type Document struct {
	Path string
	Name string
	Size int64
}

// First returns the lexicographically first PDF in dir. Subdirectories and
// non-PDF files are ignored.
func First(dir string) (*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, dir)
	}

	sort.Strings(names)

	path := filepath.Join(dir, names[0])
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input %s: %w", path, err)
	}

	return &Document{
		Path: path,
		Name: names[0],
		Size: info.Size(),
	}, nil
}
