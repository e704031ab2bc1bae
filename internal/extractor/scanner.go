package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSuffix is the file suffix scanned when none is configured.
const DefaultSuffix = ".txt"

// ListTextFiles enumerates the regular files in dir whose name ends in
// suffix (case-insensitive), returning their paths sorted ascending.
// Subdirectories are not descended into. A directory that cannot be read
// is fatal for the run; there is no partial index worth producing from it.
func ListTextFiles(dir, suffix string) ([]string, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var paths []string

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		if !strings.HasSuffix(strings.ToLower(entry.Name()), strings.ToLower(suffix)) {
			continue
		}

		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	// Enumeration order is OS-dependent; sort so diagnostics are stable.
	sort.Strings(paths)

	return paths, nil
}

// ReadTextFile reads a file as permissive UTF-8: malformed byte sequences
// are replaced with U+FFFD instead of failing the whole file. A file that
// cannot be read at the OS level returns an error the caller may report
// and skip.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return strings.ToValidUTF8(string(data), "�"), nil
}
