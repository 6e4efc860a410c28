package robostat

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FindStatement returns the path of the only CSV file in 'dir'.
//
// It returns a *ConfigurationError if 'dir' cannot be read, contains no CSV
// file, or contains more than one.
func FindStatement(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &ConfigurationError{Reason: "statement directory does not exist", Path: dir}
	}
	if err != nil {
		return "", &ConfigurationError{Reason: "cannot read statement directory: " + err.Error(), Path: dir}
	}

	var found []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		found = append(found, filepath.Join(dir, e.Name()))
	}
	slices.Sort(found)

	switch len(found) {
	case 0:
		return "", &ConfigurationError{Reason: "no CSV statement found", Path: dir}
	case 1:
		return found[0], nil
	default:
		return "", &ConfigurationError{Reason: "several CSV statements found (" + strings.Join(found, ", ") + ")", Path: dir}
	}
}
