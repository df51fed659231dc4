// Package fileutil locates executables on a search path.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/gitrun/internal/errors"
)

// Which returns the first executable named name found in the directories of
// searchPath, a list in the platform's PATH format. A name containing a
// path separator is checked directly. It returns ErrExecutableNotFound when
// nothing matches.
func Which(name, searchPath string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("executable name: %w", errors.ErrEmptyValue)
	}

	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		for _, candidate := range candidates(name) {
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("%s: %w", name, errors.ErrExecutableNotFound)
	}

	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			// an empty entry means the current directory, which is never searched
			continue
		}
		for _, candidate := range candidates(filepath.Join(dir, name)) {
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%s not found in %q: %w", name, searchPath, errors.ErrExecutableNotFound)
}

// WhichPath is Which over the PATH environment variable.
func WhichPath(name string) (string, error) {
	return Which(name, os.Getenv("PATH"))
}
