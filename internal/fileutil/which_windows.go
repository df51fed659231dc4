//go:build windows

package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultPathExt = ".COM;.EXE;.BAT;.CMD"

// candidates expands path with each PATHEXT extension unless it already
// carries one.
func candidates(path string) []string {
	pathExt := os.Getenv("PATHEXT")
	if pathExt == "" {
		pathExt = defaultPathExt
	}
	exts := strings.Split(strings.ToLower(pathExt), ";")

	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if e != "" && e == ext {
			return []string{path}
		}
	}

	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if e != "" {
			out = append(out, path+e)
		}
	}
	return out
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
