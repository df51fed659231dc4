//go:build !windows

package fileutil

import "os"

func candidates(path string) []string {
	return []string{path}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
