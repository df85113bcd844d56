package utils

import (
	"path/filepath"
	"strings"
)

// OutputExt is appended to every downloaded file name
const OutputExt = ".txt"

// OutputFileName derives the file name for a title: spaces become underscores
func OutputFileName(title string) string {
	return strings.ReplaceAll(title, " ", "_") + OutputExt
}

// OutputDir returns the directory holding path, or "." if path has no parent
func OutputDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "" {
		return "."
	}
	return dir
}
