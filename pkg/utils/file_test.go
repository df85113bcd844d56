package utils

import (
	"path/filepath"
	"testing"
)

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My Report", "My_Report.txt"},
		{"A", "A.txt"},
		{"  two  spaces ", "__two__spaces_.txt"},
		{"already_snake", "already_snake.txt"},
		{"notes.md", "notes.md.txt"},
		{"Tab\tStays", "Tab\tStays.txt"},
		{"", ".txt"},
	}

	for _, tt := range tests {
		if got := OutputFileName(tt.title); got != tt.want {
			t.Errorf("OutputFileName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestOutputDir(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"configs.json", "."},
		{filepath.Join("data", "configs.json"), "data"},
		{filepath.Join(string(filepath.Separator), "tmp", "configs.json"), filepath.Join(string(filepath.Separator), "tmp")},
	}

	for _, tt := range tests {
		if got := OutputDir(tt.path); got != tt.want {
			t.Errorf("OutputDir(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
