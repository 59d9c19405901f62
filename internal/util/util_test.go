package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "db", "nested", "runs.db")

	if DirExists(filepath.Dir(target)) {
		t.Fatal("directory should not exist yet")
	}
	if err := EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir: %v", err)
	}
	if !DirExists(filepath.Dir(target)) {
		t.Fatal("directory was not created")
	}
	if err := EnsureParentDir(target); err != nil {
		t.Fatalf("second call: %v", err)
	}
}

func TestDirExistsOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.csv")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if DirExists(file) {
		t.Error("a regular file is not a directory")
	}
}
