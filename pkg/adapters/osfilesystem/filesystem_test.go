package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteReadSize(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "shots", "a.png")
	data := []byte("hello world")

	if err := fs.WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("expected %q, got %q", data, got)
	}

	size, err := fs.Size(path)
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size != int64(len(data)) {
		t.Errorf("expected size %d, got %d", len(data), size)
	}
}

func TestFileSystem_WriteFileOverwrites(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")

	if err := fs.WriteFile(path, []byte("first version")); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile(path, []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, _ := fs.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("expected overwritten content, got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temporary files, got %d entries", len(entries))
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	if err := fs.MkdirAll(filepath.Join(dir, "a", "b")); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if exists, err := fs.Exists(filepath.Join(dir, "a", "b")); err != nil || !exists {
		t.Errorf("expected directory to exist, got %v, %v", exists, err)
	}
	if exists, err := fs.Exists(filepath.Join(dir, "missing.txt")); err != nil || exists {
		t.Errorf("expected missing file, got %v, %v", exists, err)
	}
}

func TestFileSystem_SizeMissing(t *testing.T) {
	if _, err := New().Size(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileSystem_Remove(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "test.txt")
	os.WriteFile(path, []byte("test"), 0644)

	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if exists, _ := fs.Exists(path); exists {
		t.Error("expected file to be removed")
	}
}
