package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystemWriteAndRead(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := m.WriteFile("staging/Depth/render0001.jpg", []byte("jpeg"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := m.ReadFile("staging/Depth/render0001.jpg")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "jpeg" {
		t.Errorf("ReadFile = %q, want %q", data, "jpeg")
	}

	if !m.Exists("staging/Depth") {
		t.Error("parent directory should exist after WriteFile")
	}
}

func TestMemoryFileSystemReadDir(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := m.MkdirAll("staging/Normal", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	entries, err := m.ReadDir("staging/Normal")
	if err != nil {
		t.Fatalf("ReadDir on empty dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty dir has %d entries", len(entries))
	}

	m.WriteFile("staging/Normal/b.jpg", nil, 0644)
	m.WriteFile("staging/Normal/a.jpg", nil, 0644)

	entries, err = m.ReadDir("staging/Normal")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 || entries[0].Name() != "a.jpg" || entries[1].Name() != "b.jpg" {
		t.Errorf("ReadDir returned unexpected entries: %v", entries)
	}

	// Subdirectories show up as entries but not their contents.
	m.WriteFile("staging/Normal/sub/c.jpg", nil, 0644)
	entries, _ = m.ReadDir("staging/Normal")
	if len(entries) != 3 {
		t.Errorf("expected 3 entries with subdir, got %d", len(entries))
	}
}

func TestMemoryFileSystemReadDirMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	_, err := m.ReadDir("nope")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDir on missing dir = %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryFileSystemRename(t *testing.T) {
	m := NewMemoryFileSystem()
	m.WriteFile("staging/Depth/img.jpg", []byte("x"), 0644)

	if err := m.Rename("staging/Depth/img.jpg", "out/A_Depth.jpg"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if m.Exists("staging/Depth/img.jpg") {
		t.Error("source still exists after rename")
	}
	if !m.Exists("out/A_Depth.jpg") {
		t.Error("destination does not exist after rename")
	}

	if err := m.Rename("staging/Depth/img.jpg", "elsewhere"); err == nil {
		t.Error("renaming a missing file should fail")
	}
}

func TestMemoryFileSystemRemoveAll(t *testing.T) {
	m := NewMemoryFileSystem()
	m.WriteFile("staging/Depth/a.jpg", nil, 0644)
	m.WriteFile("staging/Normal/b.jpg", nil, 0644)

	if err := m.RemoveAll("staging"); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if m.Exists("staging") || m.Exists("staging/Depth/a.jpg") {
		t.Error("staging tree survived RemoveAll")
	}
}

func TestOSFileSystemRoundTrip(t *testing.T) {
	var osfs OSFileSystem
	dir := t.TempDir()

	sub := filepath.Join(dir, "Depth")
	if err := osfs.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := osfs.WriteFile(filepath.Join(sub, "img.jpg"), []byte("jpeg"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := osfs.ReadDir(sub)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "img.jpg" {
		t.Fatalf("unexpected entries: %v", entries)
	}

	dst := filepath.Join(dir, "A_Depth.jpg")
	if err := osfs.Rename(filepath.Join(sub, "img.jpg"), dst); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if !osfs.Exists(dst) {
		t.Error("renamed file missing")
	}

	entries, _ = osfs.ReadDir(sub)
	if len(entries) != 0 {
		t.Errorf("staging dir not drained, %d entries left", len(entries))
	}
}
