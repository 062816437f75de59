package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Program.cs", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("Program.cs", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("Program.cs")
	if !exists {
		t.Fatal("Expected file to exist after Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("Expected first file content 'hello world', got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.cs", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Program.cs")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nbb\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nbb\n" {
		t.Errorf("unexpected content %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", file.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.cs")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: want %+v, got %+v", tt.off, tt.want, start)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	if got := file.GetLine(2); got != "second" {
		t.Errorf("line 2: got %q", got)
	}
	if got := file.GetLine(3); got != "third" {
		t.Errorf("line 3: got %q", got)
	}
	if got := file.GetLine(0); got != "" {
		t.Errorf("line 0: got %q", got)
	}
	if got := file.GetLine(9); got != "" {
		t.Errorf("line 9: got %q", got)
	}
}
