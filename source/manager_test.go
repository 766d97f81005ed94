package source

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestManagerMultiFileLayout(t *testing.T) {
	m := NewManager()

	id1 := m.AddBuffer(NewBufferFromString("abcde", "one.tex"), "one.tex")
	id2 := m.AddBuffer(NewBufferFromString("fghijk", "two.tex"), "two.tex")

	e1, ok := m.GetFile(id1)
	if !ok {
		t.Fatalf("GetFile(id1) not found")
	}
	e2, ok := m.GetFile(id2)
	if !ok {
		t.Fatalf("GetFile(id2) not found")
	}

	want1 := FileEntry{Path: "one.tex", Buffer: NewBufferFromString("abcde", "one.tex"), StartOffset: 0, Size: 5}
	want2 := FileEntry{Path: "two.tex", Buffer: NewBufferFromString("fghijk", "two.tex"), StartOffset: 5, Size: 6}

	if diff := pretty.Compare(e1, want1); diff != "" {
		t.Fatalf("file one entry mismatch (-got +want):\n%s", diff)
	}
	if diff := pretty.Compare(e2, want2); diff != "" {
		t.Fatalf("file two entry mismatch (-got +want):\n%s", diff)
	}
}

func TestManagerGetBufferSliceOutOfRange(t *testing.T) {
	m := NewManager()
	id := m.AddBuffer(NewBufferFromString("hello", "f.tex"), "f.tex")

	if _, ok := m.GetBufferSlice(id, 0, 5); !ok {
		t.Fatalf("expected in-range slice to succeed")
	}
	if _, ok := m.GetBufferSlice(id, 3, 10); ok {
		t.Fatalf("expected out-of-range slice to fail")
	}
}

func TestManagerFileFor(t *testing.T) {
	m := NewManager()
	id1 := m.AddBuffer(NewBufferFromString("abcde", "one.tex"), "one.tex")
	id2 := m.AddBuffer(NewBufferFromString("fghijk", "two.tex"), "two.tex")

	entry, id, ok := m.FileFor(NewLocation(2))
	if !ok || id != id1 || entry.Path != "one.tex" {
		t.Fatalf("FileFor(2) = %+v, %v, %v, want file one", entry, id, ok)
	}

	entry, id, ok = m.FileFor(NewLocation(7))
	if !ok || id != id2 || entry.Path != "two.tex" {
		t.Fatalf("FileFor(7) = %+v, %v, %v, want file two", entry, id, ok)
	}

	if _, _, ok = m.FileFor(NewLocation(100)); ok {
		t.Fatalf("FileFor(100) should miss past the end of all files")
	}
}

func TestManagerLoadFileMissing(t *testing.T) {
	m := NewManager()
	if _, err := m.LoadFile("/nonexistent/path/does-not-exist.tex"); err == nil {
		t.Fatalf("expected error loading a nonexistent file")
	}
}
