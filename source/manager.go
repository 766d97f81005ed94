package source

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/tidwall/btree"
)

// FileID is an opaque identifier for a file loaded into a Manager.
type FileID uint32

// InvalidFileID is the sentinel value of an absent file.
const InvalidFileID FileID = math.MaxUint32

// IsValid reports whether id identifies a real file.
func (id FileID) IsValid() bool {
	return id != InvalidFileID
}

// FileEntry describes one file loaded into the global source-location
// space: its path, its buffer, and the disjoint span of global offsets it
// occupies. FileEntry is immutable once inserted into a Manager; the span
// a file occupies never moves.
type FileEntry struct {
	Path        string
	Buffer      Buffer
	StartOffset uint32
	Size        uint32
}

// EndOffset returns the exclusive end of this file's span in the global
// offset space.
func (e FileEntry) EndOffset() uint32 {
	return e.StartOffset + e.Size
}

// ContainsLocation reports whether loc falls within this file's span.
func (e FileEntry) ContainsLocation(loc Location) bool {
	off := loc.Offset()
	return off >= e.StartOffset && off < e.EndOffset()
}

// LocationToOffset converts a global location into a byte offset local to
// this file, or returns (0, false) if loc does not fall within this file.
func (e FileEntry) LocationToOffset(loc Location) (uint32, bool) {
	if !e.ContainsLocation(loc) {
		return 0, false
	}
	return loc.Offset() - e.StartOffset, true
}

// OffsetToLocation converts a local byte offset (0..=Size) into a global
// location within this file.
func (e FileEntry) OffsetToLocation(offset uint32) (Location, bool) {
	if offset > e.Size {
		return Location{}, false
	}
	return NewLocation(e.StartOffset + offset), true
}

// Manager owns every Buffer loaded for a lexing session and assigns each a
// monotonic FileID plus a disjoint span of the flat, insertion-ordered
// global offset space. This mirrors Clang's SourceManager.
//
// Files are looked up by FileID through a map (GetFile) and, for the
// "which file contains this offset" query, through an O(log n) sorted
// offset index (FileFor) rather than a linear scan over every file.
type Manager struct {
	files          map[FileID]FileEntry
	offsetIndex    btree.Map[uint32, FileID]
	nextFileID     uint32
	nextSourceOffs uint32
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{files: make(map[FileID]FileEntry)}
}

// LoadFile reads path from disk and adds it as a new file.
func (m *Manager) LoadFile(path string) (FileID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InvalidFileID, &LoadError{Path: path, Err: err}
	}
	name := filepath.Clean(path)
	return m.AddBuffer(NewBuffer(data, name), path), nil
}

// AddBuffer registers buf as a new file occupying the next free span of the
// global offset space and returns its FileID. path is the display path
// recorded on the FileEntry; pass buf.Name() if there is no separate path.
func (m *Manager) AddBuffer(buf Buffer, path string) FileID {
	id := FileID(m.nextFileID)
	m.nextFileID++

	entry := FileEntry{
		Path:        path,
		Buffer:      buf,
		StartOffset: m.nextSourceOffs,
		Size:        uint32(buf.Size()),
	}
	m.nextSourceOffs = entry.EndOffset()

	m.files[id] = entry
	m.offsetIndex.Set(entry.StartOffset, id)
	return id
}

// GetFile returns the FileEntry for id.
func (m *Manager) GetFile(id FileID) (FileEntry, bool) {
	e, ok := m.files[id]
	return e, ok
}

// IsFileLoaded reports whether id identifies a file this Manager has loaded.
func (m *Manager) IsFileLoaded(id FileID) bool {
	_, ok := m.files[id]
	return ok
}

// GetBufferSlice returns the [start, start+length) byte range of the file
// identified by id, or (nil, false) if id is unknown or the range is out of
// bounds.
func (m *Manager) GetBufferSlice(id FileID, start, length uint32) ([]byte, bool) {
	entry, ok := m.files[id]
	if !ok {
		return nil, false
	}
	end := start + length
	if end < start || end > uint32(entry.Buffer.Size()) {
		return nil, false
	}
	return entry.Buffer.Data()[start:end], true
}

// FileCount returns the number of files loaded so far.
func (m *Manager) FileCount() int {
	return len(m.files)
}

// FileFor returns the FileEntry containing loc, descending the sorted
// offset index from the queried offset to find the nearest file whose span
// starts at or before it.
func (m *Manager) FileFor(loc Location) (FileEntry, FileID, bool) {
	var found FileID
	var ok bool
	m.offsetIndex.Descend(loc.Offset(), func(_ uint32, id FileID) bool {
		found, ok = id, true
		return false
	})
	if !ok {
		return FileEntry{}, InvalidFileID, false
	}
	entry := m.files[found]
	if !entry.ContainsLocation(loc) {
		return FileEntry{}, InvalidFileID, false
	}
	return entry, found, true
}

// LoadError wraps an I/O failure encountered while loading a file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("source: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
