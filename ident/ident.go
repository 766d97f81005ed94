// Package ident interns command names (the text of a control word or the
// UTF-8 encoding of an active character) into stable handles, so that two
// occurrences of the same command always compare equal by identity rather
// than by re-comparing their bytes. This makes O(1) macro-table lookups by
// handle possible once expansion is layered on top of this lexer.
package ident

// ID is an opaque command-identifier handle. Two IDs are equal if and only
// if they were interned from the same byte sequence — Go's native pointer
// equality gives us that for free, since Table.Intern always returns the
// same *ID for equal content.
type ID struct {
	bytes []byte
}

// Bytes returns the interned byte sequence. The returned slice must not be
// mutated; it is shared by every holder of this ID.
func (id *ID) Bytes() []byte {
	return id.bytes
}

// String returns the interned bytes decoded as UTF-8. Command names are not
// guaranteed to be valid UTF-8 (TeX operates on raw bytes), so callers that
// need a best-effort display string should use this; callers that need the
// exact bytes should use Bytes.
func (id *ID) String() string {
	return string(id.bytes)
}

// Table interns command name byte-sequences into stable *ID handles. A
// single Table is shared by every Lexer in an include stack so that a
// command spelled the same way in two different files still interns to the
// same handle.
//
// Table is not safe for concurrent use; the lexer and preprocessor are
// specified as single-threaded and cooperative, so no locking is needed.
type Table struct {
	arena arena
	byKey map[string]*ID
}

// NewTable returns an empty command identifier table.
func NewTable() *Table {
	return &Table{byKey: make(map[string]*ID)}
}

// Intern returns the stable ID for name, allocating a new one the first
// time a given byte sequence is seen. Repeated calls with byte-equal (but
// not necessarily slice-identical) input return the exact same *ID.
func (t *Table) Intern(name []byte) *ID {
	// The map lookup below converts name to a string only for hashing and
	// comparison; Go's compiler elides the allocation for a map read with a
	// []byte-derived string key.
	if id, ok := t.byKey[string(name)]; ok {
		return id
	}

	stable := t.arena.alloc(name)
	id := &ID{bytes: stable}
	t.byKey[string(stable)] = id
	return id
}

// Len returns the number of distinct identifiers interned so far.
func (t *Table) Len() int {
	return len(t.byKey)
}
