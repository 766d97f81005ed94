package source

// Buffer is an immutable byte container paired with a display name (usually
// a file path). Buffers are cheap to pass around: a Buffer is a small value
// wrapping a slice, and Go slices already share their backing array, so no
// reference-counting wrapper is needed the way the original implementation
// needed one.
type Buffer struct {
	data []byte
	name string
}

// NewBuffer wraps data under name. The caller must not mutate data after
// handing it to NewBuffer.
func NewBuffer(data []byte, name string) Buffer {
	return Buffer{data: data, name: name}
}

// NewBufferFromString wraps the bytes of s under name.
func NewBufferFromString(s, name string) Buffer {
	return NewBuffer([]byte(s), name)
}

// Data returns the buffer's raw bytes.
func (b Buffer) Data() []byte {
	return b.data
}

// Name returns the buffer's display name.
func (b Buffer) Name() string {
	return b.name
}

// Size returns the number of bytes in the buffer.
func (b Buffer) Size() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer holds no bytes.
func (b Buffer) IsEmpty() bool {
	return len(b.data) == 0
}

// ByteAt returns the byte at offset and true, or (0, false) if offset is out
// of range.
func (b Buffer) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= len(b.data) {
		return 0, false
	}
	return b.data[offset], true
}
