// Package state implements save states for the host adapter: a bounded
// seekable byte stream the core serializer runs against, and the bridge
// that drives a whole save or load through it.
package state

import "io"

// Stream is the byte channel a core serializer reads and writes machine
// state through. It mirrors a classic buffered-file interface but with
// clamp-on-overflow semantics: an access past the end of the stream is
// clipped, never an error and never a buffer overrun. Short writes are
// how a caller detects running out of room.
//
// There is one concrete implementation today (MemStream); the interface
// exists so a file-backed stream can slot in without touching the
// serializer contract.
type Stream interface {
	// Read copies up to len(p) bytes at the cursor into p and returns
	// the number copied, 0 once the cursor is at or past the end.
	Read(p []byte) int

	// Write copies up to len(p) bytes from p at the cursor and returns
	// the number actually written, which is less than len(p) when the
	// stream runs out of capacity.
	Write(p []byte) int

	// Skip moves the cursor n bytes forward without transferring
	// anything. Serializers use it to pass over fields they do not
	// materialize.
	Skip(n int)

	// Eof reports whether the cursor is at or past the end of the
	// stream. For a load the end is the real loaded size, not the
	// backing buffer's capacity.
	Eof() bool

	// Seek repositions the cursor like io.Seeker (io.SeekStart,
	// io.SeekCurrent, io.SeekEnd) and returns the new position. A
	// malformed target is clamped into [0, capacity] instead of
	// failing.
	Seek(offset, whence int) int
}

// Serializer is the part of the emulation core the bridge drives. Both
// directions run state through a Stream; any error aborts the operation
// with no partial result exposed.
type Serializer interface {
	SaveState(s Stream) error
	LoadState(s Stream) error
}

// MemStream is a Stream over a fixed-capacity byte slice. The cursor
// always stays within [0, capacity].
type MemStream struct {
	buf       []byte
	pos       int
	truncated bool
}

func NewMemStream(buf []byte) *MemStream {
	return &MemStream{buf: buf}
}

func (s *MemStream) Read(p []byte) int {
	if s.pos >= len(s.buf) {
		return 0
	}
	n := copy(p, s.buf[s.pos:])
	s.pos += n
	return n
}

func (s *MemStream) Write(p []byte) int {
	if s.pos >= len(s.buf) {
		if len(p) > 0 {
			s.truncated = true
		}
		return 0
	}
	n := copy(s.buf[s.pos:], p)
	s.pos += n
	if n < len(p) {
		s.truncated = true
	}
	return n
}

func (s *MemStream) Skip(n int) {
	s.pos = s.clamp(s.pos + n)
}

func (s *MemStream) Eof() bool {
	return s.pos >= len(s.buf)
}

func (s *MemStream) Seek(offset, whence int) int {
	var pos int
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.pos + offset
	case io.SeekEnd:
		pos = len(s.buf) + offset
	}
	s.pos = s.clamp(pos)
	return s.pos
}

// Pos returns the current cursor position.
func (s *MemStream) Pos() int {
	return s.pos
}

// Capacity returns the stream's fixed capacity in bytes.
func (s *MemStream) Capacity() int {
	return len(s.buf)
}

// Truncated reports whether any write has been clipped. This is what
// distinguishes a stream that exactly filled up from one that silently
// dropped bytes.
func (s *MemStream) Truncated() bool {
	return s.truncated
}

func (s *MemStream) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(s.buf) {
		return len(s.buf)
	}
	return pos
}
