package state

import (
	"errors"
	"fmt"

	log "mdhost/logger"
)

// MaxSize is the backing buffer capacity for a serialized state. Sized
// for the worst case: 32X SDRAM and DRAM on top of the base machine
// state.
const MaxSize = 2 * 1024 * 1024

var (
	// ErrNoSession is returned when a save or load is requested while
	// no media is loaded. A normal, recoverable condition.
	ErrNoSession = errors.New("state: no active session")

	// ErrEmptyState is returned by Load when the declared size is zero
	// or nothing was ever staged.
	ErrEmptyState = errors.New("state: empty state buffer")

	// ErrStateTooLarge is returned by Save when the serialized state
	// did not fit the backing buffer. The truncated blob is not
	// exposed.
	ErrStateTooLarge = errors.New("state: serialized state exceeds buffer capacity")
)

// Bridge drives the core serializer against a bounded in-memory stream
// to produce or consume one opaque state blob. The backing buffer is
// allocated on first use and reused for the lifetime of the process;
// at most one blob exists at a time.
type Bridge struct {
	ser    Serializer
	active func() bool

	buf  []byte
	size int
}

// NewBridge returns a bridge over the given serializer. active reports
// whether an emulation session is currently running; both Save and Load
// refuse to touch the core without one.
func NewBridge(ser Serializer, active func() bool) *Bridge {
	return &Bridge{ser: ser, active: active}
}

// Buffer returns the full backing buffer, allocating it if needed. A
// host loading a state writes its blob bytes here before calling Load.
func (b *Bridge) Buffer() []byte {
	if b.buf == nil {
		b.buf = make([]byte, MaxSize)
	}
	return b.buf
}

// Save serializes the complete machine state and returns the blob. The
// returned slice aliases the backing buffer and stays valid until the
// next Save or Load.
func (b *Bridge) Save() ([]byte, error) {
	if !b.active() {
		return nil, ErrNoSession
	}

	s := NewMemStream(b.Buffer())
	if err := b.ser.SaveState(s); err != nil {
		return nil, fmt.Errorf("state: serializer: %w", err)
	}
	if s.Truncated() {
		return nil, ErrStateTooLarge
	}

	b.size = s.Pos()
	log.ModState.Debugf("saved state, %d bytes", b.size)
	return b.buf[:b.size], nil
}

// Load restores machine state from the first size bytes of the backing
// buffer, previously filled by the host (see Buffer).
func (b *Bridge) Load(size int) error {
	if !b.active() {
		return ErrNoSession
	}
	if size <= 0 || b.buf == nil {
		return ErrEmptyState
	}
	if size > len(b.buf) {
		return ErrStateTooLarge
	}

	// The stream is scoped to the real blob size so that Eof means
	// "ran out of data", not "ran out of room".
	s := NewMemStream(b.buf[:size])
	if err := b.ser.LoadState(s); err != nil {
		return fmt.Errorf("state: serializer: %w", err)
	}

	b.size = size
	log.ModState.Debugf("loaded state, %d bytes", size)
	return nil
}

// Exists reports whether a blob is available, either saved during this
// session or staged by the host. Hosts use it to gate resume UI.
func (b *Bridge) Exists() bool {
	return b.buf != nil && b.size > 0
}

// Size returns the logical size of the current blob, 0 if none.
func (b *Bridge) Size() int {
	return b.size
}
