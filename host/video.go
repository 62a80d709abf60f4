// Package host adapts the hardware-shaped artifacts of an emulation
// core (variable-geometry framebuffer, interleaved sample stream,
// serialized machine state) into the stable, fixed-contract buffers an
// embedding host reads and writes. A Session ties the pieces together
// and owns their lifetime; the core drives everything else through
// callbacks, once per frame or per mode event.
package host

import (
	"mdhost/core"
	log "mdhost/logger"
)

// Pixel buffer geometry. The buffer itself never changes size; the
// visible sub-rectangle within it does.
const (
	MaxWidth  = 320
	MaxHeight = 240

	pixelSize = 2 // RGB555, two bytes per sample
)

// DisplayMode is the machine's visible-region geometry as reported by
// the core on a mode change.
type DisplayMode struct {
	StartLine int
	LineCount int
	StartCol  int
	ColCount  int
}

// VideoAdapter owns the fixed-capacity pixel buffer and keeps its
// addressing (visible width, height and byte offset) in sync with the
// display mode the core reports. The host reads Pixels/Width/Height
// once per frame; nothing here can fail, malformed mode reports are
// clamped.
type VideoAdapter struct {
	core core.Video

	buf    [MaxWidth * MaxHeight]uint16
	width  int
	height int
	offset int // byte displacement of the first visible scanline

	mode    DisplayMode
	hasMode bool

	resized func(width, height int)
}

func NewVideoAdapter(cv core.Video) *VideoAdapter {
	return &VideoAdapter{
		core:   cv,
		width:  MaxWidth,
		height: MaxHeight,
	}
}

// OnResize registers the host callback invoked whenever the visible
// geometry changes. Invoked inline from ModeChange.
func (va *VideoAdapter) OnResize(fn func(width, height int)) {
	va.resized = fn
}

// ModeChange reconfigures the buffer for a new display mode. Called by
// the core whenever the machine switches video geometry, and replayed
// by HardwareStartup.
func (va *VideoAdapter) ModeChange(startLine, lineCount, startCol, colCount int) {
	va.mode = DisplayMode{
		StartLine: startLine,
		LineCount: lineCount,
		StartCol:  startCol,
		ColCount:  colCount,
	}
	va.hasMode = true

	va.width = min(colCount, MaxWidth)
	va.height = min(lineCount, MaxHeight)

	// Zero everything so a smaller visible region can't show pixels
	// left over from the previous mode.
	clear(va.buf[:])

	va.core.SetOutputBuffer(va.buf[:], va.width*pixelSize)

	// Byte offset of the first visible scanline, kept within the last
	// addressable row whatever start line the core reported.
	va.offset = va.width * startLine * pixelSize
	va.offset = min(va.offset, va.width*(MaxHeight-1)*pixelSize)
	va.offset = max(va.offset, 0)

	// The clear invalidated every resolved color.
	va.core.DirtyPalette()

	log.ModVideo.Debugf("mode change: %dx%d start_line=%d offset=%d",
		va.width, va.height, startLine, va.offset)

	if va.resized != nil {
		va.resized(va.width, va.height)
	}
}

// HardwareStartup restores the output configuration after an add-on
// hardware path activates and resets it: the pixel format is set for
// that path, then the last known display mode is replayed in full, or
// the core is simply re-pointed at the buffer if no mode was ever
// reported.
func (va *VideoAdapter) HardwareStartup() {
	va.core.SetOutputFormat(core.FormatRGB555)

	if va.hasMode {
		m := va.mode
		va.ModeChange(m.StartLine, m.LineCount, m.StartCol, m.ColCount)
		return
	}
	va.core.SetOutputBuffer(va.buf[:], va.width*pixelSize)
}

// Pixels returns the visible pixels, starting at the first visible
// scanline. Pitch is Width()*2 bytes.
func (va *VideoAdapter) Pixels() []uint16 {
	return va.buf[va.offset/pixelSize:]
}

func (va *VideoAdapter) Width() int  { return va.width }
func (va *VideoAdapter) Height() int { return va.height }

// Mode returns the cached display mode and whether one has been
// reported yet.
func (va *VideoAdapter) Mode() (DisplayMode, bool) {
	return va.mode, va.hasMode
}

// attach points the core's renderer at the pixel buffer with the
// current geometry. Used at session init, before any mode report.
func (va *VideoAdapter) attach() {
	va.core.SetOutputFormat(core.FormatRGB555)
	va.core.SetOutputBuffer(va.buf[:], va.width*pixelSize)
}
