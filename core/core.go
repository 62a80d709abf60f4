// Package core defines the contract between the host adapter layer and
// an emulation core. The core is a collaborator: it executes the
// emulated machine and produces pixels, sound and serialized state,
// while everything in this module only adapts those artifacts for the
// embedding host. Concrete cores implement these interfaces and
// register a factory with the host package.
package core

import (
	"io"

	"mdhost/state"
)

// PixelFormat selects the core's output pixel encoding.
type PixelFormat int

const (
	FormatNone PixelFormat = iota
	FormatRGB555
	FormatRGB565
)

// MediaKind is what the core detected when loading media.
type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaCartridge
	MediaCD
)

// InputDevice selects the controller type plugged into a pad port.
type InputDevice int

const (
	DeviceNone InputDevice = iota
	DevicePad3Btn
	DevicePad6Btn
)

// Options is the set of core feature bits the host configures at init.
type Options uint32

const (
	OptStereo Options = 1 << iota
	OptFM
	OptPSG
	OptZ80
	OptCDPCM
	OptCDCDDA
	OptCDGFX
	OptAccSprites
	Opt32X
	OptPWM
	OptNo32ColBorder
)

// DefaultOptions enables every hardware feature, with the 32-column
// border disabled so narrow modes render without side bars.
func DefaultOptions() Options {
	return OptStereo | OptFM | OptPSG | OptZ80 |
		OptCDPCM | OptCDCDDA | OptCDGFX |
		OptAccSprites | Opt32X | OptPWM |
		OptNo32ColBorder
}

// CDAudio decodes compact disc audio tracks for the CD hardware path.
// The core calls Update once per mixing step; decoded frames are added
// into the core's int32 accumulator. See package cdaudio.
type CDAudio interface {
	Start(track io.ReadSeeker, frame int) error
	Stop()
	Update(out []int32, frames int, stereo bool) int
}

// Hooks are the host callbacks and platform services a core invokes
// synchronously from within its own frame execution. Nil fields are
// simply never called.
type Hooks struct {
	// VideoModeChange fires whenever the machine switches display
	// geometry: visible line/column start and count.
	VideoModeChange func(startLine, lineCount, startCol, colCount int)

	// HardwareStartup fires once when an add-on hardware path (32X)
	// activates mid-session and resets the core's output
	// configuration.
	HardwareStartup func()

	// WriteSound fires when the core's sound buffer holds n bytes of
	// interleaved int16 stereo samples ready for delivery.
	WriteSound func(n int)

	// CDAudio, when set, decodes external audio tracks for the CD
	// hardware.
	CDAudio CDAudio
}

// Video is the output-targeting surface of a core. The host owns the
// pixel buffer; the core renders into it at the given pitch.
type Video interface {
	SetOutputFormat(f PixelFormat)

	// SetOutputBuffer points the renderer at buf with the given pitch
	// in bytes.
	SetOutputBuffer(buf []uint16, pitch int)

	// DirtyPalette forces a full color re-resolve on the next frame.
	DirtyPalette()
}

// Audio is the sound-targeting surface of a core. The host owns the
// sample buffer; the core fills it and reports via Hooks.WriteSound.
type Audio interface {
	SetSoundRate(hz int)
	SetSoundBuffer(buf []int16)

	// RerateSound recomputes sound timing after a region or rate
	// change.
	RerateSound()
}

// Core is the full contract a registered emulation core implements.
type Core interface {
	Video
	Audio
	state.Serializer

	// Init prepares the core and installs the host hooks. Called once
	// per session.
	Init(hooks Hooks) error
	Close()

	// LoadMedia detects and loads a media image. name is the original
	// file name, used for format detection.
	LoadMedia(name string, data []byte) (MediaKind, error)
	UnloadMedia()

	Reset()

	// PrepareRun finalizes timing after a load or region change,
	// before the next frame executes.
	PrepareRun()
	RunFrame()

	// StartAddon activates the 32X hardware path explicitly, for media
	// the automatic detection misses.
	StartAddon() error

	SetOptions(opts Options)
	SetInputDevice(pad int, dev InputDevice)
	SetPad(pad int, buttons uint16)

	SetRegionOverride(r Region)
	SetAutoRegionOrder(order [3]Region)
	DetectRegion()
	Region() Region
	IsPAL() bool

	// MediaName returns the title recorded in the loaded media's
	// header, empty when nothing is loaded.
	MediaName() string
}
