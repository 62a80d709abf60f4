// Package coretest provides a scripted, deterministic emulation core
// for exercising the host adapter layer without real hardware
// emulation. Frame output and sound are pure functions of an internal
// counter, and the counter plus a small RAM are what gets serialized,
// so save/load round trips can be asserted on subsequent frame output.
package coretest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"mdhost/core"
	"mdhost/state"
)

const stateMagic = "HSST"

// Core implements core.Core with scriptable behaviour. The zero value
// of the knobs gives a 320x224 NTSC-ish machine that announces its
// display mode on the first frame after a load.
type Core struct {
	// Scripting knobs, set before use.
	Mode        [4]int // mode announced on the first frame: start line, line count, start col, col count
	SoundFrames int    // stereo frames produced per frame
	SavePad     int    // extra zero bytes appended to a saved state
	FailInit    error
	FailLoad    error
	FailSave    error
	FailRestore error

	hooks  core.Hooks
	inited bool
	loaded bool

	outBuf  []uint16
	pitch   int
	format  core.PixelFormat
	dirties int

	sndBuf  []int16
	sndRate int
	rerates int

	pads     [2]uint16
	opts     core.Options
	devices  [2]core.InputDevice
	override core.Region
	region   core.Region
	order    [3]core.Region
	media    string
	addonOn  bool

	announced bool

	// The serialized machine state.
	counter uint64
	ram     [256]byte
}

func New() *Core {
	return &Core{
		Mode:        [4]int{8, 224, 0, 320},
		SoundFrames: 735, // 44100 / 60
	}
}

func (c *Core) Init(hooks core.Hooks) error {
	if c.FailInit != nil {
		return c.FailInit
	}
	c.hooks = hooks
	c.inited = true
	return nil
}

func (c *Core) Close() {
	c.inited = false
	c.loaded = false
}

func (c *Core) LoadMedia(name string, data []byte) (core.MediaKind, error) {
	if c.FailLoad != nil {
		return core.MediaUnknown, c.FailLoad
	}
	if !c.inited || len(data) == 0 {
		return core.MediaUnknown, errors.New("coretest: nothing to load")
	}

	c.media = strings.TrimSuffix(name, ".bin")
	c.loaded = true
	c.announced = false
	c.counter = 0
	c.ram = [256]byte{}
	c.DetectRegion()

	kind := core.MediaCartridge
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".cue") || strings.HasSuffix(lower, ".iso") {
		kind = core.MediaCD
	}
	return kind, nil
}

func (c *Core) UnloadMedia() {
	c.loaded = false
	c.media = ""
	c.addonOn = false
}

func (c *Core) Reset() {
	c.counter = 0
	c.ram = [256]byte{}
	c.announced = false
}

func (c *Core) PrepareRun() {}

func (c *Core) RunFrame() {
	if !c.loaded {
		return
	}

	if !c.announced && c.hooks.VideoModeChange != nil {
		c.announced = true
		c.hooks.VideoModeChange(c.Mode[0], c.Mode[1], c.Mode[2], c.Mode[3])
	}

	c.counter++
	c.ram[c.counter%uint64(len(c.ram))] = byte(c.counter)

	c.render()
	c.sound()
}

// render fills the whole output buffer with a pattern derived from the
// counter, using the pitch the host configured.
func (c *Core) render() {
	if c.outBuf == nil || c.pitch <= 0 {
		return
	}
	width := c.pitch / 2
	rows := len(c.outBuf) / width
	for y := range rows {
		row := c.outBuf[y*width : (y+1)*width]
		for x := range row {
			row[x] = uint16(c.counter)*31 + uint16(y*7+x)
		}
	}
}

func (c *Core) sound() {
	if c.sndBuf == nil || c.hooks.WriteSound == nil {
		return
	}
	n := min(2*c.SoundFrames, len(c.sndBuf))
	for i := range c.sndBuf[:n] {
		c.sndBuf[i] = int16(c.counter*13 + uint64(i))
	}
	c.hooks.WriteSound(n * 2)
}

func (c *Core) StartAddon() error {
	if !c.loaded {
		return errors.New("coretest: no media loaded")
	}
	c.addonOn = true
	if c.hooks.HardwareStartup != nil {
		c.hooks.HardwareStartup()
	}
	return nil
}

func (c *Core) SetOptions(opts core.Options) { c.opts = opts }
func (c *Core) SetPad(pad int, state uint16) { c.pads[pad] = state }
func (c *Core) SetRegionOverride(r core.Region) { c.override = r }
func (c *Core) SetAutoRegionOrder(o [3]core.Region) { c.order = o }

func (c *Core) SetInputDevice(pad int, dev core.InputDevice) {
	if pad >= 0 && pad < len(c.devices) {
		c.devices[pad] = dev
	}
}

func (c *Core) DetectRegion() {
	if c.override != core.RegionAuto {
		c.region = c.override
		return
	}
	c.region = c.order[0]
	if c.region == core.RegionAuto {
		c.region = core.RegionUS
	}
}

func (c *Core) Region() core.Region { return c.region }
func (c *Core) IsPAL() bool { return c.region.PAL() }
func (c *Core) MediaName() string { return c.media }

func (c *Core) SetOutputFormat(f core.PixelFormat) { c.format = f }
func (c *Core) SetOutputBuffer(buf []uint16, pitch int) { c.outBuf, c.pitch = buf, pitch }
func (c *Core) DirtyPalette() { c.dirties++ }

func (c *Core) SetSoundRate(hz int) { c.sndRate = hz }
func (c *Core) SetSoundBuffer(buf []int16) { c.sndBuf = buf }
func (c *Core) RerateSound() { c.rerates++ }

// SaveState serializes magic, version, a reserved gap, the counter and
// RAM, exercising Write and Skip the way a real serializer does.
func (c *Core) SaveState(s state.Stream) error {
	if c.FailSave != nil {
		return c.FailSave
	}

	s.Write([]byte(stateMagic))

	var tmp [8]byte
	binary.BigEndian.PutUint32(tmp[:4], 1)
	s.Write(tmp[:4])

	s.Skip(8) // reserved

	binary.BigEndian.PutUint64(tmp[:], c.counter)
	s.Write(tmp[:])
	s.Write(c.ram[:])

	for pad := c.SavePad; pad > 0; {
		n := min(pad, len(c.ram))
		s.Write(make([]byte, n))
		pad -= n
	}
	return nil
}

func (c *Core) LoadState(s state.Stream) error {
	if c.FailRestore != nil {
		return c.FailRestore
	}

	var magic [4]byte
	if s.Read(magic[:]) != len(magic) || string(magic[:]) != stateMagic {
		return fmt.Errorf("coretest: bad state magic %q", magic)
	}

	var tmp [8]byte
	if s.Read(tmp[:4]) != 4 || binary.BigEndian.Uint32(tmp[:4]) != 1 {
		return errors.New("coretest: unsupported state version")
	}

	s.Skip(8) // reserved

	if s.Read(tmp[:]) != len(tmp) {
		return errors.New("coretest: truncated state")
	}
	counter := binary.BigEndian.Uint64(tmp[:])

	var ram [256]byte
	if s.Read(ram[:]) != len(ram) {
		return errors.New("coretest: truncated state")
	}

	c.counter = counter
	c.ram = ram
	return nil
}

// Inspection helpers for tests.

func (c *Core) Pads() [2]uint16 { return c.pads }
func (c *Core) Options() core.Options { return c.opts }
func (c *Core) Devices() [2]core.InputDevice { return c.devices }
func (c *Core) Format() core.PixelFormat { return c.format }
func (c *Core) OutBuffer() ([]uint16, int) { return c.outBuf, c.pitch }
func (c *Core) SoundRate() int { return c.sndRate }
func (c *Core) Rerates() int { return c.rerates }
func (c *Core) PaletteDirties() int { return c.dirties }
func (c *Core) AddonActive() bool { return c.addonOn }
func (c *Core) Counter() uint64 { return c.counter }
