package host

import (
	"errors"
	"fmt"
	"strings"

	"mdhost/cdaudio"
	"mdhost/core"
	log "mdhost/logger"
	"mdhost/state"
)

// ErrNotInitialized is returned by operations that need Init to have
// run first.
var ErrNotInitialized = errors.New("host: session not initialized")

// Session is one emulation session: it owns the video adapter, the
// sound packager and the state bridge, and exposes the lifecycle the
// embedding host drives. Exactly one session is supported at a time;
// all calls happen on one logical thread of control.
type Session struct {
	core core.Core
	cfg  Config

	Video *VideoAdapter
	Sound *SoundPackager
	State *state.Bridge
	CD    *cdaudio.Player

	pads   [2]uint16
	inited bool
	loaded bool
	frames uint64
}

func NewSession(c core.Core, cfg Config) *Session {
	cfg.Check()
	s := &Session{core: c, cfg: cfg}
	s.Video = NewVideoAdapter(c)
	s.Sound = NewSoundPackager()
	s.State = state.NewBridge(c, func() bool { return s.loaded })
	s.CD = &cdaudio.Player{}
	return s
}

// Init initializes the core and wires the host buffers and hooks into
// it. Calling it on an initialized session is a no-op.
func (s *Session) Init() error {
	if s.inited {
		return nil
	}

	err := s.core.Init(core.Hooks{
		VideoModeChange: s.Video.ModeChange,
		HardwareStartup: s.Video.HardwareStartup,
		WriteSound:      s.Sound.Flush,
		CDAudio:         s.CD,
	})
	if err != nil {
		return fmt.Errorf("host: core init: %w", err)
	}

	s.core.SetOptions(core.DefaultOptions())

	region, _ := ParseRegion(s.cfg.General.Region)
	s.core.SetRegionOverride(region)
	s.core.SetAutoRegionOrder(s.cfg.regionOrder())

	s.core.SetSoundRate(s.cfg.Sound.Rate)
	s.core.SetSoundBuffer(s.Sound.Buffer())

	s.Video.attach()

	dev := core.DevicePad3Btn
	if s.cfg.General.SixButtonPad {
		dev = core.DevicePad6Btn
	}
	s.core.SetInputDevice(0, dev)
	s.core.SetInputDevice(1, dev)

	s.inited = true
	log.ModHost.Infof("session initialized, region=%s rate=%d", region, s.cfg.Sound.Rate)
	return nil
}

// LoadMedia loads a media image into the core, replacing any currently
// loaded one, and prepares the session to run frames. name is the
// original file name; a .32x extension forces the add-on hardware
// path, which the automatic detection misses.
func (s *Session) LoadMedia(name string, data []byte) error {
	if !s.inited {
		return ErrNotInitialized
	}
	if len(data) == 0 {
		return errors.New("host: empty media buffer")
	}

	if s.loaded {
		s.CD.Stop()
		s.core.UnloadMedia()
		s.loaded = false
	}

	kind, err := s.core.LoadMedia(name, data)
	if err != nil {
		return fmt.Errorf("host: load media: %w", err)
	}

	s.core.PrepareRun()

	// Sound timing depends on the detected region.
	s.Sound.clearBuffer()
	s.core.RerateSound()

	// Loading may have reconfigured the renderer.
	s.Video.attach()

	s.loaded = true
	s.frames = 0

	if kind == core.MediaCartridge && strings.HasSuffix(strings.ToLower(name), ".32x") {
		if err := s.core.StartAddon(); err != nil {
			log.ModHost.Errorf("32x startup failed: %v", err)
		}
	}

	log.ModHost.WithFields(log.Fields{
		"name":   s.core.MediaName(),
		"region": s.core.Region(),
		"pal":    s.core.IsPAL(),
	}).Info("media loaded")
	return nil
}

// Reset resets the machine. No-op without loaded media.
func (s *Session) Reset() {
	if s.loaded {
		s.core.Reset()
	}
}

// RunFrame pushes the pad state and executes one frame. No-op without
// loaded media.
func (s *Session) RunFrame() {
	if !s.loaded {
		return
	}
	s.core.SetPad(0, s.pads[0])
	s.core.SetPad(1, s.pads[1])
	s.core.RunFrame()
	s.frames++
}

// Close unloads media and shuts the core down. Safe to call on an
// uninitialized or already closed session.
func (s *Session) Close() {
	if !s.inited {
		return
	}
	if s.loaded {
		s.CD.Stop()
		s.core.UnloadMedia()
		s.loaded = false
	}
	s.core.Close()
	s.inited = false
}

// SetInput records the button bitmask for a pad, applied before the
// next frame. Pads outside [0,1] are ignored.
func (s *Session) SetInput(pad int, buttons uint16) {
	if pad >= 0 && pad < len(s.pads) {
		s.pads[pad] = buttons
	}
}

// SetRegion overrides the hardware region. With media loaded the
// region is re-detected immediately and sound timing recomputed.
func (s *Session) SetRegion(r core.Region) {
	s.core.SetRegionOverride(r)
	if s.loaded {
		s.core.DetectRegion()
		s.core.PrepareRun()
		s.core.RerateSound()
	}
}

// SaveState serializes the machine state. The returned blob aliases
// the state bridge's backing buffer.
func (s *Session) SaveState() ([]byte, error) {
	return s.State.Save()
}

// LoadState restores machine state staged in the bridge's buffer.
func (s *Session) LoadState(size int) error {
	return s.State.Load(size)
}

func (s *Session) Loaded() bool        { return s.loaded }
func (s *Session) Frames() uint64      { return s.frames }
func (s *Session) Region() core.Region { return s.core.Region() }
func (s *Session) IsPAL() bool         { return s.core.IsPAL() }

// MediaName returns the title from the loaded media's header.
func (s *Session) MediaName() string {
	if !s.loaded {
		return ""
	}
	return s.core.MediaName()
}
