package host

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"mdhost/core"
	log "mdhost/logger"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Sound   SoundConfig   `toml:"sound"`
}

type GeneralConfig struct {
	// Region forces a hardware region: auto, jp-ntsc, jp-pal, us, eu.
	Region string `toml:"region"`

	// RegionOrder is the detection priority when media supports
	// several regions.
	RegionOrder []string `toml:"region_order"`

	// SixButtonPad plugs 6-button controllers into both ports.
	SixButtonPad bool `toml:"six_button_pad"`
}

type SoundConfig struct {
	Rate int `toml:"rate"`
}

// DefaultConfig mirrors the original platform defaults: auto region
// detected with US, EU, JP priority, 6-button pads, 44100Hz sound.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Region:       "auto",
			RegionOrder:  []string{"us", "eu", "jp-ntsc"},
			SixButtonPad: true,
		},
		Sound: SoundConfig{Rate: SampleRate},
	}
}

// LoadConfigOrDefault loads a TOML configuration file, or provides the
// default one when path is empty or unreadable.
func LoadConfigOrDefault(path string) Config {
	if path == "" {
		return DefaultConfig()
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.ModHost.Warnf("failed to load config %s: %v, using defaults", path, err)
		return DefaultConfig()
	}
	cfg.Check()
	return cfg
}

// Check normalizes invalid values rather than failing.
func (cfg *Config) Check() {
	if cfg.Sound.Rate <= 0 {
		cfg.Sound.Rate = SampleRate
	}
	if cfg.General.Region == "" {
		cfg.General.Region = "auto"
	}
	if _, err := ParseRegion(cfg.General.Region); err != nil {
		log.ModHost.Warnf("%v, falling back to auto detection", err)
		cfg.General.Region = "auto"
	}
	if len(cfg.General.RegionOrder) == 0 {
		cfg.General.RegionOrder = DefaultConfig().General.RegionOrder
	}
}

// ParseRegion converts a configuration string into a region override.
func ParseRegion(s string) (core.Region, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return core.RegionAuto, nil
	case "jp-ntsc":
		return core.RegionJapanNTSC, nil
	case "jp-pal":
		return core.RegionJapanPAL, nil
	case "us":
		return core.RegionUS, nil
	case "eu":
		return core.RegionEurope, nil
	}
	return core.RegionAuto, fmt.Errorf("unknown region %q", s)
}

// regionOrder converts the configured priority list, padding with the
// defaults so the core always receives three entries.
func (cfg *Config) regionOrder() [3]core.Region {
	order := [3]core.Region{core.RegionUS, core.RegionEurope, core.RegionJapanNTSC}
	for i, s := range cfg.General.RegionOrder {
		if i >= len(order) {
			break
		}
		r, err := ParseRegion(s)
		if err != nil || r == core.RegionAuto {
			log.ModHost.Warnf("invalid region %q in region_order", s)
			continue
		}
		order[i] = r
	}
	return order
}
