package core

// Region is a hardware region override. The zero value means the core
// auto-detects the region from the media header. The non-auto values
// match the hardware's region bit encoding, which is why they are not
// contiguous.
type Region int

const (
	RegionAuto      Region = 0
	RegionJapanNTSC Region = 1
	RegionJapanPAL  Region = 2
	RegionUS        Region = 4
	RegionEurope    Region = 8
)

func (r Region) String() string {
	switch r {
	case RegionAuto:
		return "auto"
	case RegionJapanNTSC:
		return "jp-ntsc"
	case RegionJapanPAL:
		return "jp-pal"
	case RegionUS:
		return "us"
	case RegionEurope:
		return "eu"
	}
	return "unknown"
}

// PAL reports whether the region runs at 50 frames per second.
func (r Region) PAL() bool {
	return r == RegionJapanPAL || r == RegionEurope
}
