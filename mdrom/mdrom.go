// Package mdrom implements a reader for Mega Drive cartridge images
// and the header metadata the host surfaces: titles, serial, region
// field, checksum, SRAM range.
package mdrom

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// header field offsets, from the start of the image.
const (
	offConsole  = 0x100 // console name, 16 bytes
	offRelease  = 0x110 // copyright and release date, 16 bytes
	offDomestic = 0x120 // domestic title, 48 bytes
	offOverseas = 0x150 // overseas title, 48 bytes
	offSerial   = 0x180 // serial number, 14 bytes
	offChecksum = 0x18e // header checksum, big-endian word
	offSRAM     = 0x1b0 // "RA" marker + SRAM start/end
	offRegion   = 0x1f0 // region field, 3 bytes
	offData     = 0x200 // checksummed data starts here
)

type Rom struct {
	header
	Data []byte // the full image, header included
	name string // original file name, for format detection
}

// Open loads a rom image from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := &Rom{name: filepath.Base(path)}
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, err
	}
	return rom, nil
}

// Read parses a rom image already in memory. name is the original file
// name.
func Read(name string, data []byte) (*Rom, error) {
	rom := &Rom{name: name, Data: data}
	if err := rom.decode(data); err != nil {
		return nil, err
	}
	return rom, nil
}

// ReadFrom implements the io.ReaderFrom interface.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	rom.Data = buf
	if err := rom.decode(buf); err != nil {
		return 0, fmt.Errorf("failed to decode header: %w", err)
	}
	return int64(len(buf)), nil
}

type header struct {
	console  string
	release  string
	domestic string
	overseas string
	serial   string
	regions  string
	checksum uint16
	sramFrom uint32
	sramTo   uint32
	hasSRAM  bool
}

func (hdr *header) decode(p []byte) error {
	if len(p) < offData {
		return fmt.Errorf("too small, needs at least %d bytes", offData)
	}

	hdr.console = trimField(p[offConsole : offConsole+16])
	if !strings.HasPrefix(hdr.console, "SEGA") {
		return fmt.Errorf("invalid console name %q", hdr.console)
	}

	hdr.release = trimField(p[offRelease : offRelease+16])
	hdr.domestic = trimField(p[offDomestic : offDomestic+48])
	hdr.overseas = trimField(p[offOverseas : offOverseas+48])
	hdr.serial = trimField(p[offSerial : offSerial+14])
	hdr.checksum = binary.BigEndian.Uint16(p[offChecksum:])
	hdr.regions = trimField(p[offRegion : offRegion+3])

	if p[offSRAM] == 'R' && p[offSRAM+1] == 'A' {
		hdr.hasSRAM = true
		hdr.sramFrom = binary.BigEndian.Uint32(p[offSRAM+4:])
		hdr.sramTo = binary.BigEndian.Uint32(p[offSRAM+8:])
	}
	return nil
}

// Name returns the best title for display: the overseas one, falling
// back to the domestic one.
func (rom *Rom) Name() string {
	if rom.overseas != "" {
		return rom.overseas
	}
	return rom.domestic
}

func (rom *Rom) Console() string  { return rom.console }
func (rom *Rom) Release() string  { return rom.release }
func (rom *Rom) Domestic() string { return rom.domestic }
func (rom *Rom) Overseas() string { return rom.overseas }
func (rom *Rom) Serial() string   { return rom.serial }
func (rom *Rom) Regions() string  { return rom.regions }
func (rom *Rom) Checksum() uint16 { return rom.checksum }

// SRAM returns the battery-backed RAM address range declared in the
// header, or ok=false when the cartridge has none.
func (rom *Rom) SRAM() (from, to uint32, ok bool) {
	return rom.sramFrom, rom.sramTo, rom.hasSRAM
}

// Is32X reports whether the image targets the 32X add-on, detected
// from the file extension or the console name.
func (rom *Rom) Is32X() bool {
	if strings.EqualFold(filepath.Ext(rom.name), ".32x") {
		return true
	}
	return strings.Contains(rom.console, "32X")
}

// ComputeChecksum sums the big-endian words past the header, the way
// the console BIOS verifies a cartridge.
func (rom *Rom) ComputeChecksum() uint16 {
	var sum uint16
	for i := offData; i+1 < len(rom.Data); i += 2 {
		sum += binary.BigEndian.Uint16(rom.Data[i:])
	}
	return sum
}

// ChecksumOK reports whether the header checksum matches the image.
func (rom *Rom) ChecksumOK() bool {
	return rom.checksum == rom.ComputeChecksum()
}

// PrintInfos writes a human readable header summary.
func (rom *Rom) PrintInfos(w io.Writer) {
	fmt.Fprintf(w, "console:  %s\n", rom.console)
	fmt.Fprintf(w, "name:     %s\n", rom.Name())
	fmt.Fprintf(w, "domestic: %s\n", rom.domestic)
	fmt.Fprintf(w, "serial:   %s\n", rom.serial)
	fmt.Fprintf(w, "release:  %s\n", rom.release)
	fmt.Fprintf(w, "regions:  %s\n", rom.regions)
	fmt.Fprintf(w, "size:     %d bytes\n", len(rom.Data))
	fmt.Fprintf(w, "checksum: %04x (computed %04x)\n", rom.checksum, rom.ComputeChecksum())
	if rom.hasSRAM {
		fmt.Fprintf(w, "sram:     %06x-%06x\n", rom.sramFrom, rom.sramTo)
	}
	if rom.Is32X() {
		fmt.Fprintf(w, "32x:      yes\n")
	}
}

func trimField(p []byte) string {
	s := strings.TrimRight(string(p), " \x00")
	return strings.TrimSpace(s)
}
