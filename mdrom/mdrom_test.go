package mdrom

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

// buildImage assembles a minimal valid cartridge image: header plus 16
// bytes of data, with a correct checksum.
func buildImage() []byte {
	img := make([]byte, offData+16)

	copy(img[offConsole:], "SEGA MEGA DRIVE ")
	copy(img[offRelease:], "(C)TEST 2026.JAN")
	copy(img[offDomestic:], "DOMESTIC TITLE")
	copy(img[offOverseas:], "OVERSEAS TITLE")
	copy(img[offSerial:], "GM 00001234-00")
	copy(img[offRegion:], "JUE")

	for i := range img[offData:] {
		img[offData+i] = byte(i * 3)
	}

	var sum uint16
	for i := offData; i+1 < len(img); i += 2 {
		sum += binary.BigEndian.Uint16(img[i:])
	}
	binary.BigEndian.PutUint16(img[offChecksum:], sum)

	return img
}

func TestReadHeader(t *testing.T) {
	rom, err := Read("game.bin", buildImage())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if rom.Console() != "SEGA MEGA DRIVE" {
		t.Errorf("got console %q", rom.Console())
	}
	if rom.Name() != "OVERSEAS TITLE" {
		t.Errorf("got name %q, want overseas title", rom.Name())
	}
	if rom.Domestic() != "DOMESTIC TITLE" {
		t.Errorf("got domestic %q", rom.Domestic())
	}
	if rom.Serial() != "GM 00001234-00" {
		t.Errorf("got serial %q", rom.Serial())
	}
	if rom.Regions() != "JUE" {
		t.Errorf("got regions %q", rom.Regions())
	}
	if !rom.ChecksumOK() {
		t.Errorf("checksum mismatch: header %04x, computed %04x",
			rom.Checksum(), rom.ComputeChecksum())
	}
	if _, _, ok := rom.SRAM(); ok {
		t.Error("no SRAM was declared")
	}
	if rom.Is32X() {
		t.Error("image is not a 32X one")
	}
}

func TestNameFallsBackToDomestic(t *testing.T) {
	img := buildImage()
	copy(img[offOverseas:], strings.Repeat(" ", 48))

	rom, err := Read("game.bin", img)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rom.Name() != "DOMESTIC TITLE" {
		t.Errorf("got name %q, want domestic title", rom.Name())
	}
}

func TestSRAM(t *testing.T) {
	img := buildImage()
	img[offSRAM] = 'R'
	img[offSRAM+1] = 'A'
	binary.BigEndian.PutUint32(img[offSRAM+4:], 0x200001)
	binary.BigEndian.PutUint32(img[offSRAM+8:], 0x20ffff)

	rom, err := Read("game.bin", img)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	from, to, ok := rom.SRAM()
	if !ok {
		t.Fatal("SRAM not detected")
	}
	if from != 0x200001 || to != 0x20ffff {
		t.Errorf("got range %06x-%06x, want 200001-20ffff", from, to)
	}
}

func TestIs32X(t *testing.T) {
	if rom, _ := Read("game.32X", buildImage()); !rom.Is32X() {
		t.Error("extension .32X not detected")
	}

	img := buildImage()
	copy(img[offConsole:], []byte("SEGA 32X        "))
	if rom, _ := Read("game.bin", img); !rom.Is32X() {
		t.Error("console name 32X not detected")
	}
}

func TestChecksumMismatch(t *testing.T) {
	img := buildImage()
	img[offData] ^= 0xff

	rom, err := Read("game.bin", img)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rom.ChecksumOK() {
		t.Error("corrupted data must fail the checksum")
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read("tiny.bin", make([]byte, 64)); err == nil {
		t.Error("expected an error for a truncated image")
	}

	img := buildImage()
	copy(img[offConsole:], []byte("NOT A CONSOLE   "))
	if _, err := Read("game.bin", img); err == nil {
		t.Error("expected an error for a bad console name")
	}
}

func TestReadFrom(t *testing.T) {
	img := buildImage()

	var rom Rom
	n, err := rom.ReadFrom(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != int64(len(img)) {
		t.Errorf("got n = %d, want %d", n, len(img))
	}
	if rom.Name() != "OVERSEAS TITLE" {
		t.Errorf("got name %q", rom.Name())
	}
}

func TestPrintInfos(t *testing.T) {
	rom, err := Read("game.bin", buildImage())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var sb strings.Builder
	rom.PrintInfos(&sb)

	for _, want := range []string{"OVERSEAS TITLE", "GM 00001234-00", "JUE"} {
		if !strings.Contains(sb.String(), want) {
			t.Errorf("output misses %q:\n%s", want, sb.String())
		}
	}
}
