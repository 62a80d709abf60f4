package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	rec, err := NewRecorder(path, SampleRate)
	if err != nil {
		t.Fatalf("create recorder: %v", err)
	}

	samples := make([]int16, 88)
	for i := range samples {
		samples[i] = int16(i - 44)
	}
	if err := rec.Write(Packet{Frames: 44, Samples: samples}); err != nil {
		t.Fatalf("write packet: %v", err)
	}
	if err := rec.Write(Packet{Frames: 44, Samples: samples}); err != nil {
		t.Fatalf("write packet: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close recorder: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("reopen recording: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode recording: %v", err)
	}

	if dec.NumChans != 2 || dec.SampleRate != SampleRate || dec.BitDepth != 16 {
		t.Errorf("got %d channels at %dHz/%dbit, want 2 at %dHz/16bit",
			dec.NumChans, dec.SampleRate, dec.BitDepth, SampleRate)
	}
	if len(buf.Data) != 2*len(samples) {
		t.Fatalf("got %d samples, want %d", len(buf.Data), 2*len(samples))
	}
	for i, want := range samples {
		if buf.Data[i] != int(want) {
			t.Fatalf("sample %d: got %d, want %d", i, buf.Data[i], want)
		}
	}
}

func TestRecorderBadPath(t *testing.T) {
	if _, err := NewRecorder(filepath.Join(t.TempDir(), "no", "such", "dir.wav"), SampleRate); err == nil {
		t.Error("expected an error for an unwritable path")
	}
}
