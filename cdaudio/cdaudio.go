// Package cdaudio decodes CD audio tracks for the CD hardware path.
// Tracks ripped to MP3 are decoded with go-mp3 and mixed into the
// core's audio accumulator from within its own mixing step; the core
// drives everything through the core.CDAudio hooks.
package cdaudio

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	log "mdhost/logger"
)

// go-mp3 output is always 16-bit little endian stereo, whatever the
// source channel layout.
const bytesPerFrame = 4

// Player decodes one MP3 track at a time. The zero value is a stopped
// player ready for Start.
type Player struct {
	dec     *mp3.Decoder
	playing bool
	scratch []byte
}

// Start begins playback of an MP3 track at the given stereo frame
// offset. Any current track is replaced.
func (p *Player) Start(track io.ReadSeeker, frame int) error {
	dec, err := mp3.NewDecoder(track)
	if err != nil {
		p.Stop()
		return fmt.Errorf("cdaudio: %w", err)
	}
	if frame > 0 {
		if _, err := dec.Seek(int64(frame)*bytesPerFrame, io.SeekStart); err != nil {
			p.Stop()
			return fmt.Errorf("cdaudio: seek: %w", err)
		}
	}

	p.dec = dec
	p.playing = true
	log.ModMedia.Debugf("cd track started at frame %d, rate %d", frame, dec.SampleRate())
	return nil
}

// Stop ends playback. Update becomes a no-op until the next Start.
func (p *Player) Stop() {
	p.dec = nil
	p.playing = false
}

// Playing reports whether a track is currently decoding.
func (p *Player) Playing() bool {
	return p.playing
}

// Length returns the track length in stereo frames, 0 when stopped.
func (p *Player) Length() int {
	if p.dec == nil {
		return 0
	}
	return int(p.dec.Length() / bytesPerFrame)
}

// Update decodes up to frames stereo frames and adds them into out,
// the core's int32 accumulator: interleaved left/right pairs when
// stereo, one mono sum per frame otherwise. Returns the number of
// frames mixed; fewer than requested means the track ended.
func (p *Player) Update(out []int32, frames int, stereo bool) int {
	if !p.playing || frames <= 0 {
		return 0
	}

	want := frames * bytesPerFrame
	if cap(p.scratch) < want {
		p.scratch = make([]byte, want)
	}
	buf := p.scratch[:want]

	n, err := io.ReadFull(p.dec, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		log.ModMedia.Errorf("cd track decode: %v", err)
		p.Stop()
		return 0
	}
	if err != nil {
		// Track exhausted, deliver what we got then stop.
		p.Stop()
	}

	got := n / bytesPerFrame
	for i := 0; i < got; i++ {
		l := int32(int16(uint16(buf[i*4]) | uint16(buf[i*4+1])<<8))
		r := int32(int16(uint16(buf[i*4+2]) | uint16(buf[i*4+3])<<8))
		if stereo {
			out[i*2] += l
			out[i*2+1] += r
		} else {
			out[i] += (l + r) / 2
		}
	}
	return got
}
