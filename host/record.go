package host

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	log "mdhost/logger"
)

// Recorder writes flushed sound packets to a WAV file. Wire it as the
// packager's consumer (or call Write from your own) and Close when the
// session ends. Mostly useful for testing and headless runs.
type Recorder struct {
	f   *os.File
	enc *wav.Encoder
	buf audio.IntBuffer
}

// NewRecorder creates the WAV file and its encoder for 16-bit stereo
// at the given sample rate.
func NewRecorder(path string, rate int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	rec := &Recorder{
		f:   f,
		enc: wav.NewEncoder(f, rate, 16, 2, 1),
		buf: audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
			SourceBitDepth: 16,
		},
	}
	log.ModSound.Infof("recording audio to %s", path)
	return rec, nil
}

// Write appends one packet to the file.
func (r *Recorder) Write(pkt Packet) error {
	if cap(r.buf.Data) < len(pkt.Samples) {
		r.buf.Data = make([]int, len(pkt.Samples))
	}
	r.buf.Data = r.buf.Data[:len(pkt.Samples)]
	for i, s := range pkt.Samples {
		r.buf.Data[i] = int(s)
	}
	return r.enc.Write(&r.buf)
}

// Close finalizes the WAV header and closes the file.
func (r *Recorder) Close() error {
	if err := r.enc.Close(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}
