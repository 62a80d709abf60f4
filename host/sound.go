package host

import (
	log "mdhost/logger"
)

// SampleRate is the default host delivery rate.
const SampleRate = 44100

// Sound buffer sizing: one frame worth of stereo samples at the lowest
// frame rate (50fps PAL), doubled for headroom, times two channels.
const maxSoundSamples = SampleRate / 50 * 2 * 2

// Packet is one flush worth of interleaved int16 stereo samples. It is
// only valid within the consumer callback; the underlying buffer is
// refilled by the core on the next frame.
type Packet struct {
	Frames  int     // stereo frame count
	Samples []int16 // interleaved left/right, len = 2*Frames
}

// SoundPackager owns the raw sample buffer the core fills and converts
// each flush callback into one discrete packet for the host. There is
// no buffering across flushes; a host without a consumer registered is
// a valid configuration and packets are then dropped silently.
type SoundPackager struct {
	buf      [maxSoundSamples]int16
	consumer func(Packet)
	flushes  uint64
}

func NewSoundPackager() *SoundPackager {
	return &SoundPackager{}
}

// Buffer returns the raw sample buffer handed to the core.
func (sp *SoundPackager) Buffer() []int16 {
	return sp.buf[:]
}

// SetConsumer registers the host callback receiving each packet,
// invoked synchronously from the flush. nil unregisters.
func (sp *SoundPackager) SetConsumer(fn func(Packet)) {
	sp.consumer = fn
}

// Flush packages byteLen bytes of the sample buffer into one packet
// and delivers it. Called by the core once its buffer is ready.
func (sp *SoundPackager) Flush(byteLen int) {
	frames := byteLen / 4 // two channels, two bytes per sample
	if frames <= 0 {
		return
	}
	if frames > maxSoundSamples/2 {
		log.ModSound.Warnf("flush of %d bytes exceeds sample buffer, clipping", byteLen)
		frames = maxSoundSamples / 2
	}

	sp.flushes++
	if sp.consumer == nil {
		return
	}
	sp.consumer(Packet{
		Frames:  frames,
		Samples: sp.buf[:2*frames],
	})
}

// Flushes returns the number of flushes since the packager was
// created, delivered or not.
func (sp *SoundPackager) Flushes() uint64 {
	return sp.flushes
}

// clearBuffer zeroes the sample buffer, used when sound timing is
// recomputed after a load or region change.
func (sp *SoundPackager) clearBuffer() {
	clear(sp.buf[:])
}
