package platform

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 22050
	toneHz     = 220
	volume     = 26 // ~0.1 of the unsigned 8-bit range

	// Enough queued tone to cover the longest countdown a program can
	// start (255 at 60Hz is a little over four seconds).
	toneSeconds = 5
)

// Beeper plays a square wave on an SDL audio device while the sound timer is
// running. The device stays paused when idle; Start queues the tone and
// unpauses, Stop pauses and drops whatever is still queued.
type Beeper struct {
	device sdl.AudioDeviceID
	tone   []byte
	spec   sdl.AudioSpec
}

// NewBeeper opens the audio device and pre-renders the tone.
func NewBeeper() (*Beeper, error) {
	desired := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	var spec sdl.AudioSpec
	device, err := sdl.OpenAudioDevice("", false, desired, &spec, 0)
	if err != nil {
		return nil, err
	}

	b := &Beeper{
		device: device,
		spec:   spec,
	}

	// A square wave alternating around the device's silence value, one
	// half-period at a time.
	halfPeriod := sampleRate / toneHz / 2
	tone := make([]byte, sampleRate*toneSeconds)
	for i := range tone {
		if (i/halfPeriod)%2 == 0 {
			tone[i] = spec.Silence + volume
		} else {
			tone[i] = spec.Silence - volume
		}
	}
	b.tone = tone

	sdl.PauseAudioDevice(device, true)
	return b, nil
}

// Start implements chip8.Beeper.
func (b *Beeper) Start() error {
	sdl.ClearQueuedAudio(b.device)
	if err := sdl.QueueAudio(b.device, b.tone); err != nil {
		return err
	}
	sdl.PauseAudioDevice(b.device, false)
	return nil
}

// Stop implements chip8.Beeper.
func (b *Beeper) Stop() error {
	sdl.PauseAudioDevice(b.device, true)
	sdl.ClearQueuedAudio(b.device)
	return nil
}

// Close pauses and closes the audio device.
func (b *Beeper) Close() {
	sdl.PauseAudioDevice(b.device, true)
	sdl.CloseAudioDevice(b.device)
}
