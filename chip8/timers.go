package chip8

// Beeper is driven one-way by the sound timer: Start when the countdown
// becomes active, Stop when it runs out. It never reports device state back
// to the machine.
type Beeper interface {
	Start() error
	Stop() error
}

// Both timers store their countdown in tick units: starting one multiplies
// the caller-given 60Hz duration by scale (ticks per 60Hz period), and each
// machine tick decrements by one, never below zero.

type delayTimer struct {
	ticks uint
	scale uint
}

func (t *delayTimer) start(duration byte) {
	t.ticks = uint(duration) * t.scale
}

// read truncates the remaining tick count to a byte, the same way the
// register write does.
func (t *delayTimer) read() byte {
	return byte(t.ticks)
}

func (t *delayTimer) step() {
	if t.ticks > 0 {
		t.ticks--
	}
}

type soundTimer struct {
	ticks   uint
	scale   uint
	beeper  Beeper
	playing bool
}

func (t *soundTimer) start(duration byte) {
	t.ticks = uint(duration) * t.scale
}

func (t *soundTimer) step() error {
	if t.ticks > 0 {
		if !t.playing {
			t.playing = true
			if err := t.beeper.Start(); err != nil {
				return err
			}
		}
		t.ticks--
		return nil
	}

	if t.playing {
		t.playing = false
		return t.beeper.Stop()
	}
	return nil
}
