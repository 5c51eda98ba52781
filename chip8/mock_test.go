package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// nullPresenter satisfies Presenter without a surface, counting the
// notifications it receives.
type nullPresenter struct {
	setPixels   int
	clearPixels int
	clears      int
	presents    int
}

func (p *nullPresenter) SetPixel(_, _ byte) error {
	p.setPixels++
	return nil
}

func (p *nullPresenter) ClearPixel(_, _ byte) error {
	p.clearPixels++
	return nil
}

func (p *nullPresenter) Clear() error {
	p.clears++
	return nil
}

func (p *nullPresenter) Present() error {
	p.presents++
	return nil
}

// recordBeeper counts sound timer start/stop edges.
type recordBeeper struct {
	starts int
	stops  int
}

func (b *recordBeeper) Start() error {
	b.starts++
	return nil
}

func (b *recordBeeper) Stop() error {
	b.stops++
	return nil
}

// testMachine returns a machine with no program, a null presenter and
// beeper, a 60Hz tick rate and a fixed random source.
func testMachine(t *testing.T, quirks Quirks) *Machine {
	t.Helper()

	m, err := New(nil, &nullPresenter{}, &recordBeeper{}, Config{
		IPS:    60,
		Quirks: quirks,
		Rand:   func() byte { return 0xAB },
	})
	assert.NoError(t, err)
	return m
}

// step pokes an opcode at the program counter and runs one tick.
func step(t *testing.T, m *Machine, opcode uint16) {
	t.Helper()

	m.memory[m.pc] = byte(opcode >> 8)
	m.memory[m.pc+1] = byte(opcode)
	assert.NoError(t, m.Tick())
}
