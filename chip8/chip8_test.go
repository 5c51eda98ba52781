package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	program := []byte{0x12, 0x00}
	m, err := New(program, &nullPresenter{}, &recordBeeper{}, DefaultConfig())
	assert.NoError(t, err)

	assert.Equal(t, uint16(ProgramStart), m.pc)
	assert.Equal(t, byte(0x12), m.memory[ProgramStart])
	assert.Equal(t, byte(0x00), m.memory[ProgramStart+1])

	// The glyph table sits at FontStart: "0" starts with 0xF0, "F" ends
	// with 0x80.
	assert.Equal(t, byte(0xF0), m.memory[FontStart])
	assert.Equal(t, byte(0x80), m.memory[FontStart+79])

	assert.Equal(t, 0, len(m.stack))
	assert.Equal(t, uint16(0), m.i)
}

func TestNewProgramTooLarge(t *testing.T) {
	program := make([]byte, memorySize-ProgramStart+1)
	_, err := New(program, &nullPresenter{}, &recordBeeper{}, DefaultConfig())
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	// The largest program that still fits loads fine.
	program = program[:memorySize-ProgramStart]
	_, err = New(program, &nullPresenter{}, &recordBeeper{}, DefaultConfig())
	assert.NoError(t, err)
}

func TestUnknownOpcodeIgnored(t *testing.T) {
	for _, opcode := range []uint16{0x0123, 0x8AB8, 0xE133, 0xF0FF} {
		m := testMachine(t, Quirks{})
		step(t, m, opcode)
		assert.Equal(t, uint16(ProgramStart+2), m.pc)
	}
}

func TestProgramCounterWrap(t *testing.T) {
	m := testMachine(t, Quirks{})

	// Jump to the last instruction slot, execute the no-op that lives
	// there, and verify the advance past the memory bound wraps back to
	// the program start instead of an invalid address.
	step(t, m, 0x1FFE)
	assert.Equal(t, uint16(0xFFE), m.pc)

	assert.NoError(t, m.Tick())
	assert.Equal(t, uint16(ProgramStart), m.pc)
}

func TestKeypadSnapshotClearedAfterTick(t *testing.T) {
	m := testMachine(t, Quirks{})

	m.SetKeys([16]bool{5: true})
	assert.True(t, m.keypad[5])

	step(t, m, 0x6000)
	assert.Equal(t, [16]bool{}, m.keypad)
}

func TestGetKeyBlocksUntilKeyDown(t *testing.T) {
	m := testMachine(t, Quirks{})

	// No key down: the same instruction is re-decoded next tick.
	step(t, m, 0xF30A)
	assert.Equal(t, uint16(ProgramStart), m.pc)

	step(t, m, 0xF30A)
	assert.Equal(t, uint16(ProgramStart), m.pc)

	// A key transition ends the wait with the lowest-indexed down key.
	m.SetKeys([16]bool{7: true, 3: true})
	assert.NoError(t, m.Tick())
	assert.Equal(t, byte(3), m.v[3])
	assert.Equal(t, uint16(ProgramStart+2), m.pc)
}

func TestTickReportsBeeperFailure(t *testing.T) {
	wantErr := errors.New("device gone")
	m, err := New(nil, &nullPresenter{}, &failBeeper{err: wantErr}, Config{IPS: 60})
	assert.NoError(t, err)

	// Start the sound timer; the failing Start surfaces from the same
	// tick's timer step.
	m.v[0] = 2
	m.memory[m.pc] = 0xF0
	m.memory[m.pc+1] = 0x18
	assert.True(t, errors.Is(m.Tick(), wantErr))
}

type failBeeper struct {
	err error
}

func (b *failBeeper) Start() error { return b.err }
func (b *failBeeper) Stop() error  { return b.err }
