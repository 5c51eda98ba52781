// Package chip8 implements the CHIP-8 virtual machine: 4096 bytes of memory,
// sixteen 8-bit registers, a 64x32 monochrome display, two 60Hz-equivalent
// countdown timers and the original 35-instruction opcode table.
//
// The package contains no presentation, audio or input code. Those
// collaborators are supplied at construction time through the Presenter and
// Beeper interfaces and the per-tick keypad snapshot, and the external
// driving loop owns all pacing.
package chip8

import (
	"math/rand/v2"
)

/*
The 4K address space is segmented into three sections:

	0x000-0x1FF: Originally reserved for the CHIP-8 interpreter itself; this
	             implementation never reads or writes it. Except for...
	0x050-0x09F: The 16 built-in hex glyphs, which programs locate through
	             the Fx29 instruction.
	0x200-0xFFF: Program space. The loaded program starts at 0x200 and
	             anything above it is free for the program to use.
*/
const (
	// ProgramStart is the address where loaded programs begin execution.
	ProgramStart = 0x200

	// FontStart is the address of the built-in hex glyph table.
	FontStart = 0x050

	// DefaultIPS is the default number of instructions executed per second.
	DefaultIPS = 700

	memorySize = 4096
	addrMask   = memorySize - 1
	numKeys    = 16
)

// Config selects the construction-time behavior of a Machine.
type Config struct {
	// IPS is the rate the driving loop promises to call Tick at, in
	// instructions per second. It only affects timer scaling; the machine
	// never paces itself. DefaultIPS is used when zero.
	IPS uint

	// Quirks selects between the historically divergent instruction
	// behaviors. The zero value is all-Legacy; DefaultConfig matches the
	// behavior most programs expect.
	Quirks Quirks

	// Rand overrides the random byte source used by Cxnn. Mainly a test
	// seam; a math/rand source is used when nil.
	Rand func() byte
}

// DefaultConfig returns a Config with the default instruction rate and
// quirk selection.
func DefaultConfig() Config {
	return Config{
		IPS:    DefaultIPS,
		Quirks: DefaultQuirks(),
	}
}

// Machine holds the entire mutable state of one CHIP-8 interpreter: memory,
// registers, stack, display buffer, timers and the per-tick keypad snapshot.
// It is created by New and mutated only through Tick and SetKeys.
type Machine struct {
	// 4K bytes of memory, pre-loaded with the font table and the program.
	memory [memorySize]byte

	// The 16 general purpose registers V0-VF. VF doubles as the
	// carry/borrow/shift-out/collision flag.
	v [16]byte

	// The index register holds memory addresses for draw, BCD and
	// register store/load operations. Logically 12 bits, but Fx1E may push
	// it past 0xFFF without masking.
	i uint16

	// The program counter holds the address of the next instruction.
	pc uint16

	// Saved program counters for subroutine call/return, LIFO order.
	stack []uint16

	// The opcode currently being executed.
	opcode uint16

	display *Display
	delay   delayTimer
	sound   soundTimer

	// Key-down states for the 16-key keypad, replaced wholesale by SetKeys
	// before each tick and cleared after it so every key-sensitive
	// instruction within a tick observes a consistent snapshot.
	keypad [numKeys]bool

	quirks   Quirks
	randByte func() byte
}

// New returns a Machine with the font table and the given program placed in
// memory, registers and timers zeroed and the program counter at
// ProgramStart. It fails if the program does not fit in the address space
// above ProgramStart.
func New(program []byte, presenter Presenter, beeper Beeper, cfg Config) (*Machine, error) {
	memory, err := initMemory(program)
	if err != nil {
		return nil, err
	}

	ips := cfg.IPS
	if ips == 0 {
		ips = DefaultIPS
	}
	// Timer countdowns are stored in tick units so that they stay
	// 60Hz-equivalent in wall time regardless of the instruction rate.
	scale := ips / 60
	if scale == 0 {
		scale = 1
	}

	randByte := cfg.Rand
	if randByte == nil {
		randByte = func() byte {
			return byte(rand.UintN(256))
		}
	}

	return &Machine{
		memory:   memory,
		pc:       ProgramStart,
		stack:    make([]uint16, 0, 16),
		display:  newDisplay(presenter),
		delay:    delayTimer{scale: scale},
		sound:    soundTimer{scale: scale, beeper: beeper},
		quirks:   cfg.Quirks,
		randByte: randByte,
	}, nil
}

// SetKeys replaces the keypad snapshot for the next tick. Index n reports
// whether CHIP-8 key n (0x0-0xF) is currently down; mapping physical keys to
// that index space is the caller's responsibility.
func (m *Machine) SetKeys(keys [numKeys]bool) {
	m.keypad = keys
}

// Tick runs one cycle of the machine: fetch the opcode at the program
// counter, advance the program counter, decode and execute exactly one
// instruction, then step both timers and clear the keypad snapshot.
//
// Errors from the presenter and beeper collaborators propagate to the
// caller, as does the stack underflow fault for a malformed program that
// returns with no pending call. Unknown opcodes are silently ignored.
func (m *Machine) Tick() error {
	// Fetch the two instruction bytes, big-endian.
	m.opcode = uint16(m.memory[m.pc])<<8 | uint16(m.memory[(m.pc+1)&addrMask])

	// Increment the PC before executing so that jumps and calls are not
	// double-advanced.
	m.pc += 2

	if err := m.execute(); err != nil {
		return err
	}

	// The PC wraps to the program start rather than running off the end of
	// memory.
	if m.pc >= memorySize {
		m.pc = ProgramStart
	}

	m.delay.step()
	if err := m.sound.step(); err != nil {
		return err
	}

	m.keypad = [numKeys]bool{}
	return nil
}

// execute dispatches on the already-fetched opcode. Patterns that match no
// instruction fall through as no-ops, matching the permissiveness of the
// historical interpreters.
func (m *Machine) execute() error {
	switch m.opcode & 0xF000 {
	case 0x0000:
		switch m.opcode & 0x0FFF {
		case 0x0E0:
			return m.op00E0()
		case 0x0EE:
			return m.op00EE()
		}
	case 0x1000:
		m.op1nnn()
	case 0x2000:
		m.op2nnn()
	case 0x3000:
		m.op3xnn()
	case 0x4000:
		m.op4xnn()
	case 0x5000:
		m.op5xy0()
	case 0x6000:
		m.op6xnn()
	case 0x7000:
		m.op7xnn()
	case 0x8000:
		switch m.opcode & 0x000F {
		case 0x0:
			m.op8xy0()
		case 0x1:
			m.op8xy1()
		case 0x2:
			m.op8xy2()
		case 0x3:
			m.op8xy3()
		case 0x4:
			m.op8xy4()
		case 0x5:
			m.op8xy5()
		case 0x6:
			m.op8xy6()
		case 0x7:
			m.op8xy7()
		case 0xE:
			m.op8xyE()
		}
	case 0x9000:
		m.op9xy0()
	case 0xA000:
		m.opAnnn()
	case 0xB000:
		m.opBnnn()
	case 0xC000:
		m.opCxnn()
	case 0xD000:
		return m.opDxyn()
	case 0xE000:
		switch m.opcode & 0x00FF {
		case 0x9E:
			m.opEx9E()
		case 0xA1:
			m.opExA1()
		}
	case 0xF000:
		switch m.opcode & 0x00FF {
		case 0x07:
			m.opFx07()
		case 0x0A:
			m.opFx0A()
		case 0x15:
			m.opFx15()
		case 0x18:
			m.opFx18()
		case 0x1E:
			m.opFx1E()
		case 0x29:
			m.opFx29()
		case 0x33:
			m.opFx33()
		case 0x55:
			m.opFx55()
		case 0x65:
			m.opFx65()
		}
	}
	return nil
}
