package chip8

import (
	"errors"
	"fmt"
)

// ErrProgramTooLarge is returned by New when the given program does not fit
// in the address space above ProgramStart. Programs are never truncated.
var ErrProgramTooLarge = errors.New("program does not fit in memory")

// The built-in glyphs for the hex digits 0-F, five bytes per glyph.
var font = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// initMemory builds the 4096-byte store with the font table at FontStart and
// the program at ProgramStart, everything else zero.
func initMemory(program []byte) ([memorySize]byte, error) {
	var memory [memorySize]byte

	if len(program) > memorySize-ProgramStart {
		return memory, fmt.Errorf("%w: %d bytes, %d available",
			ErrProgramTooLarge, len(program), memorySize-ProgramStart)
	}

	copy(memory[FontStart:], font[:])
	copy(memory[ProgramStart:], program)
	return memory, nil
}
