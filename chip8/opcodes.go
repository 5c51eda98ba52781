package chip8

import "errors"

// ErrStackUnderflow is returned by Tick when a program returns from a
// subroutine with no pending call.
var ErrStackUnderflow = errors.New("return with empty call stack")

/*
INSTRUCTION IMPLEMENTATIONS

One method per instruction, named after its opcode pattern. Every method runs
after the program counter was already advanced past the instruction, so a
skip is a further += 2 and the blocking get-key rewinds with -= 2.
*/

// 00E0: CLS
// Clear the display.
func (m *Machine) op00E0() error {
	return m.display.Clear()
}

// 00EE: RET
// Return from a subroutine. A malformed program that returns with no pending
// call is an explicit fault, not undefined behavior.
func (m *Machine) op00EE() error {
	if len(m.stack) == 0 {
		return ErrStackUnderflow
	}
	m.pc = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// 1nnn: JP addr
// Jump to nnn. A jump does not remember its origin, so no stack interaction.
func (m *Machine) op1nnn() {
	m.pc = m.opcode & 0x0FFF
}

// 2nnn: CALL addr
// Push the program counter, then jump to nnn.
func (m *Machine) op2nnn() {
	m.stack = append(m.stack, m.pc)
	m.pc = m.opcode & 0x0FFF
}

// 3xnn: SE Vx, byte
// Skip the next instruction if Vx == nn.
func (m *Machine) op3xnn() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	nn := byte(m.opcode & 0x00FF)

	if m.v[vx] == nn {
		m.pc += 2
	}
}

// 4xnn: SNE Vx, byte
// Skip the next instruction if Vx != nn.
func (m *Machine) op4xnn() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	nn := byte(m.opcode & 0x00FF)

	if m.v[vx] != nn {
		m.pc += 2
	}
}

// 5xy0: SE Vx, Vy
// Skip the next instruction if Vx == Vy.
func (m *Machine) op5xy0() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	if m.v[vx] == m.v[vy] {
		m.pc += 2
	}
}

// 6xnn: LD Vx, byte
func (m *Machine) op6xnn() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	m.v[vx] = byte(m.opcode & 0x00FF)
}

// 7xnn: ADD Vx, byte
// Add without a carry flag, wrapping modulo 256.
func (m *Machine) op7xnn() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	m.v[vx] += byte(m.opcode & 0x00FF)
}

// 8xy0: LD Vx, Vy
func (m *Machine) op8xy0() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	m.v[vx] = m.v[vy]
}

// 8xy1: OR Vx, Vy
func (m *Machine) op8xy1() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	m.v[vx] |= m.v[vy]
}

// 8xy2: AND Vx, Vy
func (m *Machine) op8xy2() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	m.v[vx] &= m.v[vy]
}

// 8xy3: XOR Vx, Vy
func (m *Machine) op8xy3() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	m.v[vx] ^= m.v[vy]
}

// 8xy4: ADD Vx, Vy
// Add with VF = carry. Only the low 8 bits of the sum are kept, and the flag
// write happens after the data write.
func (m *Machine) op8xy4() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	sum := uint16(m.v[vx]) + uint16(m.v[vy])
	m.v[vx] = byte(sum)
	if sum > 0xFF {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
}

// 8xy5: SUB Vx, Vy
// Vx -= Vy with VF = NOT borrow: 1 iff Vx > Vy before the subtraction. The
// subtraction itself wraps modulo 256 on underflow.
func (m *Machine) op8xy5() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	noBorrow := m.v[vx] > m.v[vy]
	m.v[vx] -= m.v[vy]
	if noBorrow {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
}

// 8xy6: SHR Vx {, Vy}
// Logical shift right by one with VF = the bit shifted out. The Legacy
// variant shifts Vy into Vx, the Modern one shifts Vx in place.
func (m *Machine) op8xy6() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	if m.quirks.Shift == Legacy {
		m.v[vx] = m.v[vy]
	}
	shiftedOut := m.v[vx] & 0x01
	m.v[vx] >>= 1
	m.v[0xF] = shiftedOut
}

// 8xy7: SUBN Vx, Vy
// Vx = Vy - Vx with VF = NOT borrow: 1 iff Vy > Vx. Wraps like 8xy5.
func (m *Machine) op8xy7() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	noBorrow := m.v[vy] > m.v[vx]
	m.v[vx] = m.v[vy] - m.v[vx]
	if noBorrow {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
}

// 8xyE: SHL Vx {, Vy}
// Logical shift left by one with VF = the bit shifted out. Variant-dependent
// like 8xy6.
func (m *Machine) op8xyE() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	if m.quirks.Shift == Legacy {
		m.v[vx] = m.v[vy]
	}
	shiftedOut := (m.v[vx] & 0x80) >> 7
	m.v[vx] <<= 1
	m.v[0xF] = shiftedOut
}

// 9xy0: SNE Vx, Vy
// Skip the next instruction if Vx != Vy.
func (m *Machine) op9xy0() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)

	if m.v[vx] != m.v[vy] {
		m.pc += 2
	}
}

// Annn: LD I, addr
func (m *Machine) opAnnn() {
	m.i = m.opcode & 0x0FFF
}

// Bnnn: JP V0, addr
// Jump with offset. The Legacy variant jumps to nnn+V0; the Modern CHIP-48
// reinterpretation reads the offset from Vx instead.
func (m *Machine) opBnnn() {
	nnn := m.opcode & 0x0FFF

	if m.quirks.Jump == Modern {
		vx := byte((m.opcode & 0x0F00) >> 8)
		m.pc = nnn + uint16(m.v[vx])
		return
	}
	m.pc = nnn + uint16(m.v[0])
}

// Cxnn: RND Vx, byte
func (m *Machine) opCxnn() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	nn := byte(m.opcode & 0x00FF)

	m.v[vx] = m.randByte() & nn
}

// Dxyn: DRW Vx, Vy, nibble
// XOR an n-byte sprite from memory[I..I+n] onto the display at
// (Vx mod 64, Vy mod 32), with VF = collision. Pixels that would fall
// outside the frame are clipped, not wrapped.
func (m *Machine) opDxyn() error {
	vx := byte((m.opcode & 0x0F00) >> 8)
	vy := byte((m.opcode & 0x00F0) >> 4)
	n := uint16(m.opcode & 0x000F)

	sprite := make([]byte, n)
	for row := uint16(0); row < n; row++ {
		sprite[row] = m.memory[(m.i+row)&addrMask]
	}

	x := m.v[vx] % DisplayWidth
	y := m.v[vy] % DisplayHeight

	collision, err := m.display.DrawSprite(x, y, sprite)
	if err != nil {
		return err
	}
	if collision {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
	return nil
}

// Ex9E: SKP Vx
// Skip the next instruction if key Vx is down in this tick's snapshot.
func (m *Machine) opEx9E() {
	vx := byte((m.opcode & 0x0F00) >> 8)

	if m.keypad[m.v[vx]&0x0F] {
		m.pc += 2
	}
}

// ExA1: SKNP Vx
// Skip the next instruction if key Vx is not down.
func (m *Machine) opExA1() {
	vx := byte((m.opcode & 0x0F00) >> 8)

	if !m.keypad[m.v[vx]&0x0F] {
		m.pc += 2
	}
}

// Fx07: LD Vx, DT
// Read the delay timer.
func (m *Machine) opFx07() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	m.v[vx] = m.delay.read()
}

// Fx0A: LD Vx, K
// Block until any key is down, then store the lowest-indexed down key in Vx.
// The machine has no suspension primitive, so blocking is realized by
// rewinding the program counter and re-decoding this instruction next tick.
func (m *Machine) opFx0A() {
	vx := byte((m.opcode & 0x0F00) >> 8)

	for key, down := range m.keypad {
		if down {
			m.v[vx] = byte(key)
			return
		}
	}

	m.pc -= 2
}

// Fx15: LD DT, Vx
// Start the delay timer with a 60Hz-equivalent duration of Vx.
func (m *Machine) opFx15() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	m.delay.start(m.v[vx])
}

// Fx18: LD ST, Vx
// Start the sound timer with a 60Hz-equivalent duration of Vx.
func (m *Machine) opFx18() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	m.sound.start(m.v[vx])
}

// Fx1E: ADD I, Vx
// VF is set to 1 when I leaves the 12-bit address range; I itself is not
// masked. The overflow flag is an undocumented feature some games rely on.
func (m *Machine) opFx1E() {
	vx := byte((m.opcode & 0x0F00) >> 8)

	m.i += uint16(m.v[vx])
	if m.i > 0xFFF {
		m.v[0xF] = 1
	}
}

// Fx29: LD F, Vx
// Point I at the built-in glyph for the digit in Vx. Glyphs are five bytes
// each starting at FontStart.
func (m *Machine) opFx29() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	m.i = FontStart + 5*uint16(m.v[vx])
}

// Fx33: LD B, Vx
// Store the decimal digits of Vx at I (hundreds), I+1 (tens) and I+2 (ones).
func (m *Machine) opFx33() {
	vx := byte((m.opcode & 0x0F00) >> 8)
	value := m.v[vx]

	m.memory[m.i&addrMask] = value / 100 % 10
	m.memory[(m.i+1)&addrMask] = value / 10 % 10
	m.memory[(m.i+2)&addrMask] = value % 10
}

// Fx55: LD [I], Vx
// Store V0 through Vx in memory starting at I. The Legacy variant leaves I
// pointing one past the last address written.
func (m *Machine) opFx55() {
	vx := byte((m.opcode & 0x0F00) >> 8)

	for reg := byte(0); reg <= vx; reg++ {
		m.memory[(m.i+uint16(reg))&addrMask] = m.v[reg]
	}
	if m.quirks.LoadStore == Legacy {
		m.i += uint16(vx) + 1
	}
}

// Fx65: LD Vx, [I]
// Load V0 through Vx from memory starting at I, with the same
// variant-dependent side effect on I as Fx55.
func (m *Machine) opFx65() {
	vx := byte((m.opcode & 0x0F00) >> 8)

	for reg := byte(0); reg <= vx; reg++ {
		m.v[reg] = m.memory[(m.i+uint16(reg))&addrMask]
	}
	if m.quirks.LoadStore == Legacy {
		m.i += uint16(vx) + 1
	}
}
