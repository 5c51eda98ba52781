package chip8

import "fmt"

// Variant selects between the two historically divergent behaviors of an
// instruction family. Interpreters after the COSMAC VIP quietly changed the
// semantics of a few instructions, and programs exist that depend on either
// side.
type Variant int

const (
	// Legacy follows the original COSMAC VIP interpreter.
	Legacy Variant = iota

	// Modern follows the CHIP-48/SUPER-CHIP reinterpretation.
	Modern
)

func (v Variant) String() string {
	switch v {
	case Legacy:
		return "legacy"
	case Modern:
		return "modern"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant converts a variant name to its Variant value.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "legacy":
		return Legacy, nil
	case "modern":
		return Modern, nil
	}
	return 0, fmt.Errorf("unknown variant %q, expected legacy or modern", s)
}

// Quirks selects the behavior of each instruction family that historical
// interpreters disagreed on. All combinations are valid.
type Quirks struct {
	// Shift selects the source register of 8xy6/8xyE: Legacy copies Vy
	// into Vx before shifting, Modern shifts Vx in place.
	Shift Variant

	// Jump selects the offset register of Bnnn: Legacy jumps to nnn+V0,
	// Modern to nnn+Vx.
	Jump Variant

	// LoadStore selects the Fx55/Fx65 side effect on the index register:
	// Legacy leaves I pointing one past the last address used, Modern
	// leaves it untouched.
	LoadStore Variant
}

// DefaultQuirks returns the selection most programs expect: in-place shifts
// and no store/load side effect, but the original V0-relative jump.
func DefaultQuirks() Quirks {
	return Quirks{
		Shift:     Modern,
		Jump:      Legacy,
		LoadStore: Modern,
	}
}
