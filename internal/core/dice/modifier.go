package dice

import "fmt"

// ModifierKind enumerates the transforms a die can apply to its raw face.
type ModifierKind int

const (
	ModifierIdentity ModifierKind = iota
	ModifierAdd
	ModifierHalfFloor
)

func (k ModifierKind) String() string {
	switch k {
	case ModifierIdentity:
		return "Identity"
	case ModifierAdd:
		return "Add"
	case ModifierHalfFloor:
		return "HalfFloor"
	default:
		return "Unknown"
	}
}

// Modifier transforms the raw face of a die before clamping.
// The zero value is the identity transform.
type Modifier struct {
	Kind  ModifierKind
	Value int
}

// Identity leaves the raw face unchanged.
func Identity() Modifier {
	return Modifier{Kind: ModifierIdentity}
}

// Add adds n to the raw face. Add(0) behaves like Identity.
func Add(n int) Modifier {
	return Modifier{Kind: ModifierAdd, Value: n}
}

// HalfFloor halves the raw face, rounding toward negative infinity.
func HalfFloor() Modifier {
	return Modifier{Kind: ModifierHalfFloor}
}

// Apply returns the modified value of raw.
func (m Modifier) Apply(raw int) int {
	switch m.Kind {
	case ModifierAdd:
		return raw + m.Value
	case ModifierHalfFloor:
		half := raw / 2
		if raw%2 != 0 && raw < 0 {
			half--
		}
		return half
	default:
		return raw
	}
}

func (m Modifier) String() string {
	switch m.Kind {
	case ModifierAdd:
		return fmt.Sprintf("%+d", m.Value)
	case ModifierHalfFloor:
		return "/2"
	default:
		return ""
	}
}
