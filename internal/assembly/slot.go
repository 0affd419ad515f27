package assembly

import (
	"errors"
	"fmt"
	"strings"
)

// Slot names a position in the assembly that holds at most one part.
type Slot int

const (
	Shank Slot = iota
	Head

	numSlots
)

// ErrUnknownSlot is returned for slot values or names outside Shank and Head.
var ErrUnknownSlot = errors.New("assembly: unknown slot")

func (s Slot) String() string {
	switch s {
	case Shank:
		return "shank"
	case Head:
		return "head"
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

// Valid reports whether s is Shank or Head.
func (s Slot) Valid() bool {
	return s >= 0 && s < numSlots
}

// ParseSlot maps "shank" or "head" (any case) to a Slot.
func ParseSlot(name string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shank":
		return Shank, nil
	case "head":
		return Head, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
}

// DefaultScale returns the scale a slot uses when the caller gives none.
func DefaultScale(s Slot) [3]float32 {
	if s == Head {
		return [3]float32{0.4, 0.4, 0.4}
	}
	return [3]float32{1, 1, 1}
}
