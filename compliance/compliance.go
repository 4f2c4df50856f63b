package compliance

import "fmt"

// Mode selects how strictly golden vectors are checked.
//
// Permissive skips optional vector fields that are absent. Strict requires
// every optional field and also requires stored canonical text to be
// canonical itself.
type Mode int

const (
	Permissive Mode = iota
	Strict
)

func (m Mode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "permissive" or "strict" to a Mode. The empty string is
// Permissive.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, fmt.Errorf("unknown compliance mode %q", s)
	}
}
