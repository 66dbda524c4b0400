package twisty

import "strings"

// Layer identifies one of the nine turnable slices of the puzzle.
type Layer uint8

const (
	LayerU Layer = iota // Up
	LayerD              // Down
	LayerL              // Left
	LayerR              // Right
	LayerF              // Front
	LayerB              // Back
	LayerM              // Middle, between L and R
	LayerE              // Equator, between U and D
	LayerS              // Standing, between F and B

	LayerCount = 9
)

var layerNames = [LayerCount]string{"U", "D", "L", "R", "F", "B", "M", "E", "S"}

func (l Layer) String() string {
	if l >= LayerCount {
		return "?"
	}
	return layerNames[l]
}

// Axis is the spatial axis a layer turns around.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Notation is a quarter turn of one layer, clockwise or counter-clockwise.
// Clockwise notations are even, their inverse is the following odd value.
type Notation uint8

const (
	U Notation = iota
	UPrime
	D
	DPrime
	L
	LPrime
	R
	RPrime
	F
	FPrime
	B
	BPrime
	M
	MPrime
	E
	EPrime
	S
	SPrime

	NotationCount = 18
)

// InverseMarker is the suffix that turns a notation counter-clockwise.
const InverseMarker = "'"

// AllNotations returns the 18 notations in canonical order.
func AllNotations() []Notation {
	all := make([]Notation, NotationCount)
	for i := range all {
		all[i] = Notation(i)
	}
	return all
}

// Valid reports whether n is one of the 18 notations.
func (n Notation) Valid() bool {
	return n < NotationCount
}

// Layer returns the layer turned by n.
func (n Notation) Layer() Layer {
	return Layer(n / 2)
}

// Clockwise reports whether n turns its layer clockwise.
func (n Notation) Clockwise() bool {
	return n%2 == 0
}

// Inverse returns the notation that undoes n.
// U becomes U', U' becomes U.
func (n Notation) Inverse() Notation {
	return n ^ 1
}

// String returns the standard notation, e.g. "R" or "R'".
func (n Notation) String() string {
	if !n.Valid() {
		return "?"
	}
	if n.Clockwise() {
		return n.Layer().String()
	}
	return n.Layer().String() + InverseMarker
}

// NotationOf returns the notation turning layer l in the given direction.
func NotationOf(l Layer, clockwise bool) Notation {
	n := Notation(l * 2)
	if !clockwise {
		n++
	}
	return n
}

// ParseNotation parses a single notation such as "F" or "F'".
// Layer letters are case-insensitive and a backtick is accepted as the
// inverse marker.
func ParseNotation(s string) (Notation, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 2 {
		return 0, ErrInvalidNotation
	}

	layer := -1
	for i, name := range layerNames {
		if strings.EqualFold(s[:1], name) {
			layer = i
			break
		}
	}
	if layer < 0 {
		return 0, ErrInvalidNotation
	}

	clockwise := true
	if len(s) == 2 {
		switch s[1] {
		case '\'', '`':
			clockwise = false
		default:
			return 0, ErrInvalidNotation
		}
	}

	return NotationOf(Layer(layer), clockwise), nil
}

// ParseNotations parses a space-separated sequence such as "R U R' U'".
// Invalid tokens are skipped.
func ParseNotations(s string) []Notation {
	parts := strings.Fields(s)
	moves := make([]Notation, 0, len(parts))

	for _, part := range parts {
		n, err := ParseNotation(part)
		if err != nil {
			continue // Skip invalid tokens
		}
		moves = append(moves, n)
	}

	return moves
}

// FormatNotations formats a sequence as a space-separated string.
func FormatNotations(moves []Notation) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, n := range moves {
		parts[i] = n.String()
	}

	return strings.Join(parts, " ")
}

// SexyMove is the sequence R U R' U'.
var SexyMove = []Notation{R, U, RPrime, UPrime}
