package twisty

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Face indexes the six sides of a piece.
type Face uint8

const (
	FaceFront  Face = 0
	FaceTop    Face = 1
	FaceRight  Face = 2
	FaceBack   Face = 3
	FaceLeft   Face = 4
	FaceBottom Face = 5

	FaceCount = 6
)

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceTop:
		return "top"
	case FaceRight:
		return "right"
	case FaceBack:
		return "back"
	case FaceLeft:
		return "left"
	case FaceBottom:
		return "bottom"
	default:
		return "?"
	}
}

// Direction returns the outward unit vector of the face in screen
// coordinates, where Y grows downward.
func (f Face) Direction() Vec3 {
	switch f {
	case FaceFront:
		return Vec3{Z: 1}
	case FaceTop:
		return Vec3{Y: -1}
	case FaceRight:
		return Vec3{X: 1}
	case FaceBack:
		return Vec3{Z: -1}
	case FaceLeft:
		return Vec3{X: -1}
	default:
		return Vec3{Y: 1}
	}
}

// Color is a palette identifier. In the solved state it equals the index
// of the face showing it.
type Color uint8

// NoColor marks a face that is hidden inside the puzzle.
const NoColor Color = 0xFF

// Stickers holds the color on each face of a piece, NoColor for hidden
// faces. The core piece has no visible face at all.
type Stickers [FaceCount]Color

// NoStickers is the sticker set of the hidden core piece.
var NoStickers = Stickers{NoColor, NoColor, NoColor, NoColor, NoColor, NoColor}

// Visible reports whether face f carries a sticker.
func (s Stickers) Visible(f Face) bool {
	return s[f] != NoColor
}

// IsCore reports whether no face is visible.
func (s Stickers) IsCore() bool {
	return s == NoStickers
}

// Faces returns the visible faces in index order.
func (s Stickers) Faces() []Face {
	var faces []Face
	for f := Face(0); f < FaceCount; f++ {
		if s.Visible(f) {
			faces = append(faces, f)
		}
	}
	return faces
}

// MarshalJSON encodes the visible faces as {"<face>": <color>}.
func (s Stickers) MarshalJSON() ([]byte, error) {
	m := make(map[string]Color, FaceCount)
	for _, f := range s.Faces() {
		m[strconv.Itoa(int(f))] = s[f]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the {"<face>": <color>} form.
func (s *Stickers) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := NoStickers
	for k, v := range m {
		f, err := strconv.Atoi(k)
		if err != nil || f < 0 || f >= FaceCount {
			return fmt.Errorf("%w: face %q", ErrInvalidState, k)
		}
		if v < 0 || v >= FaceCount {
			return fmt.Errorf("%w: color %d", ErrInvalidState, v)
		}
		out[f] = Color(v)
	}
	*s = out
	return nil
}

// Vec3 is an integer grid coordinate or direction.
type Vec3 struct {
	X, Y, Z int
}

// Rotate turns v by a signed multiple of 90 degrees around axis.
func (v Vec3) Rotate(axis Axis, angle int) Vec3 {
	quarters := ((angle/90)%4 + 4) % 4
	for i := 0; i < quarters; i++ {
		switch axis {
		case AxisX:
			v = Vec3{X: v.X, Y: -v.Z, Z: v.Y}
		case AxisY:
			v = Vec3{X: v.Z, Y: v.Y, Z: -v.X}
		case AxisZ:
			v = Vec3{X: -v.Y, Y: v.X, Z: v.Z}
		}
	}
	return v
}

// Point is a position in render units.
type Point struct {
	X, Y, Z float64
}

// Piece is one of the cubelets of the puzzle.
// ID and Cell never change; Stickers describe the solved configuration.
type Piece struct {
	ID       int
	Cell     Vec3
	Position Point
	Size     float64
	Stickers Stickers
}

const (
	// Edge is the number of pieces along one edge of the puzzle.
	Edge = 3
	// PieceCount is the number of pieces of an Edge-sized puzzle.
	PieceCount = Edge * Edge * Edge
	// CoreID is the id of the hidden center piece.
	CoreID = PieceCount / 2
	// PieceSize is the default render size of one piece.
	PieceSize = 84
)

// ClassicPalette maps every face to its own color id.
var ClassicPalette = [FaceCount]Color{0, 1, 2, 3, 4, 5}

// NewPieces generates the solved pieces of an edge-sized puzzle.
// Ids count down while y, z and x descend, so the center of an odd-sized
// puzzle gets the middle id.
func NewPieces(edge int, unit float64, palette [FaceCount]Color) []Piece {
	total := edge * edge * edge
	pieces := make([]Piece, total)
	half := edge / 2
	id := total - 1

	for y := edge - 1; y >= 0; y-- {
		for z := edge - 1; z >= 0; z-- {
			for x := edge - 1; x >= 0; x-- {
				cell := Vec3{X: x - half, Y: y - half, Z: z - half}
				pieces[id] = Piece{
					ID:       id,
					Cell:     cell,
					Position: Point{X: float64(cell.X) * unit, Y: float64(cell.Y) * unit, Z: float64(cell.Z) * unit},
					Size:     unit,
					Stickers: solvedStickers(cell, half, palette),
				}
				id--
			}
		}
	}

	return pieces
}

// solvedStickers colors the faces on the outside of the puzzle.
func solvedStickers(cell Vec3, half int, palette [FaceCount]Color) Stickers {
	s := NoStickers
	if cell.X == -half {
		s[FaceLeft] = palette[FaceLeft]
	}
	if cell.Y == -half {
		s[FaceTop] = palette[FaceTop]
	}
	if cell.Z == -half {
		s[FaceBack] = palette[FaceBack]
	}
	if cell.Z == half {
		s[FaceFront] = palette[FaceFront]
	}
	if cell.X == half {
		s[FaceRight] = palette[FaceRight]
	}
	if cell.Y == half {
		s[FaceBottom] = palette[FaceBottom]
	}
	return s
}

// State maps every piece id to its current stickers.
type State [PieceCount]Stickers

// SolvedState returns the state of a freshly built puzzle.
func SolvedState() State {
	var st State
	for _, p := range NewPieces(Edge, PieceSize, ClassicPalette) {
		st[p.ID] = p.Stickers
	}
	return st
}

// MarshalJSON encodes the state as {"<piece id>": {"<face>": <color>}}.
func (st State) MarshalJSON() ([]byte, error) {
	m := make(map[string]Stickers, PieceCount)
	for id, s := range st {
		m[strconv.Itoa(id)] = s
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the exported state. Every piece must be present
// and show stickers only on its outward faces.
func (st *State) UnmarshalJSON(data []byte) error {
	var m map[string]Stickers
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != PieceCount {
		return fmt.Errorf("%w: %d pieces", ErrInvalidState, len(m))
	}

	var out State
	for k, s := range m {
		id, err := strconv.Atoi(k)
		if err != nil || id < 0 || id >= PieceCount {
			return fmt.Errorf("%w: piece %q", ErrInvalidState, k)
		}
		out[id] = s
	}
	if err := checkLayout(out); err != nil {
		return err
	}
	*st = out
	return nil
}
