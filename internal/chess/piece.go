package chess

import "fmt"

// Color is the side a piece belongs to. The game is strictly two-color.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return fmt.Sprintf("Color(%d)", int8(c))
}

// ParseColor accepts the lowercase names used on the wire.
func ParseColor(s string) (Color, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	switch c {
	case White:
		return []byte("white"), nil
	case Black:
		return []byte("black"), nil
	}
	return nil, fmt.Errorf("unknown color %d", int8(c))
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Kind int8

const (
	NoKind Kind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece is what a board cell holds. The zero value is an empty cell.
type Piece struct {
	Color Color
	Kind  Kind
}

func (p Piece) IsZero() bool {
	return p.Kind == NoKind
}

// Letter returns the board letter of the piece: uppercase for White,
// lowercase for Black, '.' for an empty cell.
func (p Piece) Letter() byte {
	var l byte
	switch p.Kind {
	case Pawn:
		l = 'P'
	case Rook:
		l = 'R'
	case Knight:
		l = 'N'
	case Bishop:
		l = 'B'
	case Queen:
		l = 'Q'
	case King:
		l = 'K'
	default:
		return '.'
	}
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	return string(p.Letter())
}

// PieceFromLetter is the inverse of Letter. '.' yields the empty piece.
func PieceFromLetter(l byte) (Piece, error) {
	if l == '.' {
		return Piece{}, nil
	}
	color := White
	if l >= 'a' && l <= 'z' {
		color = Black
		l -= 'a' - 'A'
	}
	var kind Kind
	switch l {
	case 'P':
		kind = Pawn
	case 'R':
		kind = Rook
	case 'N':
		kind = Knight
	case 'B':
		kind = Bishop
	case 'Q':
		kind = Queen
	case 'K':
		kind = King
	default:
		return Piece{}, fmt.Errorf("unknown piece letter %q", l)
	}
	return Piece{Color: color, Kind: kind}, nil
}
