package chess

import (
	"errors"
	"fmt"
)

const Size = 8

var ErrBadSquare = errors.New("invalid square")

// Square is a (row, column) pair. Row 0 is Black's back rank, row 7 is
// White's.
type Square struct {
	Row int
	Col int
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// String returns the algebraic name of the square, e.g. "e2".
func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, Size-s.Row)
}

// ParseSquare reads a two-character file/rank coordinate such as "e2".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	sq := Square{
		Row: Size - int(s[1]-'0'),
		Col: int(s[0]) - 'a',
	}
	if !sq.OnBoard() {
		return Square{}, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	return sq, nil
}

func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
