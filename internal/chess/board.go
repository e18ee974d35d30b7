package chess

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Board is the 8x8 grid of cells. It only stores occupancy; keeping moves
// legal is the caller's business.
type Board struct {
	cells [Size][Size]Piece
}

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewBoard() *Board {
	return &Board{}
}

// StartingBoard returns the standard initial array.
func StartingBoard() *Board {
	b := NewBoard()
	for col := 0; col < Size; col++ {
		b.cells[0][col] = Piece{Color: Black, Kind: backRank[col]}
		b.cells[1][col] = Piece{Color: Black, Kind: Pawn}
		b.cells[6][col] = Piece{Color: White, Kind: Pawn}
		b.cells[7][col] = Piece{Color: White, Kind: backRank[col]}
	}
	return b
}

// At reports the occupant of sq, if any.
func (b *Board) At(sq Square) (Piece, bool) {
	p := b.cells[sq.Row][sq.Col]
	return p, !p.IsZero()
}

func (b *Board) Set(sq Square, p Piece) {
	b.cells[sq.Row][sq.Col] = p
}

func (b *Board) Clear(sq Square) {
	b.cells[sq.Row][sq.Col] = Piece{}
}

// Relocate moves the occupant of from onto to, overwriting whatever was
// there, and empties from.
func (b *Board) Relocate(from, to Square) {
	p := b.cells[from.Row][from.Col]
	b.cells[from.Row][from.Col] = Piece{}
	b.cells[to.Row][to.Col] = p
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d ", Size-row)
		for col := 0; col < Size; col++ {
			sb.WriteByte(b.cells[row][col].Letter())
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d\n", Size-row)
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// Ranks returns one string per row, row 0 first, using piece letters and '.'.
func (b *Board) Ranks() []string {
	ranks := make([]string, Size)
	for row := 0; row < Size; row++ {
		var buf [Size]byte
		for col := 0; col < Size; col++ {
			buf[col] = b.cells[row][col].Letter()
		}
		ranks[row] = string(buf[:])
	}
	return ranks
}

// ParseRanks builds a board from the Ranks form.
func ParseRanks(ranks []string) (*Board, error) {
	if len(ranks) != Size {
		return nil, fmt.Errorf("expected %d ranks, got %d", Size, len(ranks))
	}
	b := NewBoard()
	for row, rank := range ranks {
		if len(rank) != Size {
			return nil, fmt.Errorf("rank %d: expected %d cells, got %d", Size-row, Size, len(rank))
		}
		for col := 0; col < Size; col++ {
			p, err := PieceFromLetter(rank[col])
			if err != nil {
				return nil, fmt.Errorf("rank %d: %w", Size-row, err)
			}
			b.cells[row][col] = p
		}
	}
	return b, nil
}

func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Ranks())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var ranks []string
	if err := json.Unmarshal(data, &ranks); err != nil {
		return err
	}
	parsed, err := ParseRanks(ranks)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
