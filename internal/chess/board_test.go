package chess

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStartingBoardRender(t *testing.T) {
	want := "  a b c d e f g h\n" +
		"8 r n b q k b n r 8\n" +
		"7 p p p p p p p p 7\n" +
		"6 . . . . . . . . 6\n" +
		"5 . . . . . . . . 5\n" +
		"4 . . . . . . . . 4\n" +
		"3 . . . . . . . . 3\n" +
		"2 P P P P P P P P 2\n" +
		"1 R N B Q K B N R 1\n" +
		"  a b c d e f g h\n"

	if got := StartingBoard().String(); got != want {
		t.Errorf("unexpected board:\n%s\nwant:\n%s", got, want)
	}
}

func TestBoardAtSetClear(t *testing.T) {
	b := NewBoard()
	sq := Square{Row: 2, Col: 5}

	if _, ok := b.At(sq); ok {
		t.Fatalf("new board has a piece on %v", sq)
	}

	queen := Piece{Color: Black, Kind: Queen}
	b.Set(sq, queen)
	if got, ok := b.At(sq); !ok || got != queen {
		t.Errorf("At(%v) = %v, %v; want %v, true", sq, got, ok, queen)
	}

	b.Clear(sq)
	if _, ok := b.At(sq); ok {
		t.Errorf("square %v still occupied after Clear", sq)
	}
}

func TestRelocateOverwritesTarget(t *testing.T) {
	b := NewBoard()
	from, to := Square{Row: 7, Col: 0}, Square{Row: 0, Col: 0}
	b.Set(from, Piece{Color: White, Kind: Rook})
	b.Set(to, Piece{Color: Black, Kind: Rook})

	b.Relocate(from, to)

	if _, ok := b.At(from); ok {
		t.Errorf("origin still occupied")
	}
	if got, _ := b.At(to); got.Color != White || got.Kind != Rook {
		t.Errorf("expected white rook on a8, got %v", got)
	}
}

func TestBoardJSON(t *testing.T) {
	data, err := json.Marshal(StartingBoard())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["rnbqkbnr","pppppppp","........","........","........","........","PPPPPPPP","RNBQKBNR"]`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}

	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.String() != StartingBoard().String() {
		t.Errorf("decoded board differs:\n%s", b.String())
	}
}

func TestParseRanksRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		ranks []string
	}{
		{"too few ranks", []string{"........"}},
		{"short rank", []string{"rnbqkbnr", "ppppppp", "........", "........", "........", "........", "PPPPPPPP", "RNBQKBNR"}},
		{"bad letter", []string{"rnbqkbnr", "pppppppp", "...x....", "........", "........", "........", "PPPPPPPP", "RNBQKBNR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRanks(tt.ranks); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want Square
		ok   bool
	}{
		{"a1", Square{Row: 7, Col: 0}, true},
		{"h8", Square{Row: 0, Col: 7}, true},
		{"e2", Square{Row: 6, Col: 4}, true},
		{"d5", Square{Row: 3, Col: 3}, true},
		{"i1", Square{}, false},
		{"a9", Square{}, false},
		{"a0", Square{}, false},
		{"E2", Square{}, false},
		{"e", Square{}, false},
		{"e22", Square{}, false},
		{"", Square{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSquare(tt.in)
			if !tt.ok {
				if !errors.Is(err, ErrBadSquare) {
					t.Errorf("expected ErrBadSquare, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestPieceLetters(t *testing.T) {
	for _, color := range []Color{White, Black} {
		for _, kind := range allKinds {
			p := Piece{Color: color, Kind: kind}
			back, err := PieceFromLetter(p.Letter())
			if err != nil {
				t.Fatalf("%v: %v", p, err)
			}
			if back != p {
				t.Errorf("letter %q decoded to %+v, want %+v", p.Letter(), back, p)
			}
		}
	}
	if (Piece{}).Letter() != '.' {
		t.Errorf("empty piece letter is %q", (Piece{}).Letter())
	}
}
