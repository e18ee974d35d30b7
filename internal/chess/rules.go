package chess

// IsLegal reports whether p, standing on from, may move to to on board b.
// It never modifies the board.
//
// Both squares must be on the board; the engine does not check this and
// behaves unpredictably (it may panic) otherwise. Validating coordinates is
// the caller's job.
//
// The verdict is a plain bool: a blocked path, wrong geometry and a
// self-capture all produce false.
func IsLegal(p Piece, from, to Square, b *Board) bool {
	switch p.Kind {
	case Pawn:
		return pawnRule(p.Color, from, to, b)
	case Rook:
		return rookRule(p.Color, from, to, b)
	case Knight:
		return knightRule(p.Color, from, to, b)
	case Bishop:
		return bishopRule(p.Color, from, to, b)
	case Queen:
		return queenRule(p.Color, from, to, b)
	case King:
		return kingRule(p.Color, from, to, b)
	}
	return false
}

// Destinations lists every square p could legally reach from from, in
// row-major order.
func Destinations(p Piece, from Square, b *Board) []Square {
	var dests []Square
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			to := Square{Row: row, Col: col}
			if IsLegal(p, from, to, b) {
				dests = append(dests, to)
			}
		}
	}
	return dests
}

func pawnRule(c Color, from, to Square, b *Board) bool {
	dir, startRow := -1, 6
	if c == Black {
		dir, startRow = 1, 1
	}
	dr, dc := to.Row-from.Row, to.Col-from.Col
	target, occupied := b.At(to)

	switch {
	case dc == 0 && dr == dir:
		return !occupied
	case dc == 0 && dr == 2*dir && from.Row == startRow:
		_, blocked := b.At(Square{Row: from.Row + dir, Col: from.Col})
		return !blocked && !occupied
	case abs(dc) == 1 && dr == dir:
		// no en passant: the diagonal needs an enemy on it
		return occupied && target.Color != c
	}
	return false
}

func rookRule(c Color, from, to Square, b *Board) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	if (dr == 0) == (dc == 0) {
		return false
	}
	return pathClear(from, to, b) && canLand(c, to, b)
}

func bishopRule(c Color, from, to Square, b *Board) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if dr != dc || dr == 0 {
		return false
	}
	return pathClear(from, to, b) && canLand(c, to, b)
}

func queenRule(c Color, from, to Square, b *Board) bool {
	return rookRule(c, from, to, b) || bishopRule(c, from, to, b)
}

func knightRule(c Color, from, to Square, b *Board) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if !(dr == 1 && dc == 2) && !(dr == 2 && dc == 1) {
		return false
	}
	return canLand(c, to, b)
}

func kingRule(c Color, from, to Square, b *Board) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if max(dr, dc) != 1 {
		return false
	}
	return canLand(c, to, b)
}

// canLand is the shared self-block/capture rule: to must be empty or hold a
// piece of the other color.
func canLand(c Color, to Square, b *Board) bool {
	target, occupied := b.At(to)
	return !occupied || target.Color != c
}

// pathClear reports whether every square strictly between from and to is
// empty. from and to must share a row, a column or a diagonal.
func pathClear(from, to Square, b *Board) bool {
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	sq := Square{Row: from.Row + dr, Col: from.Col + dc}
	for sq != to {
		if _, occupied := b.At(sq); occupied {
			return false
		}
		sq = Square{Row: sq.Row + dr, Col: sq.Col + dc}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
