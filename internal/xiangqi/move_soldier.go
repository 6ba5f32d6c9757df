package xiangqi

// 兵：未过河只能前进一格；过河后可再左右一格，永不后退
func genSoldierMoves(b *Board, from int, dsts *[]int) {
	row, col := rowOf(from), colOf(from)
	pc := b.Squares[from]
	if pc == 0 {
		return
	}
	side := pc.Side()

	if r := row + soldierDir(side); onBoard(r, col) {
		addIfNotOwn(b, side, r, col, dsts)
	}

	if !crossedRiver(side, row) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		if onBoard(row, col+dc) {
			addIfNotOwn(b, side, row, col+dc, dsts)
		}
	}
}
