package xiangqi

// 马 8 种“日”字：马腿 + 终点
var horseLegMoves = [8]struct {
	Br, Bc int // 马腿
	Dr, Dc int // 终点
}{
	{-1, 0, -2, -1},
	{-1, 0, -2, +1},
	{+1, 0, +2, -1},
	{+1, 0, +2, +1},
	{0, -1, -1, -2},
	{0, -1, +1, -2},
	{0, +1, -1, +2},
	{0, +1, +1, +2},
}

func genHorseMoves(b *Board, from int, dsts *[]int) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, m := range horseLegMoves {
		r := row + m.Dr
		c := col + m.Dc
		if !onBoard(r, c) {
			continue
		}
		if b.Squares[indexOf(row+m.Br, col+m.Bc)] != 0 {
			continue // 憋马腿
		}
		addIfNotOwn(b, side, r, c, dsts)
	}
}
