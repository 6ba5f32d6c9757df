package xiangqi

var (
	// 上、下、左、右
	orthoDirs = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	// 左上、右上、左下、右下
	diagDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// 落点为空或敌子时加入
func addIfNotOwn(b *Board, side Side, row, col int, dsts *[]int) {
	to := indexOf(row, col)
	dst := b.Squares[to]
	if dst == 0 || dst.Side() != side {
		*dsts = append(*dsts, to)
	}
}

// 车：横竖直走，遇子即停，敌子可吃
func genChariotMoves(b *Board, from int, dsts *[]int) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range orthoDirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			pc := b.Squares[indexOf(r, c)]
			if pc == 0 {
				*dsts = append(*dsts, indexOf(r, c))
			} else {
				if pc.Side() != side {
					*dsts = append(*dsts, indexOf(r, c))
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：不吃子时同车；吃子必须隔且只隔一个炮架
func genCannonMoves(b *Board, from int, dsts *[]int) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range orthoDirs {
		r, c := row+d[0], col+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for onBoard(r, c) {
			if b.Squares[indexOf(r, c)] == 0 {
				*dsts = append(*dsts, indexOf(r, c))
				r += d[0]
				c += d[1]
				continue
			}
			r += d[0]
			c += d[1]
			break
		}

		// 吃子阶段：越过炮架后遇到的第一子，敌子可吃
		for onBoard(r, c) {
			pc := b.Squares[indexOf(r, c)]
			if pc != 0 {
				if pc.Side() != side {
					*dsts = append(*dsts, indexOf(r, c))
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 相：田字，塞象眼不能走，不过河
func genElephantMoves(b *Board, from int, dsts *[]int) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range diagDirs {
		r := row + 2*d[0]
		c := col + 2*d[1]
		if !onBoard(r, c) {
			continue
		}
		if b.Squares[indexOf(row+d[0], col+d[1])] != 0 {
			continue
		}
		if !onOwnHalf(side, r) {
			continue
		}
		addIfNotOwn(b, side, r, c, dsts)
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(b *Board, from int, dsts *[]int) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range diagDirs {
		r := row + d[0]
		c := col + d[1]
		if !inPalace(side, r, c) {
			continue
		}
		addIfNotOwn(b, side, r, c, dsts)
	}
}

// 将：九宫内上下左右一格；两将同列且中间无子时可直接吃对方将（飞将）
func genGeneralMoves(b *Board, from int, dsts *[]int) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range orthoDirs {
		r := row + d[0]
		c := col + d[1]
		if !inPalace(side, r, c) {
			continue
		}
		addIfNotOwn(b, side, r, c, dsts)
	}

	if enemy := b.findGeneral(opposite(side)); enemy >= 0 && b.generalsFace(from, enemy) {
		*dsts = append(*dsts, enemy)
	}
}

// 两个格子同列且中间无子
func (b *Board) generalsFace(a, z int) bool {
	ra, ca := rowOf(a), colOf(a)
	rz, cz := rowOf(z), colOf(z)
	if ca != cz {
		return false
	}
	if ra > rz {
		ra, rz = rz, ra
	}
	for r := ra + 1; r < rz; r++ {
		if b.Squares[indexOf(r, ca)] != 0 {
			return false
		}
	}
	return true
}
