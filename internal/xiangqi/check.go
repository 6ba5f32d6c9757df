package xiangqi

// isAttacked 判断 sq 是否被 bySide 攻击。
// 采用走法模拟：对方任何一个棋子的伪合法落点包含 sq 即为被攻击，
// 因此炮架、飞将等规则与走子完全一致。
func (b *Board) isAttacked(sq int, bySide Side) bool {
	dsts := make([]int, 0, 17)
	for s := 0; s < NumSquares; s++ {
		pc := b.Squares[s]
		if pc == 0 || pc.Side() != bySide {
			continue
		}
		dsts = dsts[:0]
		b.pseudoDests(s, &dsts)
		for _, to := range dsts {
			if to == sq {
				return true
			}
		}
	}
	return false
}

// attackerCount 统计 bySide 有多少个棋子能走到 sq
func (b *Board) attackerCount(sq int, bySide Side) int {
	n := 0
	dsts := make([]int, 0, 17)
	for s := 0; s < NumSquares; s++ {
		pc := b.Squares[s]
		if pc == 0 || pc.Side() != bySide {
			continue
		}
		dsts = dsts[:0]
		b.pseudoDests(s, &dsts)
		for _, to := range dsts {
			if to == sq {
				n++
				break
			}
		}
	}
	return n
}

func (b *Board) inCheck(side Side) bool {
	g := b.findGeneral(side)
	if g == -1 {
		return false
	}
	return b.isAttacked(g, opposite(side))
}

// 在私有副本上模拟走子，原棋盘不变
func (b *Board) wouldExposeGeneral(from, to int) bool {
	nb := *b
	side := nb.Squares[from].Side()
	nb.Squares[to] = nb.Squares[from]
	nb.Squares[from] = 0
	return nb.inCheck(side)
}

func (b *Board) hasLegalMove(side Side) bool {
	var pseudo []int
	for s := 0; s < NumSquares; s++ {
		pc := b.Squares[s]
		if pc == 0 || pc.Side() != side {
			continue
		}
		pseudo = pseudo[:0]
		b.pseudoDests(s, &pseudo)
		for _, to := range pseudo {
			if !b.wouldExposeGeneral(s, to) {
				return true
			}
		}
	}
	return false
}

// IsInCheck 判断 side 的将是否被将军；将不在盘上时返回 false。
func (b *Board) IsInCheck(side Side) bool { return b.inCheck(side) }

// IsCheckmate 被将军且所有棋子都没有合法走法。
func (b *Board) IsCheckmate(side Side) bool {
	return b.inCheck(side) && !b.hasLegalMove(side)
}

// IsAttacked 判断 s 是否在 bySide 任一棋子的伪合法落点中。
func (b *Board) IsAttacked(s Square, bySide Side) bool {
	if !s.OnBoard() {
		return false
	}
	return b.isAttacked(indexOf(s.Row, s.Col), bySide)
}

// AttackerCount 统计 bySide 能走到 s 的棋子数。
func (b *Board) AttackerCount(s Square, bySide Side) int {
	if !s.OnBoard() {
		return 0
	}
	return b.attackerCount(indexOf(s.Row, s.Col), bySide)
}

func (p *Position) IsInCheck(side Side) bool    { return p.Board.inCheck(side) }
func (p *Position) IsCheckmate(side Side) bool  { return p.Board.IsCheckmate(side) }
func (p *Position) HasLegalMove(side Side) bool { return p.Board.hasLegalMove(side) }

// WouldExposeOwnGeneral 模拟 from->to 后本方将是否被将军；不修改局面。
func (p *Position) WouldExposeOwnGeneral(from, to Square) bool {
	if !from.OnBoard() || !to.OnBoard() || p.Board.At(from) == 0 {
		return false
	}
	return p.Board.wouldExposeGeneral(indexOf(from.Row, from.Col), indexOf(to.Row, to.Col))
}
