package xiangqi

import "fmt"

// MoveResult ApplyMove 的结果。被拒绝时 Position 仍指向传入的原局面。
type MoveResult struct {
	Position  *Position
	Move      Move
	Captured  PieceType // 没吃子为 PieceNone
	Check     bool      // 新的轮走方被将军
	Checkmate bool
	Stalemate bool // 无子可动且未被将军，按困毙判负
}

// MakeMove 复制局面并走子：吃掉落点上的子、移动、换边。
// 不做任何合法性检查，也不判断终局；搜索只对 LegalMoves 的结果调用它。
func (p *Position) MakeMove(m Move) (*Position, bool) {
	if !m.From.OnBoard() || !m.To.OnBoard() {
		return nil, false
	}
	pc := p.Board.At(m.From)
	if pc == 0 {
		return nil, false
	}
	np := *p
	np.Board.Put(m.To, pc)
	np.Board.Put(m.From, 0)
	np.SideToMove = opposite(pc.Side())
	return &np, true
}

// ApplyMove 校验并执行一步棋。
// 失败时返回 ErrGameOver / ErrNoPieceAtSquare / ErrNotSideToMove / ErrIllegalMove，
// 原局面保持不变。成功后若对方无合法走法则局面终结，走子方获胜。
func (p *Position) ApplyMove(from, to Square) (MoveResult, error) {
	rejected := MoveResult{Position: p, Move: Move{From: from, To: to}}
	if p.Terminal {
		return rejected, fmt.Errorf("%w: winner %s", ErrGameOver, p.Winner)
	}
	pc, err := p.moverAt(from)
	if err != nil {
		return rejected, err
	}
	if !p.isLegalDest(from, to) {
		return rejected, fmt.Errorf("%w: %s %v->%v", ErrIllegalMove, pc.Type(), from, to)
	}

	captured := p.Board.At(to)
	np, _ := p.MakeMove(Move{From: from, To: to})

	res := MoveResult{
		Position: np,
		Move:     Move{From: from, To: to},
		Captured: captured.Type(),
		Check:    np.Board.inCheck(np.SideToMove),
	}
	if res.Captured == PieceGeneral {
		// 飞将吃将，直接终局
		np.Terminal = true
		np.Winner = pc.Side()
		return res, nil
	}
	if !np.Board.hasLegalMove(np.SideToMove) {
		np.Terminal = true
		np.Winner = pc.Side()
		res.Checkmate = res.Check
		res.Stalemate = !res.Check
	}
	return res, nil
}

// Play 等同于 ApplyMove(m.From, m.To)。
func (p *Position) Play(m Move) (MoveResult, error) {
	return p.ApplyMove(m.From, m.To)
}

func (p *Position) isLegalDest(from, to Square) bool {
	if !to.OnBoard() {
		return false
	}
	want := indexOf(to.Row, to.Col)
	for _, sq := range p.Board.legalDests(indexOf(from.Row, from.Col)) {
		if sq == want {
			return true
		}
	}
	return false
}
