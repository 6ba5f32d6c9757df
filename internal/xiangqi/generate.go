package xiangqi

import "fmt"

// 按棋子种类分发的走法生成表
var generators = [...]func(b *Board, from int, dsts *[]int){
	PieceGeneral:  genGeneralMoves,
	PieceAdvisor:  genAdvisorMoves,
	PieceElephant: genElephantMoves,
	PieceHorse:    genHorseMoves,
	PieceChariot:  genChariotMoves,
	PieceCannon:   genCannonMoves,
	PieceSoldier:  genSoldierMoves,
}

// 伪合法落点（不考虑自己将是否被将军），追加到 dsts
func (b *Board) pseudoDests(from int, dsts *[]int) {
	pc := b.Squares[from]
	if pc == 0 {
		return
	}
	pt := pc.Type()
	if int(pt) >= len(generators) || generators[pt] == nil {
		return
	}
	generators[pt](b, from, dsts)
}

// PseudoLegalMoves 返回 from 上棋子的伪合法落点。
// 顺序固定：按方向枚举，滑动方向内由近及远。
func (b *Board) PseudoLegalMoves(from Square) []Square {
	if !from.OnBoard() {
		return nil
	}
	var dsts []int
	b.pseudoDests(indexOf(from.Row, from.Col), &dsts)
	return toSquares(dsts)
}

func toSquares(dsts []int) []Square {
	if len(dsts) == 0 {
		return nil
	}
	out := make([]Square, len(dsts))
	for i, sq := range dsts {
		out[i] = squareOf(sq)
	}
	return out
}

// 合法落点：伪合法且走完后本方将不被将军
func (b *Board) legalDests(from int) []int {
	var pseudo []int
	b.pseudoDests(from, &pseudo)
	out := pseudo[:0]
	for _, to := range pseudo {
		if !b.wouldExposeGeneral(from, to) {
			out = append(out, to)
		}
	}
	return out
}

// LegalMovesFrom 返回 from 上棋子的合法落点，不检查轮到谁走。
func (p *Position) LegalMovesFrom(from Square) []Square {
	if !from.OnBoard() {
		return nil
	}
	return toSquares(p.Board.legalDests(indexOf(from.Row, from.Col)))
}

// LegalMovesFor 生成 side 一方全部合法走法，按格子顺序再按方向顺序。
func (p *Position) LegalMovesFor(side Side) []Move {
	var moves []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		from := squareOf(sq)
		for _, to := range p.Board.legalDests(sq) {
			moves = append(moves, Move{From: from, To: squareOf(to)})
		}
	}
	return moves
}

// CountLegalMoves 只计数不分配，评估机动性用。
func (p *Position) CountLegalMoves(side Side) int {
	n := 0
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		n += len(p.Board.legalDests(sq))
	}
	return n
}

// LegalMoves 生成轮走方的全部合法走法。
func (p *Position) LegalMoves() []Move {
	return p.LegalMovesFor(p.SideToMove)
}

// GetLegalMoves 选中一个棋子时调用：校验该格有子且属于轮走方，再返回合法落点。
func (p *Position) GetLegalMoves(from Square) ([]Square, error) {
	if _, err := p.moverAt(from); err != nil {
		return nil, err
	}
	return p.LegalMovesFrom(from), nil
}

func (p *Position) moverAt(from Square) (Piece, error) {
	if !from.OnBoard() {
		return 0, fmt.Errorf("%w: %v is off board", ErrNoPieceAtSquare, from)
	}
	pc := p.Board.At(from)
	if pc == 0 {
		return 0, fmt.Errorf("%w: %v", ErrNoPieceAtSquare, from)
	}
	if pc.Side() != p.SideToMove {
		return 0, fmt.Errorf("%w: %v is %s, %s to move", ErrNotSideToMove, from, pc.Side(), p.SideToMove)
	}
	return pc, nil
}
