package xiangqi

import "strings"

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 河界：行 0..4 为黑方半场，行 5..9 为红方半场
	RiverRow = 5
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }
func squareOf(sq int) Square   { return Square{Row: rowOf(sq), Col: colOf(sq)} }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func opposite(side Side) Side {
	if side == Red {
		return Black
	}
	if side == Black {
		return Red
	}
	return NoSide
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func soldierDir(side Side) int {
	if side == Red {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// 是否在本方半场（未过河）
func onOwnHalf(side Side, row int) bool {
	if side == Red {
		return row >= RiverRow
	}
	if side == Black {
		return row < RiverRow
	}
	return false
}

// 兵是否已经过河
func crossedRiver(side Side, row int) bool {
	return side != NoSide && !onOwnHalf(side, row)
}

// 是否在九宫
func inPalace(side Side, row, col int) bool {
	midCol := Cols / 2 // 4
	if col < midCol-1 || col > midCol+1 {
		return false
	}
	if side == Black {
		return row >= 0 && row <= 2
	}
	if side == Red {
		return row >= Rows-3 && row <= Rows-1 // 7..9
	}
	return false
}

// InPalace 导出给评估函数使用。
func InPalace(side Side, s Square) bool { return inPalace(side, s.Row, s.Col) }

// CrossedRiver 该方棋子在 s 行是否已过河。
func CrossedRiver(side Side, s Square) bool { return crossedRiver(side, s.Row) }

var letterToPieceType = map[rune]PieceType{
	'k': PieceGeneral,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'n': PieceHorse,
	'r': PieceChariot,
	'c': PieceCannon,
	'p': PieceSoldier,
}

var pieceTypeToLetter = map[PieceType]rune{
	PieceGeneral:  'k',
	PieceAdvisor:  'a',
	PieceElephant: 'b',
	PieceHorse:    'n',
	PieceChariot:  'r',
	PieceCannon:   'c',
	PieceSoldier:  'p',
}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	base, ok := pieceTypeToLetter[p.Type()]
	if !ok {
		return '.'
	}
	if p.Side() == Red {
		return base - 'a' + 'A'
	}
	return base
}

// InitialFEN 标准开局，红方在下。
const InitialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

func NewInitialPosition() *Position {
	pos, err := DecodePosition(InitialFEN)
	if err != nil {
		panic("xiangqi: bad initial FEN: " + err.Error())
	}
	return pos
}

// NewEmptyPosition 空棋盘，红方先走；测试和残局摆子用。
func NewEmptyPosition() *Position {
	return &Position{SideToMove: Red, Winner: NoSide}
}

// Pieces 按格子顺序（行优先）列出所有在盘棋子。
func (p *Position) Pieces() []Placement {
	out := make([]Placement, 0, 32)
	for sq, pc := range p.Board.Squares {
		if pc == 0 {
			continue
		}
		out = append(out, Placement{Type: pc.Type(), Side: pc.Side(), Square: squareOf(sq)})
	}
	return out
}

// PieceAt 返回 s 上的棋子；空格返回 false。
func (p *Position) PieceAt(s Square) (Placement, bool) {
	pc := p.Board.At(s)
	if pc == 0 {
		return Placement{}, false
	}
	return Placement{Type: pc.Type(), Side: pc.Side(), Square: s}, true
}

// FindGeneral 找到 side 的将/帅；被吃掉（构造局面）时返回 false。
func (p *Position) FindGeneral(side Side) (Square, bool) {
	sq := p.Board.findGeneral(side)
	if sq < 0 {
		return Square{}, false
	}
	return squareOf(sq), true
}

func (b *Board) findGeneral(side Side) int {
	want := MakePiece(side, PieceGeneral)
	if want == 0 {
		return -1
	}
	for sq, pc := range b.Squares {
		if pc == want {
			return sq
		}
	}
	return -1
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		sb.WriteByte(byte('0' + r))
		sb.WriteByte(' ')
		for c := 0; c < Cols; c++ {
			sb.WriteRune(pieceToChar(b.Squares[indexOf(r, c)]))
		}
		sb.WriteByte('\n')
		if r == RiverRow-1 {
			sb.WriteString("  ~~~~~~~~~\n")
		}
	}
	sb.WriteString("  012345678\n")
	return sb.String()
}
