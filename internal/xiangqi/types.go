package xiangqi

import "fmt"

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0 // 先手
	Black  Side = 1
)

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "none"
	}
}

func (s Side) Opponent() Side {
	return opposite(s)
}

func (s Side) MarshalText() ([]byte, error) {
	if s != Red && s != Black && s != NoSide {
		return nil, fmt.Errorf("unknown side %d", s)
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "red":
		*s = Red
	case "black":
		*s = Black
	case "none", "":
		*s = NoSide
	default:
		return fmt.Errorf("%w: unknown side %q", ErrInvalidSnapshot, b)
	}
	return nil
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceGeneral            // 帅 / 将
	PieceAdvisor            // 仕 / 士
	PieceElephant           // 相 / 象
	PieceHorse              // 马
	PieceChariot            // 车
	PieceCannon             // 炮
	PieceSoldier            // 兵 / 卒
)

var pieceTypeNames = [...]string{
	PieceNone:     "none",
	PieceGeneral:  "general",
	PieceAdvisor:  "advisor",
	PieceElephant: "elephant",
	PieceHorse:    "horse",
	PieceChariot:  "chariot",
	PieceCannon:   "cannon",
	PieceSoldier:  "soldier",
}

func (pt PieceType) String() string {
	if pt < 0 || int(pt) >= len(pieceTypeNames) {
		return "unknown"
	}
	return pieceTypeNames[pt]
}

func (pt PieceType) MarshalText() ([]byte, error) {
	if pt <= PieceNone || int(pt) >= len(pieceTypeNames) {
		return nil, fmt.Errorf("unknown piece type %d", pt)
	}
	return []byte(pt.String()), nil
}

func (pt *PieceType) UnmarshalText(b []byte) error {
	for i, name := range pieceTypeNames {
		if i > 0 && name == string(b) {
			*pt = PieceType(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown piece kind %q", ErrInvalidSnapshot, b)
}

type Piece int8 // 0=空；>0 红；<0 黑；abs=PieceType

func MakePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return 0
	}
	if side == Red {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Red
	}
	return Black
}

// Square 棋盘交叉点坐标，行 0 在黑方底线，行 9 在红方底线。
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Sq(row, col int) Square { return Square{Row: row, Col: col} }

func (s Square) OnBoard() bool { return onBoard(s.Row, s.Col) }

func (s Square) String() string { return fmt.Sprintf("(%d,%d)", s.Row, s.Col) }

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string { return m.From.String() + "->" + m.To.String() }

// Placement 一个在盘上的棋子：种类、阵营和所在位置。
type Placement struct {
	Type   PieceType
	Side   Side
	Square Square
}

type Board struct {
	Squares [NumSquares]Piece
}

func (b *Board) At(s Square) Piece {
	if !s.OnBoard() {
		return 0
	}
	return b.Squares[indexOf(s.Row, s.Col)]
}

// Put 放置或清空（pc == 0）一个格子。
func (b *Board) Put(s Square, pc Piece) {
	if !s.OnBoard() {
		return
	}
	b.Squares[indexOf(s.Row, s.Col)] = pc
}

// AIConfig 对局里电脑一方的配置，快照自带，规则层不解释它。
type AIConfig struct {
	Enabled    bool       `json:"enabled"`
	Side       Side       `json:"side"`
	Difficulty Difficulty `json:"difficulty"`
}

// Position 一个完整的局面快照：棋盘、轮到谁走、是否终局、胜者和 AI 配置。
// 不记录历史；走子总是返回新的 *Position。
type Position struct {
	Board      Board
	SideToMove Side
	Terminal   bool
	Winner     Side
	AI         AIConfig
}
