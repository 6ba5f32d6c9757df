package xiangqi

import (
	"fmt"
	"strings"
	"unicode"
)

// Encode 输出标准象棋 FEN：10 行用“/”隔开，空位用数字压缩；空格后 w/b 表示轮走方
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Squares[indexOf(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// DecodePosition 解析 FEN。只检查格式，不检查局面是否符合规则（见 Validate）。
// 轮走方缺省为红；w 或 r 表示红，b 表示黑。
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidFEN)
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidFEN, len(rows))
	}
	var b Board
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, fmt.Errorf("%w: row %d too long", ErrInvalidFEN, r)
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece letter %q", ErrInvalidFEN, ch)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = Red
			}
			b.Squares[indexOf(r, c)] = MakePiece(side, pt)
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrInvalidFEN, r, c)
		}
	}

	stm := Red
	if len(parts) > 1 {
		switch parts[1] {
		case "w", "r":
			stm = Red
		case "b":
			stm = Black
		default:
			return nil, fmt.Errorf("%w: side %q", ErrInvalidFEN, parts[1])
		}
	}
	return &Position{
		Board:      b,
		SideToMove: stm,
		Winner:     NoSide,
	}, nil
}

// MustDecode 解析失败直接 panic，只用于常量局面。
func MustDecode(fen string) *Position {
	pos, err := DecodePosition(fen)
	if err != nil {
		panic(err)
	}
	return pos
}
