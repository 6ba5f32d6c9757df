package xiangqi

import (
	"encoding/json"
	"fmt"
)

// PieceRecord 快照里的一个棋子
type PieceRecord struct {
	Kind PieceType `json:"kind"`
	Side Side      `json:"side"`
	Row  int       `json:"row"`
	Col  int       `json:"col"`
}

// Snapshot 局面的规范序列化形式，供存储/传输层使用。
type Snapshot struct {
	Pieces     []PieceRecord `json:"pieces"`
	SideToMove Side          `json:"side_to_move"`
	Terminal   bool          `json:"terminal"`
	Winner     Side          `json:"winner"`
	AI         AIConfig      `json:"ai"`
}

func (p *Position) Snapshot() Snapshot {
	pieces := p.Pieces()
	s := Snapshot{
		Pieces:     make([]PieceRecord, len(pieces)),
		SideToMove: p.SideToMove,
		Terminal:   p.Terminal,
		Winner:     p.Winner,
		AI:         p.AI,
	}
	for i, pl := range pieces {
		s.Pieces[i] = PieceRecord{Kind: pl.Type, Side: pl.Side, Row: pl.Square.Row, Col: pl.Square.Col}
	}
	return s
}

// FromSnapshot 还原局面：坐标必须在盘上且互不重复，种类和阵营必须有效。
func FromSnapshot(s Snapshot) (*Position, error) {
	if s.SideToMove != Red && s.SideToMove != Black {
		return nil, fmt.Errorf("%w: side to move %s", ErrInvalidSnapshot, s.SideToMove)
	}
	pos := &Position{
		SideToMove: s.SideToMove,
		Terminal:   s.Terminal,
		Winner:     s.Winner,
		AI:         s.AI,
	}
	for _, rec := range s.Pieces {
		sq := Sq(rec.Row, rec.Col)
		if !sq.OnBoard() {
			return nil, fmt.Errorf("%w: %w: %s at %v", ErrInvalidSnapshot, ErrOffBoard, rec.Kind, sq)
		}
		if rec.Kind <= PieceNone || rec.Kind > PieceSoldier {
			return nil, fmt.Errorf("%w: piece kind %d", ErrInvalidSnapshot, rec.Kind)
		}
		if rec.Side != Red && rec.Side != Black {
			return nil, fmt.Errorf("%w: piece side %s", ErrInvalidSnapshot, rec.Side)
		}
		if pos.Board.At(sq) != 0 {
			return nil, fmt.Errorf("%w: two pieces at %v", ErrInvalidSnapshot, sq)
		}
		pos.Board.Put(sq, MakePiece(rec.Side, rec.Kind))
	}
	return pos, nil
}

func (p *Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Snapshot())
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	pos, err := FromSnapshot(s)
	if err != nil {
		return err
	}
	*p = *pos
	return nil
}
