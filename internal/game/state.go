package game

import (
	"sync"
	"time"

	"xiangqi/internal/xiangqi"
)

type GameState struct {
	mu sync.Mutex // 串行化同一局的走子和电脑思考

	ID        string
	Pos       *xiangqi.Position
	Moves     []xiangqi.Move
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status "ongoing" / "check" / "red_won" / "black_won"
func (g *GameState) Status() string {
	return statusOf(g.Pos)
}

func statusOf(pos *xiangqi.Position) string {
	if pos.Terminal {
		return pos.Winner.String() + "_won"
	}
	if pos.IsInCheck(pos.SideToMove) {
		return "check"
	}
	return "ongoing"
}

// 调用方拿到的是副本，Pos 本身不可变，可以共享
func (g *GameState) clone() *GameState {
	return &GameState{
		ID:        g.ID,
		Pos:       g.Pos,
		Moves:     append([]xiangqi.Move(nil), g.Moves...),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
