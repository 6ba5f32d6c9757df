package engine

import (
	"golang.org/x/exp/constraints"

	"xiangqi/internal/xiangqi"
)

const (
	// 终局/无子可动的饱和分
	ScoreWin = 9000

	// 位置分相对子力打一折
	positionalScale = 10

	mobilityWeight      = 5
	centerOccupyBonus   = 10
	centerAttackWeight  = 5
	developmentBonus    = 10
	chariotCannonBonus  = 15
	horseChariotBonus   = 10
	soldierChainBonus   = 5
	horseChariotMaxDist = 2
)

// ======= 基础子力估值 =======

var pieceValue = map[xiangqi.PieceType]int{
	xiangqi.PieceGeneral:  10000,
	xiangqi.PieceChariot:  900,
	xiangqi.PieceHorse:    500,
	xiangqi.PieceCannon:   450,
	xiangqi.PieceElephant: 250,
	xiangqi.PieceAdvisor:  200,
	xiangqi.PieceSoldier:  100,
}

// 位置分表，以红方视角书写（行 0 是黑方底线）；黑方按行镜像查表。
var pieceSquareTables = map[xiangqi.PieceType]*[xiangqi.Rows][xiangqi.Cols]int{
	xiangqi.PieceSoldier: {
		{90, 90, 90, 90, 90, 90, 90, 90, 90},
		{40, 50, 60, 70, 70, 70, 60, 50, 40},
		{30, 40, 50, 60, 60, 60, 50, 40, 30},
		{20, 30, 40, 50, 50, 50, 40, 30, 20},
		{5, 10, 15, 20, 20, 20, 15, 10, 5},
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
	},
	xiangqi.PieceHorse: {
		{0, 10, 20, 30, 40, 30, 20, 10, 0},
		{10, 40, 50, 60, 70, 60, 50, 40, 10},
		{20, 50, 70, 80, 80, 80, 70, 50, 20},
		{30, 60, 80, 90, 90, 90, 80, 60, 30},
		{40, 70, 80, 90, 90, 90, 80, 70, 40},
		{40, 70, 80, 90, 90, 90, 80, 70, 40},
		{30, 60, 70, 80, 80, 80, 70, 60, 30},
		{20, 50, 60, 70, 70, 70, 60, 50, 20},
		{10, 40, 50, 60, 60, 60, 50, 40, 10},
		{0, 10, 20, 30, 30, 30, 20, 10, 0},
	},
	xiangqi.PieceCannon: {
		{40, 30, 20, 10, 0, 10, 20, 30, 40},
		{30, 40, 30, 20, 10, 20, 30, 40, 30},
		{20, 30, 40, 30, 20, 30, 40, 30, 20},
		{10, 20, 30, 40, 50, 40, 30, 20, 10},
		{0, 10, 20, 30, 40, 30, 20, 10, 0},
		{0, 10, 20, 30, 40, 30, 20, 10, 0},
		{10, 20, 30, 40, 50, 40, 30, 20, 10},
		{20, 30, 40, 30, 20, 30, 40, 30, 20},
		{30, 40, 30, 20, 10, 20, 30, 40, 30},
		{40, 30, 20, 10, 0, 10, 20, 30, 40},
	},
	xiangqi.PieceChariot: {
		{40, 40, 40, 40, 40, 40, 40, 40, 40},
		{50, 50, 50, 50, 50, 50, 50, 50, 50},
		{30, 40, 40, 40, 40, 40, 40, 40, 30},
		{30, 40, 40, 40, 40, 40, 40, 40, 30},
		{30, 40, 40, 40, 40, 40, 40, 40, 30},
		{30, 40, 40, 40, 40, 40, 40, 40, 30},
		{30, 40, 40, 40, 40, 40, 40, 40, 30},
		{30, 40, 40, 40, 40, 40, 40, 40, 30},
		{30, 40, 40, 40, 40, 40, 40, 40, 30},
		{30, 30, 30, 30, 30, 30, 30, 30, 30},
	},
}

// 中心六点
var centerSquares = [6]xiangqi.Square{
	{Row: 4, Col: 3}, {Row: 4, Col: 4}, {Row: 4, Col: 5},
	{Row: 5, Col: 3}, {Row: 5, Col: 4}, {Row: 5, Col: 5},
}

// Evaluate 从 perspective 一方看的局面分：正数对 perspective 有利。
// Easy 只算子力；Medium 加位置分；Hard 再加机动性、中心控制、出子和协同。
func Evaluate(pos *xiangqi.Position, perspective xiangqi.Side, d xiangqi.Difficulty) int {
	if pos.Terminal {
		switch pos.Winner {
		case perspective:
			return ScoreWin
		case perspective.Opponent():
			return -ScoreWin
		}
	}

	material, positional := 0, 0
	for _, pl := range pos.Pieces() {
		sign := 1
		if pl.Side != perspective {
			sign = -1
		}
		material += sign * pieceValue[pl.Type]
		if d >= xiangqi.Medium {
			positional += sign * squareBonus(pl)
		}
	}
	score := material + positional/positionalScale

	if d >= xiangqi.Hard {
		score += evaluateMobility(pos, perspective)
		score += evaluateCenterControl(pos, perspective)
		score += evaluateDevelopment(pos, perspective) - evaluateDevelopment(pos, perspective.Opponent())
		score += evaluateCoordination(pos, perspective) - evaluateCoordination(pos, perspective.Opponent())
	}
	return score
}

func squareBonus(pl xiangqi.Placement) int {
	table, ok := pieceSquareTables[pl.Type]
	if !ok {
		return 0
	}
	row := pl.Square.Row
	if pl.Side == xiangqi.Black {
		row = xiangqi.Rows - 1 - row
	}
	return table[row][pl.Square.Col]
}

func evaluateMobility(pos *xiangqi.Position, side xiangqi.Side) int {
	mine := pos.CountLegalMoves(side)
	theirs := pos.CountLegalMoves(side.Opponent())
	return (mine - theirs) * mobilityWeight
}

func evaluateCenterControl(pos *xiangqi.Position, side xiangqi.Side) int {
	opp := side.Opponent()
	score := 0
	for _, sq := range centerSquares {
		if pl, ok := pos.PieceAt(sq); ok {
			if pl.Side == side {
				score += centerOccupyBonus
			} else {
				score -= centerOccupyBonus
			}
		}
		diff := pos.Board.AttackerCount(sq, side) - pos.Board.AttackerCount(sq, opp)
		score += diff * centerAttackWeight
	}
	return score
}

// 马、相、士离开开局位置
func evaluateDevelopment(pos *xiangqi.Position, side xiangqi.Side) int {
	homeRow := 0
	if side == xiangqi.Red {
		homeRow = xiangqi.Rows - 1
	}
	score := 0
	for _, pl := range pos.Pieces() {
		if pl.Side != side {
			continue
		}
		var cols [2]int
		switch pl.Type {
		case xiangqi.PieceHorse:
			cols = [2]int{1, 7}
		case xiangqi.PieceElephant:
			cols = [2]int{2, 6}
		case xiangqi.PieceAdvisor:
			cols = [2]int{3, 5}
		default:
			continue
		}
		if pl.Square.Row != homeRow || (pl.Square.Col != cols[0] && pl.Square.Col != cols[1]) {
			score += developmentBonus
		}
	}
	return score
}

// 车炮同线、马在车旁、兵并肩
func evaluateCoordination(pos *xiangqi.Position, side xiangqi.Side) int {
	var own []xiangqi.Placement
	for _, pl := range pos.Pieces() {
		if pl.Side == side {
			own = append(own, pl)
		}
	}

	score := 0
	for i := 0; i < len(own); i++ {
		for j := i + 1; j < len(own); j++ {
			a, b := own[i], own[j]
			dr := abs(a.Square.Row - b.Square.Row)
			dc := abs(a.Square.Col - b.Square.Col)
			switch {
			case isPair(a, b, xiangqi.PieceChariot, xiangqi.PieceCannon):
				if dr == 0 || dc == 0 {
					score += chariotCannonBonus
				}
			case isPair(a, b, xiangqi.PieceHorse, xiangqi.PieceChariot):
				if dr <= horseChariotMaxDist && dc <= horseChariotMaxDist {
					score += horseChariotBonus
				}
			case a.Type == xiangqi.PieceSoldier && b.Type == xiangqi.PieceSoldier:
				if dr+dc == 1 {
					score += soldierChainBonus
				}
			}
		}
	}
	return score
}

func isPair(a, b xiangqi.Placement, x, y xiangqi.PieceType) bool {
	return (a.Type == x && b.Type == y) || (a.Type == y && b.Type == x)
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
