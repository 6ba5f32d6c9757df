package engine

import (
	"sync/atomic"
	"time"

	"xiangqi/internal/xiangqi"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000

	// Easy 档有吃子时选吃子的概率
	captureBias = 0.6
)

// 搜索结果
type SearchResult struct {
	BestMove xiangqi.Move  // 最佳着法
	Found    bool          // false 表示轮走方没有合法走法
	Score    int           // 从轮走方视角的评估分；Easy 档为 0
	Depth    int           // 搜索深度（ply）
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
}

// BestMove 按难度为轮走方选一步；没有合法走法或已终局时返回 false。
func (e *Engine) BestMove(pos *xiangqi.Position, d xiangqi.Difficulty) (xiangqi.Move, bool) {
	res := e.Search(pos, d)
	return res.BestMove, res.Found
}

// Search 固定深度搜索，没有时间截止；需要超时请在外层包一层（见 game.Manager）。
func (e *Engine) Search(pos *xiangqi.Position, d xiangqi.Difficulty) SearchResult {
	start := time.Now()
	if pos.Terminal {
		return SearchResult{TimeUsed: time.Since(start)}
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		// 困毙或已被将死，交给调用方处理
		return SearchResult{TimeUsed: time.Since(start)}
	}
	if d < xiangqi.Easy || d > xiangqi.Hard {
		d = xiangqi.Medium
	}

	if d == xiangqi.Easy {
		mv := e.pickShallow(pos, moves)
		atomic.AddInt64(&e.nodes, 1)
		return SearchResult{
			BestMove: mv,
			Found:    true,
			Depth:    d.Depth(),
			Nodes:    1,
			TimeUsed: time.Since(start),
		}
	}

	s := &searcher{side: pos.SideToMove, difficulty: d}
	score, mv := s.alphaBetaRoot(pos, moves, d.Depth())
	atomic.AddInt64(&e.nodes, s.nodes)

	return SearchResult{
		BestMove: mv,
		Found:    true,
		Score:    score,
		Depth:    d.Depth(),
		Nodes:    s.nodes,
		TimeUsed: time.Since(start),
	}
}

// Easy 档：有吃子时按 captureBias 的概率从吃子招里随机挑，否则全体随机
func (e *Engine) pickShallow(pos *xiangqi.Position, moves []xiangqi.Move) xiangqi.Move {
	var captures []xiangqi.Move
	for _, mv := range moves {
		if pos.Board.At(mv.To) != 0 {
			captures = append(captures, mv)
		}
	}
	if len(captures) > 0 && e.rng.Float64() < captureBias {
		return captures[e.rng.Intn(len(captures))]
	}
	return moves[e.rng.Intn(len(moves))]
}

// 单次搜索的局部状态，不与其他搜索共享
type searcher struct {
	side       xiangqi.Side // 根节点轮走方，极大层
	difficulty xiangqi.Difficulty
	nodes      int64
}

// 根节点按生成顺序遍历，分数相同时保留先遇到的着法
func (s *searcher) alphaBetaRoot(pos *xiangqi.Position, moves []xiangqi.Move, depth int) (int, xiangqi.Move) {
	alpha, beta := -scoreInf, scoreInf
	bestScore := -scoreInf
	bestMove := moves[0]
	found := false

	for _, mv := range moves {
		child, ok := pos.MakeMove(mv)
		if !ok {
			continue
		}
		score := s.alphaBeta(child, depth-1, alpha, beta)
		if !found || score > bestScore {
			bestScore = score
			bestMove = mv
			found = true
		}
		if score > alpha {
			alpha = score
		}
	}
	return bestScore, bestMove
}

// 内部递归：标准 alpha-beta，轮到根节点一方时取极大，否则取极小
func (s *searcher) alphaBeta(pos *xiangqi.Position, depth int, alpha, beta int) int {
	s.nodes++

	if depth <= 0 || pos.Terminal {
		return Evaluate(pos, s.side, s.difficulty)
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		// 没招可走：对没招的一方是输棋
		if pos.SideToMove == s.side {
			return -ScoreWin
		}
		return ScoreWin
	}

	orderMovesByCaptureFirst(pos, moves)

	if pos.SideToMove == s.side {
		bestScore := -scoreInf
		for _, mv := range moves {
			child, ok := pos.MakeMove(mv)
			if !ok {
				continue
			}
			score := s.alphaBeta(child, depth-1, alpha, beta)
			if score > bestScore {
				bestScore = score
			}
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				break
			}
		}
		return bestScore
	}

	bestScore := scoreInf
	for _, mv := range moves {
		child, ok := pos.MakeMove(mv)
		if !ok {
			continue
		}
		score := s.alphaBeta(child, depth-1, alpha, beta)
		if score < bestScore {
			bestScore = score
		}
		if score < beta {
			beta = score
		}
		if alpha >= beta {
			break
		}
	}
	return bestScore
}

// 一个非常粗暴的“吃子优先”排序，只用于内部节点
func orderMovesByCaptureFirst(pos *xiangqi.Position, moves []xiangqi.Move) {
	swap := func(i, j int) { moves[i], moves[j] = moves[j], moves[i] }
	n := len(moves)
	for i := 0; i < n; i++ {
		if pos.Board.At(moves[i].To) == 0 {
			// 从后往前找一个“吃子招”
			for j := n - 1; j > i; j-- {
				if pos.Board.At(moves[j].To) != 0 {
					swap(i, j)
					break
				}
			}
		}
	}
}
