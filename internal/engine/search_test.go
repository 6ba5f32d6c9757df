package engine

import (
	"testing"

	"xiangqi/internal/xiangqi"
)

// 固定返回值的随机源
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(int) int     { return r.n }

func mustPos(t *testing.T, fen string) *xiangqi.Position {
	t.Helper()
	pos, err := xiangqi.DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return pos
}

// 红方唯一的吃子：炮隔兵打 (3,1)
const singleCaptureFEN = "3k5/9/9/1p7/9/9/1P7/1C7/9/4K4 w"

// 车 (5,0)->(0,0) 一步杀；黑方多一个过河卒，没有困毙的可能
const mateInOneFEN = "4k4/8R/9/9/9/R8/9/7p1/9/3K5 w"

func TestEasyPrefersCapture(t *testing.T) {
	pos := mustPos(t, singleCaptureFEN)

	eng := NewEngine(fixedRand{f: 0, n: 0})
	mv, ok := eng.BestMove(pos, xiangqi.Easy)
	if !ok {
		t.Fatalf("no move found")
	}
	want := xiangqi.Move{From: xiangqi.Sq(7, 1), To: xiangqi.Sq(3, 1)}
	if mv != want {
		t.Fatalf("got %v want %v", mv, want)
	}
}

func TestEasyFallsBackToAnyMove(t *testing.T) {
	pos := mustPos(t, singleCaptureFEN)

	eng := NewEngine(fixedRand{f: 0.99, n: 0})
	mv, ok := eng.BestMove(pos, xiangqi.Easy)
	if !ok {
		t.Fatalf("no move found")
	}
	if want := pos.LegalMoves()[0]; mv != want {
		t.Fatalf("got %v want first legal move %v", mv, want)
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	pos := mustPos(t, mateInOneFEN)
	before := pos.Encode()

	for _, d := range []xiangqi.Difficulty{xiangqi.Medium, xiangqi.Hard} {
		t.Run(d.String(), func(t *testing.T) {
			res := NewSeededEngine(1).Search(pos, d)
			want := xiangqi.Move{From: xiangqi.Sq(5, 0), To: xiangqi.Sq(0, 0)}
			if !res.Found || res.BestMove != want {
				t.Fatalf("got %v (found=%v) want %v", res.BestMove, res.Found, want)
			}
			if res.Score != ScoreWin {
				t.Fatalf("score %d want %d", res.Score, ScoreWin)
			}
			if res.Depth != d.Depth() || res.Nodes == 0 {
				t.Fatalf("depth=%d nodes=%d", res.Depth, res.Nodes)
			}
		})
	}
	if pos.Encode() != before {
		t.Fatalf("search mutated the position")
	}
}

const hangingChariotFEN = "3k5/9/9/9/r8/9/9/9/9/R3K4 w"

func TestMediumWinsHangingChariot(t *testing.T) {
	pos := mustPos(t, hangingChariotFEN)
	want := xiangqi.Move{From: xiangqi.Sq(9, 0), To: xiangqi.Sq(4, 0)}
	eng := NewSeededEngine(1)
	mv, ok := eng.BestMove(pos, xiangqi.Medium)
	if !ok || mv != want {
		t.Fatalf("got %v want %v", mv, want)
	}
	if eng.Nodes() == 0 {
		t.Fatalf("node counter not updated")
	}
}

// 同一局面深一层能看到两步杀：车将军，黑车只能垫，车吃车杀
func TestHardFindsMateInTwo(t *testing.T) {
	pos := mustPos(t, hangingChariotFEN)
	check := xiangqi.Move{From: xiangqi.Sq(9, 0), To: xiangqi.Sq(9, 3)}
	mv, ok := NewSeededEngine(1).BestMove(pos, xiangqi.Hard)
	if !ok || mv != check {
		t.Fatalf("got %v want %v", mv, check)
	}

	res, err := pos.Play(check)
	if err != nil {
		t.Fatalf("Play %v: %v", check, err)
	}
	if !res.Check {
		t.Fatalf("%v should give check", check)
	}
	block := xiangqi.Move{From: xiangqi.Sq(4, 0), To: xiangqi.Sq(4, 3)}
	replies := res.Position.LegalMoves()
	if len(replies) != 1 || replies[0] != block {
		t.Fatalf("black replies %v, want only %v", replies, block)
	}

	res, err = res.Position.Play(block)
	if err != nil {
		t.Fatalf("Play %v: %v", block, err)
	}
	res, err = res.Position.Play(xiangqi.Move{From: xiangqi.Sq(9, 3), To: xiangqi.Sq(4, 3)})
	if err != nil {
		t.Fatalf("recapture: %v", err)
	}
	if !res.Checkmate || !res.Position.Terminal || res.Position.Winner != xiangqi.Red {
		t.Fatalf("checkmate=%v terminal=%v winner=%s", res.Checkmate, res.Position.Terminal, res.Position.Winner)
	}
}

func TestSearchWithoutMoves(t *testing.T) {
	eng := NewSeededEngine(1)

	// 黑方被困毙，但局面还没被标成终局
	stuck := mustPos(t, "4k4/R8/9/9/9/5R3/9/9/9/3K5 b")
	for _, d := range []xiangqi.Difficulty{xiangqi.Easy, xiangqi.Medium, xiangqi.Hard} {
		if res := eng.Search(stuck, d); res.Found {
			t.Fatalf("%s: found %v in a position without moves", d, res.BestMove)
		}
	}

	over := xiangqi.NewInitialPosition()
	over.Terminal, over.Winner = true, xiangqi.Black
	if _, ok := eng.BestMove(over, xiangqi.Medium); ok {
		t.Fatalf("terminal position should yield no move")
	}
}

func TestSearchReturnsLegalMove(t *testing.T) {
	pos := xiangqi.NewInitialPosition()
	eng := NewSeededEngine(42)
	for _, d := range []xiangqi.Difficulty{xiangqi.Easy, xiangqi.Medium} {
		for ply := 0; ply < 6; ply++ {
			mv, ok := eng.BestMove(pos, d)
			if !ok {
				t.Fatalf("%s ply %d: no move", d, ply)
			}
			res, err := pos.Play(mv)
			if err != nil {
				t.Fatalf("%s ply %d: engine move %v rejected: %v", d, ply, mv, err)
			}
			pos = res.Position
		}
	}
}
