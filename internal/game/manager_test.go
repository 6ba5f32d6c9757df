package game

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// 车 (5,0)->(0,0) 一步杀
const mateInOneFEN = "4k4/8R/9/9/9/R8/9/7p1/9/3K5 w"

func newTestManager() *Manager {
	return NewManager(engine.NewSeededEngine(1), Config{Logger: log.New(io.Discard, "", 0)})
}

func mv(fr, fc, tr, tc int) xiangqi.Move {
	return xiangqi.Move{From: xiangqi.Sq(fr, fc), To: xiangqi.Sq(tr, tc)}
}

func TestNewGameAndPlay(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	g, err := m.NewGame(ctx, Options{})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if g.ID == "" || g.Status() != "ongoing" || len(g.Moves) != 0 {
		t.Fatalf("unexpected new game: id=%q status=%s moves=%d", g.ID, g.Status(), len(g.Moves))
	}
	if g.Pos.Encode() != xiangqi.InitialFEN {
		t.Fatalf("new game not at the initial position: %s", g.Pos.Encode())
	}

	dsts, err := m.LegalMoves(g.ID, xiangqi.Sq(6, 4))
	if err != nil || len(dsts) != 1 || dsts[0] != xiangqi.Sq(5, 4) {
		t.Fatalf("LegalMoves: %v %v", dsts, err)
	}

	turn, err := m.Play(ctx, g.ID, mv(6, 4, 5, 4))
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if turn.Reply != nil {
		t.Fatalf("no AI configured but got a reply")
	}
	if turn.Game.Pos.SideToMove != xiangqi.Black || len(turn.Game.Moves) != 1 {
		t.Fatalf("side=%s moves=%d", turn.Game.Pos.SideToMove, len(turn.Game.Moves))
	}

	got, err := m.Get(g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Pos.Encode() != turn.Game.Pos.Encode() {
		t.Fatalf("stored position differs from returned one")
	}
}

func TestPlayErrors(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	g, err := m.NewGame(ctx, Options{})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	tests := []struct {
		name string
		id   string
		mv   xiangqi.Move
		want error
	}{
		{"unknown game", "nope", mv(6, 4, 5, 4), ErrGameNotFound},
		{"illegal move", g.ID, mv(6, 4, 4, 4), xiangqi.ErrIllegalMove},
		{"wrong side", g.ID, mv(3, 4, 4, 4), xiangqi.ErrNotSideToMove},
		{"empty square", g.ID, mv(4, 4, 3, 4), xiangqi.ErrNoPieceAtSquare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn, err := m.Play(ctx, tt.id, tt.mv)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v want %v", err, tt.want)
			}
			if turn != nil {
				t.Fatalf("rejected move returned a turn")
			}
		})
	}

	after, _ := m.Get(g.ID)
	if len(after.Moves) != 0 || after.Pos.Encode() != xiangqi.InitialFEN {
		t.Fatalf("rejected moves changed the game")
	}
}

func TestAIOpensAsRed(t *testing.T) {
	m := newTestManager()
	g, err := m.NewGame(context.Background(), Options{
		AI: xiangqi.AIConfig{Enabled: true, Side: xiangqi.Red, Difficulty: xiangqi.Easy},
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if len(g.Moves) != 1 || g.Pos.SideToMove != xiangqi.Black {
		t.Fatalf("AI should have moved first: moves=%d side=%s", len(g.Moves), g.Pos.SideToMove)
	}
}

func TestAIReplies(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	g, err := m.NewGame(ctx, Options{
		AI: xiangqi.AIConfig{Enabled: true, Side: xiangqi.Black, Difficulty: xiangqi.Medium},
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if len(g.Moves) != 0 {
		t.Fatalf("AI plays black and should wait")
	}

	turn, err := m.Play(ctx, g.ID, mv(7, 1, 7, 4))
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if turn.Reply == nil {
		t.Fatalf("expected an AI reply")
	}
	if turn.Reply.Position.SideToMove != xiangqi.Red {
		t.Fatalf("after the reply red should move")
	}
	if len(turn.Game.Moves) != 2 || turn.Game.Moves[1] != turn.Reply.Move {
		t.Fatalf("moves %v reply %v", turn.Game.Moves, turn.Reply.Move)
	}
}

func TestCanceledAIReplyKeepsHumanMove(t *testing.T) {
	m := newTestManager()
	g, err := m.NewGame(context.Background(), Options{
		AI: xiangqi.AIConfig{Enabled: true, Side: xiangqi.Black, Difficulty: xiangqi.Hard},
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	turn, err := m.Play(ctx, g.ID, mv(6, 4, 5, 4))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v want %v", err, context.Canceled)
	}
	if turn == nil || turn.Reply != nil || len(turn.Game.Moves) != 1 {
		t.Fatalf("human move should stand without a reply: %+v", turn)
	}
	if turn.Game.Pos.SideToMove != xiangqi.Black {
		t.Fatalf("black (AI) should still be to move")
	}
}

func TestImportAndEngineMove(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	if _, err := m.Import(ctx, xiangqi.MustDecode("9/9/9/9/9/9/9/9/9/4K4 w")); !errors.Is(err, xiangqi.ErrInvalidSnapshot) {
		t.Fatalf("import without black general: got %v", err)
	}

	g, err := m.Import(ctx, xiangqi.MustDecode(mateInOneFEN))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	turn, err := m.EngineMove(ctx, g.ID, xiangqi.Medium)
	if err != nil {
		t.Fatalf("EngineMove: %v", err)
	}
	if !turn.Result.Checkmate || turn.Game.Status() != "red_won" {
		t.Fatalf("expected mate, got %v status %s", turn.Result.Move, turn.Game.Status())
	}

	if _, err := m.EngineMove(ctx, g.ID, xiangqi.Medium); !errors.Is(err, xiangqi.ErrGameOver) {
		t.Fatalf("engine move after mate: got %v", err)
	}
	if _, err := m.Play(ctx, g.ID, mv(0, 4, 0, 3)); !errors.Is(err, xiangqi.ErrGameOver) {
		t.Fatalf("play after mate: got %v", err)
	}
}

func TestListRemove(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	a, _ := m.NewGame(ctx, Options{})
	b, _ := m.NewGame(ctx, Options{})
	turn, err := m.Play(ctx, a.ID, mv(6, 4, 5, 4))
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	list := m.List()
	if len(list) != 2 {
		t.Fatalf("List: %d games", len(list))
	}
	if list[1].UpdatedAt.After(list[0].UpdatedAt) {
		t.Fatalf("List not ordered by last update: %v before %v", list[0].UpdatedAt, list[1].UpdatedAt)
	}
	// 时钟粒度粗时两个时间可能相等，只在能区分时检查顺序
	if turn.Game.UpdatedAt.After(b.UpdatedAt) && list[0].ID != a.ID {
		t.Fatalf("most recently updated game should come first")
	}

	if err := m.Remove(b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := m.Remove(b.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("second Remove: got %v", err)
	}
	if _, err := m.Get(b.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("Get after Remove: got %v", err)
	}
	if n := len(m.List()); n != 1 {
		t.Fatalf("List after Remove: %d games", n)
	}
}

func TestAnalyzeAll(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	a, _ := m.NewGame(ctx, Options{})
	b, _ := m.Import(ctx, xiangqi.MustDecode(mateInOneFEN))

	out, err := m.AnalyzeAll(ctx, []string{a.ID, b.ID}, xiangqi.Medium)
	if err != nil {
		t.Fatalf("AnalyzeAll: %v", err)
	}
	if len(out) != 2 || !out[0].Found || !out[1].Found {
		t.Fatalf("unexpected suggestions: %+v", out)
	}
	if out[0].GameID != a.ID || out[1].GameID != b.ID {
		t.Fatalf("suggestions out of order: %+v", out)
	}
	if want := mv(5, 0, 0, 0); out[1].Move != want {
		t.Fatalf("mate suggestion %v want %v", out[1].Move, want)
	}

	// 只分析，不落子
	if g, _ := m.Get(b.ID); len(g.Moves) != 0 {
		t.Fatalf("AnalyzeAll played a move")
	}

	if _, err := m.AnalyzeAll(ctx, []string{a.ID, "missing"}, xiangqi.Easy); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("unknown id: got %v", err)
	}
}
