package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

type Config struct {
	AITimeout time.Duration // 单步电脑思考上限，0 表示不限制
	Logger    *log.Logger
}

// Options 新开一局的参数
type Options struct {
	AI xiangqi.AIConfig
}

// Turn 一次走子的结果：人类（或请求方）这步，以及可能紧跟的电脑应招。
type Turn struct {
	Game   *GameState
	Result xiangqi.MoveResult
	Reply  *xiangqi.MoveResult
}

// Manager 内存里的对局表。m.mu 保护 games 以及每局的 Pos/Moves/UpdatedAt，
// GameState.mu 串行化同一局的走子。
type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState

	engine *engine.Engine
	cfg    Config
	log    *log.Logger
}

func NewManager(eng *engine.Engine, cfg Config) *Manager {
	if eng == nil {
		eng = engine.NewEngine(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		games:  make(map[string]*GameState),
		engine: eng,
		cfg:    cfg,
		log:    logger,
	}
}

// NewGame 开局。电脑执红时先替它走第一步。
func (m *Manager) NewGame(ctx context.Context, opts Options) (*GameState, error) {
	pos := xiangqi.NewInitialPosition()
	pos.AI = opts.AI
	return m.register(ctx, pos)
}

// Import 登记一个外部还原的局面（比如存储层读回来的快照），先做规则校验。
func (m *Manager) Import(ctx context.Context, pos *xiangqi.Position) (*GameState, error) {
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	return m.register(ctx, pos)
}

func (m *Manager) register(ctx context.Context, pos *xiangqi.Position) (*GameState, error) {
	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Pos:       pos,
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()

	if pos.AI.Enabled {
		m.log.Printf("game %s: created, ai plays %s at %s", g.ID, pos.AI.Side, pos.AI.Difficulty)
	} else {
		m.log.Printf("game %s: created", g.ID)
	}

	if _, err := m.replyIfAITurn(ctx, g); err != nil {
		return m.snapshot(g), err
	}
	return m.snapshot(g), nil
}

func (m *Manager) Engine() *engine.Engine { return m.engine }

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g.clone(), nil
}

// List 所有对局，最近更新的在前。
func (m *Manager) List() []*GameState {
	m.mu.RLock()
	out := make([]*GameState, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g.clone())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(m.games, id)
	return nil
}

// LegalMoves 选中棋子后的可走落点。
func (m *Manager) LegalMoves(id string, from xiangqi.Square) ([]xiangqi.Square, error) {
	g, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return g.Pos.GetLegalMoves(from)
}

// Play 走一步；若开启了电脑且轮到电脑，接着让电脑应一步。
// 电脑思考失败（超时等）时，人类这步已经生效，返回的 Turn 不为 nil，同时返回错误。
func (m *Manager) Play(ctx context.Context, id string, mv xiangqi.Move) (*Turn, error) {
	g, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	res, err := g.Pos.Play(mv)
	if err != nil {
		return nil, err
	}
	m.commit(g, res)

	turn := &Turn{Result: res}
	turn.Reply, err = m.replyIfAITurn(ctx, g)
	turn.Game = m.snapshot(g)
	return turn, err
}

// EngineMove 让引擎替轮走方走一步（提示或双电脑对弈）。
func (m *Manager) EngineMove(ctx context.Context, id string, d xiangqi.Difficulty) (*Turn, error) {
	g, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Pos.Terminal {
		return nil, fmt.Errorf("%w: winner %s", xiangqi.ErrGameOver, g.Pos.Winner)
	}
	res, err := m.engineMove(ctx, g, d)
	if err != nil {
		return nil, err
	}
	return &Turn{Game: m.snapshot(g), Result: *res}, nil
}

// Suggestion AnalyzeAll 对单局的建议
type Suggestion struct {
	GameID string
	Move   xiangqi.Move
	Found  bool
}

// AnalyzeAll 并发地为多局计算建议着法，不落子。
func (m *Manager) AnalyzeAll(ctx context.Context, ids []string, d xiangqi.Difficulty) ([]Suggestion, error) {
	out := make([]Suggestion, len(ids))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, id := range ids {
		i, id := i, id // per-iteration copy (go directive < 1.22)
		eg.Go(func() error {
			g, err := m.Get(id)
			if err != nil {
				return err
			}
			out[i].GameID = id
			mv, err := m.think(ctx, g.Pos, d)
			if errors.Is(err, ErrNoEngineMove) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("game %s: %w", id, err)
			}
			out[i].Move = mv
			out[i].Found = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Manager) lookup(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

// 调用方持有 g.mu
func (m *Manager) commit(g *GameState, res xiangqi.MoveResult) {
	m.mu.Lock()
	g.Pos = res.Position
	g.Moves = append(g.Moves, res.Move)
	g.UpdatedAt = time.Now()
	m.mu.Unlock()

	if res.Position.Terminal {
		m.log.Printf("game %s: over after %d moves, %s wins (checkmate=%v)",
			g.ID, len(g.Moves), res.Position.Winner, res.Checkmate)
	}
}

func (m *Manager) snapshot(g *GameState) *GameState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return g.clone()
}

// 调用方持有 g.mu
func (m *Manager) replyIfAITurn(ctx context.Context, g *GameState) (*xiangqi.MoveResult, error) {
	pos := g.Pos
	if !pos.AI.Enabled || pos.Terminal || pos.SideToMove != pos.AI.Side {
		return nil, nil
	}
	res, err := m.engineMove(ctx, g, pos.AI.Difficulty)
	if err != nil {
		m.log.Printf("game %s: ai reply failed: %v", g.ID, err)
		return nil, fmt.Errorf("ai reply: %w", err)
	}
	return res, nil
}

// 调用方持有 g.mu
func (m *Manager) engineMove(ctx context.Context, g *GameState, d xiangqi.Difficulty) (*xiangqi.MoveResult, error) {
	mv, err := m.think(ctx, g.Pos, d)
	if err != nil {
		return nil, err
	}
	res, err := g.Pos.Play(mv)
	if err != nil {
		return nil, fmt.Errorf("engine move %v: %w", mv, err)
	}
	m.commit(g, res)
	return &res, nil
}

// think 在独立 goroutine 上搜索；ctx 取消或超时后直接返回，搜索结果丢弃。
func (m *Manager) think(ctx context.Context, pos *xiangqi.Position, d xiangqi.Difficulty) (xiangqi.Move, error) {
	if m.cfg.AITimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.AITimeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return xiangqi.Move{}, err
	}

	type result struct {
		mv xiangqi.Move
		ok bool
	}
	ch := make(chan result, 1)
	go func() {
		mv, ok := m.engine.BestMove(pos, d)
		ch <- result{mv: mv, ok: ok}
	}()

	select {
	case r := <-ch:
		if !r.ok {
			return xiangqi.Move{}, ErrNoEngineMove
		}
		return r.mv, nil
	case <-ctx.Done():
		return xiangqi.Move{}, ctx.Err()
	}
}
