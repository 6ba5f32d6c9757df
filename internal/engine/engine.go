package engine

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Rand 搜索用到的随机数接口，*rand.Rand 满足它；测试里可以换成固定值。
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// 多个对局共用一个 Engine 时，*rand.Rand 需要加锁
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Engine 无状态搜索器：每次调用只读传入的局面，可被多个对局并发使用。
type Engine struct {
	rng   Rand
	nodes int64
}

// NewEngine rng 为 nil 时使用按时间播种的随机源。
func NewEngine(rng Rand) *Engine {
	if rng == nil {
		rng = newLockedRand(time.Now().UnixNano())
	}
	return &Engine{rng: rng}
}

// NewSeededEngine 固定种子，便于复现 Easy 档的随机走法。
func NewSeededEngine(seed int64) *Engine {
	return NewEngine(newLockedRand(seed))
}

// Nodes 累计搜索过的节点数。
func (e *Engine) Nodes() int64 {
	return atomic.LoadInt64(&e.nodes)
}
