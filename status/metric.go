package status

import (
	"maps"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

// MaxTextLen bounds a Text metric in bytes
const MaxTextLen = 64

// Gauge is a float64 metric stored as bits
type Gauge struct {
	bits atomic.Uint64
}

// Set stores v
func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

// Value loads the current value
func (g *Gauge) Value() float64 { return math.Float64frombits(g.bits.Load()) }

// Smooth blends sample into the gauge with weight alpha and returns the result
// The first sample on a zero gauge is stored as is
func (g *Gauge) Smooth(sample, alpha float64) float64 {
	for {
		old := g.bits.Load()
		next := sample
		if old != 0 {
			prev := math.Float64frombits(old)
			next = prev + alpha*(sample-prev)
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Text is a short string metric, longer values are cut at a rune boundary
type Text struct {
	ptr atomic.Pointer[string]
}

// Store sets the text
func (t *Text) Store(s string) {
	if len(s) > MaxTextLen {
		cut := MaxTextLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	t.ptr.Store(&s)
}

// Load returns the text, empty when never stored
func (t *Text) Load() string {
	if p := t.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// table maps metric names to stable pointers
// Writers resolve a name once and keep the pointer
type table[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newTable[T any]() *table[T] {
	return &table[T]{items: make(map[string]*T)}
}

func (t *table[T]) get(name string) *T {
	t.mu.RLock()
	ptr, ok := t.items[name]
	t.mu.RUnlock()
	if ok {
		return ptr
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if ptr, ok := t.items[name]; ok {
		return ptr
	}
	ptr = new(T)
	t.items[name] = ptr
	return ptr
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// each visits metrics in name order
func (t *table[T]) each(fn func(name string, v *T)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, name := range slices.Sorted(maps.Keys(t.items)) {
		fn(name, t.items[name])
	}
}
