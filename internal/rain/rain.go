// Package rain generates the falling-glyph background of the page.
//
// Each screen column carries a drop counter. Every tick, each column gets a
// fresh random glyph placed at its drop counter, the counter advances, and a
// column that has fallen past the bottom edge restarts at the top with a small
// probability. The result is purely cosmetic.
package rain

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Charset is the default glyph alphabet: binary digits and katakana.
const Charset = "01アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン"

const (
	DefaultCellSize    = 20
	DefaultResetChance = 0.025
	DefaultMaxGlyphs   = 50
)

// Glyph is one visible character of the rain, in viewport pixels (or cells,
// for the terminal renderer).
type Glyph struct {
	Char    rune    `json:"char"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Opacity float64 `json:"opacity"`
}

type Config struct {
	Width       int
	Height      int
	CellSize    int
	ResetChance float64
	MaxGlyphs   int
	Charset     string
}

func (c Config) withDefaults() Config {
	if c.CellSize <= 0 {
		c.CellSize = DefaultCellSize
	}
	if c.ResetChance <= 0 {
		c.ResetChance = DefaultResetChance
	}
	if c.MaxGlyphs <= 0 {
		c.MaxGlyphs = DefaultMaxGlyphs
	}
	if c.Charset == "" {
		c.Charset = Charset
	}
	if c.Width < 0 {
		c.Width = 0
	}
	if c.Height < 0 {
		c.Height = 0
	}
	return c
}

// Rand is the randomness the animator draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Animator owns the per-column drop counters. Resize may be called while
// Start is stepping it.
type Animator struct {
	mu      sync.Mutex
	cfg     Config
	charset []rune
	drops   []int
	rng     Rand
}

// New builds an animator for the given viewport. A nil rng uses a
// time-seeded generator.
func New(cfg Config, rng Rand) *Animator {
	cfg = cfg.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	a := &Animator{
		cfg:     cfg,
		charset: []rune(cfg.Charset),
		rng:     rng,
	}
	a.drops = make([]int, a.columnCount())
	return a
}

func (a *Animator) columnCount() int {
	return a.cfg.Width / a.cfg.CellSize
}

// Columns returns the number of columns for the current viewport.
func (a *Animator) Columns() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.drops)
}

// Resize changes the viewport. Surviving columns keep their drop counters.
func (a *Animator) Resize(width, height int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg.Width, a.cfg.Height = width, height
	a.cfg = a.cfg.withDefaults()
	n := a.columnCount()
	if n <= len(a.drops) {
		a.drops = a.drops[:n]
		return
	}
	a.drops = append(a.drops, make([]int, n-len(a.drops))...)
}

// Step advances every column by one tick and returns the visible glyphs,
// at most MaxGlyphs of them, in column order.
func (a *Animator) Step() []Glyph {
	a.mu.Lock()
	defer a.mu.Unlock()
	cell := a.cfg.CellSize
	limit := min(len(a.drops), a.cfg.MaxGlyphs)
	out := make([]Glyph, 0, limit)

	for i := range a.drops {
		ch := a.charset[a.rng.IntN(len(a.charset))]
		x := i * cell
		y := a.drops[i] * cell

		if y > a.cfg.Height && a.rng.Float64() < a.cfg.ResetChance {
			a.drops[i] = 0
		}
		a.drops[i]++

		if len(out) < limit {
			out = append(out, Glyph{Char: ch, X: x, Y: y, Opacity: a.rng.Float64()})
		}
	}
	return out
}

// Start steps a on every interval and sends each frame on the returned
// channel. A frame is dropped rather than queued when the receiver is
// behind. The channel closes and the ticker stops when ctx is done.
func Start(ctx context.Context, a *Animator, interval time.Duration) <-chan []Glyph {
	out := make(chan []Glyph, 1)
	if interval < time.Millisecond {
		interval = time.Millisecond
	}

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			frame := a.Step()
			select {
			case out <- frame:
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return out
}
