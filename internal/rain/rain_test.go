package rain

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// fixedRand always returns the same draws.
type fixedRand struct {
	f float64
}

func (r fixedRand) IntN(int) int      { return 0 }
func (r fixedRand) Float64() float64 { return r.f }

func TestStepNeverExceedsMaxGlyphs(t *testing.T) {
	t.Parallel()

	for _, width := range []int{0, 19, 20, 400, 999, 1000, 1001, 1920, 3840, 10000} {
		a := New(Config{Width: width, Height: 1080}, seeded())
		for tick := 0; tick < 200; tick++ {
			if got := len(a.Step()); got > DefaultMaxGlyphs {
				t.Fatalf("width %d tick %d: %d glyphs, want <= %d", width, tick, got, DefaultMaxGlyphs)
			}
		}
	}
}

func TestColumnsFromWidth(t *testing.T) {
	t.Parallel()

	a := New(Config{Width: 1919, Height: 100}, seeded())
	if a.Columns() != 95 {
		t.Fatalf("Columns() = %d, want 95", a.Columns())
	}
	if got := len(a.Step()); got != 50 {
		t.Fatalf("len(Step()) = %d, want 50", got)
	}

	small := New(Config{Width: 200, Height: 100}, seeded())
	if got := len(small.Step()); got != 10 {
		t.Fatalf("len(Step()) = %d, want 10", got)
	}
}

func TestStepPositions(t *testing.T) {
	t.Parallel()

	a := New(Config{Width: 60, Height: 1000}, fixedRand{f: 0.5})
	for tick := 0; tick < 3; tick++ {
		for i, g := range a.Step() {
			if g.X != i*DefaultCellSize {
				t.Fatalf("tick %d col %d: X = %d, want %d", tick, i, g.X, i*DefaultCellSize)
			}
			if g.Y != tick*DefaultCellSize {
				t.Fatalf("tick %d col %d: Y = %d, want %d", tick, i, g.Y, tick*DefaultCellSize)
			}
			if g.Char != '0' {
				t.Fatalf("Char = %q, want '0'", g.Char)
			}
			if g.Opacity != 0.5 {
				t.Fatalf("Opacity = %v, want 0.5", g.Opacity)
			}
		}
	}
}

func TestColumnResetsPastBottom(t *testing.T) {
	t.Parallel()

	// Height 40: y exceeds it from the fourth tick (y = 60).
	a := New(Config{Width: 20, Height: 40}, fixedRand{f: 0})
	var ys []int
	for tick := 0; tick < 6; tick++ {
		ys = append(ys, a.Step()[0].Y)
	}
	want := []int{0, 20, 40, 60, 20, 40}
	for i := range want {
		if ys[i] != want[i] {
			t.Fatalf("ys = %v, want %v", ys, want)
		}
	}
}

func TestColumnNeverResetsWhenUnlucky(t *testing.T) {
	t.Parallel()

	a := New(Config{Width: 20, Height: 40}, fixedRand{f: 0.99})
	var last int
	for tick := 0; tick < 10; tick++ {
		last = a.Step()[0].Y
	}
	if last != 9*DefaultCellSize {
		t.Fatalf("Y = %d, want %d", last, 9*DefaultCellSize)
	}
}

func TestResizeKeepsCounters(t *testing.T) {
	t.Parallel()

	a := New(Config{Width: 40, Height: 1000}, fixedRand{f: 0.5})
	a.Step()
	a.Step()
	a.Resize(80, 1000)
	if a.Columns() != 4 {
		t.Fatalf("Columns() = %d, want 4", a.Columns())
	}
	frame := a.Step()
	if frame[0].Y != 40 || frame[3].Y != 0 {
		t.Fatalf("Y = %d/%d, want 40/0", frame[0].Y, frame[3].Y)
	}
	a.Resize(20, 1000)
	if got := len(a.Step()); got != 1 {
		t.Fatalf("len(Step()) = %d, want 1", got)
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	frames := Start(ctx, New(Config{Width: 400, Height: 300}, seeded()), time.Millisecond)

	select {
	case f := <-frames:
		if len(f) != 20 {
			t.Fatalf("len(frame) = %d, want 20", len(f))
		}
	case <-time.After(time.Second):
		t.Fatal("no frame received")
	}
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-frames:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("frames not closed after cancel")
		}
	}
}
