// Package typewriter reveals a fixed string one character per tick.
package typewriter

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// MinInterval is the shortest tick interval Start accepts.
const MinInterval = time.Millisecond

// Typewriter steps through the prefixes of a target string. It counts runes,
// not bytes, so multi-byte characters are revealed whole.
type Typewriter struct {
	target []rune
	n      int
}

func New(target string) *Typewriter {
	return &Typewriter{target: []rune(target)}
}

// Resume returns a Typewriter that has already revealed prefix. A prefix
// that does not start target is ignored.
func Resume(target, prefix string) *Typewriter {
	tw := New(target)
	if strings.HasPrefix(target, prefix) {
		tw.n = utf8.RuneCountInString(prefix)
	}
	return tw
}

// Tick reveals one more character and returns the new prefix. It returns
// false once the whole target has been revealed, without changing Text.
func (t *Typewriter) Tick() (string, bool) {
	if t.n >= len(t.target) {
		return t.Text(), false
	}
	t.n++
	return t.Text(), true
}

// Text returns the currently revealed prefix.
func (t *Typewriter) Text() string {
	return string(t.target[:t.n])
}

// Done reports whether the full target is revealed.
func (t *Typewriter) Done() bool {
	return t.n >= len(t.target)
}

// Len returns the number of ticks needed to reveal the target.
func (t *Typewriter) Len() int {
	return len(t.target)
}

// Start emits the prefixes of target on the returned channel, one per
// interval, longest last. The channel is closed right after the full target
// is sent or when ctx is done; the ticker is stopped at that point. An empty
// target yields a closed channel and no ticks.
func Start(ctx context.Context, target string, interval time.Duration) <-chan string {
	return StartFrom(ctx, target, "", interval)
}

// StartFrom is Start for a reveal already showing prefix: the first tick
// emits the next longer prefix. When prefix is the whole target the channel
// is closed at once and no tick runs.
func StartFrom(ctx context.Context, target, prefix string, interval time.Duration) <-chan string {
	out := make(chan string)
	tw := Resume(target, prefix)
	if tw.Done() {
		close(out)
		return out
	}
	if interval < MinInterval {
		interval = MinInterval
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
			text, _ := tw.Tick()
			select {
			case out <- text:
			case <-ctx.Done():
				return
			}
			if tw.Done() {
				return
			}
		}
	}()
	return out
}
