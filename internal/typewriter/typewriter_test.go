package typewriter

import (
	"context"
	"testing"
	"time"
)

const prompt = "root@hacker:~$ whoami"

func TestTickRevealsPrefixes(t *testing.T) {
	t.Parallel()

	tw := New(prompt)
	if tw.Text() != "" {
		t.Fatalf("Text() = %q, want empty", tw.Text())
	}
	for k := 1; k <= len(prompt); k++ {
		got, ok := tw.Tick()
		if !ok {
			t.Fatalf("tick %d: ok = false", k)
		}
		if got != prompt[:k] {
			t.Fatalf("tick %d = %q, want %q", k, got, prompt[:k])
		}
	}
	if !tw.Done() {
		t.Fatal("Done() = false after full reveal")
	}
	if got, ok := tw.Tick(); ok || got != prompt {
		t.Fatalf("extra Tick() = %q, %v, want %q, false", got, ok, prompt)
	}
}

func TestTickCountsRunes(t *testing.T) {
	t.Parallel()

	tw := New("アイ")
	if tw.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tw.Len())
	}
	if got, _ := tw.Tick(); got != "ア" {
		t.Fatalf("Tick() = %q, want %q", got, "ア")
	}
}

func TestStartEmitsEveryPrefixThenCloses(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []string
	for s := range Start(ctx, prompt, time.Millisecond) {
		got = append(got, s)
	}
	if len(got) != len(prompt) {
		t.Fatalf("emitted %d prefixes, want %d", len(got), len(prompt))
	}
	for i, s := range got {
		if s != prompt[:i+1] {
			t.Fatalf("prefix %d = %q, want %q", i, s, prompt[:i+1])
		}
	}
}

func TestStartEmptyTarget(t *testing.T) {
	t.Parallel()

	ch := Start(context.Background(), "", time.Hour)
	select {
	case s, ok := <-ch:
		if ok {
			t.Fatalf("received %q, want closed channel", s)
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed for empty target")
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ch := Start(ctx, prompt, time.Millisecond)
	if s := <-ch; s != "r" {
		t.Fatalf("first prefix = %q, want %q", s, "r")
	}
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestStartFromContinuesPrefix(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []string
	for s := range StartFrom(ctx, prompt, "root@", time.Millisecond) {
		got = append(got, s)
	}
	if len(got) != len(prompt)-len("root@") {
		t.Fatalf("emitted %d prefixes, want %d", len(got), len(prompt)-len("root@"))
	}
	if got[0] != "root@h" || got[len(got)-1] != prompt {
		t.Fatalf("first, last = %q, %q", got[0], got[len(got)-1])
	}
}

func TestStartFromCompleteEmitsNothing(t *testing.T) {
	t.Parallel()

	ch := StartFrom(context.Background(), prompt, prompt, time.Millisecond)
	select {
	case s, ok := <-ch:
		if ok {
			t.Fatalf("received %q, want closed channel", s)
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed for a finished reveal")
	}
}

func TestResumeIgnoresForeignPrefix(t *testing.T) {
	t.Parallel()

	if tw := Resume(prompt, "nope"); tw.Text() != "" {
		t.Fatalf("Text() = %q, want empty", tw.Text())
	}
	if tw := Resume("アイウ", "アイ"); tw.Text() != "アイ" || tw.Done() {
		t.Fatalf("Text() = %q, Done() = %v", tw.Text(), tw.Done())
	}
}
