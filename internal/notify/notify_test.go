package notify

import (
	"testing"
	"time"
)

var texts = Texts{Title: "Not implemented yet", Description: "Coming soon"}

func TestNotifyOncePerInvocation(t *testing.T) {
	t.Parallel()

	var shown []Notice
	n := New(texts, SinkFunc(func(x Notice) { shown = append(shown, x) }), 0)

	actions := []Action{Contact, Email, GitHub, Project, SeeMore, Email, Email}
	for i, a := range actions {
		got := n.Notify(a)
		if len(shown) != i+1 {
			t.Fatalf("after %d calls, shown = %d", i+1, len(shown))
		}
		if got.ID != shown[i].ID {
			t.Fatalf("returned notice %q, sink got %q", got.ID, shown[i].ID)
		}
		if got.Action != a.String() {
			t.Fatalf("Action = %q, want %q", got.Action, a.String())
		}
		if got.Title != texts.Title || got.Description != texts.Description {
			t.Fatalf("notice = %+v, want texts %+v", got, texts)
		}
		if got.TTL != DefaultTTL {
			t.Fatalf("TTL = %v, want %v", got.TTL, DefaultTTL)
		}
	}
	if shown[5].ID == shown[6].ID {
		t.Fatal("repeated action reused a notice id")
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	for _, a := range []Action{Contact, Email, GitHub, Project, SeeMore} {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Fatalf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("deploy"); ok {
		t.Fatal("ParseAction(deploy) ok = true")
	}
}

func TestQueueBounded(t *testing.T) {
	t.Parallel()

	q := NewQueue(2)
	n := New(texts, q, time.Second)
	first := n.Notify(Email)
	n.Notify(GitHub)
	last := n.Notify(SeeMore)

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	got := q.Active(first.IssuedAt)
	if len(got) != 2 || got[0].ID == first.ID {
		t.Fatal("oldest notice was not dropped")
	}
	if got[1].ID != last.ID {
		t.Fatalf("newest = %q, want %q", got[1].ID, last.ID)
	}
}

func TestQueueActiveSelfDismisses(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	q.Show(Notice{ID: "a", IssuedAt: base, TTL: time.Second})
	q.Show(Notice{ID: "b", IssuedAt: base.Add(time.Second), TTL: time.Second})

	if got := q.Active(base.Add(500 * time.Millisecond)); len(got) != 2 {
		t.Fatalf("len(Active) = %d, want 2", len(got))
	}
	got := q.Active(base.Add(time.Second))
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("Active = %+v, want only b", got)
	}
	if got := q.Active(base.Add(3 * time.Second)); len(got) != 0 {
		t.Fatalf("len(Active) = %d, want 0", len(got))
	}
}
