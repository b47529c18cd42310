// Package notify raises transient notices for call-to-actions that have no
// backend yet.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notice stays on screen before it dismisses itself.
const DefaultTTL = 5 * time.Second

// Action is a call-to-action bound to the notifier.
type Action int

const (
	Contact Action = iota // "contact me" on the home section
	Email
	GitHub
	Project // a project card
	SeeMore // "see more on GitHub"
)

var actionIDs = [...]string{
	Contact: "contact",
	Email:   "email",
	GitHub:  "github",
	Project: "project",
	SeeMore: "see-more",
}

func (a Action) String() string {
	if a < Contact || a > SeeMore {
		return "unknown"
	}
	return actionIDs[a]
}

// ParseAction maps an identifier to its Action.
func ParseAction(id string) (Action, bool) {
	for i, v := range actionIDs {
		if v == id {
			return Action(i), true
		}
	}
	return 0, false
}

// Notice is one informational message. It carries no state beyond its own
// display lifetime.
type Notice struct {
	ID          string        `json:"id"`
	Action      string        `json:"action"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	IssuedAt    time.Time     `json:"issuedAt"`
	TTL         time.Duration `json:"ttl"`
}

// Expired reports whether the notice should no longer be displayed.
func (n Notice) Expired(now time.Time) bool {
	return !now.Before(n.IssuedAt.Add(n.TTL))
}

// Texts is the localized copy shown for every unimplemented action.
type Texts struct {
	Title       string
	Description string
}

// Sink is a display surface for notices.
type Sink interface {
	Show(Notice)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notice)

func (f SinkFunc) Show(n Notice) { f(n) }

type Notifier struct {
	texts Texts
	sink  Sink
	ttl   time.Duration
	now   func() time.Time
}

func New(texts Texts, sink Sink, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{texts: texts, sink: sink, ttl: ttl, now: time.Now}
}

// Notify hands exactly one notice for a to the sink and returns it.
func (n *Notifier) Notify(a Action) Notice {
	notice := Notice{
		ID:          uuid.NewString(),
		Action:      a.String(),
		Title:       n.texts.Title,
		Description: n.texts.Description,
		IssuedAt:    n.now(),
		TTL:         n.ttl,
	}
	if n.sink != nil {
		n.sink.Show(notice)
	}
	return notice
}

// Queue is a bounded Sink. When full, the oldest notice is dropped.
type Queue struct {
	mu      sync.Mutex
	cap     int
	pending []Notice
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{cap: capacity}
}

func (q *Queue) Show(n Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == q.cap {
		q.pending = q.pending[1:]
	}
	q.pending = append(q.pending, n)
}

// Active drops expired notices and returns a copy of the rest.
func (q *Queue) Active(now time.Time) []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.pending[:0]
	for _, n := range q.pending {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	q.pending = kept
	return append([]Notice(nil), kept...)
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
