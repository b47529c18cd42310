package view

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/cyberhacker/internal/content"
)

// Registry tracks the live views of a server, one per page load.
type Registry struct {
	opts     Options
	maxViews int

	mu    sync.Mutex
	views map[string]*View
}

// NewRegistry returns an empty registry holding at most maxViews views;
// zero or less means no limit.
func NewRegistry(opts Options, maxViews int) *Registry {
	return &Registry{opts: opts, maxViews: maxViews, views: map[string]*View{}}
}

// Create registers a fresh view rendering c. At the limit, the unmounted
// view idle the longest is closed to make room. Mounted views are never
// evicted, so the limit can be exceeded while every view is streaming.
func (r *Registry) Create(c *content.Content) *View {
	v := New(uuid.NewString(), c, r.opts)

	var evicted *View
	r.mu.Lock()
	if r.maxViews > 0 && len(r.views) >= r.maxViews {
		evicted = r.oldestIdleLocked()
		if evicted != nil {
			delete(r.views, evicted.ID())
		}
	}
	r.views[v.ID()] = v
	r.mu.Unlock()

	if evicted != nil {
		evicted.Close()
	}
	return v
}

func (r *Registry) oldestIdleLocked() *View {
	var (
		oldest *View
		at     time.Time
	)
	for _, v := range r.views {
		seen, mounted := v.idleSince()
		if mounted {
			continue
		}
		if oldest == nil || seen.Before(at) {
			oldest, at = v, seen
		}
	}
	return oldest
}

func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	return v, ok
}

// Remove closes and forgets the view. It reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if ok {
		v.Close()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep closes views that are not mounted and have been idle longer than
// idle. It returns how many it closed.
func (r *Registry) Sweep(now time.Time, idle time.Duration) int {
	var stale []*View
	r.mu.Lock()
	for id, v := range r.views {
		seen, mounted := v.idleSince()
		if mounted || now.Sub(seen) < idle {
			continue
		}
		stale = append(stale, v)
		delete(r.views, id)
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.Close()
	}
	return len(stale)
}

// CloseAll tears down every view, for server shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = map[string]*View{}
	r.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
}
