// Package view is the host of one rendered page: it owns the navigation state
// and the two animation timers, acquiring the timers on Mount and releasing
// them when the session ends or the view closes.
package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Zachkp/cyberhacker/internal/content"
	"github.com/Zachkp/cyberhacker/internal/nav"
	"github.com/Zachkp/cyberhacker/internal/notify"
	"github.com/Zachkp/cyberhacker/internal/rain"
	"github.com/Zachkp/cyberhacker/internal/section"
	"github.com/Zachkp/cyberhacker/internal/typewriter"
)

var ErrClosed = errors.New("view closed")

const updateBuffer = 64

// Observer is told about visitor actions. It must not block.
type Observer interface {
	SectionViewed(viewID string, s section.Section)
	ActionFired(viewID string, a notify.Action)
}

type Options struct {
	TypeInterval time.Duration
	RainInterval time.Duration
	Width        int
	Height       int
	CellSize     int
	NoticeTTL    time.Duration
	MaxNotices   int
	Rand         rain.Rand
	Observer     Observer
}

func (o Options) withDefaults() Options {
	if o.TypeInterval <= 0 {
		o.TypeInterval = 100 * time.Millisecond
	}
	if o.RainInterval <= 0 {
		o.RainInterval = 100 * time.Millisecond
	}
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.MaxNotices <= 0 {
		o.MaxNotices = 8
	}
	return o
}

type Kind int

const (
	Typed Kind = iota
	Rain
)

// Update is one timer tick as seen by the renderer.
type Update struct {
	Kind   Kind
	Typed  string
	Glyphs []rain.Glyph
}

// Snapshot is the read model handed to renderers.
type Snapshot struct {
	ID       string
	Lang     string
	Section  section.Section
	MenuOpen bool
	Typed    string
	Done     bool
	Glyphs   []rain.Glyph
	Notices  []notify.Notice
}

type View struct {
	id       string
	content  *content.Content
	opts     Options
	notices  *notify.Queue
	notifier *notify.Notifier
	animator *rain.Animator
	done     chan struct{}

	mu       sync.Mutex
	nav      nav.State
	typed    string
	glyphs   []rain.Glyph
	lastSeen time.Time
	session  *Session
	closed   bool
}

// Session is one mount of a view: the lifetime of both timers and the
// channel their ticks arrive on. Ticks never cross from one session into
// another.
type Session struct {
	view    *View
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	updates chan Update
	done    chan struct{}
	once    sync.Once
}

// Updates delivers the session's timer ticks. It has a single consumer.
func (s *Session) Updates() <-chan Update { return s.updates }

// Done is closed once the session has ended and its timers have stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

// Release ends the session if it is still the view's current one.
func (s *Session) Release() {
	v := s.view
	v.mu.Lock()
	if v.session == s {
		v.session = nil
		v.lastSeen = time.Now()
	}
	v.mu.Unlock()
	s.stop()
}

func (s *Session) stop() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
		close(s.done)
	})
}

// New builds a view in its initial state: home, menu closed, nothing typed.
// No timer runs until Mount.
func New(id string, c *content.Content, opts Options) *View {
	opts = opts.withDefaults()
	q := notify.NewQueue(opts.MaxNotices)
	return &View{
		id:       id,
		content:  c,
		opts:     opts,
		notices:  q,
		notifier: notify.New(notify.Texts{Title: c.Notice.Title, Description: c.Notice.Description}, q, opts.NoticeTTL),
		animator: rain.New(rain.Config{Width: opts.Width, Height: opts.Height, CellSize: opts.CellSize}, opts.Rand),
		done:     make(chan struct{}),
		nav:      nav.New(),
		lastSeen: time.Now(),
	}
}

func (v *View) ID() string { return v.id }

func (v *View) Content() *content.Content { return v.content }

// Done is closed when the view is closed.
func (v *View) Done() <-chan struct{} { return v.done }

// Mount starts the typewriter and the rain in a new session. A session
// already running is ended first, so a reconnecting renderer takes over from
// a stale one. The typewriter resumes from the text already typed; once the
// prompt is complete it never runs again. The timers stop when ctx is done,
// on Release or Unmount, or on Close.
func (v *View) Mount(ctx context.Context) (*Session, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil, ErrClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		view:    v,
		cancel:  cancel,
		updates: make(chan Update, updateBuffer),
		done:    make(chan struct{}),
	}
	prev := v.session
	v.session = s
	v.lastSeen = time.Now()
	typedSoFar := v.typed
	v.mu.Unlock()

	if prev != nil {
		prev.stop()
	}

	typed := typewriter.StartFrom(ctx, v.content.Prompt, typedSoFar, v.opts.TypeInterval)
	frames := rain.Start(ctx, v.animator, v.opts.RainInterval)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		for text := range typed {
			if !v.apply(s, func() { v.typed = text }) {
				continue
			}
			select {
			case s.updates <- Update{Kind: Typed, Typed: text}:
			case <-ctx.Done():
			}
		}
	}()
	go func() {
		defer s.wg.Done()
		for frame := range frames {
			if !v.apply(s, func() { v.glyphs = frame }) {
				continue
			}
			select {
			case s.updates <- Update{Kind: Rain, Glyphs: frame}:
			default:
			}
		}
	}()
	return s, nil
}

// apply runs fn under the lock if s is still the current session.
func (v *View) apply(s *Session, fn func()) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session != s {
		return false
	}
	fn()
	return true
}

// Unmount ends the current session, if any, and waits for its timers.
func (v *View) Unmount() {
	v.mu.Lock()
	s := v.session
	v.mu.Unlock()
	if s != nil {
		s.Release()
	}
}

// Close unmounts the view for good. Further calls are no-ops.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()

	v.Unmount()
	close(v.done)
}

func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session != nil
}

// Navigate shows s and closes the menu.
func (v *View) Navigate(s section.Section) {
	v.mu.Lock()
	v.nav.Navigate(s)
	v.lastSeen = time.Now()
	v.mu.Unlock()

	if v.opts.Observer != nil {
		v.opts.Observer.SectionViewed(v.id, s)
	}
}

// ToggleMenu flips the mobile menu and returns whether it is now open.
func (v *View) ToggleMenu() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = time.Now()
	return v.nav.ToggleMenu()
}

// Notify raises the "not implemented yet" notice for a.
func (v *View) Notify(a notify.Action) notify.Notice {
	v.mu.Lock()
	v.lastSeen = time.Now()
	v.mu.Unlock()

	n := v.notifier.Notify(a)
	if v.opts.Observer != nil {
		v.opts.Observer.ActionFired(v.id, a)
	}
	return n
}

// Resize changes the rain viewport. It applies on the next tick.
func (v *View) Resize(width, height int) {
	v.animator.Resize(width, height)
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		ID:       v.id,
		Lang:     v.content.Lang,
		Section:  v.nav.Current(),
		MenuOpen: v.nav.MenuOpen(),
		Typed:    v.typed,
		Done:     v.typed == v.content.Prompt,
		Glyphs:   append([]rain.Glyph(nil), v.glyphs...),
		Notices:  v.notices.Active(time.Now()),
	}
}

func (v *View) idleSince() (time.Time, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen, v.session != nil
}
