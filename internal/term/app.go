// Package term renders the portfolio in a terminal with tcell. It drives the
// same view as the web server: keys stand in for clicks, and the rain falls
// one glyph per cell.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/cyberhacker/internal/view"
)

// frameInterval bounds redraws; toasts also expire on this beat.
const frameInterval = 33 * time.Millisecond

type App struct {
	screen  tcell.Screen
	view    *view.View
	clicker *Clicker

	toasts int // notices on screen after the last draw
}

func New(screen tcell.Screen, v *view.View, clicker *Clicker) *App {
	if clicker == nil {
		clicker = NewClicker(false)
	}
	return &App{screen: screen, view: v, clicker: clicker}
}

// Run mounts the view and renders until ctx is done or the user quits. The
// view's timers are released before Run returns.
func (a *App) Run(ctx context.Context) error {
	w, h := a.screen.Size()
	a.view.Resize(w, h)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sess, err := a.view.Mount(ctx)
	if err != nil {
		return err
	}
	defer sess.Release()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sess.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
			dirty = true
		case u := <-sess.Updates():
			if u.Kind == view.Typed {
				a.clicker.Click()
			}
			dirty = true
		case <-ticker.C:
			// Expired toasts disappear on the next frame.
			dirty = dirty || a.toasts > 0
		}
		if dirty {
			a.draw()
			dirty = false
		}
	}
}

func (a *App) draw() {
	snap := a.view.Snapshot()
	Draw(a.screen, snap, a.view.Content())
	a.toasts = len(snap.Notices)
	a.screen.Show()
}

// handleEvent applies one input event. It returns false to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.apply(KeyCommand(ev))
	case *tcell.EventResize:
		w, h := ev.Size()
		a.view.Resize(w, h)
		a.screen.Sync()
	}
	return true
}

func (a *App) apply(cmd Command) bool {
	switch cmd.Kind {
	case Quit:
		return false
	case Navigate:
		a.view.Navigate(cmd.Section)
	case ToggleMenu:
		a.view.ToggleMenu()
	case Notify:
		a.view.Notify(cmd.Action)
	}
	return true
}
