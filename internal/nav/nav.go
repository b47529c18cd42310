// Package nav holds the page's navigation state: the visible section and
// whether the mobile menu is open.
package nav

import "github.com/Zachkp/cyberhacker/internal/section"

// State is a flat state machine over section.Section. Every section is
// reachable from every other in one step. The zero value is a fresh page:
// home with the menu closed.
type State struct {
	current  section.Section
	menuOpen bool
}

// New returns the initial state.
func New() State {
	return State{current: section.Home}
}

// Navigate shows s and closes the menu.
func (st *State) Navigate(s section.Section) {
	st.current = s
	st.menuOpen = false
}

// ToggleMenu flips menu visibility and returns the new value.
func (st *State) ToggleMenu() bool {
	st.menuOpen = !st.menuOpen
	return st.menuOpen
}

func (st State) Current() section.Section { return st.current }

func (st State) MenuOpen() bool { return st.menuOpen }
