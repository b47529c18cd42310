package nav

import (
	"math/rand/v2"
	"testing"

	"github.com/Zachkp/cyberhacker/internal/section"
)

func TestInitialState(t *testing.T) {
	t.Parallel()

	st := New()
	if st.Current() != section.Home {
		t.Fatalf("Current() = %v, want home", st.Current())
	}
	if st.MenuOpen() {
		t.Fatal("MenuOpen() = true, want false")
	}
}

func TestNavigateLastWins(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	all := section.All()
	for run := 0; run < 50; run++ {
		st := New()
		var last section.Section
		for i := 0; i < 1+rng.IntN(20); i++ {
			if rng.IntN(3) == 0 {
				st.ToggleMenu()
			}
			last = all[rng.IntN(len(all))]
			st.Navigate(last)
			if st.MenuOpen() {
				t.Fatal("MenuOpen() = true after Navigate")
			}
		}
		if st.Current() != last {
			t.Fatalf("Current() = %v, want %v", st.Current(), last)
		}
	}
}

func TestToggleMenuTwiceRestores(t *testing.T) {
	t.Parallel()

	st := New()
	for _, start := range []bool{false, true} {
		if st.MenuOpen() != start {
			st.ToggleMenu()
		}
		st.ToggleMenu()
		st.ToggleMenu()
		if st.MenuOpen() != start {
			t.Fatalf("MenuOpen() = %v, want %v", st.MenuOpen(), start)
		}
	}
}

func TestSkillsContactMenuAbout(t *testing.T) {
	t.Parallel()

	st := New()
	st.Navigate(section.Skills)
	st.Navigate(section.Contact)
	if open := st.ToggleMenu(); !open {
		t.Fatal("ToggleMenu() = false, want true")
	}
	st.Navigate(section.About)

	if st.Current() != section.About {
		t.Fatalf("Current() = %v, want about", st.Current())
	}
	if st.MenuOpen() {
		t.Fatal("MenuOpen() = true, want false")
	}
}
