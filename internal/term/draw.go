package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/Zachkp/cyberhacker/internal/content"
	"github.com/Zachkp/cyberhacker/internal/section"
	"github.com/Zachkp/cyberhacker/internal/view"
)

// narrowWidth is the width below which the menu collapses behind [m].
const narrowWidth = 72

var (
	styleBase   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
	styleBright = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorBlack).Bold(true)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLime)
	styleMuted  = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen).Background(tcell.ColorBlack)
	styleToast  = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.NewRGBColor(0, 30, 0))
)

var statusColors = map[content.Status]tcell.Color{
	content.Active:     tcell.ColorLime,
	content.Completed:  tcell.ColorDodgerBlue,
	content.InProgress: tcell.ColorYellow,
}

type line struct {
	text  string
	style tcell.Style
}

// put writes str at (x, y) and returns the column after it. Wide runes take
// two cells.
func put(s tcell.Screen, x, y int, str string, st tcell.Style) int {
	w, _ := s.Size()
	for _, r := range str {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// wrap breaks text into lines at most width cells wide.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	var cur strings.Builder
	curW := 0
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if curW > 0 && curW+1+ww > width {
			out = append(out, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		out = append(out, cur.String())
	}
	return out
}

// Draw paints one frame: rain, navigation, the current section, then toasts.
func Draw(s tcell.Screen, snap view.Snapshot, c *content.Content) {
	s.Clear()
	w, h := s.Size()

	for _, g := range snap.Glyphs {
		if g.X < w && g.Y < h {
			green := int32(60 + 140*g.Opacity)
			s.SetContent(g.X, g.Y, g.Char, nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, green, 0)).Background(tcell.ColorBlack))
		}
	}

	row := drawNav(s, snap, c, w)
	row++

	body := sectionLines(snap, c, max(w-4, 10))
	for _, l := range body {
		if row >= h {
			break
		}
		put(s, 2, row, l.text, l.style)
		row++
	}

	drawToasts(s, snap, w, h)
}

func drawNav(s tcell.Screen, snap view.Snapshot, c *content.Content, w int) int {
	x := put(s, 1, 0, ">_ "+c.Brand, styleBright) + 2

	if w < narrowWidth {
		label := "[m] menu"
		if snap.MenuOpen {
			label = "[m] close"
		}
		put(s, max(x, w-len(label)-1), 0, label, styleBase)
		if !snap.MenuOpen {
			return 1
		}
		row := 1
		for i, sec := range section.All() {
			st := styleBase
			if sec == snap.Section {
				st = styleActive
			}
			put(s, 2, row, fmt.Sprintf("%d %s", i+1, c.Label(sec)), st)
			row++
		}
		return row
	}

	for i, sec := range section.All() {
		st := styleBase
		if sec == snap.Section {
			st = styleActive
		}
		x = put(s, x, 0, fmt.Sprintf(" %d %s ", i+1, c.Label(sec)), st) + 1
	}
	return 1
}

func sectionLines(snap view.Snapshot, c *content.Content, width int) []line {
	var out []line
	add := func(text string, st tcell.Style) {
		out = append(out, line{text, st})
	}
	para := func(text string, st tcell.Style) {
		for _, l := range wrap(text, width) {
			add(l, st)
		}
	}

	switch snap.Section {
	case section.Home:
		add("", styleBase)
		add(c.Hero.Heading, styleBright)
		add("", styleBase)
		add(snap.Typed+"_", styleBright)
		add("", styleBase)
		para(c.Hero.Tagline, styleBase)
		add("", styleBase)
		add(fmt.Sprintf("[4] %s   [c] %s", c.Hero.ProjectsButton, c.Hero.ContactButton), styleBright)

	case section.About:
		add(c.About.Heading, styleBright)
		add("", styleBase)
		add(c.About.ProfileTitle, styleBright)
		for _, p := range c.About.Paragraphs {
			para(p, styleBase)
			add("", styleBase)
		}
		for _, b := range c.About.Badges {
			add(fmt.Sprintf("%s: %s", b.Label, b.Value), styleBase)
		}

	case section.Skills:
		add(c.Skills.Heading, styleBright)
		add("", styleBase)
		bar := min(40, max(width-30, 10))
		for _, sk := range c.Skills.Items {
			filled := sk.Level * bar / 100
			add(fmt.Sprintf("%-22s %s%s %3d%%", sk.Name,
				strings.Repeat("█", filled), strings.Repeat("░", bar-filled), sk.Level), styleBase)
		}
		add("", styleBase)
		for _, p := range c.Skills.Pillars {
			add("■ "+p.Title, styleBright)
			para(p.Text, styleMuted)
		}

	case section.Projects:
		add(c.Projects.Heading, styleBright)
		add("", styleBase)
		for _, p := range c.Projects.Items {
			add(fmt.Sprintf("%s  [%s]", p.Title, p.Status), styleBright.Foreground(statusColors[p.Status]))
			para(p.Description, styleBase)
			add(strings.Join(p.Tech, " · "), styleMuted)
			add("", styleBase)
		}
		add(fmt.Sprintf("[p] project details   [s] %s", c.Projects.SeeMore), styleBright)

	case section.Contact:
		add(c.Contact.Heading, styleBright)
		add("", styleBase)
		add(c.Contact.Title, styleBright)
		para(c.Contact.Text, styleBase)
		add("", styleBase)
		add(fmt.Sprintf("[e] %s   [g] %s", c.Contact.EmailButton, c.Contact.GitHubButton), styleBright)
		add("", styleBase)
		add(c.Contact.Fingerprint.Command, styleBright)
		for _, l := range c.Contact.Fingerprint.Lines {
			add(l, styleMuted)
		}
	}
	return out
}

const maxToasts = 3

func drawToasts(s tcell.Screen, snap view.Snapshot, w, h int) {
	notices := snap.Notices
	if len(notices) > maxToasts {
		notices = notices[len(notices)-maxToasts:]
	}
	boxW := min(48, w-2)
	if boxW < 10 {
		return
	}
	y := h - 1
	for i := len(notices) - 1; i >= 0 && y > 1; i-- {
		n := notices[i]
		lines := append(wrap(n.Title, boxW-2), wrap(n.Description, boxW-2)...)
		top := y - len(lines) + 1
		if top < 1 {
			break
		}
		for j, l := range lines {
			row := top + j
			for x := w - boxW - 1; x < w-1; x++ {
				s.SetContent(x, row, ' ', nil, styleToast)
			}
			put(s, w-boxW, row, l, styleToast)
		}
		y = top - 2
	}
}
