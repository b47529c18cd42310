// Package section defines the closed set of page sections a visitor can
// navigate between.
package section

// Section identifies one content block of the page. The zero value is Home.
type Section int

const (
	Home Section = iota
	About
	Skills
	Projects
	Contact
)

var ids = [...]string{
	Home:     "home",
	About:    "about",
	Skills:   "skills",
	Projects: "projects",
	Contact:  "contact",
}

// All returns every section in menu order.
func All() []Section {
	return []Section{Home, About, Skills, Projects, Contact}
}

// String returns the section identifier used in URLs and content keys.
func (s Section) String() string {
	if s < Home || s > Contact {
		return "home"
	}
	return ids[s]
}

// Valid reports whether s is one of the five sections.
func (s Section) Valid() bool {
	return s >= Home && s <= Contact
}

// Parse maps an identifier back to its Section.
func Parse(id string) (Section, bool) {
	for i, v := range ids {
		if v == id {
			return Section(i), true
		}
	}
	return Home, false
}
