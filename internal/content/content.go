// Package content holds the page copy: skills, projects, section texts and
// SEO metadata. It is loaded once from embedded YAML documents, one per
// language, and never mutated afterwards.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/cyberhacker/internal/section"
)

//go:embed locales/*.yaml
var embeddedFS embed.FS

// Status is the lifecycle of a project.
type Status string

const (
	Active     Status = "Active"
	Completed  Status = "Completed"
	InProgress Status = "In Progress"
)

func (s *Status) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch Status(raw) {
	case Active, Completed, InProgress:
		*s = Status(raw)
		return nil
	}
	return fmt.Errorf("line %d: unknown project status %q", value.Line, raw)
}

// Slug is a CSS-friendly form of the status.
func (s Status) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(s)), " ", "-")
}

type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Hero struct {
	Heading        string `yaml:"heading"`
	Tagline        string `yaml:"tagline"`
	ProjectsButton string `yaml:"projects_button"`
	ContactButton  string `yaml:"contact_button"`
}

type Badge struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Image struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

type About struct {
	Heading      string   `yaml:"heading"`
	ProfileTitle string   `yaml:"profile_title"`
	Paragraphs   []string `yaml:"paragraphs"`
	Badges       []Badge  `yaml:"badges"`
	Image        Image    `yaml:"image"`
}

type Gradient struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Skill is one proficiency bar. Level is a percentage.
type Skill struct {
	Name     string   `yaml:"name"`
	Level    int      `yaml:"level"`
	Gradient Gradient `yaml:"gradient"`
}

type Pillar struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

type Skills struct {
	Heading string   `yaml:"heading"`
	Items   []Skill  `yaml:"items"`
	Pillars []Pillar `yaml:"pillars"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Status      Status   `yaml:"status"`
}

type Projects struct {
	Heading string    `yaml:"heading"`
	Items   []Project `yaml:"items"`
	SeeMore string    `yaml:"see_more"`
}

type Fingerprint struct {
	Command string   `yaml:"command"`
	Lines   []string `yaml:"lines"`
}

type Contact struct {
	Heading      string      `yaml:"heading"`
	Title        string      `yaml:"title"`
	Text         string      `yaml:"text"`
	EmailButton  string      `yaml:"email_button"`
	GitHubButton string      `yaml:"github_button"`
	Fingerprint  Fingerprint `yaml:"fingerprint"`
}

type Notice struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Content is the full copy of the page in one language.
type Content struct {
	Lang     string            `yaml:"lang"`
	Meta     Meta              `yaml:"meta"`
	Brand    string            `yaml:"brand"`
	Prompt   string            `yaml:"prompt"`
	Nav      map[string]string `yaml:"nav"`
	Hero     Hero              `yaml:"hero"`
	About    About             `yaml:"about"`
	Skills   Skills            `yaml:"skills"`
	Projects Projects          `yaml:"projects"`
	Contact  Contact           `yaml:"contact"`
	Notice   Notice            `yaml:"notice"`
}

// Label returns the menu label of s.
func (c *Content) Label(s section.Section) string {
	if l, ok := c.Nav[s.String()]; ok {
		return l
	}
	return s.String()
}

func (c *Content) validate() error {
	if c.Prompt == "" {
		return fmt.Errorf("prompt is empty")
	}
	for _, s := range section.All() {
		if c.Nav[s.String()] == "" {
			return fmt.Errorf("missing nav label for %s", s)
		}
	}
	for _, sk := range c.Skills.Items {
		if sk.Level < 0 || sk.Level > 100 {
			return fmt.Errorf("skill %q: level %d out of range", sk.Name, sk.Level)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can never reach the catalog's data.
func (c *Content) Clone() *Content {
	out := *c
	out.Nav = make(map[string]string, len(c.Nav))
	for k, v := range c.Nav {
		out.Nav[k] = v
	}
	out.About.Paragraphs = append([]string(nil), c.About.Paragraphs...)
	out.About.Badges = append([]Badge(nil), c.About.Badges...)
	out.Skills.Items = append([]Skill(nil), c.Skills.Items...)
	out.Skills.Pillars = append([]Pillar(nil), c.Skills.Pillars...)
	out.Projects.Items = make([]Project, len(c.Projects.Items))
	for i, p := range c.Projects.Items {
		p.Tech = append([]string(nil), p.Tech...)
		out.Projects.Items[i] = p
	}
	out.Contact.Fingerprint.Lines = append([]string(nil), c.Contact.Fingerprint.Lines...)
	return &out
}

// Catalog holds one Content per supported language.
type Catalog struct {
	byTag   map[language.Tag]*Content
	tags    []language.Tag
	matcher language.Matcher
}

// Load parses the embedded content documents. def becomes the fallback
// language; it must be one of the documents.
func Load(def language.Tag) (*Catalog, error) {
	return LoadFS(embeddedFS, def)
}

// LoadFS parses locales/*.yaml from fsys.
func LoadFS(fsys fs.FS, def language.Tag) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob content: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no content documents found")
	}
	sort.Strings(paths)

	cat := &Catalog{byTag: map[language.Tag]*Content{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var c Content
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		if c.Lang == "" {
			c.Lang = strings.TrimSuffix(path.Base(p), ".yaml")
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("validate %s: %w", p, err)
		}
		tag, err := language.Parse(c.Lang)
		if err != nil {
			return nil, fmt.Errorf("parse lang of %s: %w", p, err)
		}
		cat.byTag[tag] = &c
	}

	base, _ := def.Base()
	defTag := language.Make(base.String())
	if _, ok := cat.byTag[defTag]; !ok {
		return nil, fmt.Errorf("default language %s has no content", def)
	}
	cat.tags = append(cat.tags, defTag)
	for tag := range cat.byTag {
		if tag != defTag {
			cat.tags = append(cat.tags, tag)
		}
	}
	rest := cat.tags[1:]
	sort.Slice(rest, func(i, j int) bool { return rest[i].String() < rest[j].String() })
	cat.matcher = language.NewMatcher(cat.tags)
	return cat, nil
}

// MustLoad is Load for program start-up.
func MustLoad(def language.Tag) *Catalog {
	cat, err := Load(def)
	if err != nil {
		panic(err)
	}
	return cat
}

// Tags returns the supported languages, default first.
func (c *Catalog) Tags() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

func (c *Catalog) Default() language.Tag {
	return c.tags[0]
}

// Match picks the best supported language for the preferred tags.
func (c *Catalog) Match(preferred ...language.Tag) language.Tag {
	if len(preferred) == 0 {
		return c.Default()
	}
	_, idx, conf := c.matcher.Match(preferred...)
	if conf == language.No {
		return c.Default()
	}
	return c.tags[idx]
}

// For returns a copy of the content best matching tag.
func (c *Catalog) For(tag language.Tag) *Content {
	return c.byTag[c.Match(tag)].Clone()
}
