package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/Zachkp/cyberhacker/internal/content"
	"github.com/Zachkp/cyberhacker/internal/locale"
	"github.com/Zachkp/cyberhacker/internal/notify"
	"github.com/Zachkp/cyberhacker/internal/section"
	"github.com/Zachkp/cyberhacker/internal/view"
)

const viewKey = "view"

type navItem struct {
	ID     string
	Label  string
	Active bool
}

type langOption struct {
	Tag    string
	Label  string
	Active bool
}

// pageData is what the templates render: static content plus one view's
// snapshot.
type pageData struct {
	C         *content.Content
	ViewID    string
	Current   string
	MenuOpen  bool
	Typed     string
	Nav       []navItem
	Languages []langOption
}

func (s *Server) pageData(v *view.View) pageData {
	snap := v.Snapshot()
	c := v.Content()

	items := make([]navItem, 0, len(section.All()))
	for _, sec := range section.All() {
		items = append(items, navItem{ID: sec.String(), Label: c.Label(sec), Active: sec == snap.Section})
	}

	var langs []langOption
	for _, tag := range s.catalog.Tags() {
		langs = append(langs, langOption{
			Tag:    tag.String(),
			Label:  display.Self.Name(tag),
			Active: tag.String() == c.Lang,
		})
	}

	return pageData{
		C:         c,
		ViewID:    v.ID(),
		Current:   snap.Section.String(),
		MenuOpen:  snap.MenuOpen,
		Typed:     snap.Typed,
		Nav:       items,
		Languages: langs,
	}
}

// handlePage starts a fresh view for every page load: home section, menu
// closed, nothing typed.
func (s *Server) handlePage(c *gin.Context) {
	tag, persist := locale.Resolve(c.Request, s.catalog)
	if persist {
		locale.SetCookie(c.Writer, tag)
	}
	c.Set("lang", tag)

	v := s.views.Create(s.catalog.For(tag))
	c.HTML(http.StatusOK, "index.html", s.pageData(v))
}

// viewMiddleware resolves the :view parameter to a live view.
func (s *Server) viewMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := s.views.Get(c.Param("view"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "view not found"})
			return
		}
		c.Set(viewKey, v)
		c.Next()
	}
}

func currentView(c *gin.Context) *view.View {
	return c.MustGet(viewKey).(*view.View)
}

func (s *Server) handleNavigate(c *gin.Context) {
	sec, ok := section.Parse(c.Param("section"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}
	v := currentView(c)
	v.Navigate(sec)
	c.HTML(http.StatusOK, "shell", s.pageData(v))
}

func (s *Server) handleToggleMenu(c *gin.Context) {
	v := currentView(c)
	v.ToggleMenu()
	c.HTML(http.StatusOK, "shell", s.pageData(v))
}

func (s *Server) handleNotify(c *gin.Context) {
	action, ok := notify.ParseAction(c.Param("action"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action"})
		return
	}
	n := currentView(c).Notify(action)
	c.HTML(http.StatusOK, "toast", n)
}

func (s *Server) handleClose(c *gin.Context) {
	s.views.Remove(c.Param("view"))
	c.Status(http.StatusNoContent)
}

// langOf returns the language chosen for this request, if any.
func langOf(c *gin.Context) string {
	if v, ok := c.Get("lang"); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag.String()
		}
	}
	return ""
}
