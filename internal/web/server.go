// Package web serves the portfolio over HTTP: the page, its HTMX fragments,
// the server-sent event stream driving the animations, and the admin
// dashboard.
package web

import (
	"crypto/rand"
	"embed"
	"encoding/hex"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/cyberhacker/internal/config"
	"github.com/Zachkp/cyberhacker/internal/content"
	"github.com/Zachkp/cyberhacker/internal/store"
	"github.com/Zachkp/cyberhacker/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type Server struct {
	cfg     config.Config
	catalog *content.Catalog
	views   *view.Registry
	db      *store.DB

	adminToken string
}

func New(cfg config.Config, catalog *content.Catalog, views *view.Registry, db *store.DB) *Server {
	s := &Server{
		cfg:        cfg,
		catalog:    catalog,
		views:      views,
		db:         db,
		adminToken: generateToken(),
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", s.adminToken)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	return s
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(b)
}

func parseTemplates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(parseTemplates())

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal("Failed to mount static files:", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.Use(s.visitorTrackingMiddleware())

	r.GET("/", s.handlePage)
	r.GET("/events/:view", s.handleEvents)

	views := r.Group("/views/:view")
	views.Use(s.viewMiddleware())
	views.POST("/nav/:section", s.handleNavigate)
	views.POST("/menu", s.handleToggleMenu)
	views.POST("/notify/:action", s.handleNotify)
	views.DELETE("", s.handleClose)
	views.POST("/close", s.handleClose)

	s.setupAdminRoutes(r)
	return r
}
