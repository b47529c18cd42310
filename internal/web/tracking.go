package web

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/cyberhacker/internal/notify"
	"github.com/Zachkp/cyberhacker/internal/section"
	"github.com/Zachkp/cyberhacker/internal/store"
)

const trackTimeout = 5 * time.Second

// visitorTrackingMiddleware records page loads with a hashed IP. Static
// assets, streams, view actions and admin pages are not tracked, and a
// Do Not Track header opts out entirely.
func (s *Server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if path != "/" || c.Request.Method != "GET" {
			return
		}
		if c.GetHeader("DNT") == "1" {
			return
		}
		ip, ua, lang := c.ClientIP(), c.GetHeader("User-Agent"), langOf(c)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			if err := s.db.RecordVisit(ctx, ip, ua, path, lang, time.Now()); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
	}
}

// Analytics records section views and call-to-action clicks in the
// background. It implements view.Observer.
type Analytics struct {
	db *store.DB
}

func NewAnalytics(db *store.DB) *Analytics {
	return &Analytics{db: db}
}

func (a *Analytics) SectionViewed(viewID string, s section.Section) {
	go a.record(func(ctx context.Context) error {
		return a.db.RecordSectionView(ctx, viewID, s.String(), time.Now())
	})
}

func (a *Analytics) ActionFired(viewID string, act notify.Action) {
	go a.record(func(ctx context.Context) error {
		return a.db.RecordAction(ctx, viewID, act.String(), time.Now())
	})
}

func (a *Analytics) record(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Printf("Error recording analytics: %v", err)
	}
}
