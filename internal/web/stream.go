package web

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/cyberhacker/internal/view"
)

const maxViewport = 16384

// handleEvents streams a view's animation ticks as server-sent events. The
// view's timers are mounted for exactly as long as the stream is open, or
// until a newer stream for the same view takes over.
func (s *Server) handleEvents(c *gin.Context) {
	v, ok := s.views.Get(c.Param("view"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	}

	if w, h, ok := viewport(c); ok {
		v.Resize(w, h)
	}

	// A reconnecting EventSource takes the view over from its stale stream.
	ctx := c.Request.Context()
	sess, err := v.Mount(ctx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	defer sess.Release()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-sess.Done():
			return false
		case u := <-sess.Updates():
			switch u.Kind {
			case view.Typed:
				c.SSEvent("typed", u.Typed)
			case view.Rain:
				c.SSEvent("rain", u.Glyphs)
			}
			return true
		}
	})

	if gin.Mode() == gin.DebugMode {
		log.Printf("view %s: stream closed", v.ID())
	}
}

// viewport reads the client's ?w= and ?h= in pixels.
func viewport(c *gin.Context) (int, int, bool) {
	w, errW := strconv.Atoi(c.Query("w"))
	h, errH := strconv.Atoi(c.Query("h"))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return min(w, maxViewport), min(h, maxViewport), true
}
