package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/cyberhacker/internal/config"
	"github.com/Zachkp/cyberhacker/internal/content"
	"github.com/Zachkp/cyberhacker/internal/jobs"
	"github.com/Zachkp/cyberhacker/internal/store"
	"github.com/Zachkp/cyberhacker/internal/view"
	"github.com/Zachkp/cyberhacker/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	gin.SetMode(cfg.GinMode)

	db, err := store.Open(cfg.DBPath, newSalt())
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	catalog, err := content.Load(cfg.Lang())
	if err != nil {
		log.Fatal("Failed to load content: ", err)
	}

	views := view.NewRegistry(view.Options{
		TypeInterval: cfg.TypeInterval,
		RainInterval: cfg.RainInterval,
		Width:        cfg.ViewportWidth,
		Height:       cfg.ViewportHeight,
		CellSize:     cfg.RainCellSize,
		NoticeTTL:    cfg.NoticeTTL,
		Observer:     web.NewAnalytics(db),
	}, cfg.MaxViews)

	sched := jobs.New()
	if err := sched.AddRetention(cfg.CleanupSchedule, db, cfg.RetentionMonths); err != nil {
		log.Fatal("Failed to schedule cleanup: ", err)
	}
	if err := sched.AddSweep(cfg.SweepSchedule, views, cfg.ViewIdleTimeout); err != nil {
		log.Fatal("Failed to schedule view sweep: ", err)
	}
	sched.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: web.New(cfg, catalog, views, db).Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	// Open event streams only end once their views close.
	views.CloseAll()
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// newSalt returns a per-process salt for visitor IP hashes, so hashes cannot
// be joined across restarts.
func newSalt() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate salt: ", err)
	}
	return hex.EncodeToString(b)
}
