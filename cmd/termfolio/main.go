// Command termfolio renders the portfolio in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/Zachkp/cyberhacker/internal/config"
	"github.com/Zachkp/cyberhacker/internal/content"
	"github.com/Zachkp/cyberhacker/internal/term"
	"github.com/Zachkp/cyberhacker/internal/view"
)

func main() {
	lang := flag.String("lang", "", "content language (en, fr); defaults to DEFAULT_LANG")
	sound := flag.Bool("sound", false, "play a key click while the prompt types")
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	// The screen owns stdout; logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*lang, *sound); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(lang string, sound bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	catalog, err := content.Load(cfg.Lang())
	if err != nil {
		return err
	}
	tag := catalog.Default()
	if lang != "" {
		t, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("parse -lang: %w", err)
		}
		tag = catalog.Match(t)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGreen))
	screen.HideCursor()

	clicker := term.NewClicker(sound)
	defer clicker.Close()

	v := view.New(uuid.NewString(), catalog.For(tag), view.Options{
		TypeInterval: cfg.TypeInterval,
		RainInterval: cfg.RainInterval,
		CellSize:     1,
		NoticeTTL:    cfg.NoticeTTL,
	})
	defer v.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("termfolio started, view %s, lang %s", v.ID(), tag)
	return term.New(screen, v, clicker).Run(ctx)
}
