package term

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	clickHz       = 1200
	clickDuration = 12 * time.Millisecond
)

// Clicker plays the short key-click of the typewriter. Without an audio
// device it stays silent.
type Clicker struct {
	enabled    bool
	sampleRate beep.SampleRate
}

// NewClicker opens the speaker. Audio is optional; a failure only disables
// the click.
func NewClicker(enabled bool) *Clicker {
	c := &Clicker{sampleRate: beep.SampleRate(44100)}
	if !enabled {
		return c
	}
	if err := speaker.Init(c.sampleRate, c.sampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio initialization failed: %v", err)
		return c
	}
	c.enabled = true
	return c
}

func (c *Clicker) Enabled() bool { return c.enabled }

func (c *Clicker) Click() {
	if !c.enabled {
		return
	}
	sine, err := generators.SineTone(c.sampleRate, clickHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.sampleRate.N(clickDuration), sine))
}

func (c *Clicker) Close() {
	if c.enabled {
		speaker.Close()
		c.enabled = false
	}
}
