package timer

import (
	"log/slog"
	"time"
)

type Action int

const (
	Pause Action = iota
	Resume
	Step
	Quit
)

// Run drives the simulation frame clock. Ticks are delivered on tick while
// running; Pause freezes the stream, Step emits exactly one tick while
// paused, Quit stops the goroutine.
func Run(interval time.Duration, tick chan<- time.Time, action <-chan Action) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	paused := false
	for {
		select {
		case a := <-action:
			switch a {
			case Pause:
				paused = true
				slog.Debug("Simulation paused")
			case Resume:
				paused = false
				slog.Debug("Simulation resumed")
			case Step:
				tick <- time.Now()
			case Quit:
				return
			}
		case now := <-ticker.C:
			if !paused {
				tick <- now
			}
		}
	}
}
