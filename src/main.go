package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/eiannone/keyboard"

	"liftsim/src/algorithm"
	"liftsim/src/building"
	"liftsim/src/config"
	"liftsim/src/timer"
	"liftsim/src/types"
	"liftsim/src/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML settings file")
	floors := flag.Int("floors", 0, "Number of floors (overrides config)")
	lanes := flag.Int("lanes", 0, "Number of elevators (overrides config)")
	speed := flag.Float64("speed", 0, "Elevator speed in floors/second (overrides config)")
	capacity := flag.Int("capacity", 0, "Elevator capacity (overrides config)")
	flow := flag.Float64("flow", 0, "Passenger arrivals per minute (overrides config)")
	seed := flag.Int64("seed", 0, "Simulation seed (overrides config)")
	algName := flag.String("algorithm", "", "Starting dispatch algorithm")
	flag.Parse()

	initLogger()

	settings := config.DefaultSettings()
	if *configPath != "" {
		loaded, err := config.LoadSettings(*configPath)
		if err != nil {
			slog.Error("Failed to load settings", "path", *configPath, "err", err)
			os.Exit(1)
		}
		settings = loaded
	}
	settings.ApplyEnv()
	applyFlags(&settings, *floors, *lanes, *speed, *capacity, *flow, *seed)

	registry := algorithm.DefaultRegistry()
	if *algName != "" {
		if err := registry.Select(*algName); err != nil {
			slog.Error("Unknown algorithm", "name", *algName, "available", registry.Names())
			os.Exit(1)
		}
	}

	b := building.New(settings, registry)
	b.SetStatsCallback(logStats)
	slog.Info("Simulation starting",
		"floors", settings.Floors,
		"lanes", settings.Lanes,
		"speed", settings.Speed,
		"capacity", settings.Capacity,
		"flow", settings.FlowRate,
		"seed", settings.Seed,
		"algorithm", registry.Active().Name())

	tickCh := make(chan time.Time)
	actionCh := make(chan timer.Action, 1)
	go timer.Run(config.FrameInterval, tickCh, actionCh)

	keyEvents, err := keyboard.GetKeys(10)
	if err != nil {
		slog.Warn("Keyboard unavailable, running without interactive controls", "err", err)
	} else {
		defer keyboard.Close()
		fmt.Println("Controls: [space] pause/resume  [n] step  [a] next algorithm  [r] reset  [q] quit")
	}

	paused := false
	lastStatus := time.Now()
	for {
		select {
		case <-tickCh:
			b.Tick(config.TickSeconds)
			if time.Since(lastStatus) >= 500*time.Millisecond {
				lastStatus = time.Now()
				utils.PrintStatus(b.Stats(), registry.Active().Name(), paused)
			}
		case ev := <-keyEvents:
			if ev.Err != nil {
				slog.Error("Keyboard error", "err", ev.Err)
				return
			}
			switch {
			case ev.Key == keyboard.KeySpace:
				paused = !paused
				if paused {
					actionCh <- timer.Pause
				} else {
					actionCh <- timer.Resume
				}
			case ev.Rune == 'n':
				if paused {
					actionCh <- timer.Step
				}
			case ev.Rune == 'a':
				name := b.System().NextAlgorithm()
				slog.Info("Switched algorithm", "algorithm", name)
			case ev.Rune == 'r':
				// Wholesale replacement; nothing from the old run survives.
				b = building.New(settings, registry)
				b.SetStatsCallback(logStats)
				slog.Info("Simulation reset")
			case ev.Rune == 'q', ev.Key == keyboard.KeyEsc, ev.Key == keyboard.KeyCtrlC:
				actionCh <- timer.Quit
				fmt.Println()
				slog.Info("Simulation stopped", "score", b.Stats().Score)
				return
			}
		}
	}
}

func applyFlags(s *config.Settings, floors, lanes int, speed float64, capacity int, flow float64, seed int64) {
	if floors > 0 {
		s.Floors = floors
	}
	if lanes > 0 {
		s.Lanes = lanes
	}
	if speed > 0 {
		s.Speed = speed
	}
	if capacity > 0 {
		s.Capacity = capacity
	}
	if flow > 0 {
		s.FlowRate = flow
	}
	if seed != 0 {
		s.Seed = seed
	}
	s.Clamp()
}

func logStats(stats types.SimStats) {
	slog.Info("Service statistics",
		"served", stats.ServedCount,
		"gaveUp", stats.GiveUpCount,
		"avgWait", stats.AvgWaitTime,
		"avgTransit", stats.AvgTransitTime,
		"score", stats.Score)
}

// initLogger sets up global logging with a compact time format and file:line
// source, mirrored to liftsim.log.
func initLogger() {
	logFile, err := os.OpenFile("liftsim.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	var out io.Writer = os.Stderr
	if err == nil {
		out = io.MultiWriter(os.Stderr, logFile)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(handler))
}
