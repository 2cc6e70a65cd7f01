// The building orchestrator: owns floors, elevators and queues, spawns
// arrivals, advances the whole simulation one tick at a time.
package building

import (
	"log/slog"

	"liftsim/src/algorithm"
	"liftsim/src/config"
	"liftsim/src/dispatcher"
	"liftsim/src/elev"
	"liftsim/src/passenger"
	"liftsim/src/simrand"
	"liftsim/src/types"
)

type Building struct {
	settings config.Settings
	rng      *simrand.Source

	elevators []*elev.Elevator
	system    *dispatcher.System

	queues [][]*passenger.Passenger

	warmupLeft float64
	elapsed    float64
	spawnAccum float64

	// servedScored holds post-warm-up journeys only; servedTotal counts all.
	servedScored []*passenger.Passenger
	servedTotal  int
	giveUpCount  int
	faultCount   int

	score scoreCache

	onStats             func(types.SimStats)
	servedSinceCallback int
}

// New constructs a fresh simulation. A reset is a wholesale replacement;
// nothing from a previous Building survives.
func New(settings config.Settings, registry *algorithm.Registry) *Building {
	settings.Clamp()
	b := &Building{
		settings:   settings,
		rng:        simrand.New(settings.Seed),
		queues:     make([][]*passenger.Passenger, settings.Floors),
		warmupLeft: config.WarmupDuration,
	}
	for i := 0; i < settings.Lanes; i++ {
		b.elevators = append(b.elevators, elev.New(i, settings.Floors, settings.Capacity, settings.Speed))
	}
	b.system = dispatcher.New(registry, b.elevators, settings.Floors, b)
	return b
}

func (b *Building) Settings() config.Settings {
	return b.settings
}

func (b *Building) System() *dispatcher.System {
	return b.system
}

// Elevators returns the lane roster. Callers must treat the elevators as
// read-only; all mutation happens inside Tick.
func (b *Building) Elevators() []*elev.Elevator {
	return b.elevators
}

// ButtonPressed reports whether a floor's call button is lit, which is
// exactly when its queue is non-empty.
func (b *Building) ButtonPressed(floor int) bool {
	return len(b.queues[floor]) > 0
}

// SetStatsCallback registers the external logging hook, fired once per
// config.ServedCallbackBatch served passengers.
func (b *Building) SetStatsCallback(fn func(types.SimStats)) {
	b.onStats = fn
}

// WarmingUp reports whether the cold-start window is still running.
func (b *Building) WarmingUp() bool {
	return b.warmupLeft > 0
}

// Tick advances the whole simulation by dt simulated seconds.
func (b *Building) Tick(dt float64) {
	if b.warmupLeft > 0 {
		b.warmupLeft -= dt
	}
	b.elapsed += dt

	for _, e := range b.elevators {
		// Transit timers run before movement so a passenger boarding and
		// arriving in the same window still records time in motion.
		for _, p := range e.Passengers() {
			p.Tick(dt)
		}

		res := e.Update(dt, b.system)
		if res.Fault != nil {
			b.faultCount++
			b.reassignFrom(e.ID)
		}
		for _, p := range res.Evacuated {
			b.queues[p.Origin] = append(b.queues[p.Origin], p)
			b.system.AssignElevatorToPerson(p, p.Origin)
		}
		for _, p := range res.Served {
			b.recordServed(p)
		}
		if res.StartedLoading {
			b.boardAt(e)
		}
		if res.Recovered {
			b.restoreCalls(e)
		}
	}

	b.tickWaiting(dt)
	b.generateArrivals(dt)
}

// boardAt boards the waiting passengers assigned to an elevator that just
// opened its doors, up to the remaining capacity. A full elevator boards
// no one.
func (b *Building) boardAt(e *elev.Elevator) {
	floor := e.Floor
	leftBehind := false
	kept := b.queues[floor][:0]
	for _, p := range b.queues[floor] {
		if p.AssignedElev != e.ID {
			kept = append(kept, p)
			continue
		}
		if e.RemainingCapacity() == 0 {
			leftBehind = true
			kept = append(kept, p)
			continue
		}
		if err := e.Board(p); err != nil {
			slog.Warn("Boarding failed", "elevator", e.ID, "floor", floor, "err", err)
			kept = append(kept, p)
		}
	}
	b.queues[floor] = kept
	if leftBehind {
		// The car filled up before everyone assigned to it could board;
		// keep the stop pending so it comes back.
		e.AddFloorToVisit(floor)
	}
}

// restoreCalls re-registers the pickup floors of everyone still assigned to
// an elevator that just returned from repair. The route was cleared on the
// fault; without this the car would never come back for them.
func (b *Building) restoreCalls(e *elev.Elevator) {
	for floor, queue := range b.queues {
		for _, p := range queue {
			if p.AssignedElev == e.ID {
				e.AddFloorToVisit(floor)
			}
		}
	}
}

// reassignFrom hands every waiting passenger assigned to a failed elevator
// back to the dispatcher.
func (b *Building) reassignFrom(elevID int) {
	for floor, queue := range b.queues {
		for _, p := range queue {
			if p.AssignedElev != elevID {
				continue
			}
			p.AssignedElev = passenger.Unassigned
			b.system.AssignElevatorToPerson(p, floor)
		}
	}
}

// tickWaiting advances every waiting passenger's timer and evicts anyone
// whose wait exceeded their personal give-up threshold.
func (b *Building) tickWaiting(dt float64) {
	for floor := range b.queues {
		kept := b.queues[floor][:0]
		for _, p := range b.queues[floor] {
			p.Tick(dt)
			if p.ShouldGiveUp() {
				p.GiveUp()
				b.giveUpCount++
				b.score.invalidate()
				slog.Debug("Passenger gave up",
					"floor", floor, "waited", p.WaitTime, "threshold", p.GiveUpAfter)
				continue
			}
			kept = append(kept, p)
		}
		b.queues[floor] = kept
	}
}

// generateArrivals accumulates the configured flow rate and spawns one
// passenger per whole arrival accrued.
func (b *Building) generateArrivals(dt float64) {
	b.spawnAccum += dt * b.settings.FlowRate / 60.0
	for b.spawnAccum >= 1 {
		b.spawnAccum--
		origin := b.rng.ArrivalFloor(b.settings.Floors, config.EdgeFloorBias)
		b.spawnAt(origin)
	}
}

// spawnAt creates a passenger at the given floor and requests an assignment
// from the dispatcher.
func (b *Building) spawnAt(origin int) *passenger.Passenger {
	destination := b.rng.Destination(origin, b.settings.Floors)
	p := passenger.New(origin, destination, b.rng.GiveUpThreshold(config.GiveUpMin, config.GiveUpMax))
	p.WarmupSpawn = b.WarmingUp()
	b.queues[origin] = append(b.queues[origin], p)
	b.score.invalidate()

	idx := b.system.AssignElevatorToPerson(p, origin)
	slog.Debug("Passenger spawned",
		"origin", origin, "destination", destination, "elevator", idx)
	return p
}

func (b *Building) recordServed(p *passenger.Passenger) {
	b.servedTotal++
	if !p.WarmupSpawn {
		b.servedScored = append(b.servedScored, p)
	}
	b.servedSinceCallback++
	if b.onStats != nil && b.servedSinceCallback >= config.ServedCallbackBatch {
		b.servedSinceCallback = 0
		b.onStats(b.Stats())
	}
}
