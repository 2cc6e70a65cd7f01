// The dispatcher translates live elevator and building state into the
// immutable snapshot schema the algorithm contract expects, delegates the
// decision to the active algorithm, and validates its output before applying
// it. A faulty strategy degrades decisions; it never corrupts the simulation.
package dispatcher

import (
	"log/slog"

	"liftsim/src/algorithm"
	"liftsim/src/elev"
	"liftsim/src/passenger"
	"liftsim/src/types"

	"github.com/tiendc/go-deepcopy"
)

// StatsProvider supplies fresh per-floor aggregates for the building
// snapshot. Implemented by the building orchestrator.
type StatsProvider interface {
	FloorStats() []types.FloorStats
}

type System struct {
	registry  *algorithm.Registry
	elevators []*elev.Elevator
	numFloors int
	stats     StatsProvider
}

func New(registry *algorithm.Registry, elevators []*elev.Elevator, numFloors int, stats StatsProvider) *System {
	return &System{
		registry:  registry,
		elevators: elevators,
		numFloors: numFloors,
		stats:     stats,
	}
}

func (s *System) Registry() *algorithm.Registry {
	return s.registry
}

// SwitchAlgorithm hot-swaps the active strategy. The new algorithm takes
// effect on the very next decision request.
func (s *System) SwitchAlgorithm(name string) error {
	if err := s.registry.Select(name); err != nil {
		return err
	}
	s.initActive()
	return nil
}

// NextAlgorithm cycles to the following strategy and returns its name.
func (s *System) NextAlgorithm() string {
	a := s.registry.Next()
	s.initActive()
	return a.Name()
}

func (s *System) initActive() {
	if init, ok := s.registry.Active().(algorithm.Initializer); ok {
		init.Initialize(s.BuildingSnapshot())
	}
}

// AssignElevatorToPerson asks the active algorithm which elevator should
// answer a new call, validates the answer, and applies it: the passenger is
// assigned and the elevator's visit set gains the pickup floor.
func (s *System) AssignElevatorToPerson(p *passenger.Passenger, floor int) int {
	building := s.BuildingSnapshot()
	person := types.PersonData{
		Origin:       p.Origin,
		Destination:  p.Destination,
		WaitTime:     p.WaitTime,
		AssignedElev: p.AssignedElev,
	}

	idx := s.registry.Active().AssignElevatorToPerson(person, floor, building)
	idx = s.validateElevatorIndex(idx)

	p.AssignedElev = idx
	s.elevators[idx].AddFloorToVisit(floor)
	return idx
}

// DecideNextFloor implements elev.Router. Invalid output is replaced by the
// elevator's current floor, a safe no-op instruction; the elevator's own
// stuck detector is the backstop for persistent indecision.
func (s *System) DecideNextFloor(e *elev.Elevator) int {
	building := s.BuildingSnapshot()
	elevator := s.elevatorSnapshot(e)

	floor := s.registry.Active().DecideNextFloor(elevator, building)
	if floor < 0 || floor >= s.numFloors {
		slog.Warn("Algorithm returned invalid floor, staying put",
			"algorithm", s.registry.Active().Name(),
			"elevator", e.ID,
			"floor", floor)
		return e.Floor
	}
	return floor
}

// validateElevatorIndex clamps bad assignments. Out-of-range, repairing or
// full elevators are replaced by the first serviceable one, falling back to
// index 0 when nothing can serve.
func (s *System) validateElevatorIndex(idx int) int {
	if idx >= 0 && idx < len(s.elevators) {
		e := s.elevators[idx]
		if e.Behaviour != types.Repair && e.PassengerCount() < e.Capacity {
			return idx
		}
	}
	fallback := 0
	for _, e := range s.elevators {
		if e.Behaviour != types.Repair && e.PassengerCount() < e.Capacity {
			fallback = e.ID
			break
		}
	}
	slog.Warn("Algorithm returned unserviceable elevator, substituting",
		"algorithm", s.registry.Active().Name(),
		"returned", idx,
		"substituted", fallback)
	return fallback
}

// BuildingSnapshot assembles the read-only building view. The assembled
// struct is deep-copied so no slice handed to an algorithm aliases live
// core state.
func (s *System) BuildingSnapshot() types.BuildingData {
	raw := types.BuildingData{
		NumFloors: s.numFloors,
		Floors:    s.stats.FloorStats(),
	}
	for _, e := range s.elevators {
		raw.Elevators = append(raw.Elevators, s.elevatorSnapshot(e))
	}

	snapshot := new(types.BuildingData)
	if err := deepcopy.Copy(snapshot, &raw); err != nil {
		panic(err)
	}
	return *snapshot
}

func (s *System) elevatorSnapshot(e *elev.Elevator) types.ElevatorData {
	target, hasTarget := e.Target()
	data := types.ElevatorData{
		ID:             e.ID,
		Floor:          e.Floor,
		Position:       e.Position,
		Target:         target,
		HasTarget:      hasTarget,
		Behaviour:      e.Behaviour,
		Direction:      e.Direction(),
		LastDirection:  e.LastDirection(),
		PassengerCount: e.PassengerCount(),
		Capacity:       e.Capacity,
		FloorsToVisit:  e.FloorsToVisit(),
		InRepair:       e.Behaviour == types.Repair,
	}
	for _, p := range e.Passengers() {
		data.Destinations = append(data.Destinations, p.Destination)
	}
	return data
}
