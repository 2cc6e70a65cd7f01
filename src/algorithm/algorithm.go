// The dispatch algorithm contract and registry. A strategy answers exactly
// two questions: which elevator serves a new call, and which floor an idle
// elevator visits next. Strategies see only snapshot copies of core state and
// must be deterministic for identical input.
package algorithm

import (
	"fmt"
	"math"

	"liftsim/src/types"
)

type Algorithm interface {
	Name() string
	Description() string

	// AssignElevatorToPerson picks the elevator index in [0, elevatorCount)
	// that should answer a new call. Implementations should skip elevators
	// at capacity or in repair; the dispatcher validates the result either way.
	AssignElevatorToPerson(person types.PersonData, floor int, building types.BuildingData) int

	// DecideNextFloor picks the next stop in [0, totalFloors) for an idle
	// elevator. Returning the current floor means stay put.
	DecideNextFloor(elevator types.ElevatorData, building types.BuildingData) int
}

// Initializer is an optional hook run when a strategy becomes active.
type Initializer interface {
	Initialize(building types.BuildingData)
}

// Cleaner is an optional hook run when a strategy is swapped out.
type Cleaner interface {
	Cleanup()
}

// Registry holds the available strategies and the active one. Swaps take
// effect on the very next decision request.
type Registry struct {
	algorithms []Algorithm
	active     int
}

func NewRegistry(algorithms ...Algorithm) *Registry {
	return &Registry{algorithms: algorithms}
}

// DefaultRegistry ships every built-in strategy.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewAscending(),
		NewLoadBalance(),
		NewScan(),
		NewWaitWeighted(),
		NewUtilizationTarget(),
	)
}

func (r *Registry) Register(a Algorithm) {
	r.algorithms = append(r.algorithms, a)
}

func (r *Registry) Active() Algorithm {
	return r.algorithms[r.active]
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.algorithms))
	for i, a := range r.algorithms {
		names[i] = a.Name()
	}
	return names
}

// Select activates the named strategy, running the lifecycle hooks.
func (r *Registry) Select(name string) error {
	for i, a := range r.algorithms {
		if a.Name() == name {
			r.activate(i)
			return nil
		}
	}
	return fmt.Errorf("unknown algorithm %q", name)
}

// Next cycles to the following strategy and returns it.
func (r *Registry) Next() Algorithm {
	r.activate((r.active + 1) % len(r.algorithms))
	return r.Active()
}

func (r *Registry) activate(i int) {
	if i == r.active {
		return
	}
	if c, ok := r.algorithms[r.active].(Cleaner); ok {
		c.Cleanup()
	}
	r.active = i
}

// Serviceable reports whether an elevator may take a new assignment.
func Serviceable(e types.ElevatorData) bool {
	return !e.InRepair && e.PassengerCount < e.Capacity
}

// Distance is the travel distance from an elevator's current position to a floor.
func Distance(e types.ElevatorData, floor int) float64 {
	return math.Abs(e.Position - float64(floor))
}

// NearestServiceable returns the closest assignable elevator, or -1 when
// every elevator is full or under repair.
func NearestServiceable(building types.BuildingData, floor int) int {
	best := -1
	bestDist := math.MaxFloat64
	for _, e := range building.Elevators {
		if !Serviceable(e) {
			continue
		}
		if d := Distance(e, floor); d < bestDist {
			best = e.ID
			bestDist = d
		}
	}
	return best
}

// nearestOf returns the floor in candidates closest to the elevator,
// preferring the lower floor on ties.
func nearestOf(e types.ElevatorData, candidates []int) int {
	best := e.Floor
	bestDist := math.MaxFloat64
	for _, f := range candidates {
		if d := Distance(e, f); d < bestDist {
			best = f
			bestDist = d
		}
	}
	return best
}
