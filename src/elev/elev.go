// Contains the per-elevator state machine driving physical movement, loading
// and repair recovery.
package elev

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"liftsim/src/config"
	"liftsim/src/passenger"
	"liftsim/src/types"
)

// Router supplies the next floor for an idle elevator with pending stops.
// Implemented by the dispatcher; stubbed in tests.
type Router interface {
	DecideNextFloor(e *Elevator) int
}

// TickResult reports what one Update produced so the orchestrator can react
// without the elevator reaching into building state.
type TickResult struct {
	StartedLoading bool
	Recovered      bool
	Served         []*passenger.Passenger
	Evacuated      []*passenger.Passenger
	Fault          *FaultReport
}

type Elevator struct {
	ID        int
	NumFloors int
	Capacity  int
	Speed     float64 // floors per second

	Behaviour types.ElevBehaviour
	Floor     int     // last floor the car was aligned with
	Position  float64 // continuous position in floor units

	target    int
	hasTarget bool

	// lastMoveDir persists through LOADING and IDLE so direction-aware
	// strategies can keep serving the current sweep.
	lastMoveDir types.Direction

	floorsToVisit map[int]struct{}
	passengers    []*passenger.Passenger

	stateTime   float64 // simulated seconds spent in the current behaviour
	graceLeft   float64 // stuck checks are suppressed while positive
	loadingLeft float64
	repairLeft  float64
	warned      bool

	history     []sample
	transitions []Transition

	// LastFault is retained after recovery for post-hoc inspection.
	LastFault *FaultReport
}

type sample struct {
	pos       float64
	behaviour types.ElevBehaviour
}

func New(id, numFloors, capacity int, speed float64) *Elevator {
	return &Elevator{
		ID:            id,
		NumFloors:     numFloors,
		Capacity:      capacity,
		Speed:         speed,
		Behaviour:     types.Idle,
		floorsToVisit: make(map[int]struct{}),
	}
}

// AddFloorToVisit registers a pending stop. Inserts are idempotent; requests
// are dropped while the elevator is under repair or the floor is out of range.
func (e *Elevator) AddFloorToVisit(floor int) {
	if e.Behaviour == types.Repair {
		slog.Debug("Visit request dropped, elevator under repair", "elevator", e.ID, "floor", floor)
		return
	}
	if floor < 0 || floor >= e.NumFloors {
		slog.Warn("Visit request out of range", "elevator", e.ID, "floor", floor)
		return
	}
	e.floorsToVisit[floor] = struct{}{}
}

// FloorsToVisit returns the pending stops as a sorted copy.
func (e *Elevator) FloorsToVisit() []int {
	floors := make([]int, 0, len(e.floorsToVisit))
	for f := range e.floorsToVisit {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	return floors
}

func (e *Elevator) HasFloorToVisit(floor int) bool {
	_, ok := e.floorsToVisit[floor]
	return ok
}

func (e *Elevator) PendingStops() int {
	return len(e.floorsToVisit)
}

// Target returns the floor the elevator is travelling to, if any.
func (e *Elevator) Target() (int, bool) {
	return e.target, e.hasTarget
}

// Direction is the current motion, derived from behaviour.
func (e *Elevator) Direction() types.Direction {
	switch e.Behaviour {
	case types.MovingUp:
		return types.DirUp
	case types.MovingDown:
		return types.DirDown
	default:
		return types.DirStop
	}
}

// LastDirection is the most recent non-zero travel direction.
func (e *Elevator) LastDirection() types.Direction {
	return e.lastMoveDir
}

func (e *Elevator) PassengerCount() int {
	return len(e.passengers)
}

// Passengers returns a copy of the onboard list.
func (e *Elevator) Passengers() []*passenger.Passenger {
	out := make([]*passenger.Passenger, len(e.passengers))
	copy(out, e.passengers)
	return out
}

func (e *Elevator) RemainingCapacity() int {
	return e.Capacity - len(e.passengers)
}

// Board takes a waiting passenger onboard and queues their destination.
func (e *Elevator) Board(p *passenger.Passenger) error {
	if len(e.passengers) >= e.Capacity {
		return fmt.Errorf("elevator %d at capacity (%d)", e.ID, e.Capacity)
	}
	if e.Behaviour == types.Repair {
		return fmt.Errorf("elevator %d under repair", e.ID)
	}
	p.Board()
	p.AssignedElev = e.ID
	e.passengers = append(e.passengers, p)
	e.AddFloorToVisit(p.Destination)
	return nil
}

// Update advances the state machine by dt simulated seconds.
func (e *Elevator) Update(dt float64, router Router) TickResult {
	var res TickResult
	e.stateTime += dt
	if e.graceLeft > 0 {
		e.graceLeft -= dt
	}

	if e.Behaviour != types.Repair {
		e.recordSample()
		if fault := e.detectFault(); fault != nil {
			res.Fault = fault
			res.Evacuated = e.enterRepair(fault)
			return res
		}
	}

	switch e.Behaviour {
	case types.Idle:
		e.updateIdle(router, &res)
	case types.MovingUp, types.MovingDown:
		e.updateMoving(dt, &res)
	case types.Loading:
		e.loadingLeft -= dt
		if e.loadingLeft <= 0 {
			e.setBehaviour(types.Idle)
		}
	case types.Repair:
		e.repairLeft -= dt
		if e.repairLeft <= 0 {
			e.warned = false
			e.setBehaviour(types.Idle)
			res.Recovered = true
			slog.Info("Elevator repaired, returning to service", "elevator", e.ID, "floor", e.Floor)
		}
	}
	return res
}

func (e *Elevator) updateIdle(router Router, res *TickResult) {
	if len(e.floorsToVisit) == 0 {
		return
	}
	if e.HasFloorToVisit(e.Floor) {
		e.beginLoading(res)
		return
	}
	next := router.DecideNextFloor(e)
	if next < 0 || next >= e.NumFloors || next == e.Floor {
		// Safe no-op instruction; the stuck detector is the backstop if
		// the router stays indecisive.
		return
	}
	e.target = next
	e.hasTarget = true
	if next > e.Floor {
		e.lastMoveDir = types.DirUp
		e.setBehaviour(types.MovingUp)
	} else {
		e.lastMoveDir = types.DirDown
		e.setBehaviour(types.MovingDown)
	}
}

func (e *Elevator) updateMoving(dt float64, res *TickResult) {
	step := e.Speed * dt
	targetPos := float64(e.target)
	if math.Abs(targetPos-e.Position) <= step {
		// Snap to the exact floor coordinate.
		e.Position = targetPos
		e.Floor = e.target
		e.hasTarget = false
		e.beginLoading(res)
		return
	}
	if e.Behaviour == types.MovingUp {
		e.Position += step
	} else {
		e.Position -= step
	}
}

// beginLoading enters LOADING at the current floor: the stop is consumed and
// every onboard passenger destined here completes their journey.
func (e *Elevator) beginLoading(res *TickResult) {
	delete(e.floorsToVisit, e.Floor)
	res.Served = e.unloadArrivals()
	res.StartedLoading = true
	e.loadingLeft = config.LoadingDuration
	e.setBehaviour(types.Loading)
}

func (e *Elevator) unloadArrivals() []*passenger.Passenger {
	var served []*passenger.Passenger
	kept := e.passengers[:0]
	for _, p := range e.passengers {
		if p.Destination == e.Floor {
			p.Arrive()
			served = append(served, p)
		} else {
			kept = append(kept, p)
		}
	}
	e.passengers = kept
	return served
}

func (e *Elevator) setBehaviour(b types.ElevBehaviour) {
	e.recordTransition(b)
	e.Behaviour = b
	e.stateTime = 0
	e.graceLeft = config.FaultGracePeriod
	e.warned = false
}
